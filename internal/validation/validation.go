// Package validation holds the field rules shared by the server-side
// re-validation and the client form controller. Every rule is a pure function
// from a field value (plus, for the emergency phone, the sibling mobile value)
// to either "" or a human-readable message.
package validation

import (
	"regexp"
	"slices"

	"github.com/go-playground/validator/v10"
)

// Programmes is the closed set of academic tracks a registrant may pick.
var Programmes = []string{"BTech", "MTech", "PhD"}

// 10 digits, leading digit non-zero.
var mobileRegex = regexp.MustCompile(`^[1-9][0-9]{9}$`)

var validate = validator.New()

// Fields carries one value per form field. The zero value is an empty form.
type Fields struct {
	Name                  string
	Date                  string
	Programme             string
	RollNumber            string
	Branch                string
	PersonalEmail         string
	Mobile                string
	EmergencyContactName  string
	EmergencyContactPhone string
	Declaration           bool
}

func Name(v string) string {
	if v == "" {
		return "Name is required."
	}
	return ""
}

func Date(v string) string {
	if v == "" {
		return "Date is required."
	}
	return ""
}

func Programme(v string) string {
	if v == "" {
		return "Programme is required."
	}
	if !slices.Contains(Programmes, v) {
		return "Select a valid programme."
	}
	return ""
}

func Branch(v string) string {
	if v == "" {
		return "Department/Field is required."
	}
	return ""
}

// Email checks syntax only; presence is a separate concern.
func Email(v string) string {
	if err := validate.Var(v, "email"); err != nil {
		return "Enter a valid email address."
	}
	return ""
}

// Mobile checks format only; presence is a separate concern.
func Mobile(v string) string {
	if !mobileRegex.MatchString(v) {
		return "Enter a valid 10-digit mobile number."
	}
	return ""
}

func EmergencyName(v string) string {
	if v == "" {
		return "Emergency contact is required."
	}
	return ""
}

// EmergencyPhone validates format first, then cross-checks against the
// registrant's own mobile. The two failures carry distinct messages.
func EmergencyPhone(v, mobile string) string {
	if !mobileRegex.MatchString(v) {
		return "Enter a valid 10-digit phone number."
	}
	if v == mobile && v != "" {
		return "Emergency contact number should be different from your mobile number."
	}
	return ""
}

func Declaration(agreed bool) string {
	if !agreed {
		return "You must agree to the declaration."
	}
	return ""
}

// Field recomputes the live error for a single changed field. Only the
// mobile, email and emergency-phone fields are validated on every change;
// the rest get their required checks at submit time.
func Field(name, value, mobile string) string {
	switch name {
	case "mobile":
		return Mobile(value)
	case "emergencyContactPhone":
		return EmergencyPhone(value, mobile)
	case "personalEmail":
		return Email(value)
	}
	return ""
}

// Record runs the whole rule set over the persisted fields: required checks
// first, then format and cross-field checks once a value exists. The returned
// map is keyed by wire field name and is empty when the input is valid.
// The declaration flag is not part of the record; callers that need it use
// Declaration directly.
func Record(f Fields) map[string]string {
	errs := make(map[string]string)

	if msg := Name(f.Name); msg != "" {
		errs["name"] = msg
	}
	if msg := Date(f.Date); msg != "" {
		errs["date"] = msg
	}
	if msg := Programme(f.Programme); msg != "" {
		errs["programme"] = msg
	}
	if msg := Branch(f.Branch); msg != "" {
		errs["branch"] = msg
	}
	if f.PersonalEmail == "" {
		errs["personalEmail"] = "Email is required."
	} else if msg := Email(f.PersonalEmail); msg != "" {
		errs["personalEmail"] = msg
	}
	if f.Mobile == "" {
		errs["mobile"] = "Phone number is required."
	} else if msg := Mobile(f.Mobile); msg != "" {
		errs["mobile"] = msg
	}
	if msg := EmergencyName(f.EmergencyContactName); msg != "" {
		errs["emergencyContactName"] = msg
	}
	if f.EmergencyContactPhone == "" {
		errs["emergencyContactPhone"] = "Emergency phone is required."
	} else if msg := EmergencyPhone(f.EmergencyContactPhone, f.Mobile); msg != "" {
		errs["emergencyContactPhone"] = msg
	}

	return errs
}
