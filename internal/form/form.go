// Package form implements the registration form controller: an explicit
// state value plus transition methods, mirroring the validation rules the
// server applies. No global state; callers own the Form value.
package form

import (
	"context"
	"errors"

	"registration-service/internal/apiclient"
	"registration-service/internal/registration"
	"registration-service/internal/validation"
)

type State int

const (
	Editing State = iota
	Submitting
	SubmittedSuccess
	SubmittedWithErrors
)

func (s State) String() string {
	switch s {
	case Editing:
		return "editing"
	case Submitting:
		return "submitting"
	case SubmittedSuccess:
		return "submitted_success"
	case SubmittedWithErrors:
		return "submitted_with_errors"
	}
	return "unknown"
}

// Submitter is the slice of the API client the form needs.
type Submitter interface {
	SubmitForm(ctx context.Context, input registration.Input) (int64, error)
}

// Form holds the field values, per-field errors and submission state.
type Form struct {
	Fields validation.Fields
	Errors map[string]string
	State  State

	// Notice is the toast-style message for the last submit attempt.
	Notice string

	today string
}

// New returns an empty form in the Editing state. today is the
// YYYY-MM-DD date pre-filled into the date field and restored after a
// successful submission.
func New(today string) *Form {
	return &Form{
		Fields: validation.Fields{Date: today},
		Errors: make(map[string]string),
		State:  Editing,
		today:  today,
	}
}

// SetField updates one field and recomputes only that field's error.
// Edits are ignored while a submission is in flight; an edit after a
// submit attempt returns the form to Editing.
func (f *Form) SetField(name, value string) {
	if f.State == Submitting {
		return
	}
	f.State = Editing

	switch name {
	case "name":
		f.Fields.Name = value
	case "date":
		f.Fields.Date = value
	case "programme":
		f.Fields.Programme = value
	case "rollNumber":
		f.Fields.RollNumber = value
	case "branch":
		f.Fields.Branch = value
	case "personalEmail":
		f.Fields.PersonalEmail = value
	case "mobile":
		f.Fields.Mobile = value
	case "emergencyContactName":
		f.Fields.EmergencyContactName = value
	case "emergencyContactPhone":
		f.Fields.EmergencyContactPhone = value
	default:
		return
	}

	if msg := validation.Field(name, value, f.Fields.Mobile); msg != "" {
		f.Errors[name] = msg
	} else {
		delete(f.Errors, name)
	}
}

// SetDeclaration toggles the acknowledgement flag.
func (f *Form) SetDeclaration(agreed bool) {
	if f.State == Submitting {
		return
	}
	f.State = Editing
	f.Fields.Declaration = agreed
	if agreed {
		delete(f.Errors, "declaration")
	}
}

// CanSubmit reports whether the submit control is enabled: the declaration
// must be acknowledged and no submission may be in flight.
func (f *Form) CanSubmit() bool {
	return f.Fields.Declaration && f.State != Submitting
}

// Submit runs full-form validation and, if everything passes, posts the
// form. Any failure path leaves the form editable with its fields intact;
// success clears the form for the next registrant.
func (f *Form) Submit(ctx context.Context, client Submitter) {
	if !f.CanSubmit() {
		return
	}

	errs := validation.Record(f.Fields)
	if msg := validation.Declaration(f.Fields.Declaration); msg != "" {
		errs["declaration"] = msg
	}
	if len(errs) > 0 {
		f.Errors = errs
		f.Notice = "Please fix the errors in the form."
		f.State = SubmittedWithErrors
		return
	}

	f.State = Submitting

	_, err := client.SubmitForm(ctx, registration.Input{
		Name:                  f.Fields.Name,
		Date:                  f.Fields.Date,
		Programme:             f.Fields.Programme,
		RollNumber:            f.Fields.RollNumber,
		Branch:                f.Fields.Branch,
		PersonalEmail:         f.Fields.PersonalEmail,
		Mobile:                f.Fields.Mobile,
		EmergencyContactName:  f.Fields.EmergencyContactName,
		EmergencyContactPhone: f.Fields.EmergencyContactPhone,
		Declaration:           f.Fields.Declaration,
	})
	if err != nil {
		var submitErr *apiclient.SubmitError
		switch {
		case errors.As(err, &submitErr) && submitErr.IsDuplicateEmail():
			f.Errors["personalEmail"] = "Email is already registered."
			f.Notice = "Email is already registered. Please use a different email."
		case errors.As(err, &submitErr) && len(submitErr.Fields) > 0:
			for field, msg := range submitErr.Fields {
				f.Errors[field] = msg
			}
			f.Notice = "Please fix the errors in the form."
		default:
			f.Notice = "Failed to submit the form. Please try again."
		}
		f.State = SubmittedWithErrors
		return
	}

	f.Fields = validation.Fields{Date: f.today}
	f.Errors = make(map[string]string)
	f.Notice = "Form submitted successfully! Please check your email."
	f.State = SubmittedSuccess
}
