package registration

import (
	"time"

	"github.com/uptrace/bun"
)

// Registration is one submitted registration. Records are created exactly
// once and never updated or deleted by this service.
type Registration struct {
	bun.BaseModel `bun:"table:registrations,alias:r"`

	ID                    int64     `bun:"id,pk,autoincrement" json:"id"`
	Name                  string    `bun:"name,notnull" json:"name"`
	Date                  string    `bun:"date,notnull" json:"date"`
	Programme             string    `bun:"programme,notnull" json:"programme"`
	RollNumber            *string   `bun:"roll_number" json:"rollNumber"`
	Branch                string    `bun:"branch,notnull" json:"branch"`
	PersonalEmail         string    `bun:"personal_email,unique,notnull" json:"personalEmail"`
	Mobile                string    `bun:"mobile,notnull" json:"mobile"`
	EmergencyContactName  string    `bun:"emergency_contact_name,notnull" json:"emergencyContactName"`
	EmergencyContactPhone string    `bun:"emergency_contact_phone,notnull" json:"emergencyContactPhone"`
	CreatedAt             time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp" json:"createdAt"`
}

// Input is the submit-form request body. The declaration flag is accepted on
// the wire but never persisted; the server re-checks everything else.
type Input struct {
	Name                  string `json:"name"`
	Date                  string `json:"date"`
	Programme             string `json:"programme"`
	RollNumber            string `json:"rollNumber"`
	Branch                string `json:"branch"`
	PersonalEmail         string `json:"personalEmail"`
	Mobile                string `json:"mobile"`
	EmergencyContactName  string `json:"emergencyContactName"`
	EmergencyContactPhone string `json:"emergencyContactPhone"`
	Declaration           bool   `json:"declaration"`
}

// Record builds the persistable record from validated input. An empty roll
// number persists as NULL so listings can render it as not provided.
func (in Input) Record() *Registration {
	var roll *string
	if in.RollNumber != "" {
		roll = &in.RollNumber
	}
	return &Registration{
		Name:                  in.Name,
		Date:                  in.Date,
		Programme:             in.Programme,
		RollNumber:            roll,
		Branch:                in.Branch,
		PersonalEmail:         in.PersonalEmail,
		Mobile:                in.Mobile,
		EmergencyContactName:  in.EmergencyContactName,
		EmergencyContactPhone: in.EmergencyContactPhone,
	}
}

// RegistrationEvent is published to the broker after a successful persist.
type RegistrationEvent struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	PersonalEmail string `json:"personalEmail"`
	Programme     string `json:"programme"`
}
