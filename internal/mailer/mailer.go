// Package mailer sends the registration confirmation email over SMTP.
package mailer

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"html/template"
	"log/slog"

	"registration-service/internal/config"
	"registration-service/internal/registration"

	"github.com/wneessen/go-mail"
)

//go:embed confirmation.html
var confirmationHTML string

var confirmationTmpl = template.Must(template.New("confirmation").Parse(confirmationHTML))

type Mailer struct {
	client *mail.Client
	cfg    config.MailConfig
	logger *slog.Logger
}

// New builds an SMTP mailer from config. Delivery is best-effort; callers
// decide what a send failure means for them.
func New(cfg config.MailConfig, logger *slog.Logger) (*Mailer, error) {
	client, err := mail.NewClient(cfg.Host,
		mail.WithPort(cfg.Port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(cfg.User),
		mail.WithPassword(cfg.Password),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create mail client: %w", err)
	}

	logger.Info("mailer initialized", "host", cfg.Host, "port", cfg.Port)

	return &Mailer{
		client: client,
		cfg:    cfg,
		logger: logger,
	}, nil
}

// templateData mirrors the fields rendered into the confirmation body.
type templateData struct {
	Name                  string
	Date                  string
	Programme             string
	RollNumber            string
	Branch                string
	PersonalEmail         string
	Mobile                string
	EmergencyContactName  string
	EmergencyContactPhone string
}

// Send delivers the confirmation email for a stored registration.
func (m *Mailer) Send(ctx context.Context, reg *registration.Registration) error {
	data := templateData{
		Name:                  reg.Name,
		Date:                  reg.Date,
		Programme:             reg.Programme,
		RollNumber:            "Not provided",
		Branch:                reg.Branch,
		PersonalEmail:         reg.PersonalEmail,
		Mobile:                reg.Mobile,
		EmergencyContactName:  reg.EmergencyContactName,
		EmergencyContactPhone: reg.EmergencyContactPhone,
	}
	if reg.RollNumber != nil {
		data.RollNumber = *reg.RollNumber
	}

	var body bytes.Buffer
	if err := confirmationTmpl.Execute(&body, data); err != nil {
		return fmt.Errorf("failed to render confirmation email: %w", err)
	}

	msg := mail.NewMsg()
	if err := msg.FromFormat(m.cfg.FromName, m.cfg.From); err != nil {
		return fmt.Errorf("invalid sender address: %w", err)
	}
	if err := msg.To(reg.PersonalEmail); err != nil {
		return fmt.Errorf("invalid recipient address: %w", err)
	}
	msg.Subject("Registration Confirmation")
	msg.SetBodyString(mail.TypeTextHTML, body.String())

	if err := m.client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("failed to send confirmation email: %w", err)
	}

	m.logger.InfoContext(ctx, "confirmation email sent", "to", reg.PersonalEmail)
	return nil
}
