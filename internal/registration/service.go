package registration

import (
	"context"
	"fmt"
	"log/slog"

	"registration-service/internal/metrics"
	"registration-service/internal/validation"
)

// ValidationError carries the per-field messages of a rejected submission.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed for %d field(s)", len(e.Fields))
}

// Mailer delivers the confirmation email for a stored registration.
type Mailer interface {
	Send(ctx context.Context, reg *Registration) error
}

// Producer publishes registration events to the configured broker.
type Producer interface {
	Publish(ctx context.Context, value interface{}) error
	Close() error
}

type Service interface {
	Submit(ctx context.Context, input Input) (*Registration, error)
	ListAll(ctx context.Context) ([]Registration, error)
}

type service struct {
	repo     Repository
	mailer   Mailer
	producer Producer
	logger   *slog.Logger
	metrics  *metrics.Metrics
}

// NewService wires the submission pipeline. mailer and producer may be nil,
// in which case the corresponding side-effect is skipped.
func NewService(repo Repository, mailer Mailer, producer Producer, logger *slog.Logger, m *metrics.Metrics) Service {
	return &service{
		repo:     repo,
		mailer:   mailer,
		producer: producer,
		logger:   logger,
		metrics:  m,
	}
}

// Submit re-validates the input, persists the record, and fires the
// confirmation email and broker event. Persistence is the commit point:
// once the record is stored the submission is reported as successful even if
// a notification fails afterwards; those failures are logged and counted.
func (s *service) Submit(ctx context.Context, input Input) (*Registration, error) {
	if errs := validation.Record(validation.Fields{
		Name:                  input.Name,
		Date:                  input.Date,
		Programme:             input.Programme,
		RollNumber:            input.RollNumber,
		Branch:                input.Branch,
		PersonalEmail:         input.PersonalEmail,
		Mobile:                input.Mobile,
		EmergencyContactName:  input.EmergencyContactName,
		EmergencyContactPhone: input.EmergencyContactPhone,
	}); len(errs) > 0 {
		s.metrics.RecordValidationFailure(ctx)
		return nil, &ValidationError{Fields: errs}
	}

	reg, err := s.repo.Create(ctx, input.Record())
	if err != nil {
		return nil, err
	}

	if s.mailer != nil {
		if err := s.mailer.Send(ctx, reg); err != nil {
			s.logger.ErrorContext(ctx, "failed to send confirmation email",
				"email", reg.PersonalEmail, "error", err)
			s.metrics.RecordEmailFailed(ctx)
		} else {
			s.metrics.RecordEmailSent(ctx)
		}
	}

	if s.producer != nil {
		event := RegistrationEvent{
			ID:            reg.ID,
			Name:          reg.Name,
			PersonalEmail: reg.PersonalEmail,
			Programme:     reg.Programme,
		}
		if err := s.producer.Publish(ctx, event); err != nil {
			s.logger.ErrorContext(ctx, "failed to publish registration event",
				"id", reg.ID, "error", err)
		} else {
			s.metrics.RecordEventPublished(ctx)
		}
	}

	return reg, nil
}

// ListAll returns every record in insertion order. An empty store yields an
// empty slice, not an error.
func (s *service) ListAll(ctx context.Context) ([]Registration, error) {
	return s.repo.GetAll(ctx)
}
