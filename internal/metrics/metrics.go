package metrics

import (
	"context"

	"go.opentelemetry.io/otel/metric"
)

type Metrics struct {
	registrationsCreated metric.Int64Counter
	duplicatesRejected   metric.Int64Counter
	validationFailures   metric.Int64Counter
	listViews            metric.Int64Counter
	emailsSent           metric.Int64Counter
	emailsFailed         metric.Int64Counter
	eventsPublished      metric.Int64Counter
}

func New(meter metric.Meter) (*Metrics, error) {
	m := &Metrics{}

	var err error

	m.registrationsCreated, err = meter.Int64Counter(
		"registration_service.registrations.created",
		metric.WithDescription("Total number of registrations created"),
		metric.WithUnit("{registration}"),
	)
	if err != nil {
		return nil, err
	}

	m.duplicatesRejected, err = meter.Int64Counter(
		"registration_service.registrations.duplicates_rejected",
		metric.WithDescription("Total number of submissions rejected for a duplicate email"),
		metric.WithUnit("{submission}"),
	)
	if err != nil {
		return nil, err
	}

	m.validationFailures, err = meter.Int64Counter(
		"registration_service.registrations.validation_failures",
		metric.WithDescription("Total number of submissions rejected by server-side validation"),
		metric.WithUnit("{submission}"),
	)
	if err != nil {
		return nil, err
	}

	m.listViews, err = meter.Int64Counter(
		"registration_service.registrations.list_viewed",
		metric.WithDescription("Total number of times the registrations list was fetched"),
		metric.WithUnit("{view}"),
	)
	if err != nil {
		return nil, err
	}

	m.emailsSent, err = meter.Int64Counter(
		"registration_service.emails.sent",
		metric.WithDescription("Total number of confirmation emails sent"),
		metric.WithUnit("{email}"),
	)
	if err != nil {
		return nil, err
	}

	m.emailsFailed, err = meter.Int64Counter(
		"registration_service.emails.failed",
		metric.WithDescription("Total number of confirmation emails that failed to send"),
		metric.WithUnit("{email}"),
	)
	if err != nil {
		return nil, err
	}

	m.eventsPublished, err = meter.Int64Counter(
		"registration_service.events.published",
		metric.WithDescription("Total number of registration events published to the broker"),
		metric.WithUnit("{event}"),
	)
	if err != nil {
		return nil, err
	}

	return m, nil
}

func (m *Metrics) RecordRegistrationCreated(ctx context.Context) {
	if m != nil && m.registrationsCreated != nil {
		m.registrationsCreated.Add(ctx, 1)
	}
}

func (m *Metrics) RecordDuplicateRejected(ctx context.Context) {
	if m != nil && m.duplicatesRejected != nil {
		m.duplicatesRejected.Add(ctx, 1)
	}
}

func (m *Metrics) RecordValidationFailure(ctx context.Context) {
	if m != nil && m.validationFailures != nil {
		m.validationFailures.Add(ctx, 1)
	}
}

func (m *Metrics) RecordListViewed(ctx context.Context) {
	if m != nil && m.listViews != nil {
		m.listViews.Add(ctx, 1)
	}
}

func (m *Metrics) RecordEmailSent(ctx context.Context) {
	if m != nil && m.emailsSent != nil {
		m.emailsSent.Add(ctx, 1)
	}
}

func (m *Metrics) RecordEmailFailed(ctx context.Context) {
	if m != nil && m.emailsFailed != nil {
		m.emailsFailed.Add(ctx, 1)
	}
}

func (m *Metrics) RecordEventPublished(ctx context.Context) {
	if m != nil && m.eventsPublished != nil {
		m.eventsPublished.Add(ctx, 1)
	}
}

// NewMock creates a no-op Metrics instance for testing
// The returned Metrics will safely ignore all Record* calls
func NewMock() *Metrics {
	return &Metrics{}
}
