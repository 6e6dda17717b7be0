package events

import (
	"context"

	"woninglabel_backend/platform/logger"
)

// AuditLog records every lead domain event as a structured log entry, giving
// operators a trail of submissions and lifecycle changes without a separate
// audit store.
type AuditLog struct {
	log *logger.Logger
}

// NewAuditLog creates an audit log backed by the given logger.
func NewAuditLog(log *logger.Logger) *AuditLog {
	return &AuditLog{log: log}
}

// RegisterHandlers subscribes the audit log to all lead domain events.
func (a *AuditLog) RegisterHandlers(bus Bus) {
	bus.Subscribe(LeadSubmitted{}.EventName(), a)
	bus.Subscribe(LeadStatusChanged{}.EventName(), a)
	bus.Subscribe(AppointmentScheduled{}.EventName(), a)
	bus.Subscribe(LeadDeleted{}.EventName(), a)
}

// Handle routes events to the matching log entry. Contact details stay out of
// the audit trail.
func (a *AuditLog) Handle(ctx context.Context, event Event) error {
	switch e := event.(type) {
	case LeadSubmitted:
		a.log.Info("lead submitted",
			"submissionId", e.SubmissionID,
			"propertyType", e.PropertyType,
			"calculatedPrice", e.CalculatedPrice,
		)
	case LeadStatusChanged:
		a.log.Info("lead status changed",
			"submissionId", e.SubmissionID,
			"from", e.OldStatus,
			"to", e.NewStatus,
		)
	case AppointmentScheduled:
		a.log.Info("appointment scheduled",
			"submissionId", e.SubmissionID,
			"date", e.AppointmentDate,
			"time", e.AppointmentTime,
			"autoPromoted", e.AutoPromoted,
		)
	case LeadDeleted:
		a.log.Info("lead deleted", "submissionId", e.SubmissionID)
	}
	return nil
}
