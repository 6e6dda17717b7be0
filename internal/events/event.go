// Package events provides domain event definitions for decoupled,
// event-driven communication between modules.
// Infrastructure (Bus, Handler) is in platform/events.
package events

import (
	"woninglabel_backend/platform/events"
	"woninglabel_backend/platform/logger"

	"github.com/google/uuid"
)

// Re-export platform types for convenience
type (
	Event       = events.Event
	Bus         = events.Bus
	Handler     = events.Handler
	HandlerFunc = events.HandlerFunc
	BaseEvent   = events.BaseEvent
	InMemoryBus = events.InMemoryBus
)

// Re-export platform functions
var NewBaseEvent = events.NewBaseEvent

// NewInMemoryBus creates a new in-memory event bus.
func NewInMemoryBus(log *logger.Logger) *InMemoryBus {
	return events.NewInMemoryBus(log)
}

// =============================================================================
// Lead Domain Events
// =============================================================================

// LeadSubmitted is published after a new submission has been persisted.
type LeadSubmitted struct {
	BaseEvent
	SubmissionID    uuid.UUID `json:"submissionId"`
	OutboxID        uuid.UUID `json:"outboxId"`
	Name            string    `json:"name"`
	Email           string    `json:"email"`
	PropertyType    string    `json:"propertyType"`
	CalculatedPrice int       `json:"calculatedPrice"`
}

func (e LeadSubmitted) EventName() string { return "leads.submitted" }

// LeadStatusChanged is published when an operator changes a lead's status.
type LeadStatusChanged struct {
	BaseEvent
	SubmissionID uuid.UUID `json:"submissionId"`
	OldStatus    string    `json:"oldStatus"`
	NewStatus    string    `json:"newStatus"`
}

func (e LeadStatusChanged) EventName() string { return "leads.status.changed" }

// AppointmentScheduled is published when an inspection appointment is set.
type AppointmentScheduled struct {
	BaseEvent
	SubmissionID    uuid.UUID `json:"submissionId"`
	AppointmentDate string    `json:"appointmentDate"`
	AppointmentTime string    `json:"appointmentTime"`
	AutoPromoted    bool      `json:"autoPromoted"`
}

func (e AppointmentScheduled) EventName() string { return "leads.appointment.scheduled" }

// LeadDeleted is published when an operator permanently removes a lead.
type LeadDeleted struct {
	BaseEvent
	SubmissionID uuid.UUID `json:"submissionId"`
}

func (e LeadDeleted) EventName() string { return "leads.deleted" }
