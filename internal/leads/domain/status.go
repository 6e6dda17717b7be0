// Package domain holds the lead lifecycle rules shared by services and handlers.
package domain

// Status is the lifecycle state of a persisted submission.
type Status string

const (
	StatusNew       Status = "new"
	StatusContacted Status = "contacted"
	StatusScheduled Status = "scheduled"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// allowedTransitions is the full lifecycle graph. Completed and cancelled
// are terminal and have no outgoing edges.
var allowedTransitions = map[Status]map[Status]bool{
	StatusNew: {
		StatusContacted: true,
		StatusScheduled: true,
		StatusCancelled: true,
	},
	StatusContacted: {
		StatusScheduled: true,
		StatusCancelled: true,
	},
	StatusScheduled: {
		StatusCompleted: true,
		StatusCancelled: true,
	},
	StatusCompleted: {},
	StatusCancelled: {},
}

// Known returns true for one of the five lifecycle states.
func (s Status) Known() bool {
	_, ok := allowedTransitions[s]
	return ok
}

// IsTerminal returns true when no further status transitions are permitted.
func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// CanTransition reports whether moving from one status to another is allowed.
// A no-op transition (same status) is always allowed so an operator can
// resubmit appointment or other fields without a status change.
func CanTransition(from, to Status) bool {
	if from == to {
		return from.Known()
	}
	targets, ok := allowedTransitions[from]
	if !ok {
		return false
	}
	return targets[to]
}

// Appointment holds the schedulable fields of a submission. Date and time are
// kept as the separate strings the operator console edits (YYYY-MM-DD, HH:MM).
type Appointment struct {
	Date string
	Time string
}

// Complete returns true when both date and time are set. A submission may only
// hold status scheduled with a complete appointment.
func (a Appointment) Complete() bool {
	return a.Date != "" && a.Time != ""
}

// Empty returns true when neither field is set.
func (a Appointment) Empty() bool {
	return a.Date == "" && a.Time == ""
}

// AutoPromote returns the effective target status for an update. Setting a
// complete appointment on a new lead promotes it to scheduled as part of the
// same update.
func AutoPromote(current Status, appointment Appointment) Status {
	if current == StatusNew && appointment.Complete() {
		return StatusScheduled
	}
	return current
}
