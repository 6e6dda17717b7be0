// Package lifecycle implements the operator-facing lead state machine.
package lifecycle

import (
	"context"
	"errors"
	"fmt"

	"woninglabel_backend/internal/events"
	"woninglabel_backend/internal/leads/domain"
	"woninglabel_backend/internal/leads/repository"
	"woninglabel_backend/internal/leads/transport"
	"woninglabel_backend/platform/apperr"
	"woninglabel_backend/platform/logger"
	"woninglabel_backend/platform/sanitize"
	"woninglabel_backend/platform/validator"

	"github.com/google/uuid"
)

// Store is the persistence surface the lifecycle service needs.
type Store interface {
	GetByID(ctx context.Context, id uuid.UUID) (repository.Submission, error)
	List(ctx context.Context, params repository.ListParams) ([]repository.Submission, int, error)
	UpdateLifecycle(ctx context.Context, id uuid.UUID, params repository.UpdateLifecycleParams) (repository.Submission, error)
	UpdateNotes(ctx context.Context, id uuid.UUID, notes *string) (repository.Submission, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// Service guards every mutation of a stored lead. A rejected update performs
// no write at all.
type Service struct {
	store Store
	bus   events.Bus
	val   *validator.Validator
	log   *logger.Logger
}

func New(store Store, bus events.Bus, val *validator.Validator, log *logger.Logger) *Service {
	return &Service{store: store, bus: bus, val: val, log: log}
}

// Get returns a single lead.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (repository.Submission, error) {
	submission, err := s.store.GetByID(ctx, id)
	if err != nil {
		return repository.Submission{}, mapStoreError(err)
	}
	return submission, nil
}

// List returns leads newest first, optionally filtered by status.
func (s *Service) List(ctx context.Context, query transport.ListQuery) ([]repository.Submission, int, error) {
	params := repository.ListParams{Limit: query.Limit, Offset: query.Offset}
	if query.Status != "" {
		status := domain.Status(query.Status)
		if !status.Known() {
			return nil, 0, apperr.Validation("unknown status filter")
		}
		params.Status = &status
	}

	submissions, total, err := s.store.List(ctx, params)
	if err != nil {
		s.log.DatabaseError("lifecycle.List", err)
		return nil, 0, apperr.Internal("could not list submissions")
	}
	return submissions, total, nil
}

// UpdateStatus applies a status transition, optionally together with the
// appointment fields. Moving into scheduled requires a complete appointment.
func (s *Service) UpdateStatus(ctx context.Context, id uuid.UUID, req transport.UpdateStatusRequest) (repository.Submission, error) {
	if err := s.val.Struct(req); err != nil {
		return repository.Submission{}, apperr.Validation("invalid status update").WithDetails(err.Error())
	}

	target := domain.Status(req.Status)
	if !target.Known() {
		return repository.Submission{}, apperr.Validation("unknown status")
	}

	current, err := s.store.GetByID(ctx, id)
	if err != nil {
		return repository.Submission{}, mapStoreError(err)
	}

	appointment := current.Appointment()
	if req.AppointmentDate != "" {
		appointment.Date = req.AppointmentDate
	}
	if req.AppointmentTime != "" {
		appointment.Time = req.AppointmentTime
	}

	if target == domain.StatusScheduled && !appointment.Complete() {
		return repository.Submission{}, apperr.Validation("scheduling requires both appointment date and time")
	}

	if !domain.CanTransition(current.Status, target) {
		return repository.Submission{}, apperr.Conflict(
			fmt.Sprintf("cannot change status from %s to %s", current.Status, target))
	}

	// A complete appointment on a lead that stays new schedules it, the same
	// as the appointment endpoint.
	if target == domain.StatusNew {
		target = domain.AutoPromote(target, appointment)
	}

	updated, err := s.store.UpdateLifecycle(ctx, id, repository.UpdateLifecycleParams{
		Status:          target,
		AppointmentDate: optional(appointment.Date),
		AppointmentTime: optional(appointment.Time),
	})
	if err != nil {
		s.log.DatabaseError("lifecycle.UpdateStatus", err)
		return repository.Submission{}, mapStoreError(err)
	}

	if updated.Status != current.Status {
		s.bus.Publish(ctx, events.LeadStatusChanged{
			BaseEvent:    events.NewBaseEvent(),
			SubmissionID: id,
			OldStatus:    string(current.Status),
			NewStatus:    string(updated.Status),
		})
	}

	return updated, nil
}

// ScheduleAppointment sets the appointment date and time. On a new lead this
// promotes the status to scheduled in the same update.
func (s *Service) ScheduleAppointment(ctx context.Context, id uuid.UUID, req transport.ScheduleRequest) (repository.Submission, error) {
	if err := s.val.Struct(req); err != nil {
		return repository.Submission{}, apperr.Validation("invalid appointment").WithDetails(err.Error())
	}

	current, err := s.store.GetByID(ctx, id)
	if err != nil {
		return repository.Submission{}, mapStoreError(err)
	}

	if current.Status.IsTerminal() {
		return repository.Submission{}, apperr.Conflict(
			fmt.Sprintf("cannot schedule a %s lead", current.Status))
	}

	appointment := domain.Appointment{Date: req.AppointmentDate, Time: req.AppointmentTime}
	target := domain.AutoPromote(current.Status, appointment)

	updated, err := s.store.UpdateLifecycle(ctx, id, repository.UpdateLifecycleParams{
		Status:          target,
		AppointmentDate: optional(appointment.Date),
		AppointmentTime: optional(appointment.Time),
	})
	if err != nil {
		s.log.DatabaseError("lifecycle.ScheduleAppointment", err)
		return repository.Submission{}, mapStoreError(err)
	}

	s.bus.Publish(ctx, events.AppointmentScheduled{
		BaseEvent:       events.NewBaseEvent(),
		SubmissionID:    id,
		AppointmentDate: appointment.Date,
		AppointmentTime: appointment.Time,
		AutoPromoted:    target != current.Status,
	})

	return updated, nil
}

// UpdateNotes overwrites the operator notes. Notes stay editable in terminal
// states for record keeping.
func (s *Service) UpdateNotes(ctx context.Context, id uuid.UUID, req transport.NotesRequest) (repository.Submission, error) {
	if err := s.val.Struct(req); err != nil {
		return repository.Submission{}, apperr.Validation("invalid notes").WithDetails(err.Error())
	}

	updated, err := s.store.UpdateNotes(ctx, id, optional(sanitize.Text(req.Notes)))
	if err != nil {
		return repository.Submission{}, mapStoreError(err)
	}
	return updated, nil
}

// Delete removes a lead permanently. Allowed from any state; irreversible.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return mapStoreError(err)
	}

	s.bus.Publish(ctx, events.LeadDeleted{
		BaseEvent:    events.NewBaseEvent(),
		SubmissionID: id,
	})

	return nil
}

func mapStoreError(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return apperr.NotFound("submission not found")
	}
	if appErr, ok := err.(*apperr.Error); ok {
		return appErr
	}
	return apperr.Internal("storage error")
}

func optional(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}
