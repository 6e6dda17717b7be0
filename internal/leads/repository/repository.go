// Package repository provides Postgres persistence for submissions.
package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"woninglabel_backend/internal/leads/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("submission not found")

const submissionColumns = `id, name, email, phone, address, property_type, surface_area,
	rush_service, message, calculated_price, postcode, house_number, house_number_addition,
	status, appointment_date, appointment_time, notes, created_at, updated_at`

type Repository struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Submission is the persisted lead record.
type Submission struct {
	ID                  uuid.UUID
	Name                string
	Email               string
	Phone               *string
	Address             string
	PropertyType        string
	SurfaceArea         int
	RushService         bool
	Message             *string
	CalculatedPrice     int
	Postcode            *string
	HouseNumber         *string
	HouseNumberAddition *string
	Status              domain.Status
	AppointmentDate     *string
	AppointmentTime     *string
	Notes               *string
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// Appointment returns the appointment fields as a domain value.
func (s Submission) Appointment() domain.Appointment {
	appointment := domain.Appointment{}
	if s.AppointmentDate != nil {
		appointment.Date = *s.AppointmentDate
	}
	if s.AppointmentTime != nil {
		appointment.Time = *s.AppointmentTime
	}
	return appointment
}

type CreateSubmissionParams struct {
	Name                string
	Email               string
	Phone               *string
	Address             string
	PropertyType        string
	SurfaceArea         int
	RushService         bool
	Message             *string
	CalculatedPrice     int
	Postcode            *string
	HouseNumber         *string
	HouseNumberAddition *string
}

// CreateWithOutbox inserts the submission and its notification outbox row in
// one transaction, so a stored lead always has a pending delivery record.
// calculated_price is written here and never updated afterwards.
func (r *Repository) CreateWithOutbox(ctx context.Context, params CreateSubmissionParams, payload json.RawMessage) (Submission, uuid.UUID, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return Submission{}, uuid.Nil, fmt.Errorf("begin: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	submission, err := insertSubmission(ctx, tx, params)
	if err != nil {
		return Submission{}, uuid.Nil, err
	}

	var outboxID uuid.UUID
	err = tx.QueryRow(ctx, `
		INSERT INTO notification_outbox (submission_id, payload, status)
		VALUES ($1, $2, 'pending')
		RETURNING id
	`, submission.ID, payload).Scan(&outboxID)
	if err != nil {
		return Submission{}, uuid.Nil, fmt.Errorf("insert outbox: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return Submission{}, uuid.Nil, fmt.Errorf("commit: %w", err)
	}

	return submission, outboxID, nil
}

func insertSubmission(ctx context.Context, tx pgx.Tx, params CreateSubmissionParams) (Submission, error) {
	var submission Submission
	err := tx.QueryRow(ctx, `
		INSERT INTO submissions (
			name, email, phone, address, property_type, surface_area, rush_service,
			message, calculated_price, postcode, house_number, house_number_addition
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING `+submissionColumns,
		params.Name, params.Email, params.Phone, params.Address, params.PropertyType,
		params.SurfaceArea, params.RushService, params.Message, params.CalculatedPrice,
		params.Postcode, params.HouseNumber, params.HouseNumberAddition,
	).Scan(scanTargets(&submission)...)
	if err != nil {
		return Submission{}, fmt.Errorf("insert submission: %w", err)
	}
	return submission, nil
}

func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (Submission, error) {
	var submission Submission
	err := r.pool.QueryRow(ctx, `
		SELECT `+submissionColumns+`
		FROM submissions WHERE id = $1
	`, id).Scan(scanTargets(&submission)...)
	if errors.Is(err, pgx.ErrNoRows) {
		return Submission{}, ErrNotFound
	}
	return submission, err
}

type ListParams struct {
	Status *domain.Status
	Limit  int
	Offset int
}

// List returns submissions ordered by creation time descending, newest first,
// optionally filtered by status, plus the total count for paging.
func (r *Repository) List(ctx context.Context, params ListParams) ([]Submission, int, error) {
	limit := params.Limit
	if limit < 1 || limit > 200 {
		limit = 50
	}

	rows, err := r.pool.Query(ctx, `
		SELECT `+submissionColumns+`
		FROM submissions
		WHERE ($1::text IS NULL OR status = $1)
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`, params.Status, limit, params.Offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	submissions := make([]Submission, 0)
	for rows.Next() {
		var submission Submission
		if err := rows.Scan(scanTargets(&submission)...); err != nil {
			return nil, 0, err
		}
		submissions = append(submissions, submission)
	}
	if rows.Err() != nil {
		return nil, 0, rows.Err()
	}

	var total int
	err = r.pool.QueryRow(ctx, `
		SELECT COUNT(*) FROM submissions WHERE ($1::text IS NULL OR status = $1)
	`, params.Status).Scan(&total)
	if err != nil {
		return nil, 0, err
	}

	return submissions, total, nil
}

type UpdateLifecycleParams struct {
	Status          domain.Status
	AppointmentDate *string
	AppointmentTime *string
}

// UpdateLifecycle writes status and appointment fields in a single statement.
// Validation of the transition happens in the lifecycle service before this
// is called, so a rejected update never reaches the database.
func (r *Repository) UpdateLifecycle(ctx context.Context, id uuid.UUID, params UpdateLifecycleParams) (Submission, error) {
	var submission Submission
	err := r.pool.QueryRow(ctx, `
		UPDATE submissions
		SET status = $2, appointment_date = $3, appointment_time = $4, updated_at = now()
		WHERE id = $1
		RETURNING `+submissionColumns,
		id, params.Status, params.AppointmentDate, params.AppointmentTime,
	).Scan(scanTargets(&submission)...)
	if errors.Is(err, pgx.ErrNoRows) {
		return Submission{}, ErrNotFound
	}
	return submission, err
}

// UpdateNotes overwrites the operator notes. Allowed in any state, including
// terminal ones, for record keeping.
func (r *Repository) UpdateNotes(ctx context.Context, id uuid.UUID, notes *string) (Submission, error) {
	var submission Submission
	err := r.pool.QueryRow(ctx, `
		UPDATE submissions
		SET notes = $2, updated_at = now()
		WHERE id = $1
		RETURNING `+submissionColumns,
		id, notes,
	).Scan(scanTargets(&submission)...)
	if errors.Is(err, pgx.ErrNoRows) {
		return Submission{}, ErrNotFound
	}
	return submission, err
}

// Delete removes the submission permanently. There is no tombstone.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM submissions WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanTargets(s *Submission) []any {
	return []any{
		&s.ID, &s.Name, &s.Email, &s.Phone, &s.Address, &s.PropertyType, &s.SurfaceArea,
		&s.RushService, &s.Message, &s.CalculatedPrice, &s.Postcode, &s.HouseNumber,
		&s.HouseNumberAddition, &s.Status, &s.AppointmentDate, &s.AppointmentTime,
		&s.Notes, &s.CreatedAt, &s.UpdatedAt,
	}
}
