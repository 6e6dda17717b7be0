// Package outbox persists notification delivery state. A row is written in
// the same transaction as its submission, so every stored lead has a durable
// delivery record regardless of what happens to the webhook.
package outbox

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusEnqueued  Status = "enqueued"
	StatusSucceeded Status = "succeeded"
	StatusFailed    Status = "failed"
)

var ErrNotFound = errors.New("outbox record not found")

type Record struct {
	ID           uuid.UUID
	SubmissionID uuid.UUID
	Payload      json.RawMessage
	Status       Status
	Attempts     int
	LastError    *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type Repository struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (Record, error) {
	var rec Record
	var status string
	err := r.pool.QueryRow(ctx, `
		SELECT id, submission_id, payload, status, attempts, last_error, created_at, updated_at
		FROM notification_outbox
		WHERE id = $1
	`, id).Scan(&rec.ID, &rec.SubmissionID, &rec.Payload, &status, &rec.Attempts, &rec.LastError, &rec.CreatedAt, &rec.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Record{}, ErrNotFound
	}
	if err != nil {
		return Record{}, err
	}
	rec.Status = Status(status)
	return rec, nil
}

// ClaimPending atomically moves up to limit pending rows to enqueued and
// returns them. Used by the sweep that re-dispatches rows whose original
// enqueue attempt failed.
func (r *Repository) ClaimPending(ctx context.Context, limit int) ([]Record, error) {
	if limit < 1 {
		limit = 50
	}

	rows, err := r.pool.Query(ctx, `
		UPDATE notification_outbox
		SET status = 'enqueued', updated_at = now()
		WHERE id IN (
			SELECT id FROM notification_outbox
			WHERE status = 'pending'
			ORDER BY created_at ASC
			LIMIT $1
			FOR UPDATE SKIP LOCKED
		)
		RETURNING id, submission_id, payload, status, attempts, last_error, created_at, updated_at
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := make([]Record, 0)
	for rows.Next() {
		var rec Record
		var status string
		if err := rows.Scan(&rec.ID, &rec.SubmissionID, &rec.Payload, &status, &rec.Attempts, &rec.LastError, &rec.CreatedAt, &rec.UpdatedAt); err != nil {
			return nil, err
		}
		rec.Status = Status(status)
		records = append(records, rec)
	}
	return records, rows.Err()
}

// MarkEnqueued records that a delivery task was handed to the queue.
func (r *Repository) MarkEnqueued(ctx context.Context, id uuid.UUID) error {
	return r.setStatus(ctx, id, StatusEnqueued, nil)
}

// MarkSucceeded records a confirmed delivery.
func (r *Repository) MarkSucceeded(ctx context.Context, id uuid.UUID) error {
	return r.setStatus(ctx, id, StatusSucceeded, nil)
}

// MarkFailed records a failed attempt. The attempt counter increments so the
// operator can see how often delivery was tried.
func (r *Repository) MarkFailed(ctx context.Context, id uuid.UUID, cause string) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE notification_outbox
		SET status = 'failed', attempts = attempts + 1, last_error = $2, updated_at = now()
		WHERE id = $1
	`, id, cause)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Repository) setStatus(ctx context.Context, id uuid.UUID, status Status, lastError *string) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE notification_outbox
		SET status = $2, last_error = $3, updated_at = now()
		WHERE id = $1
	`, id, string(status), lastError)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
