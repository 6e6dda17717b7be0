// Package repository provides persistence for back-office operators.
package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound is returned when no operator matches the query.
var ErrNotFound = errors.New("operator not found")

// Operator is a back-office user allowed to manage leads.
type Operator struct {
	ID           uuid.UUID
	Email        string
	Name         string
	PasswordHash string
	CreatedAt    time.Time
	LastLoginAt  *time.Time
}

type Repository struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

func (r *Repository) GetByEmail(ctx context.Context, email string) (Operator, error) {
	var op Operator
	err := r.pool.QueryRow(ctx, `
		SELECT id, email, name, password_hash, created_at, last_login_at
		FROM operators
		WHERE lower(email) = lower($1)`,
		email,
	).Scan(&op.ID, &op.Email, &op.Name, &op.PasswordHash, &op.CreatedAt, &op.LastLoginAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Operator{}, ErrNotFound
	}
	if err != nil {
		return Operator{}, err
	}
	return op, nil
}

func (r *Repository) Create(ctx context.Context, email, name, passwordHash string) (Operator, error) {
	var op Operator
	err := r.pool.QueryRow(ctx, `
		INSERT INTO operators (email, name, password_hash)
		VALUES ($1, $2, $3)
		RETURNING id, email, name, password_hash, created_at, last_login_at`,
		email, name, passwordHash,
	).Scan(&op.ID, &op.Email, &op.Name, &op.PasswordHash, &op.CreatedAt, &op.LastLoginAt)
	if err != nil {
		return Operator{}, err
	}
	return op, nil
}

func (r *Repository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM operators`).Scan(&count)
	return count, err
}

// TouchLastLogin records a successful sign-in. Failures are not fatal to the
// login flow.
func (r *Repository) TouchLastLogin(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `UPDATE operators SET last_login_at = now() WHERE id = $1`, id)
	return err
}
