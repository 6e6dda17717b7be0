// Package service implements operator authentication.
package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"woninglabel_backend/internal/auth/repository"
	"woninglabel_backend/platform/apperr"
	"woninglabel_backend/platform/logger"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const accessTokenType = "access"

// Config exposes the JWT settings the auth service needs.
type Config interface {
	GetJWTSecret() string
	GetAccessTokenTTL() time.Duration
}

// OperatorStore abstracts the operators repository so tests can stub it.
type OperatorStore interface {
	GetByEmail(ctx context.Context, email string) (repository.Operator, error)
	Create(ctx context.Context, email, name, passwordHash string) (repository.Operator, error)
	Count(ctx context.Context) (int, error)
	TouchLastLogin(ctx context.Context, id uuid.UUID) error
}

type Service struct {
	store OperatorStore
	cfg   Config
	log   *logger.Logger
}

func New(store OperatorStore, cfg Config, log *logger.Logger) *Service {
	return &Service{store: store, cfg: cfg, log: log}
}

// Login verifies operator credentials and issues an HS256 access token. The
// same error is returned for unknown emails and wrong passwords.
func (s *Service) Login(ctx context.Context, email, plainPassword string) (string, time.Duration, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	op, err := s.store.GetByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			s.log.DatabaseError("operators.GetByEmail", err)
		}
		s.log.AuthEvent("login", email, false, "unknown email")
		return "", 0, apperr.Unauthorized("invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(op.PasswordHash), []byte(plainPassword)); err != nil {
		s.log.AuthEvent("login", email, false, "password mismatch")
		return "", 0, apperr.Unauthorized("invalid credentials")
	}

	ttl := s.cfg.GetAccessTokenTTL()
	accessToken, err := s.signJWT(op.ID, ttl)
	if err != nil {
		return "", 0, apperr.Wrap(apperr.KindInternal, "could not issue token", err)
	}

	if err := s.store.TouchLastLogin(ctx, op.ID); err != nil {
		s.log.DatabaseError("operators.TouchLastLogin", err)
	}

	s.log.AuthEvent("login", email, true, "")
	return accessToken, ttl, nil
}

// Bootstrap creates the first operator account when the table is empty. Used
// at startup so a fresh deployment can sign in without manual SQL.
func (s *Service) Bootstrap(ctx context.Context, email, name, plainPassword string) error {
	count, err := s.store.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(plainPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	op, err := s.store.Create(ctx, strings.ToLower(strings.TrimSpace(email)), name, string(hash))
	if err != nil {
		return err
	}

	s.log.Info("bootstrap operator created", "email", op.Email)
	return nil
}

func (s *Service) signJWT(operatorID uuid.UUID, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  operatorID.String(),
		"type": accessTokenType,
		"exp":  now.Add(ttl).Unix(),
		"iat":  now.Unix(),
	}

	tokenObj := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tokenObj.SignedString([]byte(s.cfg.GetJWTSecret()))
}
