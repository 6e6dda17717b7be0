// Package auth provides the operator authentication bounded context module.
package auth

import (
	"context"

	"woninglabel_backend/internal/auth/handler"
	"woninglabel_backend/internal/auth/repository"
	"woninglabel_backend/internal/auth/service"
	"woninglabel_backend/internal/config"
	apphttp "woninglabel_backend/internal/http"
	"woninglabel_backend/platform/logger"
	"woninglabel_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the auth bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
	cfg     *config.Config
}

// NewModule creates and initializes the auth module.
func NewModule(pool *pgxpool.Pool, cfg *config.Config, val *validator.Validator, log *logger.Logger) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, cfg, log)

	return &Module{
		handler: handler.New(svc, val),
		service: svc,
		cfg:     cfg,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "auth"
}

// Service returns the auth service for external use.
func (m *Module) Service() *service.Service {
	return m.service
}

// Bootstrap seeds the first operator account when configured and the table is
// still empty.
func (m *Module) Bootstrap(ctx context.Context) error {
	if m.cfg.BootstrapOperatorEmail == "" || m.cfg.BootstrapOperatorPassword == "" {
		return nil
	}
	return m.service.Bootstrap(ctx,
		m.cfg.BootstrapOperatorEmail,
		m.cfg.BootstrapOperatorName,
		m.cfg.BootstrapOperatorPassword,
	)
}

// RegisterRoutes mounts the login route with the stricter auth rate limiter.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	authGroup := ctx.V1.Group("/auth")
	authGroup.Use(ctx.AuthRateLimiter.RateLimit())
	m.handler.RegisterRoutes(authGroup)
}

var _ apphttp.Module = (*Module)(nil)
