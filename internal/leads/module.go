// Package leads provides the lead intake and lifecycle bounded context module.
package leads

import (
	"woninglabel_backend/internal/events"
	apphttp "woninglabel_backend/internal/http"
	"woninglabel_backend/internal/leads/handler"
	"woninglabel_backend/internal/leads/intake"
	"woninglabel_backend/internal/leads/lifecycle"
	"woninglabel_backend/internal/leads/repository"
	"woninglabel_backend/platform/logger"
	"woninglabel_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the leads bounded context module implementing http.Module.
type Module struct {
	handler       *handler.Handler
	publicHandler *handler.PublicHandler
	intake        *intake.Service
	lifecycle     *lifecycle.Service
	repo          *repository.Repository
}

// NewModule creates and initializes the leads module. The notifier may be nil
// when no webhook sink is configured; submissions then stay pending in the
// outbox until one is.
func NewModule(pool *pgxpool.Pool, eventBus events.Bus, notifier intake.Notifier, val *validator.Validator, log *logger.Logger) *Module {
	repo := repository.New(pool)

	intakeSvc := intake.New(repo, notifier, eventBus, val, log)
	lifecycleSvc := lifecycle.New(repo, eventBus, val, log)

	return &Module{
		handler:       handler.New(lifecycleSvc),
		publicHandler: handler.NewPublicHandler(intakeSvc),
		intake:        intakeSvc,
		lifecycle:     lifecycleSvc,
		repo:          repo,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "leads"
}

// IntakeService returns the intake service for external use.
func (m *Module) IntakeService() *intake.Service {
	return m.intake
}

// LifecycleService returns the lifecycle service for external use.
func (m *Module) LifecycleService() *lifecycle.Service {
	return m.lifecycle
}

// Repository returns the submissions repository.
func (m *Module) Repository() *repository.Repository {
	return m.repo
}

// RegisterRoutes mounts the public intake routes and the protected operator
// routes.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	m.publicHandler.RegisterRoutes(ctx.Public)
	m.handler.RegisterRoutes(ctx.Protected.Group("/leads"))
}

var _ apphttp.Module = (*Module)(nil)
