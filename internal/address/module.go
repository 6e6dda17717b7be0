// Package address provides the address resolution bounded context module.
package address

import (
	"woninglabel_backend/internal/address/client"
	"woninglabel_backend/internal/address/service"
	apphttp "woninglabel_backend/internal/http"
	"woninglabel_backend/platform/logger"
)

// RegistryConfig is the config subset the module needs.
type RegistryConfig interface {
	GetRegistryBaseURL() string
	GetRegistryAPIKey() string
	IsRegistryEnabled() bool
}

// Module is the address bounded context module implementing http.Module.
type Module struct {
	handler *Handler
	service *service.Service
	enabled bool
}

// NewModule creates and initializes the address module.
// When no registry API key is configured the module stays disabled and the
// intake flow falls back to manual surface-area entry.
func NewModule(cfg RegistryConfig, log *logger.Logger) *Module {
	if !cfg.IsRegistryEnabled() {
		log.Info("address module disabled: BAG_API_KEY not configured")
		return &Module{enabled: false}
	}

	apiClient := client.New(cfg.GetRegistryBaseURL(), cfg.GetRegistryAPIKey(), log)
	svc := service.New(apiClient, log)

	log.Info("address module initialized")

	return &Module{
		handler: NewHandler(svc),
		service: svc,
		enabled: true,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "address"
}

// Service returns the address service for external use.
// Returns nil if the module is disabled.
func (m *Module) Service() *service.Service {
	if m == nil || !m.enabled {
		return nil
	}
	return m.service
}

// IsEnabled returns true if the registry client is configured.
func (m *Module) IsEnabled() bool {
	return m != nil && m.enabled
}

// RegisterRoutes mounts the address routes on the public group.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	if !m.enabled {
		return
	}
	ctx.Public.GET("/address", m.handler.Lookup)
}

var _ apphttp.Module = (*Module)(nil)
