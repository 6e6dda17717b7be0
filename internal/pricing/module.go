package pricing

import (
	apphttp "woninglabel_backend/internal/http"
)

// Module is the pricing bounded context module implementing http.Module.
type Module struct {
	handler *Handler
}

func NewModule() *Module {
	return &Module{handler: NewHandler()}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "pricing"
}

// RegisterRoutes mounts the quote route on the public group.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.Public.POST("/quote", m.handler.Quote)
}

var _ apphttp.Module = (*Module)(nil)
