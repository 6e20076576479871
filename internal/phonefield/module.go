// Package phonefield provides the phone field bounded context module.
// It serves the country catalog and derives international phone numbers
// from client held field snapshots.
package phonefield

import (
	apphttp "phonefield/internal/http"
	"phonefield/internal/phonefield/handler"
	"phonefield/internal/phonefield/service"
	"phonefield/platform/config"
	"phonefield/platform/events"
	"phonefield/platform/logger"
	"phonefield/platform/validator"
)

// Module is the phone field bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates and initializes the phone field module with all its dependencies.
func NewModule(cfg config.PhoneFieldConfig, bus events.Bus, val *validator.Validator, log *logger.Logger) (*Module, error) {
	svc := service.New(cfg, bus, log)
	h, err := handler.New(svc, val)
	if err != nil {
		return nil, err
	}

	return &Module{
		handler: h,
		service: svc,
	}, nil
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "phonefield"
}

// Service returns the service layer for external use.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes mounts the catalog and phone field routes on /api/v1.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	m.handler.RegisterRoutes(ctx.V1)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
