// Package assessments provides the interactive assessments bounded context module:
// the residency risk quiz, the entity recommender and the setup cost estimator.
package assessments

import (
	"advisory_portal_backend/internal/assessments/handler"
	"advisory_portal_backend/internal/assessments/service"
	apphttp "advisory_portal_backend/internal/http"
	"advisory_portal_backend/platform/logger"
	"advisory_portal_backend/platform/validator"
)

// Module is the assessments bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates and initializes the assessments module.
func NewModule(val *validator.Validator, log *logger.Logger) *Module {
	svc := service.New(log)
	return &Module{
		handler: handler.New(svc, val),
		service: svc,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "assessments"
}

// Service returns the service layer for lead capture.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes mounts the public assessment endpoints.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	group := ctx.Public.Group("/assessments")
	group.GET("", m.handler.Kinds)
	group.GET("/:kind/questions", m.handler.Questions)
	group.POST("/:kind", m.handler.Evaluate)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
