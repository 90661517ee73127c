// Package leads provides the lead capture bounded context module.
// Visitors submit contact requests on the public site; advisors read them back
// through the admin API.
package leads

import (
	"advisory_portal_backend/internal/events"
	apphttp "advisory_portal_backend/internal/http"
	"advisory_portal_backend/internal/leads/handler"
	"advisory_portal_backend/internal/leads/ports"
	"advisory_portal_backend/internal/leads/repository"
	"advisory_portal_backend/internal/leads/service"
	"advisory_portal_backend/platform/config"
	"advisory_portal_backend/platform/logger"
	"advisory_portal_backend/platform/validator"

	"github.com/gin-gonic/gin"
)

// Module is the leads bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates and initializes the leads module with all its dependencies.
func NewModule(repo repository.LeadsRepository, evaluator ports.AssessmentEvaluator, eventBus events.Bus, val *validator.Validator, cfg config.PhoneConfig, log *logger.Logger) *Module {
	svc := service.New(repo, evaluator, eventBus, cfg.GetDefaultPhoneRegion(), log)
	return &Module{
		handler: handler.New(svc, val),
		service: svc,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "leads"
}

// Service returns the leads service for external use.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes mounts lead routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	public := []gin.HandlerFunc{m.handler.Capture}
	if ctx.SubmissionLimit != nil {
		public = append([]gin.HandlerFunc{ctx.SubmissionLimit}, public...)
	}
	ctx.Public.POST("/leads", public...)

	adminGroup := ctx.Admin.Group("/leads")
	adminGroup.GET("", m.handler.List)
	adminGroup.GET("/:id", m.handler.GetByID)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
