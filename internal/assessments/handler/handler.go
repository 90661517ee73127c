package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"advisory_portal_backend/internal/assessments/service"
	"advisory_portal_backend/internal/assessments/transport"
	"advisory_portal_backend/platform/httpkit"
	"advisory_portal_backend/platform/validator"
)

// Handler handles HTTP requests for the interactive assessments.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
)

// New creates a new assessments handler.
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// Kinds lists the available assessments.
// GET /api/v1/public/assessments
func (h *Handler) Kinds(c *gin.Context) {
	httpkit.OK(c, h.svc.Kinds())
}

// Questions returns the questionnaire of one assessment.
// GET /api/v1/public/assessments/:kind/questions
func (h *Handler) Questions(c *gin.Context) {
	result, err := h.svc.Questionnaire(c.Param("kind"))
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// Evaluate scores an answer set.
// POST /api/v1/public/assessments/:kind
func (h *Handler) Evaluate(c *gin.Context) {
	var req transport.EvaluateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, validator.Fields(err))
		return
	}

	result, err := h.svc.Respond(c.Request.Context(), c.Param("kind"), req.Answers.Answers())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}
