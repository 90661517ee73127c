package transport

import (
	"encoding/json"
	"time"

	assessments "advisory_portal_backend/internal/assessments/transport"

	"github.com/google/uuid"
)

// AssessmentInput is the optional quiz attached to a lead submission.
type AssessmentInput struct {
	Kind    string                `json:"kind" validate:"required,oneof=residency entity costs"`
	Answers assessments.AnswerSet `json:"answers" validate:"required,max=32"`
}

// CaptureLeadRequest is the body of POST /public/leads.
type CaptureLeadRequest struct {
	Name       string           `json:"name" validate:"required,min=2,max=120"`
	Email      string           `json:"email" validate:"required,email,max=254"`
	Phone      string           `json:"phone" validate:"omitempty,max=40"`
	Company    string           `json:"company" validate:"omitempty,max=160"`
	Message    string           `json:"message" validate:"omitempty,max=4000"`
	Source     string           `json:"source" validate:"omitempty,max=60"`
	Consent    bool             `json:"consent" validate:"required"`
	Assessment *AssessmentInput `json:"assessment,omitempty"`
}

// AssessmentResult is the recomputed assessment returned to the visitor.
type AssessmentResult struct {
	Kind     string `json:"kind"`
	Version  string `json:"version"`
	Headline string `json:"headline"`
	Result   any    `json:"result"`
}

// CaptureLeadResponse acknowledges a stored lead.
type CaptureLeadResponse struct {
	ID         uuid.UUID         `json:"id"`
	Assessment *AssessmentResult `json:"assessment,omitempty"`
}

// LeadAssessment is the stored assessment as shown to advisors.
type LeadAssessment struct {
	Kind    string          `json:"kind"`
	Version string          `json:"version"`
	Summary string          `json:"summary"`
	Result  json.RawMessage `json:"result,omitempty"`
}

// LeadResponse represents a lead in admin API responses.
type LeadResponse struct {
	ID         uuid.UUID       `json:"id"`
	Name       string          `json:"name"`
	Email      string          `json:"email"`
	Phone      string          `json:"phone,omitempty"`
	Company    string          `json:"company,omitempty"`
	Message    string          `json:"message,omitempty"`
	Source     string          `json:"source"`
	Consent    bool            `json:"consent"`
	Assessment *LeadAssessment `json:"assessment,omitempty"`
	CreatedAt  time.Time       `json:"createdAt"`
}

// ListLeadsRequest holds the admin list filters.
type ListLeadsRequest struct {
	Page     int    `form:"page" validate:"omitempty,min=1"`
	PageSize int    `form:"pageSize" validate:"omitempty,min=1,max=100"`
	Kind     string `form:"kind" validate:"omitempty,oneof=residency entity costs"`
	Search   string `form:"search" validate:"omitempty,max=100"`
}

// LeadListResponse is one page of leads.
type LeadListResponse struct {
	Items      []LeadResponse `json:"items"`
	Total      int            `json:"total"`
	Page       int            `json:"page"`
	PageSize   int            `json:"pageSize"`
	TotalPages int            `json:"totalPages"`
}
