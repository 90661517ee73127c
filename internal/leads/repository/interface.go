package repository

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Lead is a stored contact request.
type Lead struct {
	ID                uuid.UUID
	Name              string
	Email             string
	Phone             *string
	Company           *string
	Message           *string
	Source            string
	Consent           bool
	AssessmentKind    *string
	AssessmentVersion *string
	AssessmentSummary *string
	Metadata          json.RawMessage
	CreatedAt         time.Time
}

// CreateLeadParams holds the sanitised values of a new lead.
type CreateLeadParams struct {
	ID                uuid.UUID
	Name              string
	Email             string
	Phone             *string
	Company           *string
	Message           *string
	Source            string
	Consent           bool
	AssessmentKind    *string
	AssessmentVersion *string
	AssessmentSummary *string
	Metadata          json.RawMessage
}

// ListParams filters and pages the admin list.
type ListParams struct {
	Kind   string
	Search string
	Offset int
	Limit  int
}

// LeadReader provides read-only access to lead data.
type LeadReader interface {
	GetByID(ctx context.Context, id uuid.UUID) (Lead, error)
	List(ctx context.Context, params ListParams) ([]Lead, int, error)
}

// LeadWriter stores new leads.
type LeadWriter interface {
	Create(ctx context.Context, params CreateLeadParams) (Lead, error)
}

// LeadsRepository is the full persistence port of the leads module.
type LeadsRepository interface {
	LeadReader
	LeadWriter
}
