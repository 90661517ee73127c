// Package service holds the lead capture and advisor read-side logic.
package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"advisory_portal_backend/internal/events"
	"advisory_portal_backend/internal/leads/ports"
	"advisory_portal_backend/internal/leads/repository"
	"advisory_portal_backend/internal/leads/transport"
	"advisory_portal_backend/platform/apperr"
	"advisory_portal_backend/platform/logger"
	"advisory_portal_backend/platform/phone"
	"advisory_portal_backend/platform/sanitize"

	"github.com/google/uuid"
)

const (
	defaultSource   = "website"
	defaultPageSize = 20
	maxPageSize     = 100
	maxMessageRunes = 4000
)

// Service captures leads and serves them to advisors.
type Service struct {
	repo        repository.LeadsRepository
	evaluator   ports.AssessmentEvaluator
	eventBus    events.Bus
	phoneRegion string
	log         *logger.Logger
	recorder    Recorder
}

// Recorder counts stored leads.
type Recorder interface {
	LeadCaptured(assessmentKind string)
}

// New creates a new leads service. phoneRegion is used to read national numbers.
func New(repo repository.LeadsRepository, evaluator ports.AssessmentEvaluator, eventBus events.Bus, phoneRegion string, log *logger.Logger) *Service {
	return &Service{
		repo:        repo,
		evaluator:   evaluator,
		eventBus:    eventBus,
		phoneRegion: phoneRegion,
		log:         log,
	}
}

// SetRecorder attaches a metrics recorder.
func (s *Service) SetRecorder(r Recorder) {
	s.recorder = r
}

type storedAssessment struct {
	Kind     string   `json:"kind"`
	Version  string   `json:"version"`
	Headline string   `json:"headline"`
	Findings []string `json:"findings"`
	Result   any      `json:"result"`
}

type leadMetadata struct {
	Assessment *storedAssessment `json:"assessment,omitempty"`
}

// Capture stores a visitor's contact request. An attached quiz is recomputed
// from its answers and kept as metadata.
func (s *Service) Capture(ctx context.Context, req transport.CaptureLeadRequest) (transport.CaptureLeadResponse, error) {
	if !req.Consent {
		return transport.CaptureLeadResponse{}, apperr.Validation("consent is required")
	}

	name := sanitize.Line(req.Name)
	if name == "" {
		return transport.CaptureLeadResponse{}, apperr.Validation("name is required")
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))

	var phoneNumber string
	if raw := strings.TrimSpace(req.Phone); raw != "" {
		if !phone.IsValid(raw, s.phoneRegion) {
			return transport.CaptureLeadResponse{}, apperr.Validation("invalid phone number")
		}
		phoneNumber = phone.NormalizeE164In(raw, s.phoneRegion)
	}

	source := sanitize.Line(req.Source)
	if source == "" {
		source = defaultSource
	}

	params := repository.CreateLeadParams{
		ID:      uuid.New(),
		Name:    name,
		Email:   email,
		Phone:   optional(phoneNumber),
		Company: optional(sanitize.Line(req.Company)),
		Message: optional(sanitize.Truncate(sanitize.Text(req.Message), maxMessageRunes)),
		Source:  source,
		Consent: true,
	}

	var meta leadMetadata
	var outcome *ports.AssessmentOutcome
	if req.Assessment != nil {
		out, err := s.evaluator.Evaluate(ctx, req.Assessment.Kind, req.Assessment.Answers.Answers())
		if err != nil {
			return transport.CaptureLeadResponse{}, err
		}
		outcome = &out
		meta.Assessment = &storedAssessment{
			Kind:     out.Kind,
			Version:  out.Version,
			Headline: out.Headline,
			Findings: out.Findings,
			Result:   out.Result,
		}
		params.AssessmentKind = optional(out.Kind)
		params.AssessmentVersion = optional(out.Version)
		params.AssessmentSummary = optional(out.Headline)
	}

	metadata, err := json.Marshal(meta)
	if err != nil {
		return transport.CaptureLeadResponse{}, fmt.Errorf("marshal lead metadata: %w", err)
	}
	params.Metadata = metadata

	lead, err := s.repo.Create(ctx, params)
	if err != nil {
		s.log.DatabaseError("create lead", err)
		return transport.CaptureLeadResponse{}, err
	}

	event := events.LeadCaptured{
		BaseEvent: events.NewBaseEvent(),
		LeadID:    lead.ID,
		Name:      lead.Name,
		Email:     lead.Email,
		Phone:     deref(lead.Phone),
		Company:   deref(lead.Company),
		Message:   deref(lead.Message),
		Source:    lead.Source,
	}
	resp := transport.CaptureLeadResponse{ID: lead.ID}
	if outcome != nil {
		event.Assessment = &events.AssessmentSummary{
			Kind:     outcome.Kind,
			Version:  outcome.Version,
			Headline: outcome.Headline,
			Findings: outcome.Findings,
		}
		resp.Assessment = &transport.AssessmentResult{
			Kind:     outcome.Kind,
			Version:  outcome.Version,
			Headline: outcome.Headline,
			Result:   outcome.Result,
		}
	}
	s.eventBus.Publish(ctx, event)
	if s.recorder != nil {
		s.recorder.LeadCaptured(deref(lead.AssessmentKind))
	}

	s.log.WithContext(ctx).Info("lead captured", "leadId", lead.ID, "source", lead.Source, "assessment", deref(lead.AssessmentKind))
	return resp, nil
}

// GetByID returns one lead for an advisor.
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (transport.LeadResponse, error) {
	lead, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return transport.LeadResponse{}, err
	}
	return toResponse(lead), nil
}

// List returns a page of leads, newest first.
func (s *Service) List(ctx context.Context, req transport.ListLeadsRequest) (transport.LeadListResponse, error) {
	page := req.Page
	pageSize := req.PageSize
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}

	items, total, err := s.repo.List(ctx, repository.ListParams{
		Kind:   req.Kind,
		Search: strings.TrimSpace(req.Search),
		Offset: (page - 1) * pageSize,
		Limit:  pageSize,
	})
	if err != nil {
		return transport.LeadListResponse{}, err
	}

	responses := make([]transport.LeadResponse, len(items))
	for i, item := range items {
		responses[i] = toResponse(item)
	}
	return transport.LeadListResponse{
		Items:      responses,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: (total + pageSize - 1) / pageSize,
	}, nil
}

func toResponse(l repository.Lead) transport.LeadResponse {
	resp := transport.LeadResponse{
		ID:        l.ID,
		Name:      l.Name,
		Email:     l.Email,
		Phone:     deref(l.Phone),
		Company:   deref(l.Company),
		Message:   deref(l.Message),
		Source:    l.Source,
		Consent:   l.Consent,
		CreatedAt: l.CreatedAt,
	}
	if l.AssessmentKind != nil {
		resp.Assessment = &transport.LeadAssessment{
			Kind:    *l.AssessmentKind,
			Version: deref(l.AssessmentVersion),
			Summary: deref(l.AssessmentSummary),
			Result:  storedResult(l.Metadata),
		}
	}
	return resp
}

// storedResult extracts the feature result from lead metadata; malformed
// metadata yields nil rather than failing the read.
func storedResult(metadata []byte) json.RawMessage {
	if len(metadata) == 0 {
		return nil
	}
	var m struct {
		Assessment *struct {
			Result json.RawMessage `json:"result"`
		} `json:"assessment"`
	}
	if err := json.Unmarshal(metadata, &m); err != nil || m.Assessment == nil {
		return nil
	}
	return m.Assessment.Result
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
