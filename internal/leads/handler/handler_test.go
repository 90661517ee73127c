package handler

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"advisory_portal_backend/internal/adapters"
	assessments "advisory_portal_backend/internal/assessments/service"
	"advisory_portal_backend/internal/events"
	"advisory_portal_backend/internal/leads/repository"
	"advisory_portal_backend/internal/leads/service"
	"advisory_portal_backend/platform/apperr"
	"advisory_portal_backend/platform/logger"
	"advisory_portal_backend/platform/validator"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type memoryRepo struct {
	leads map[uuid.UUID]repository.Lead
}

func (r *memoryRepo) Create(_ context.Context, p repository.CreateLeadParams) (repository.Lead, error) {
	lead := repository.Lead{
		ID: p.ID, Name: p.Name, Email: p.Email, Phone: p.Phone, Company: p.Company,
		Message: p.Message, Source: p.Source, Consent: p.Consent,
		AssessmentKind: p.AssessmentKind, AssessmentVersion: p.AssessmentVersion,
		AssessmentSummary: p.AssessmentSummary, Metadata: p.Metadata, CreatedAt: time.Now().UTC(),
	}
	r.leads[lead.ID] = lead
	return lead, nil
}

func (r *memoryRepo) GetByID(_ context.Context, id uuid.UUID) (repository.Lead, error) {
	lead, ok := r.leads[id]
	if !ok {
		return repository.Lead{}, apperr.NotFound("lead not found")
	}
	return lead, nil
}

func (r *memoryRepo) List(_ context.Context, _ repository.ListParams) ([]repository.Lead, int, error) {
	out := make([]repository.Lead, 0, len(r.leads))
	for _, l := range r.leads {
		out = append(out, l)
	}
	return out, len(out), nil
}

type discardBus struct{}

func (discardBus) Publish(context.Context, events.Event)           {}
func (discardBus) PublishSync(context.Context, events.Event) error { return nil }
func (discardBus) Subscribe(string, events.Handler)                {}

func newRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	log := logger.NewWithWriter("test", io.Discard)
	evaluator := adapters.NewAssessmentEvaluatorAdapter(assessments.New(log))
	svc := service.New(&memoryRepo{leads: map[uuid.UUID]repository.Lead{}}, evaluator, discardBus{}, "ES", log)
	h := New(svc, validator.New())

	r := gin.New()
	r.POST("/public/leads", h.Capture)
	r.GET("/admin/leads", h.List)
	r.GET("/admin/leads/:id", h.GetByID)
	return r
}

func do(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCaptureWithAssessment(t *testing.T) {
	r := newRouter()
	w := do(r, http.MethodPost, "/public/leads", `{
		"name": "Ana García",
		"email": "ana@example.com",
		"phone": "+34 612 34 56 78",
		"consent": true,
		"assessment": {"kind": "residency", "answers": {"daysInSpain": 200, "primaryIncomeLocation": "spain"}}
	}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d: %s", w.Code, w.Body.String())
	}

	var created struct {
		ID         uuid.UUID `json:"id"`
		Assessment struct {
			Headline string `json:"headline"`
		} `json:"assessment"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if created.Assessment.Headline != "Residency risk VERY_HIGH (score 80/100)" {
		t.Fatalf("headline = %q", created.Assessment.Headline)
	}

	w = do(r, http.MethodGet, "/admin/leads/"+created.ID.String(), "")
	if w.Code != http.StatusOK {
		t.Fatalf("get status = %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"riskLevel":"VERY_HIGH"`) || !strings.Contains(w.Body.String(), `"+34612345678"`) {
		t.Fatalf("unexpected lead %s", w.Body.String())
	}
}

func TestCaptureValidation(t *testing.T) {
	tests := []struct {
		name string
		body string
		want int
	}{
		{"malformed json", `{"name":`, http.StatusBadRequest},
		{"missing consent", `{"name":"Ana","email":"ana@example.com"}`, http.StatusBadRequest},
		{"bad email", `{"name":"Ana","email":"not-an-email","consent":true}`, http.StatusBadRequest},
		{"unknown kind", `{"name":"Ana","email":"ana@example.com","consent":true,"assessment":{"kind":"pension","answers":{"a":"b"}}}`, http.StatusBadRequest},
		{"fractional answer", `{"name":"Ana","email":"ana@example.com","consent":true,"assessment":{"kind":"residency","answers":{"daysInSpain":1.5}}}`, http.StatusBadRequest},
		{"invalid phone", `{"name":"Ana","email":"ana@example.com","phone":"12","consent":true}`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if w := do(newRouter(), http.MethodPost, "/public/leads", tt.body); w.Code != tt.want {
				t.Fatalf("status = %d, want %d: %s", w.Code, tt.want, w.Body.String())
			}
		})
	}
}

func TestAdminReads(t *testing.T) {
	r := newRouter()

	if w := do(r, http.MethodGet, "/admin/leads/not-a-uuid", ""); w.Code != http.StatusBadRequest {
		t.Fatalf("invalid id status = %d", w.Code)
	}
	if w := do(r, http.MethodGet, "/admin/leads/"+uuid.NewString(), ""); w.Code != http.StatusNotFound {
		t.Fatalf("missing lead status = %d", w.Code)
	}
	if w := do(r, http.MethodGet, "/admin/leads?pageSize=1000", ""); w.Code != http.StatusBadRequest {
		t.Fatalf("oversized page status = %d", w.Code)
	}

	w := do(r, http.MethodGet, "/admin/leads?kind=entity", "")
	if w.Code != http.StatusOK {
		t.Fatalf("list status = %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"items":[]`) {
		t.Fatalf("expected empty list, got %s", w.Body.String())
	}
}
