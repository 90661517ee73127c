package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"advisory_portal_backend/internal/assessments/service"
	"advisory_portal_backend/platform/validator"
)

func newRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := New(service.New(nil), validator.New())
	r := gin.New()
	r.GET("/assessments", h.Kinds)
	r.GET("/assessments/:kind/questions", h.Questions)
	r.POST("/assessments/:kind", h.Evaluate)
	return r
}

func do(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestEvaluateResidency(t *testing.T) {
	w := do(newRouter(), http.MethodPost, "/assessments/residency",
		`{"answers":{"daysInSpain":200,"primaryIncomeLocation":"spain"}}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", w.Code, w.Body.String())
	}

	var body struct {
		Kind   string `json:"kind"`
		Result struct {
			RiskLevel         string `json:"riskLevel"`
			AutomaticResident bool   `json:"automaticResident"`
			DaysRemaining     int    `json:"daysRemaining"`
			CriteriaTriggered struct {
				Days183 bool `json:"days183"`
			} `json:"criteriaTriggered"`
			IgnoredAnswers []json.RawMessage `json:"ignoredAnswers"`
		} `json:"result"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Kind != "residency" || body.Result.RiskLevel != "VERY_HIGH" || !body.Result.AutomaticResident ||
		body.Result.DaysRemaining != 0 || !body.Result.CriteriaTriggered.Days183 {
		t.Fatalf("unexpected body %s", w.Body.String())
	}
	if body.Result.IgnoredAnswers == nil || len(body.Result.IgnoredAnswers) != 0 {
		t.Fatalf("expected empty ignoredAnswers array, got %s", w.Body.String())
	}
}

func TestEvaluateEntityReturnsRanking(t *testing.T) {
	w := do(newRouter(), http.MethodPost, "/assessments/entity",
		`{"answers":{"goal":"test-market","parentCompany":"yes","liability":"parent-liable"}}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", w.Code, w.Body.String())
	}
	var body struct {
		Result struct {
			Recommendation string `json:"recommendation"`
			Ranking        []struct {
				Option string `json:"option"`
				Score  int    `json:"score"`
			} `json:"ranking"`
		} `json:"result"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Result.Recommendation != "branch" || len(body.Result.Ranking) != 4 {
		t.Fatalf("unexpected body %s", w.Body.String())
	}
}

func TestEvaluateErrors(t *testing.T) {
	tests := []struct {
		name string
		path string
		body string
		want int
	}{
		{"unknown kind", "/assessments/horoscope", `{"answers":{}}`, http.StatusNotFound},
		{"malformed json", "/assessments/costs", `{"answers":`, http.StatusBadRequest},
		{"missing answers", "/assessments/costs", `{}`, http.StatusBadRequest},
		{"fractional number", "/assessments/residency", `{"answers":{"daysInSpain":1.5}}`, http.StatusBadRequest},
	}

	r := newRouter()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if w := do(r, http.MethodPost, tt.path, tt.body); w.Code != tt.want {
				t.Fatalf("status = %d, want %d: %s", w.Code, tt.want, w.Body.String())
			}
		})
	}
}

func TestEvaluateOutOfDomainIsReportedNotRejected(t *testing.T) {
	w := do(newRouter(), http.MethodPost, "/assessments/costs",
		`{"answers":{"companyType":"gmbh","plannedEmployees":"1-5"}}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), `"questionId":"companyType"`) {
		t.Fatalf("expected ignored companyType in %s", w.Body.String())
	}
}

func TestQuestions(t *testing.T) {
	r := newRouter()
	w := do(r, http.MethodGet, "/assessments/residency/questions", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"id":"daysInSpain"`) {
		t.Fatalf("expected daysInSpain question in %s", w.Body.String())
	}

	if w := do(r, http.MethodGet, "/assessments/nope/questions", ""); w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
}

func TestKinds(t *testing.T) {
	w := do(newRouter(), http.MethodGet, "/assessments", "")
	if w.Body.String() != `{"kinds":["residency","entity","costs"]}` {
		t.Fatalf("unexpected body %s", w.Body.String())
	}
}
