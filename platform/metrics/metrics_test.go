package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMiddlewareRecordsRouteTemplate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := New()

	r := gin.New()
	r.Use(m.Middleware())
	r.GET("/leads/:id", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	for _, path := range []string{"/leads/1", "/leads/2", "/missing"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	if got := testutil.ToFloat64(m.httpRequests.WithLabelValues("GET", "/leads/:id", "204")); got != 2 {
		t.Fatalf("templated route count = %v", got)
	}
	if got := testutil.ToFloat64(m.httpRequests.WithLabelValues("GET", "unmatched", "404")); got != 1 {
		t.Fatalf("unmatched count = %v", got)
	}
}

func TestDomainCounters(t *testing.T) {
	m := New()
	m.AssessmentEvaluated("residency", "VERY_HIGH", 2)
	m.AssessmentEvaluated("residency", "LOW", 0)
	m.LeadCaptured("")
	m.LeadCaptured("entity")
	m.NotificationFailed()

	if got := testutil.ToFloat64(m.assessments.WithLabelValues("residency", "VERY_HIGH")); got != 1 {
		t.Fatalf("assessments = %v", got)
	}
	if got := testutil.ToFloat64(m.ignoredAnswers.WithLabelValues("residency")); got != 2 {
		t.Fatalf("ignored = %v", got)
	}
	if got := testutil.ToFloat64(m.leadsCaptured.WithLabelValues("none")); got != 1 {
		t.Fatalf("leads without quiz = %v", got)
	}
	if got := testutil.ToFloat64(m.notificationErr); got != 1 {
		t.Fatalf("notification failures = %v", got)
	}
}

func TestHandlerExposesRegistry(t *testing.T) {
	m := New()
	m.LeadCaptured("costs")

	w := httptest.NewRecorder()
	m.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `advisory_leads_captured_total{assessment="costs"} 1`) {
		t.Fatalf("metric missing from exposition")
	}
}
