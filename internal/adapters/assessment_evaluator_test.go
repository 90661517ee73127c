package adapters

import (
	"context"
	"testing"

	"advisory_portal_backend/internal/assessments/service"
	"advisory_portal_backend/platform/apperr"
)

func TestAssessmentEvaluatorAdapter(t *testing.T) {
	a := NewAssessmentEvaluatorAdapter(service.New(nil))

	out, err := a.Evaluate(context.Background(), "entity", map[string]string{
		"goal":          "full-operations",
		"parentCompany": "no",
		"liability":     "separate",
		"capital":       "under60k",
		"investors":     "none",
	})
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if out.Kind != "entity" || out.Headline != "Recommended structure: Sociedad Limitada (SL)" {
		t.Fatalf("unexpected outcome %+v", out)
	}
	if len(out.Findings) == 0 {
		t.Fatalf("expected findings for the winning structure")
	}

	if _, err := a.Evaluate(context.Background(), "pension", nil); !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}
