// Package adapters bridges bounded contexts through the ports they declare.
package adapters

import (
	"context"

	"advisory_portal_backend/internal/assessments/engine"
	"advisory_portal_backend/internal/assessments/service"
	"advisory_portal_backend/internal/leads/ports"
)

// AssessmentEvaluatorAdapter lets lead capture recompute quizzes through the
// assessments service.
type AssessmentEvaluatorAdapter struct {
	svc *service.Service
}

// NewAssessmentEvaluatorAdapter wraps the assessments service.
func NewAssessmentEvaluatorAdapter(svc *service.Service) *AssessmentEvaluatorAdapter {
	return &AssessmentEvaluatorAdapter{svc: svc}
}

var _ ports.AssessmentEvaluator = (*AssessmentEvaluatorAdapter)(nil)

func (a *AssessmentEvaluatorAdapter) Evaluate(ctx context.Context, kind string, answers map[string]string) (ports.AssessmentOutcome, error) {
	out, err := a.svc.Evaluate(ctx, kind, engine.Answers(answers))
	if err != nil {
		return ports.AssessmentOutcome{}, err
	}
	findings := out.Findings
	if findings == nil {
		findings = []string{}
	}
	return ports.AssessmentOutcome{
		Kind:     string(out.Kind),
		Version:  out.Version,
		Headline: out.Headline,
		Findings: findings,
		Result:   out.Result,
	}, nil
}
