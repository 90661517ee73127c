// Package ports defines the interfaces the leads domain needs from other modules.
// Adapters in internal/adapters implement them so leads never imports another
// bounded context directly.
package ports

import "context"

// AssessmentOutcome is the part of a computed assessment that a lead keeps.
type AssessmentOutcome struct {
	Kind     string
	Version  string
	Headline string
	Findings []string
	// Result is the full feature result, serialised into lead metadata.
	Result any
}

// AssessmentEvaluator recomputes an assessment from raw answers so a lead never
// stores a client-supplied score.
type AssessmentEvaluator interface {
	Evaluate(ctx context.Context, kind string, answers map[string]string) (AssessmentOutcome, error)
}
