package costs

import "advisory_portal_backend/internal/assessments/engine"

// Result carries both estimates. Totals are never capped.
type Result struct {
	Costs          engine.Estimate        `json:"costs"`
	Timeline       engine.Estimate        `json:"timeline"`
	IgnoredAnswers []engine.IgnoredAnswer `json:"ignoredAnswers"`
	Version        string                 `json:"version"`
}

// Estimate aggregates the cost and timeline line items that apply to the answers.
func Estimate(answers engine.Answers) Result {
	clean, ignored := questionnaire.Sanitize(answers)
	return Result{
		Costs:          engine.Aggregate(clean, costCatalog),
		Timeline:       engine.Aggregate(clean, timelineCatalog),
		IgnoredAnswers: ignored,
		Version:        Version,
	}
}
