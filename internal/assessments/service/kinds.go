package service

import (
	"fmt"

	"advisory_portal_backend/internal/assessments/costs"
	"advisory_portal_backend/internal/assessments/engine"
	"advisory_portal_backend/internal/assessments/entity"
	"advisory_portal_backend/internal/assessments/residency"
)

// Kind names an assessment feature in URLs and lead metadata.
type Kind string

const (
	KindResidency Kind = "residency"
	KindEntity    Kind = "entity"
	KindCosts     Kind = "costs"
)

// Outcome is a computed assessment plus the parts other modules need without
// knowing the feature's result type.
type Outcome struct {
	Kind     Kind
	Version  string
	Result   any
	Headline string
	// Label is the tier, the recommended structure, or "estimate".
	Label    string
	Findings []string
	Ignored  []engine.IgnoredAnswer
}

type registration struct {
	version       string
	questionnaire func() engine.Questionnaire
	evaluate      func(engine.Answers) Outcome
}

var registry = map[Kind]registration{
	KindResidency: {
		version:       residency.Version,
		questionnaire: residency.Questionnaire,
		evaluate: func(a engine.Answers) Outcome {
			res := residency.Assess(a)
			return Outcome{
				Kind:     KindResidency,
				Version:  res.Version,
				Result:   res,
				Headline: fmt.Sprintf("Residency risk %s (score %d/100)", res.RiskLevel, res.Score),
				Label:    string(res.RiskLevel),
				Findings: res.Findings,
				Ignored:  res.IgnoredAnswers,
			}
		},
	},
	KindEntity: {
		version:       entity.Version,
		questionnaire: entity.Questionnaire,
		evaluate: func(a engine.Answers) Outcome {
			res := entity.Recommend(a)
			return Outcome{
				Kind:     KindEntity,
				Version:  res.Version,
				Result:   res,
				Headline: "Recommended structure: " + res.Profile.Name,
				Label:    string(res.Recommendation),
				Findings: res.Findings,
				Ignored:  res.IgnoredAnswers,
			}
		},
	},
	KindCosts: {
		version:       costs.Version,
		questionnaire: costs.Questionnaire,
		evaluate: func(a engine.Answers) Outcome {
			res := costs.Estimate(a)
			findings := make([]string, 0, len(res.Costs.Breakdown))
			for _, it := range res.Costs.Breakdown {
				findings = append(findings, fmt.Sprintf("%s: %d-%d %s", it.Label, it.Min, it.Max, res.Costs.Unit))
			}
			return Outcome{
				Kind:    KindCosts,
				Version: res.Version,
				Result:  res,
				Headline: fmt.Sprintf("Setup cost %d-%d %s over %d-%d %s",
					res.Costs.MinTotal, res.Costs.MaxTotal, res.Costs.Unit,
					res.Timeline.MinTotal, res.Timeline.MaxTotal, res.Timeline.Unit),
				Label:    "estimate",
				Findings: findings,
				Ignored:  res.IgnoredAnswers,
			}
		},
	},
}

// Kinds lists the registered kinds in a stable order.
func Kinds() []Kind {
	return []Kind{KindResidency, KindEntity, KindCosts}
}
