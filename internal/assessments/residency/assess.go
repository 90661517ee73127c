package residency

import "advisory_portal_backend/internal/assessments/engine"

// Criteria reports which statutory residency tests are met.
type Criteria struct {
	Days183        bool `json:"days183"`
	EconomicCenter bool `json:"economicCenter"`
	VitalInterests bool `json:"vitalInterests"`
}

// Result is the residency assessment returned to the quiz and attached to leads.
type Result struct {
	engine.Result[Category, RiskLevel]
	RiskLevel         RiskLevel `json:"riskLevel"`
	CriteriaTriggered Criteria  `json:"criteriaTriggered"`
	AutomaticResident bool      `json:"automaticResident"`
	DaysInSpain       int       `json:"daysInSpain"`
	DaysRemaining     int       `json:"daysRemaining"`
}

// Assess scores an answer set. Answers outside their domain are ignored and listed in
// IgnoredAnswers.
func Assess(answers engine.Answers) Result {
	res := riskEngine.Evaluate(answers)

	clean, _ := questionnaire.Sanitize(answers)
	days, _ := clean.Int(QDaysInSpain)
	criteria := Criteria{
		Days183:        days > dayThreshold,
		EconomicCenter: clean.Is(QPrimaryIncomeLocation, "spain") || clean.Is(QBusinessInSpain, yes),
		VitalInterests: clean.Is(QSpouseInSpain, yes) && clean.Is(QChildrenInSpain, yes),
	}

	return Result{
		Result:            res,
		RiskLevel:         res.Tier,
		CriteriaTriggered: criteria,
		AutomaticResident: criteria.Days183,
		DaysInSpain:       days,
		DaysRemaining:     DaysRemaining(days),
	}
}
