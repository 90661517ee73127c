// Package residency configures the engine for the Spanish tax-residency risk quiz.
package residency

import (
	"fmt"

	"advisory_portal_backend/internal/assessments/engine"
)

// Version tracks the residency rule set. Bump it when weights or thresholds change.
const Version = "residency-2026-v1"

// Category groups residency factors for the diagnostic breakdown.
type Category string

const (
	CategoryDays     Category = "days"
	CategoryEconomic Category = "economic"
	CategoryVital    Category = "vital"
)

// RiskLevel is the classification tier.
type RiskLevel string

const (
	RiskLow      RiskLevel = "LOW"
	RiskMedium   RiskLevel = "MEDIUM"
	RiskHigh     RiskLevel = "HIGH"
	RiskVeryHigh RiskLevel = "VERY_HIGH"
)

// Question IDs as sent by the quiz form.
const (
	QDaysInSpain           = "daysInSpain"
	QPrimaryIncomeLocation = "primaryIncomeLocation"
	QBusinessInSpain       = "businessInSpain"
	QInvestmentsInSpain    = "investmentsInSpain"
	QSpouseInSpain         = "spouseInSpain"
	QChildrenInSpain       = "childrenInSpain"
	QHomeInSpain           = "homeInSpain"
	QRegisteredInSpain     = "registeredInSpain"
)

const (
	scoreCap = 100

	// dayThreshold is the statutory presence limit; staying more than this many days
	// in a calendar year makes the person resident.
	dayThreshold = 183
	// warningDays is the presence level from which the days-remaining warning is shown.
	warningDays = 150
)

const (
	yes = "yes"
	no  = "no"
)

var questionnaire = engine.Questionnaire{
	engine.Number(QDaysInSpain, 0, 366),
	engine.Choice(QPrimaryIncomeLocation, "spain", "abroad", "mixed"),
	engine.Choice(QBusinessInSpain, yes, no),
	engine.Choice(QInvestmentsInSpain, yes, no),
	engine.Choice(QSpouseInSpain, yes, no),
	engine.Choice(QChildrenInSpain, yes, no),
	engine.Choice(QHomeInSpain, yes, no),
	engine.Choice(QRegisteredInSpain, yes, no),
}

func daysAbove(n int) engine.Predicate {
	return func(a engine.Answers) bool {
		days, ok := a.Int(QDaysInSpain)
		return ok && days > n
	}
}

func daysBetween(lo, hi int) engine.Predicate {
	return func(a engine.Answers) bool {
		days, ok := a.Int(QDaysInSpain)
		return ok && days >= lo && days <= hi
	}
}

func answered(questionID, token string) engine.Predicate {
	return func(a engine.Answers) bool { return a.Is(questionID, token) }
}

var catalog = engine.MustCatalog([]Category{CategoryDays, CategoryEconomic, CategoryVital},
	// Physical presence: the three bands are mutually exclusive.
	engine.Factor[Category]{
		ID: "days-over-183", Category: CategoryDays, Weight: 50, When: daysAbove(dayThreshold),
		Finding: "You spend {daysInSpain} days a year in Spain, above the 183-day presence threshold.",
	},
	engine.Factor[Category]{
		ID: "days-151-183", Category: CategoryDays, Weight: 25, When: daysBetween(warningDays+1, dayThreshold),
		Finding: "You spend {daysInSpain} days a year in Spain, close to the 183-day presence threshold.",
	},
	engine.Factor[Category]{
		ID: "days-120-150", Category: CategoryDays, Weight: 10, When: daysBetween(120, warningDays),
		Finding: "You spend {daysInSpain} days a year in Spain; sporadic absences may still be counted as presence.",
	},

	// Centre of economic interests.
	engine.Factor[Category]{
		ID: "income-spain", Category: CategoryEconomic, Weight: 30, When: answered(QPrimaryIncomeLocation, "spain"),
		Finding: "Your main source of income is in Spain, which points to Spain as your centre of economic interests.",
	},
	engine.Factor[Category]{
		ID: "income-mixed", Category: CategoryEconomic, Weight: 15, When: answered(QPrimaryIncomeLocation, "mixed"),
		Finding: "Part of your income is generated in Spain.",
	},
	engine.Factor[Category]{
		ID: "business-spain", Category: CategoryEconomic, Weight: 20, When: answered(QBusinessInSpain, yes),
		Finding: "You run a business or professional activity from Spain.",
	},
	engine.Factor[Category]{
		ID: "investments-spain", Category: CategoryEconomic, Weight: 10, When: answered(QInvestmentsInSpain, yes),
		Finding: "Your main investments or assets are located in Spain.",
	},

	// Centre of vital interests.
	engine.Factor[Category]{
		ID: "spouse-spain", Category: CategoryVital, Weight: 25, When: answered(QSpouseInSpain, yes),
		Finding: "Your spouse or partner lives in Spain; the tax authority presumes residency when spouse and minor children reside here.",
	},
	engine.Factor[Category]{
		ID: "children-spain", Category: CategoryVital, Weight: 15, When: answered(QChildrenInSpain, yes),
		Finding: "Your minor children live in Spain.",
	},
	engine.Factor[Category]{
		ID: "home-spain", Category: CategoryVital, Weight: 10, When: answered(QHomeInSpain, yes),
		Finding: "You keep a permanent home available in Spain.",
	},
	engine.Factor[Category]{
		ID: "registered-spain", Category: CategoryVital, Weight: 5, When: answered(QRegisteredInSpain, yes),
		Finding: "You are registered on a Spanish municipal register (padrón).",
	},
)

// Only the 183-day rule forces a tier. Economic and vital-interest criteria are reported
// but leave classification to the score.
var classifier = engine.MustClassifier(scoreCap,
	[]engine.Threshold[RiskLevel]{
		{Tier: RiskLow, Min: 0},
		{Tier: RiskMedium, Min: 25},
		{Tier: RiskHigh, Min: 50},
		{Tier: RiskVeryHigh, Min: 75},
	},
	engine.Override[RiskLevel]{ID: "days183", Tier: RiskVeryHigh, When: daysAbove(dayThreshold)},
)

var explainer = engine.MustExplainer[Category](map[RiskLevel][]string{
	RiskLow: {
		"Your current profile shows a low risk of being considered a Spanish tax resident.",
		"Keep records of travel dates and the location of your income in case your situation changes.",
	},
	RiskMedium: {
		"Some residency criteria apply to you; review how your days and interests are distributed before year end.",
		"Obtain a tax residence certificate from your current country of residence.",
		"Book a consultation to plan your presence and economic ties for the rest of the year.",
	},
	RiskHigh: {
		"Several residency criteria apply; the Spanish tax authority could consider you resident.",
		"Gather evidence of your residence abroad: certificate, lease, utility bills and travel records.",
		"Have an advisor review double taxation treaty tie-breaker rules for your case.",
	},
	RiskVeryHigh: {
		"You are very likely a Spanish tax resident and should file as such (Modelo 100).",
		"Review the Beckham regime and other options available to new residents before filing.",
		"Declare assets held abroad (Modelo 720) if they exceed the reporting thresholds.",
		"Contact an advisor promptly to regularise your position and avoid penalties.",
	},
}, engine.Conditional{
	ID:   "days-remaining",
	When: daysAbove(warningDays),
	Text: func(a engine.Answers) string {
		days, _ := a.Int(QDaysInSpain)
		remaining := DaysRemaining(days)
		switch {
		case days > dayThreshold:
			return "You have already exceeded the 183-day threshold for this calendar year."
		case remaining == 0:
			return "You have reached the 183-day threshold; one more day in Spain this year makes you resident."
		}
		return fmt.Sprintf("Only %d days remain before you reach the 183-day threshold this calendar year.", remaining)
	},
})

var riskEngine = engine.Must(engine.Config[Category, RiskLevel]{
	Version:       Version,
	Questionnaire: questionnaire,
	Catalog:       catalog,
	Classifier:    classifier,
	Explainer:     explainer,
})

// Questionnaire returns the quiz questions and their domains.
func Questionnaire() engine.Questionnaire {
	return riskEngine.Questionnaire()
}

// DaysRemaining is max(0, 183 - days).
func DaysRemaining(days int) int {
	return max(0, dayThreshold-days)
}
