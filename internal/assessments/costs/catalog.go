// Package costs configures the range aggregator for the company-setup cost and timeline
// estimator.
package costs

import "advisory_portal_backend/internal/assessments/engine"

// Version tracks the fee and timeline tables.
const Version = "costs-2026-v1"

// Question IDs.
const (
	QCompanyType       = "companyType"
	QFounderResidency  = "founderResidency"
	QPlannedEmployees  = "plannedEmployees"
	QNeedLocalDirector = "needLocalDirector"
)

const (
	unitEUR   = "EUR"
	unitWeeks = "weeks"
)

var questionnaire = engine.Questionnaire{
	engine.Choice(QCompanyType, "sl", "sa", "branch"),
	engine.Choice(QFounderResidency, "spain", "eu", "non-eu"),
	engine.Choice(QPlannedEmployees, "0", "1-5", "6-20", "20+"),
	engine.Choice(QNeedLocalDirector, "yes", "no"),
}

func is(questionID string, tokens ...string) engine.Predicate {
	return func(a engine.Answers) bool { return a.IsAny(questionID, tokens...) }
}

func hiring(a engine.Answers) bool {
	return a.IsAny(QPlannedEmployees, "1-5", "6-20", "20+")
}

var costCatalog = engine.MustItemCatalog(unitEUR,
	engine.LineItem{
		ID: "name-reservation", Label: "Company name certificate (Registro Mercantil Central)",
		Range: engine.Range{Min: 20, Max: 60}, When: is(QCompanyType, "sl", "sa"),
	},
	engine.LineItem{
		ID: "notary-sl", Label: "Notary: SL deed of incorporation",
		Range: engine.Range{Min: 300, Max: 600}, When: is(QCompanyType, "sl"),
	},
	engine.LineItem{
		ID: "notary-sa", Label: "Notary: SA deed of incorporation",
		Range: engine.Range{Min: 600, Max: 1200}, When: is(QCompanyType, "sa"),
		Note: "Plus the 60,000 EUR minimum share capital, at least 25% paid up.",
	},
	engine.LineItem{
		ID: "notary-branch", Label: "Notary: branch establishment deed",
		Range: engine.Range{Min: 400, Max: 800}, When: is(QCompanyType, "branch"),
	},
	engine.LineItem{
		ID: "registry", Label: "Commercial registry filing",
		Range: engine.Range{Min: 150, Max: 300}, When: engine.Always,
	},
	engine.LineItem{
		ID: "tax-registration", Label: "Tax ID (NIF) and census registration (Modelo 036)",
		Range: engine.Range{Min: 100, Max: 250}, When: engine.Always,
	},
	engine.LineItem{
		ID: "advisory-sl", Label: "Advisory fees: SL incorporation",
		Range: engine.Range{Min: 800, Max: 1500}, When: is(QCompanyType, "sl"),
	},
	engine.LineItem{
		ID: "advisory-sa", Label: "Advisory fees: SA incorporation",
		Range: engine.Range{Min: 1500, Max: 3000}, When: is(QCompanyType, "sa"),
	},
	engine.LineItem{
		ID: "advisory-branch", Label: "Advisory fees: branch set-up",
		Range: engine.Range{Min: 1200, Max: 2500}, When: is(QCompanyType, "branch"),
	},
	engine.LineItem{
		ID: "nie", Label: "NIE for non-EU founders",
		Range: engine.Range{Min: 150, Max: 400}, When: is(QFounderResidency, "non-eu"),
		Note: "Obtained at a consulate or in Spain with a power of attorney.",
	},
	engine.LineItem{
		ID: "local-director", Label: "Local resident director (first year)",
		Range: engine.Range{Min: 2000, Max: 6000}, When: is(QNeedLocalDirector, "yes"),
	},
	engine.LineItem{
		ID: "social-security", Label: "Social Security employer registration",
		Range: engine.Range{Min: 200, Max: 500}, When: hiring,
	},
	engine.LineItem{
		ID: "legalisation", Label: "Legalisation and sworn translation of parent documents",
		Range: engine.Range{Min: 300, Max: 900}, When: is(QCompanyType, "branch"),
		Note: "Apostille and sworn translation of the parent's deeds and resolutions.",
	},
)

var timelineCatalog = engine.MustItemCatalog(unitWeeks,
	engine.LineItem{
		ID: "name-reservation", Label: "Company name certificate",
		Range: engine.Range{Min: 1, Max: 2}, When: is(QCompanyType, "sl", "sa"),
	},
	engine.LineItem{
		ID: "nie", Label: "NIE appointment and issue",
		Range: engine.Range{Min: 2, Max: 6}, When: is(QFounderResidency, "non-eu"),
	},
	engine.LineItem{
		ID: "legalisation", Label: "Legalisation of parent documents",
		Range: engine.Range{Min: 2, Max: 4}, When: is(QCompanyType, "branch"),
	},
	engine.LineItem{
		ID: "bank-account", Label: "Bank account and capital deposit",
		Range: engine.Range{Min: 1, Max: 2}, When: engine.Always,
	},
	engine.LineItem{
		ID: "notary", Label: "Notary signing",
		Range: engine.Range{Min: 1, Max: 1}, When: engine.Always,
	},
	engine.LineItem{
		ID: "registry", Label: "Commercial registry inscription",
		Range: engine.Range{Min: 1, Max: 3}, When: engine.Always,
	},
	engine.LineItem{
		ID: "tax-registration", Label: "Definitive tax ID",
		Range: engine.Range{Min: 1, Max: 2}, When: engine.Always,
	},
	engine.LineItem{
		ID: "local-director", Label: "Appointing a local director",
		Range: engine.Range{Min: 1, Max: 3}, When: is(QNeedLocalDirector, "yes"),
	},
	engine.LineItem{
		ID: "social-security", Label: "Social Security registration",
		Range: engine.Range{Min: 1, Max: 2}, When: hiring,
	},
)

func init() {
	if err := questionnaire.Validate(); err != nil {
		panic(err)
	}
}

// Questionnaire returns the estimator questions and their domains.
func Questionnaire() engine.Questionnaire {
	return append(engine.Questionnaire(nil), questionnaire...)
}
