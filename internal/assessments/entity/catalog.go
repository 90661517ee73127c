// Package entity configures the engine for the legal-entity recommender. Each structure
// is a category; an answer awards points to every structure it suits.
package entity

import (
	"advisory_portal_backend/internal/assessments/engine"
)

// Version tracks the entity points table.
const Version = "entity-2026-v1"

// Structure is a legal vehicle for operating in Spain.
type Structure string

const (
	StructureSL         Structure = "sl"
	StructureSA         Structure = "sa"
	StructureBranch     Structure = "branch"
	StructureSubsidiary Structure = "subsidiary"
)

// Question IDs.
const (
	QGoal          = "goal"
	QParentCompany = "parentCompany"
	QLiability     = "liability"
	QCapital       = "capital"
	QInvestors     = "investors"
)

var structures = []Structure{StructureSL, StructureSA, StructureBranch, StructureSubsidiary}

// tiePriority decides between structures with equal points. Simpler and cheaper vehicles
// come first.
var tiePriority = []Structure{StructureSL, StructureSubsidiary, StructureBranch, StructureSA}

var questionnaire = engine.Questionnaire{
	engine.Choice(QGoal, "test-market", "full-operations", "public-listing"),
	engine.Choice(QParentCompany, "yes", "no"),
	engine.Choice(QLiability, "separate", "parent-liable"),
	engine.Choice(QCapital, "under60k", "over60k"),
	engine.Choice(QInvestors, "none", "private", "public"),
}

// points awards, for one answer, a score and a reason to each structure. A zero entry
// awards nothing.
type points struct {
	question string
	answer   string
	award    map[Structure]int
	reason   map[Structure]string
}

var table = []points{
	{
		question: QGoal, answer: "test-market",
		award: map[Structure]int{StructureSL: 1, StructureBranch: 3, StructureSubsidiary: 1},
		reason: map[Structure]string{
			StructureBranch: "A branch is the lightest way to test the Spanish market without a new legal entity.",
		},
	},
	{
		question: QGoal, answer: "full-operations",
		award: map[Structure]int{StructureSL: 3, StructureSA: 1, StructureBranch: 1, StructureSubsidiary: 3},
		reason: map[Structure]string{
			StructureSL:         "An SL is the standard vehicle for running full operations in Spain.",
			StructureSubsidiary: "A subsidiary gives a foreign group a local company for full operations.",
		},
	},
	{
		question: QGoal, answer: "public-listing",
		award: map[Structure]int{StructureSA: 3, StructureSubsidiary: 1},
		reason: map[Structure]string{
			StructureSA: "Only an SA can list its shares on a stock exchange.",
		},
	},
	{
		question: QParentCompany, answer: "yes",
		award: map[Structure]int{StructureSL: 1, StructureSA: 1, StructureBranch: 3, StructureSubsidiary: 3},
		reason: map[Structure]string{
			StructureBranch:     "Your existing parent company can operate directly through a branch.",
			StructureSubsidiary: "Your existing parent company can own a Spanish subsidiary.",
		},
	},
	{
		question: QParentCompany, answer: "no",
		award: map[Structure]int{StructureSL: 3, StructureSA: 1},
		reason: map[Structure]string{
			StructureSL: "Without a parent company, an SL is the simplest stand-alone company to incorporate.",
		},
	},
	{
		question: QLiability, answer: "separate",
		award: map[Structure]int{StructureSL: 3, StructureSA: 3, StructureSubsidiary: 3},
		reason: map[Structure]string{
			StructureSL:         "An SL limits liability to the capital contributed.",
			StructureSA:         "An SA limits shareholders' liability to the capital contributed.",
			StructureSubsidiary: "A subsidiary ring-fences Spanish liabilities from the parent.",
		},
	},
	{
		question: QLiability, answer: "parent-liable",
		award: map[Structure]int{StructureBranch: 3},
		reason: map[Structure]string{
			StructureBranch: "You accept that the parent answers for the branch's obligations.",
		},
	},
	{
		question: QCapital, answer: "under60k",
		award: map[Structure]int{StructureSL: 3, StructureBranch: 2, StructureSubsidiary: 2},
		reason: map[Structure]string{
			StructureSL: "An SL can be incorporated with a minimum share capital of 1 EUR.",
		},
	},
	{
		question: QCapital, answer: "over60k",
		award: map[Structure]int{StructureSL: 2, StructureSA: 3, StructureBranch: 2, StructureSubsidiary: 2},
		reason: map[Structure]string{
			StructureSA: "Your capital covers the 60,000 EUR minimum required for an SA.",
		},
	},
	{
		question: QInvestors, answer: "none",
		award: map[Structure]int{StructureSL: 3, StructureBranch: 2, StructureSubsidiary: 2},
		reason: map[Structure]string{
			StructureSL: "An SL suits closely held ownership without outside investors.",
		},
	},
	{
		question: QInvestors, answer: "private",
		award: map[Structure]int{StructureSL: 2, StructureSA: 2, StructureSubsidiary: 2},
		reason: map[Structure]string{
			StructureSA: "An SA makes share transfers to private investors straightforward.",
		},
	},
	{
		question: QInvestors, answer: "public",
		award: map[Structure]int{StructureSA: 3, StructureSubsidiary: 1},
		reason: map[Structure]string{
			StructureSA: "Raising money from the public requires an SA.",
		},
	},
}

// factors expands the points table into one factor per (answer, structure) pair.
func factors() []engine.Factor[Structure] {
	var out []engine.Factor[Structure]
	for _, p := range table {
		for _, s := range structures {
			w := p.award[s]
			if w == 0 {
				continue
			}
			question, answer := p.question, p.answer
			out = append(out, engine.Factor[Structure]{
				ID:       question + "-" + answer + "-" + string(s),
				Category: s,
				Weight:   w,
				When:     func(a engine.Answers) bool { return a.Is(question, answer) },
				Finding:  p.reason[s],
			})
		}
	}
	return out
}

var catalog = engine.MustCatalog(structures, factors()...)

func init() {
	if err := questionnaire.Validate(); err != nil {
		panic(err)
	}
}

// Questionnaire returns the recommender questions and their domains.
func Questionnaire() engine.Questionnaire {
	return append(engine.Questionnaire(nil), questionnaire...)
}
