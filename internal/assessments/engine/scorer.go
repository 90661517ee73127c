package engine

import (
	"slices"
	"sort"
)

// Scorecard is the outcome of folding an answer set through a catalog.
type Scorecard[C Key] struct {
	// CategoryTotals holds an entry for every declared category, zero when nothing fired.
	CategoryTotals map[C]int
	// Total is the unclamped sum of all fired weights.
	Total int
	// Fired lists the triggered factors in catalog declaration order.
	Fired []Factor[C]
}

// Score evaluates every factor once against the full answer set. Accumulation is
// commutative; Fired keeps declaration order so findings are stable across runs.
func Score[C Key](answers Answers, catalog *Catalog[C]) Scorecard[C] {
	totals := make(map[C]int, len(catalog.categories))
	for _, c := range catalog.categories {
		totals[c] = 0
	}

	card := Scorecard[C]{
		CategoryTotals: totals,
		Fired:          make([]Factor[C], 0),
	}

	for _, f := range catalog.factors {
		if !f.When(answers) {
			continue
		}
		totals[f.Category] += f.Weight
		card.Total += f.Weight
		card.Fired = append(card.Fired, f)
	}

	return card
}

// Capped returns min(limit, Total). Category totals are never clamped: they are a
// diagnostic breakdown, not the headline score.
func (s Scorecard[C]) Capped(limit int) int {
	return min(limit, s.Total)
}

// FiredIDs returns the IDs of the triggered factors in declaration order.
func (s Scorecard[C]) FiredIDs() []string {
	ids := make([]string, 0, len(s.Fired))
	for _, f := range s.Fired {
		ids = append(ids, f.ID)
	}
	return ids
}

// FiredIn returns the triggered factors of one category, preserving declaration order.
func (s Scorecard[C]) FiredIn(category C) []Factor[C] {
	out := make([]Factor[C], 0)
	for _, f := range s.Fired {
		if f.Category == category {
			out = append(out, f)
		}
	}
	return out
}

// Ranked is one category's position in a ranking.
type Ranked[C Key] struct {
	Category C   `json:"option"`
	Score    int `json:"score"`
}

// Rank orders categories by total, highest first. Equal totals are ordered by their
// position in priority; categories missing from priority sort after it in declaration order.
func Rank[C Key](card Scorecard[C], priority []C, declared []C) []Ranked[C] {
	order := slices.Clone(priority)
	for _, c := range declared {
		if !slices.Contains(order, c) {
			order = append(order, c)
		}
	}

	ranked := make([]Ranked[C], 0, len(order))
	for _, c := range order {
		if _, ok := card.CategoryTotals[c]; !ok {
			continue
		}
		ranked = append(ranked, Ranked[C]{Category: c, Score: card.CategoryTotals[c]})
	}

	// Stable sort keeps the priority order among equal scores.
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].Score > ranked[j].Score })
	return ranked
}
