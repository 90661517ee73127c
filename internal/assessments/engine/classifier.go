package engine

import "slices"

// Threshold assigns Tier to every score at or above Min, up to the next threshold.
type Threshold[T Key] struct {
	Tier T
	Min  int
}

// Override forces Tier whenever its predicate matches, regardless of the score.
type Override[T Key] struct {
	ID   string
	Tier T
	When Predicate
}

// Classification is the tier reached for one answer set and, when an override decided
// it, that override's ID.
type Classification[T Key] struct {
	Tier     T      `json:"tier"`
	Override string `json:"override,omitempty"`
}

// Classifier maps a capped score to a tier through an ordered threshold table.
type Classifier[T Key] struct {
	limit      int
	thresholds []Threshold[T]
	overrides  []Override[T]
}

// NewClassifier validates that the thresholds cover [0, limit] contiguously and without
// overlap, and that each override targets a tier in the table.
func NewClassifier[T Key](limit int, thresholds []Threshold[T], overrides ...Override[T]) (*Classifier[T], error) {
	if limit <= 0 {
		return nil, errorf("classifier cap must be positive, got %d", limit)
	}
	if len(thresholds) == 0 {
		return nil, errorf("classifier has no thresholds")
	}
	if thresholds[0].Min != 0 {
		return nil, errorf("first threshold %q starts at %d, want 0", thresholds[0].Tier, thresholds[0].Min)
	}

	tiers := make([]T, 0, len(thresholds))
	for i, t := range thresholds {
		if slices.Contains(tiers, t.Tier) {
			return nil, errorf("duplicate tier %q", t.Tier)
		}
		if i > 0 && t.Min <= thresholds[i-1].Min {
			return nil, errorf("threshold %q (%d) does not increase over %q (%d)",
				t.Tier, t.Min, thresholds[i-1].Tier, thresholds[i-1].Min)
		}
		if t.Min > limit {
			return nil, errorf("threshold %q (%d) exceeds cap %d", t.Tier, t.Min, limit)
		}
		tiers = append(tiers, t.Tier)
	}

	seen := make(map[string]struct{}, len(overrides))
	for _, o := range overrides {
		if o.ID == "" {
			return nil, errorf("override with empty id")
		}
		if _, dup := seen[o.ID]; dup {
			return nil, errorf("duplicate override %q", o.ID)
		}
		seen[o.ID] = struct{}{}
		if !slices.Contains(tiers, o.Tier) {
			return nil, errorf("override %q targets unknown tier %q", o.ID, o.Tier)
		}
		if o.When == nil {
			return nil, errorf("override %q: missing predicate", o.ID)
		}
	}

	return &Classifier[T]{
		limit:      limit,
		thresholds: slices.Clone(thresholds),
		overrides:  slices.Clone(overrides),
	}, nil
}

// MustClassifier is NewClassifier for package-level definitions.
func MustClassifier[T Key](limit int, thresholds []Threshold[T], overrides ...Override[T]) *Classifier[T] {
	c, err := NewClassifier(limit, thresholds, overrides...)
	if err != nil {
		panic(err)
	}
	return c
}

// Cap is the maximum score the classifier accepts.
func (c *Classifier[T]) Cap() int {
	return c.limit
}

// Classify resolves the tier for a score. Overrides are checked first, in declaration
// order, and the first match wins even if a later override targets a higher tier.
// Otherwise the highest tier whose lower bound is at or below the capped score applies.
func (c *Classifier[T]) Classify(total int, answers Answers) Classification[T] {
	for _, o := range c.overrides {
		if o.When(answers) {
			return Classification[T]{Tier: o.Tier, Override: o.ID}
		}
	}
	return Classification[T]{Tier: c.TierFor(total)}
}

// TierFor applies only the threshold table. Scores below zero fall into the lowest tier
// and scores above the cap into the highest.
func (c *Classifier[T]) TierFor(total int) T {
	score := min(c.limit, total)
	tier := c.thresholds[0].Tier
	for _, t := range c.thresholds {
		if t.Min <= score {
			tier = t.Tier
		}
	}
	return tier
}

// Tiers returns the tiers from lowest to highest.
func (c *Classifier[T]) Tiers() []T {
	out := make([]T, 0, len(c.thresholds))
	for _, t := range c.thresholds {
		out = append(out, t.Tier)
	}
	return out
}

// Bounds returns the inclusive score range a tier covers.
func (c *Classifier[T]) Bounds(tier T) (lo, hi int, ok bool) {
	for i, t := range c.thresholds {
		if t.Tier != tier {
			continue
		}
		hi = c.limit
		if i+1 < len(c.thresholds) {
			hi = c.thresholds[i+1].Min - 1
		}
		return t.Min, hi, true
	}
	return 0, 0, false
}
