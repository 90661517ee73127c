package engine

// Conditional appends a recommendation when its predicate matches, independent of the tier.
type Conditional struct {
	ID   string
	When Predicate
	Text func(Answers) string
}

// Explanation holds the human-readable output of an evaluation.
type Explanation struct {
	Findings        []string `json:"findings"`
	Recommendations []string `json:"recommendations"`
}

// Explainer turns fired factors and a tier into findings and recommendations.
type Explainer[C Key, T Key] struct {
	byTier map[T][]string
	extras []Conditional
}

// NewExplainer builds an explainer from a fixed tier→recommendations table. C is the
// category type of the factors whose findings it renders.
func NewExplainer[C Key, T Key](byTier map[T][]string, extras ...Conditional) (*Explainer[C, T], error) {
	for _, x := range extras {
		if x.When == nil || x.Text == nil {
			return nil, errorf("conditional recommendation %q is incomplete", x.ID)
		}
	}
	table := make(map[T][]string, len(byTier))
	for tier, recs := range byTier {
		table[tier] = append([]string(nil), recs...)
	}
	return &Explainer[C, T]{byTier: table, extras: append([]Conditional(nil), extras...)}, nil
}

// MustExplainer is NewExplainer for package-level definitions.
func MustExplainer[C Key, T Key](byTier map[T][]string, extras ...Conditional) *Explainer[C, T] {
	e, err := NewExplainer[C](byTier, extras...)
	if err != nil {
		panic(err)
	}
	return e
}

// covers reports whether every tier has a recommendation list.
func (e *Explainer[C, T]) covers(tiers []T) error {
	for _, t := range tiers {
		if _, ok := e.byTier[t]; !ok {
			return errorf("no recommendations for tier %q", t)
		}
	}
	return nil
}

// Explain renders one finding per fired factor that carries a finding template, in the
// order given, then the tier's recommendations followed by matching conditionals.
func (e *Explainer[C, T]) Explain(fired []Factor[C], tier T, answers Answers) Explanation {
	return Explanation{
		Findings:        Findings(fired, answers),
		Recommendations: e.Recommend(tier, answers),
	}
}

// Recommend returns the tier's recommendations plus matching conditionals.
func (e *Explainer[C, T]) Recommend(tier T, answers Answers) []string {
	recs := make([]string, 0, len(e.byTier[tier])+len(e.extras))
	recs = append(recs, e.byTier[tier]...)
	for _, x := range e.extras {
		if x.When(answers) {
			recs = append(recs, x.Text(answers))
		}
	}
	return recs
}

// Findings renders finding templates for fired factors in the order given.
func Findings[C Key](fired []Factor[C], answers Answers) []string {
	out := make([]string, 0, len(fired))
	for _, f := range fired {
		if f.Finding == "" {
			continue
		}
		out = append(out, Render(f.Finding, answers))
	}
	return out
}
