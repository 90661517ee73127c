package engine

// Engine wires a questionnaire, a factor catalog, a classifier and an explainer into a
// single scoring pipeline: sanitize, score, classify, explain.
type Engine[C Key, T Key] struct {
	version       string
	questionnaire Questionnaire
	catalog       *Catalog[C]
	classifier    *Classifier[T]
	explainer     *Explainer[C, T]
}

// Config holds the feature-specific parts of an Engine.
type Config[C Key, T Key] struct {
	// Version identifies the rule set; bump it when weights or thresholds change.
	Version       string
	Questionnaire Questionnaire
	Catalog       *Catalog[C]
	Classifier    *Classifier[T]
	Explainer     *Explainer[C, T]
}

// New validates the configuration as a whole.
func New[C Key, T Key](cfg Config[C, T]) (*Engine[C, T], error) {
	if cfg.Version == "" {
		return nil, errorf("engine without version")
	}
	if cfg.Catalog == nil || cfg.Classifier == nil || cfg.Explainer == nil {
		return nil, errorf("engine %s: catalog, classifier and explainer are required", cfg.Version)
	}
	if err := cfg.Questionnaire.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Explainer.covers(cfg.Classifier.Tiers()); err != nil {
		return nil, err
	}
	return &Engine[C, T]{
		version:       cfg.Version,
		questionnaire: append(Questionnaire(nil), cfg.Questionnaire...),
		catalog:       cfg.Catalog,
		classifier:    cfg.Classifier,
		explainer:     cfg.Explainer,
	}, nil
}

// Must is New for package-level engines.
func Must[C Key, T Key](cfg Config[C, T]) *Engine[C, T] {
	e, err := New(cfg)
	if err != nil {
		panic(err)
	}
	return e
}

// Result is the immutable outcome of one evaluation. It contains only plain values so it
// serializes losslessly to JSON.
type Result[C Key, T Key] struct {
	Score           int             `json:"score"`
	RawScore        int             `json:"rawScore"`
	Tier            T               `json:"tier"`
	Override        string          `json:"override,omitempty"`
	CategoryTotals  map[C]int       `json:"categoryTotals"`
	FiredFactors    []string        `json:"firedFactors"`
	Findings        []string        `json:"findings"`
	Recommendations []string        `json:"recommendations"`
	IgnoredAnswers  []IgnoredAnswer `json:"ignoredAnswers"`
	Version         string          `json:"version"`
}

// Evaluate runs the full pipeline. Answers outside their question's domain are dropped
// and reported in IgnoredAnswers.
func (e *Engine[C, T]) Evaluate(answers Answers) Result[C, T] {
	clean, ignored := e.questionnaire.Sanitize(answers)
	card := Score(clean, e.catalog)
	class := e.classifier.Classify(card.Total, clean)
	expl := e.explainer.Explain(card.Fired, class.Tier, clean)

	return Result[C, T]{
		Score:           card.Capped(e.classifier.Cap()),
		RawScore:        card.Total,
		Tier:            class.Tier,
		Override:        class.Override,
		CategoryTotals:  card.CategoryTotals,
		FiredFactors:    card.FiredIDs(),
		Findings:        expl.Findings,
		Recommendations: expl.Recommendations,
		IgnoredAnswers:  ignored,
		Version:         e.version,
	}
}

// Version returns the rule set version.
func (e *Engine[C, T]) Version() string { return e.version }

// Questionnaire returns the questions the engine accepts.
func (e *Engine[C, T]) Questionnaire() Questionnaire {
	return append(Questionnaire(nil), e.questionnaire...)
}

// Catalog returns the factor catalog.
func (e *Engine[C, T]) Catalog() *Catalog[C] { return e.catalog }

// Classifier returns the tier classifier.
func (e *Engine[C, T]) Classifier() *Classifier[T] { return e.classifier }
