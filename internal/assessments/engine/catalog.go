package engine

import (
	"fmt"
	"slices"
	"strings"
)

// Key is the constraint for category and tier enums. Feature packages declare their
// categories and tiers as named string types so mixing them up does not compile.
type Key interface {
	~string
}

// Predicate decides whether a factor, override or line item applies to an answer set.
type Predicate func(Answers) bool

// Factor is one weighted rule: when its predicate matches, Weight points go to Category.
// Finding may reference answers as {questionId}; an empty Finding contributes points only.
type Factor[C Key] struct {
	ID       string
	Category C
	Weight   int
	When     Predicate
	Finding  string
}

// Catalog is the immutable, ordered list of factors for one feature.
type Catalog[C Key] struct {
	categories []C
	factors    []Factor[C]
}

// NewCatalog validates the factor definitions and returns a catalog. Validation covers
// everything the scorer relies on, so scoring itself can never fail.
func NewCatalog[C Key](categories []C, factors ...Factor[C]) (*Catalog[C], error) {
	if len(categories) == 0 {
		return nil, errorf("catalog declares no categories")
	}
	for i, c := range categories {
		if slices.Contains(categories[:i], c) {
			return nil, errorf("duplicate category %q", c)
		}
	}

	seen := make(map[string]struct{}, len(factors))

	for _, f := range factors {
		if f.ID == "" {
			return nil, errorf("factor with empty id")
		}
		if !slices.Contains(categories, f.Category) {
			return nil, errorf("factor %q: undeclared category %q", f.ID, f.Category)
		}
		if f.Weight < 0 {
			return nil, errorf("factor %q: negative weight %d", f.ID, f.Weight)
		}
		if f.When == nil {
			return nil, errorf("factor %q: missing predicate", f.ID)
		}
		// The ID doubles as the trigger description, so it must be unique catalog-wide.
		if _, dup := seen[f.ID]; dup {
			return nil, errorf("duplicate factor %q in category %q", f.ID, f.Category)
		}
		seen[f.ID] = struct{}{}
	}

	return &Catalog[C]{
		categories: slices.Clone(categories),
		factors:    slices.Clone(factors),
	}, nil
}

// MustCatalog is NewCatalog for package-level catalog definitions.
func MustCatalog[C Key](categories []C, factors ...Factor[C]) *Catalog[C] {
	c, err := NewCatalog(categories, factors...)
	if err != nil {
		panic(err)
	}
	return c
}

// Categories returns the declared categories in declaration order.
func (c *Catalog[C]) Categories() []C {
	return slices.Clone(c.categories)
}

// Factors returns the factors in declaration order.
func (c *Catalog[C]) Factors() []Factor[C] {
	return slices.Clone(c.factors)
}

// Render expands {questionId} placeholders in a finding template.
func Render(template string, answers Answers) string {
	if !strings.Contains(template, "{") {
		return template
	}
	pairs := make([]string, 0, len(answers)*2)
	for id, v := range answers {
		pairs = append(pairs, "{"+id+"}", v)
	}
	return strings.NewReplacer(pairs...).Replace(template)
}

func errorf(format string, args ...any) error {
	return fmt.Errorf("engine: "+format, args...)
}
