package engine

// Range is an independent lower and upper estimate.
type Range struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// LineItem is a cost or duration entry included when its predicate matches.
type LineItem struct {
	ID    string
	Label string
	Range Range
	Note  string
	When  Predicate
}

// LineItemResult is one included line item as reported to callers.
type LineItemResult struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Min   int    `json:"min"`
	Max   int    `json:"max"`
	Note  string `json:"note,omitempty"`
}

// Estimate is the outcome of aggregating an answer set through an item catalog.
type Estimate struct {
	Unit      string           `json:"unit"`
	Breakdown []LineItemResult `json:"breakdown"`
	MinTotal  int              `json:"minTotal"`
	MaxTotal  int              `json:"maxTotal"`
}

// ItemCatalog is the immutable, ordered list of line items for one estimate.
type ItemCatalog struct {
	unit  string
	items []LineItem
}

// NewItemCatalog checks every item once: 0 <= Min <= Max, a unique ID and a predicate.
// With that in place every aggregate satisfies MinTotal <= MaxTotal.
func NewItemCatalog(unit string, items ...LineItem) (*ItemCatalog, error) {
	if unit == "" {
		return nil, errorf("item catalog without unit")
	}
	seen := make(map[string]struct{}, len(items))
	for _, it := range items {
		if it.ID == "" {
			return nil, errorf("line item with empty id")
		}
		if _, dup := seen[it.ID]; dup {
			return nil, errorf("duplicate line item %q", it.ID)
		}
		seen[it.ID] = struct{}{}
		if it.Range.Min < 0 {
			return nil, errorf("line item %q: negative min %d", it.ID, it.Range.Min)
		}
		if it.Range.Min > it.Range.Max {
			return nil, errorf("line item %q: min %d > max %d", it.ID, it.Range.Min, it.Range.Max)
		}
		if it.When == nil {
			return nil, errorf("line item %q: missing predicate", it.ID)
		}
	}
	return &ItemCatalog{unit: unit, items: append([]LineItem(nil), items...)}, nil
}

// MustItemCatalog is NewItemCatalog for package-level definitions.
func MustItemCatalog(unit string, items ...LineItem) *ItemCatalog {
	c, err := NewItemCatalog(unit, items...)
	if err != nil {
		panic(err)
	}
	return c
}

// Items returns the line items in declaration order.
func (c *ItemCatalog) Items() []LineItem {
	return append([]LineItem(nil), c.items...)
}

// Aggregate filters the catalog to the items that apply and sums Min and Max independently.
func Aggregate(answers Answers, catalog *ItemCatalog) Estimate {
	est := Estimate{
		Unit:      catalog.unit,
		Breakdown: make([]LineItemResult, 0, len(catalog.items)),
	}
	for _, it := range catalog.items {
		if !it.When(answers) {
			continue
		}
		est.Breakdown = append(est.Breakdown, LineItemResult{
			ID:    it.ID,
			Label: it.Label,
			Min:   it.Range.Min,
			Max:   it.Range.Max,
			Note:  it.Note,
		})
		est.MinTotal += it.Range.Min
		est.MaxTotal += it.Range.Max
	}
	return est
}

// Always is a predicate that matches every answer set.
func Always(Answers) bool { return true }
