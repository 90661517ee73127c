// Package engine implements the weighted scoring and classification engine shared by
// every interactive assessment: factor catalogs, the scorer, the tier classifier,
// the explanation builder and the range aggregator.
//
// Everything in this package is pure. Catalogs are built once at package init by the
// feature packages and are read-only afterwards, so concurrent evaluations need no locking.
package engine

import (
	"slices"
	"sort"
	"strconv"
)

// Answers maps a question ID to the value the visitor picked. Unanswered questions are
// absent. Numeric answers are stored as decimal integer strings.
type Answers map[string]string

// Value returns the raw answer for a question.
func (a Answers) Value(questionID string) (string, bool) {
	v, ok := a[questionID]
	return v, ok
}

// Is reports whether the question was answered with the given token.
func (a Answers) Is(questionID, token string) bool {
	v, ok := a[questionID]
	return ok && v == token
}

// IsAny reports whether the question was answered with one of the tokens.
func (a Answers) IsAny(questionID string, tokens ...string) bool {
	v, ok := a[questionID]
	return ok && slices.Contains(tokens, v)
}

// Int returns a numeric answer. Non-numeric or absent answers report false.
func (a Answers) Int(questionID string) (int, bool) {
	v, ok := a[questionID]
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, false
	}
	return n, true
}

// Question declares the domain of one question: either a closed set of tokens or an
// inclusive integer range.
type Question struct {
	ID      string   `json:"id"`
	Options []string `json:"options,omitempty"`
	Numeric bool     `json:"numeric,omitempty"`
	Min     int      `json:"min,omitempty"`
	Max     int      `json:"max,omitempty"`
}

// Accepts reports whether value belongs to the question's domain.
func (q Question) Accepts(value string) bool {
	if q.Numeric {
		n, err := strconv.Atoi(value)
		if err != nil {
			return false
		}
		return n >= q.Min && n <= q.Max
	}
	return slices.Contains(q.Options, value)
}

// Choice declares a closed-set question.
func Choice(id string, options ...string) Question {
	return Question{ID: id, Options: options}
}

// Number declares an integer question bounded by [lo, hi].
func Number(id string, lo, hi int) Question {
	return Question{ID: id, Numeric: true, Min: lo, Max: hi}
}

// IgnoredAnswer is a diagnostics entry for an answer that was dropped before scoring.
type IgnoredAnswer struct {
	QuestionID string `json:"questionId"`
	Value      string `json:"value"`
	Reason     string `json:"reason"`
}

const (
	reasonUnknownQuestion = "unknown_question"
	reasonOutOfDomain     = "out_of_domain"
)

// Questionnaire is the ordered set of questions a feature asks.
type Questionnaire []Question

// Question looks up a question by ID.
func (qs Questionnaire) Question(id string) (Question, bool) {
	for _, q := range qs {
		if q.ID == id {
			return q, true
		}
	}
	return Question{}, false
}

// Sanitize keeps the answers that belong to their question's domain and reports the rest.
// Dropped answers are treated as unanswered; the caller decides whether to log them.
func (qs Questionnaire) Sanitize(answers Answers) (Answers, []IgnoredAnswer) {
	clean := make(Answers, len(answers))
	ignored := make([]IgnoredAnswer, 0)

	for id, value := range answers {
		q, ok := qs.Question(id)
		if !ok {
			ignored = append(ignored, IgnoredAnswer{QuestionID: id, Value: value, Reason: reasonUnknownQuestion})
			continue
		}
		if !q.Accepts(value) {
			ignored = append(ignored, IgnoredAnswer{QuestionID: id, Value: value, Reason: reasonOutOfDomain})
			continue
		}
		clean[id] = value
	}

	sort.Slice(ignored, func(i, j int) bool { return ignored[i].QuestionID < ignored[j].QuestionID })
	return clean, ignored
}

// Validate checks that question IDs are unique and every domain is non-empty.
func (qs Questionnaire) Validate() error {
	seen := make(map[string]struct{}, len(qs))
	for _, q := range qs {
		if q.ID == "" {
			return errorf("question with empty id")
		}
		if _, dup := seen[q.ID]; dup {
			return errorf("duplicate question %q", q.ID)
		}
		seen[q.ID] = struct{}{}
		if q.Numeric && q.Min > q.Max {
			return errorf("question %q: min %d > max %d", q.ID, q.Min, q.Max)
		}
		if !q.Numeric && len(q.Options) == 0 {
			return errorf("question %q has no options", q.ID)
		}
	}
	return nil
}
