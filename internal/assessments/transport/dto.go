package transport

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"advisory_portal_backend/internal/assessments/engine"
)

// AnswerValue is one submitted answer. Forms send numbers for numeric questions and
// strings for choices; both are kept in their canonical string form.
type AnswerValue string

// UnmarshalJSON accepts a JSON string, an integral number or a boolean.
func (v *AnswerValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*v = ""
		return nil
	}

	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = AnswerValue(s)
	case 't', 'f':
		var b bool
		if err := json.Unmarshal(data, &b); err != nil {
			return err
		}
		*v = "no"
		if b {
			*v = "yes"
		}
	default:
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			return err
		}
		i, err := strconv.ParseInt(n.String(), 10, 64)
		if err != nil {
			return fmt.Errorf("answer %s is not an integer", n)
		}
		*v = AnswerValue(strconv.FormatInt(i, 10))
	}
	return nil
}

// AnswerSet maps question IDs to submitted values.
type AnswerSet map[string]AnswerValue

// Answers converts the set for the engine. Null answers count as unanswered.
func (s AnswerSet) Answers() engine.Answers {
	out := make(engine.Answers, len(s))
	for id, v := range s {
		if v == "" {
			continue
		}
		out[id] = string(v)
	}
	return out
}

// EvaluateRequest is the body of POST /assessments/:kind.
type EvaluateRequest struct {
	Answers AnswerSet `json:"answers" validate:"required,max=32"`
}

// EvaluateResponse wraps a feature result with its kind.
type EvaluateResponse struct {
	Kind    string `json:"kind"`
	Version string `json:"version"`
	Result  any    `json:"result"`
}

// QuestionnaireResponse lists the questions a kind accepts.
type QuestionnaireResponse struct {
	Kind      string               `json:"kind"`
	Version   string               `json:"version"`
	Questions engine.Questionnaire `json:"questions"`
}

// KindsResponse lists the available assessment kinds.
type KindsResponse struct {
	Kinds []string `json:"kinds"`
}
