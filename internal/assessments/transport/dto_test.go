package transport

import (
	"encoding/json"
	"testing"
)

func TestAnswerSetDecoding(t *testing.T) {
	var req EvaluateRequest
	body := `{"answers":{"daysInSpain":200,"homeInSpain":"yes","spouseInSpain":false,"skipped":null}}`
	if err := json.Unmarshal([]byte(body), &req); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	answers := req.Answers.Answers()
	want := map[string]string{"daysInSpain": "200", "homeInSpain": "yes", "spouseInSpain": "no"}
	if len(answers) != len(want) {
		t.Fatalf("expected %v, got %v", want, answers)
	}
	for k, v := range want {
		if answers[k] != v {
			t.Errorf("%s = %q, want %q", k, answers[k], v)
		}
	}
}

func TestAnswerValueRejectsFractions(t *testing.T) {
	var req EvaluateRequest
	if err := json.Unmarshal([]byte(`{"answers":{"daysInSpain":12.5}}`), &req); err == nil {
		t.Fatalf("expected error for fractional number")
	}
}
