package validator

import "testing"

type contact struct {
	Name  string `json:"name" validate:"required,max=5"`
	Email string `json:"email" validate:"required,email"`
	Kind  string `json:"kind" validate:"omitempty,kind"`
}

func TestFieldsUseJSONNames(t *testing.T) {
	v := New()
	if err := v.OneOf("kind", "a", "b"); err != nil {
		t.Fatalf("register: %v", err)
	}

	err := v.Struct(contact{Name: "toolong", Email: "nope", Kind: "c"})
	if err == nil {
		t.Fatalf("expected validation error")
	}

	fields := Fields(err)
	want := map[string]string{"name": "max", "email": "email", "kind": "kind"}
	if len(fields) != len(want) {
		t.Fatalf("expected %d field errors, got %+v", len(want), fields)
	}
	for _, f := range fields {
		if want[f.Field] != f.Rule {
			t.Errorf("field %s: rule %s, want %s", f.Field, f.Rule, want[f.Field])
		}
	}
}

func TestOneOfAcceptsDeclaredValues(t *testing.T) {
	v := New()
	if err := v.OneOf("kind", "a", "b"); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := v.Struct(contact{Name: "ana", Email: "ana@example.com", Kind: "b"}); err != nil {
		t.Fatalf("expected valid struct, got %v", err)
	}
}

func TestFieldsIgnoresOtherErrors(t *testing.T) {
	if Fields(nil) != nil {
		t.Fatalf("expected nil for nil error")
	}
}
