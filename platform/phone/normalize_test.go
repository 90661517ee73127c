package phone

import "testing"

func TestNormalizeE164(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		region string
		want   string
	}{
		{"spanish mobile", "612 34 56 78", "", "+34612345678"},
		{"spanish landline", "91 123 45 67", "ES", "+34911234567"},
		{"international prefix", "+33 1 42 68 53 00", "", "+33142685300"},
		{"dutch national", "06 12345678", "NL", "+31612345678"},
		{"garbage", "  call me  ", "", "call me"},
		{"empty", "   ", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeE164In(tt.input, tt.region); got != tt.want {
				t.Fatalf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestIsValid(t *testing.T) {
	if !IsValid("612345678", "") {
		t.Fatalf("expected spanish mobile to be valid")
	}
	if IsValid("123", "") {
		t.Fatalf("expected short number to be invalid")
	}
}
