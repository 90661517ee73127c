package sanitize

import "testing"

func TestStripHTML(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"<b>Hola</b> mundo", "Hola mundo"},
		{"&lt;script&gt;alert(1)&lt;/script&gt;x", "alert(1)x"},
		{"  plain  ", "plain"},
		{"5 &gt 3", "5 &gt 3"},
	}
	for _, tt := range tests {
		if got := StripHTML(tt.in); got != tt.want {
			t.Errorf("StripHTML(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestLineCollapsesWhitespace(t *testing.T) {
	if got := Line("Ana\n  <i>García</i>\t"); got != "Ana García" {
		t.Fatalf("got %q", got)
	}
}

func TestTruncate(t *testing.T) {
	if got := Truncate("añoñoño", 3); got != "año" {
		t.Fatalf("got %q", got)
	}
	if got := Truncate("ok", 10); got != "ok" {
		t.Fatalf("got %q", got)
	}
}
