package cms

import "testing"

func TestSlugify(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Hello, World!!", "hello-world"},
		{"Simple", "simple"},
		{"  Trimmed  ", "trimmed"},
		{"Multiple   Spaces -- and_symbols", "multiple-spaces-and-symbols"},
		{"TON: ecosystem growth 2026", "ton-ecosystem-growth-2026"},
		{"already-a-slug", "already-a-slug"},
		{"", "post"},
		{"!!!", "post"},
		{"---", "post"},
	}

	for _, tt := range tests {
		if got := Slugify(tt.input); got != tt.want {
			t.Errorf("Slugify(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
