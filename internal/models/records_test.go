package models

import "testing"

func TestSanitize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"None", ""},
		{"none", ""},
		{"NONE", "NONE"}, // only the two legacy spellings are markers
		{"", ""},
		{"value", "value"},
		{"Nonempty", "Nonempty"},
	}
	for _, tt := range tests {
		if got := Sanitize(tt.in); got != tt.want {
			t.Errorf("Sanitize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
