package dataset

import "testing"

func TestParseDate(t *testing.T) {
	tests := []struct {
		in   string
		ok   bool
		year int
	}{
		{"2026-03-01", true, 2026},
		{"2026-03", true, 2026},
		{"2026-03-01T12:00:00Z", true, 2026},
		{"March 1, 2026", true, 2026},
		{"", false, 0},
		{"TBD", false, 0},
		{"Q4 2026", false, 0},
	}
	for _, tt := range tests {
		d, ok := ParseDate(tt.in)
		if ok != tt.ok {
			t.Errorf("ParseDate(%q) ok = %v, want %v", tt.in, ok, tt.ok)
			continue
		}
		if ok && d.Year() != tt.year {
			t.Errorf("ParseDate(%q) year = %d, want %d", tt.in, d.Year(), tt.year)
		}
	}
}

func TestFormatDate(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"2026-03-01", "Mar 1, 2026"},
		{"Q4 2026", "Q4 2026"}, // unparseable comes back verbatim
		{"", "—"},
	}
	for _, tt := range tests {
		if got := FormatDate(tt.in); got != tt.want {
			t.Errorf("FormatDate(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
