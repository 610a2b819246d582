package dataset

import "time"

// Upstream dates arrive in a handful of shapes; full ISO dates are the
// common case. Parsed times are UTC since only the calendar date matters.
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01",
	"January 2, 2006",
}

// ParseDate leniently parses a date string. The second return is false for
// empty or unparseable input; parse failures are never an error condition.
func ParseDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// FormatDate renders a date string for display. Unparseable input comes
// back verbatim, or as an em-dash placeholder when empty.
func FormatDate(s string) string {
	t, ok := ParseDate(s)
	if !ok {
		if s == "" {
			return "—"
		}
		return s
	}
	return t.Format("Jan 2, 2006")
}
