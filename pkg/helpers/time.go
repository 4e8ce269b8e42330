package helpers

import (
	"strings"
	"time"
)

// DateLayout is the calendar date format used by forms and templates.
const DateLayout = "2006-01-02"

// ParseDueDate accepts an ISO-8601 calendar date or a full RFC 3339
// timestamp and returns the date at UTC midnight. Empty input yields nil.
func ParseDueDate(s string) (*time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, true
	}
	layouts := []string{DateLayout, time.RFC3339, time.RFC3339Nano}
	for _, l := range layouts {
		if t, err := time.Parse(l, s); err == nil {
			d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
			return &d, true
		}
	}
	return nil, false
}

// FormatDate renders d for display and form values; nil renders as "".
func FormatDate(d *time.Time) string {
	if d == nil {
		return ""
	}
	return d.Format(DateLayout)
}
