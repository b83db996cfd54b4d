package util

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// DateLayout is the canonical date form of a task record.
const DateLayout = "2006-01-02"

var dateLayouts = []string{
	DateLayout,
	time.RFC3339,
	"2006-01-02T15:04:05", // MS Project exports without zone
	"2006-01-02T15:04",
}

// ParseDate parses a task date. Values without a zone are taken as UTC.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}

// DatePortion returns the text before the first 'T', or s itself.
func DatePortion(s string) string {
	date, _, _ := strings.Cut(s, "T")
	return date
}

// DaysBetween returns the whole number of days from a to b, rounded.
func DaysBetween(a, b time.Time) int {
	return int(math.Round(b.Sub(a).Hours() / 24))
}

// FormatDate renders t in DateLayout, or "" for the zero time.
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(DateLayout)
}
