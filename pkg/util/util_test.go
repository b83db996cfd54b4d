package util

import (
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	cases := []struct {
		in   string
		want time.Time
	}{
		{"2024-01-01", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
		{"2024-03-05T08:00:00", time.Date(2024, 3, 5, 8, 0, 0, 0, time.UTC)},
		{"2024-03-05T08:00:00Z", time.Date(2024, 3, 5, 8, 0, 0, 0, time.UTC)},
		{" 2024-12-31 ", time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)},
	}
	for _, c := range cases {
		got, err := ParseDate(c.in)
		if err != nil {
			t.Fatalf("ParseDate(%q) failed: %v", c.in, err)
		}
		if !got.Equal(c.want) {
			t.Errorf("ParseDate(%q) = %v, want %v", c.in, got, c.want)
		}
	}

	for _, bad := range []string{"", "tomorrow", "2024-13-01", "01/02/2024"} {
		if _, err := ParseDate(bad); err == nil {
			t.Errorf("ParseDate(%q) expected error", bad)
		}
	}
}

func TestDatePortion(t *testing.T) {
	if got := DatePortion("2024-01-02T08:00:00"); got != "2024-01-02" {
		t.Errorf("Expected 2024-01-02, got %s", got)
	}
	if got := DatePortion("2024-01-02"); got != "2024-01-02" {
		t.Errorf("Expected 2024-01-02, got %s", got)
	}
	if got := DatePortion(""); got != "" {
		t.Errorf("Expected empty string, got %q", got)
	}
}

func TestDaysBetween(t *testing.T) {
	a := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	if d := DaysBetween(a, a); d != 0 {
		t.Errorf("Expected 0, got %d", d)
	}
	if d := DaysBetween(a, a.AddDate(0, 0, 10)); d != 10 {
		t.Errorf("Expected 10, got %d", d)
	}
	if d := DaysBetween(a.AddDate(0, 0, 3), a); d != -3 {
		t.Errorf("Expected -3, got %d", d)
	}
	// 17h rounds up to a day
	if d := DaysBetween(a, a.Add(17*time.Hour)); d != 1 {
		t.Errorf("Expected 1, got %d", d)
	}
}

func TestFormatDate(t *testing.T) {
	if got := FormatDate(time.Time{}); got != "" {
		t.Errorf("Expected empty string for zero time, got %q", got)
	}
	if got := FormatDate(time.Date(2024, 8, 1, 0, 0, 0, 0, time.UTC)); got != "2024-08-01" {
		t.Errorf("Expected 2024-08-01, got %s", got)
	}
}
