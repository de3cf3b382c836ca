package dateutil

import (
	"strings"
	"time"
)

// DateOnly is the wire format for calendar dates.
const DateOnly = "2006-01-02"

// NormalizeDate resolves a calendar date ("YYYY-MM-DD") or a full timestamp
// string to a UTC instant at 12:00:00 noon in RFC3339 form. Anchoring at noon
// avoids day shifts when the instant is later truncated in another timezone.
// Returns "" on unparseable input, never an error.
func NormalizeDate(input string) string {
	s := strings.TrimSpace(input)
	if s == "" {
		return ""
	}

	if strings.Contains(s, "T") {
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return ""
		}
		return t.UTC().Format(time.RFC3339)
	}

	t, err := time.Parse(DateOnly, s)
	if err != nil {
		return ""
	}
	noon := time.Date(t.Year(), t.Month(), t.Day(), 12, 0, 0, 0, time.UTC)
	return noon.Format(time.RFC3339)
}

// ToDateOnlyString truncates an ISO instant to its UTC calendar date.
// Returns "" on unparseable input.
func ToDateOnlyString(iso string) string {
	s := strings.TrimSpace(iso)
	if s == "" {
		return ""
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		// Accept bare calendar dates as already truncated.
		if d, derr := time.Parse(DateOnly, s); derr == nil {
			return d.Format(DateOnly)
		}
		return ""
	}
	return t.UTC().Format(DateOnly)
}

// DiffInNights returns the ceiling of (checkOut - checkIn) in days.
// Returns 0 for invalid input instead of failing; callers validate date order
// separately before trusting a positive result.
func DiffInNights(checkInISO, checkOutISO string) int {
	in := parseInstant(checkInISO)
	out := parseInstant(checkOutISO)
	if in.IsZero() || out.IsZero() {
		return 0
	}
	return CeilDays(out.Sub(in))
}

// CeilDays converts a duration to whole days, rounding up.
func CeilDays(d time.Duration) int {
	const day = 24 * time.Hour
	n := d / day
	if d%day > 0 {
		n++
	}
	return int(n)
}

// DaysUntil returns the ceiling of (t - now) in days. Negative when t is in
// the past.
func DaysUntil(t, now time.Time) int {
	return CeilDays(t.Sub(now))
}

// StartOfDay returns midnight of t's calendar day in t's location.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func parseInstant(s string) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t
	}
	if t, err := time.Parse(DateOnly, s); err == nil {
		return t
	}
	return time.Time{}
}
