package timeutil

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the calendar date format used across the API.
const DateLayout = "2006-01-02"

// dateLayouts lists the accepted input formats, most specific first.
// Values without a zone are interpreted as UTC.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	DateLayout,
}

// ParseDate parses a date or date-time string in any accepted layout.
func ParseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q, expected YYYY-MM-DD or RFC3339", value)
}

// FormatDate formats a time as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.UTC().Format(DateLayout)
}

// StartOfDay returns midnight UTC of the given day.
func StartOfDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// NightsBetween counts calendar nights from arrival to departure.
// Returns 0 when departure is not after arrival's calendar day.
func NightsBetween(arrival, departure time.Time) int {
	days := StartOfDay(departure).Sub(StartOfDay(arrival)).Hours() / 24
	if days < 0 {
		return 0
	}
	return int(days)
}
