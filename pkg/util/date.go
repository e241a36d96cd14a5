package util

import "time"

// Day-first layouts accepted in uploads, tried in order. "03/04/2024" parses
// as April 3rd, never March 4th.
var dayFirstLayouts = []string{
	"02/01/2006",
	"2/1/2006",
	"02-01-2006",
	"2-1-2006",
	"02/01/06",
	"2006-01-02",
}

// ParseDayFirst parses a date string with day-before-month precedence.
// ISO dates (2006-01-02) are unambiguous and also accepted.
// Returns (t, true) if any layout matched.
func ParseDayFirst(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dayFirstLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Day truncates t to midnight UTC, the calendar-day key used for grouping.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// DayString formats a calendar day as 2006-01-02.
func DayString(t time.Time) string {
	return t.Format("2006-01-02")
}
