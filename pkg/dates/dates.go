// Package dates converts between the calendar dates shown to operators and the
// timestamps exchanged with the backend.
//
// Naive YYYY-MM-DD values are anchored at midnight UTC in both directions, so a
// round trip never shifts the day regardless of the server's local zone.
package dates

import (
	"regexp"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

const (
	// DisplayLayout is the calendar form used by forms and pages.
	DisplayLayout = "2006-01-02"
	// BackendLayout is the timestamp form sent upstream.
	BackendLayout = time.RFC3339
)

var calendarDate = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

var now = time.Now

// IsCalendarDate reports whether s is a syntactically valid YYYY-MM-DD value
// naming a real day.
func IsCalendarDate(s string) bool {
	if !calendarDate.MatchString(s) {
		return false
	}
	_, err := time.Parse(DisplayLayout, s)
	return err == nil
}

// ToDisplayDate renders s as YYYY-MM-DD. Calendar dates are returned unchanged,
// timestamps are reduced to their UTC calendar fields and anything unparseable
// is returned as is.
func ToDisplayDate(s string) string {
	s = strings.TrimSpace(s)
	if s == "" || calendarDate.MatchString(s) {
		return s
	}
	t, err := dateparse.ParseIn(s, time.UTC)
	if err != nil {
		return s
	}
	return t.UTC().Format(DisplayLayout)
}

// ToBackendDate renders s as an RFC 3339 timestamp for the backend. An empty
// value means "now", values that already carry a time component pass through.
func ToBackendDate(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return now().UTC().Format(BackendLayout)
	}
	if strings.Contains(s, "T") {
		return s
	}
	if t, err := time.ParseInLocation(DisplayLayout, s, time.UTC); err == nil {
		return t.Format(BackendLayout)
	}
	if t, err := dateparse.ParseIn(s, time.UTC); err == nil {
		return t.UTC().Format(BackendLayout)
	}
	return s
}

// Today returns the current UTC calendar date.
func Today() string {
	return now().UTC().Format(DisplayLayout)
}
