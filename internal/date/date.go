// Package date parses due dates and formats timestamps the way taskdeck
// persists and displays them.
package date

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ISOFormat is the persisted timestamp layout (ISO-8601, UTC, nanoseconds).
const ISOFormat = time.RFC3339Nano

// LongFormat renders due dates for people, e.g. "March 5, 2026 at 02:30 PM".
const LongFormat = "January 2, 2006 at 03:04 PM"

// inputLayouts are tried in order when parsing user-supplied due dates.
var inputLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

// Parse parses a due date. Full timestamps keep their zone; layouts
// without a zone are read in local time, as a browser date input would be.
func Parse(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("invalid date %q: empty", s)
	}
	for _, layout := range inputLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD, YYYY-MM-DDTHH:MM or RFC 3339", s)
}

// ISO formats t for persistence.
func ISO(t time.Time) string {
	return t.UTC().Format(ISOFormat)
}

// ParseISO parses a persisted timestamp.
func ParseISO(s string) (time.Time, error) {
	t, err := time.Parse(ISOFormat, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timestamp %q: %w", s, err)
	}
	return t, nil
}

// Long formats t in local time with LongFormat.
func Long(t time.Time) string {
	return t.Local().Format(LongFormat)
}

// Remaining renders a positive duration bucketed by days and hours:
// "3 days 4 hours" or "5 hours".
func Remaining(d time.Duration) string {
	const hoursPerDay = 24
	totalHours := int(d / time.Hour)
	days := totalHours / hoursPerDay
	hours := totalHours % hoursPerDay
	if days > 0 {
		return strconv.Itoa(days) + " days " + strconv.Itoa(hours) + " hours"
	}
	return strconv.Itoa(hours) + " hours"
}

// Tick returns the current time, nudged forward when the clock has not
// advanced past prev so successive modification stamps strictly increase.
func Tick(prev time.Time) time.Time {
	now := time.Now()
	if !now.After(prev) {
		return prev.Add(time.Nanosecond)
	}
	return now
}
