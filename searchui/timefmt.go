package searchui

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// InvalidDate is what FormatRelative shows for a timestamp it cannot parse.
const InvalidDate = "Invalid Date"

// absoluteLayout is the en-IE short form: day, abbreviated month, 24h time.
const absoluteLayout = "2 Jan, 15:04"

// Accepted timestamp layouts. Date-times without a zone are read in the
// caller's location, the way a browser reads a zone-less ISO string.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999",
}

// A bare date is UTC midnight, as in a browser.
const dateOnlyLayout = "2006-01-02"

// DefaultLocation is used for zone-less timestamps and absolute dates.
func DefaultLocation() *time.Location {
	loc, err := time.LoadLocation("Europe/Dublin")
	if err != nil {
		return time.UTC
	}
	return loc
}

// ParseTimestamp reads the backend's last_updated value.
func ParseTimestamp(value string, loc *time.Location) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}
	if loc == nil {
		loc = time.UTC
	}
	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, value, loc); err == nil {
			return t, true
		}
	}
	if t, err := time.Parse(dateOnlyLayout, value); err == nil {
		return t, true
	}
	return time.Time{}, false
}

// FormatRelative humanizes how long ago ts was relative to now.
// Under a minute is "Just now", under an hour counts minutes, under a day
// counts hours, anything older is an absolute date in loc.
func FormatRelative(ts, now time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}

	diff := now.Sub(ts)
	mins := int64(math.Floor(float64(diff) / float64(time.Minute)))
	hours := int64(math.Floor(float64(mins) / 60))

	switch {
	case mins < 1:
		return "Just now"
	case mins < 60:
		return fmt.Sprintf("%d min%s ago", mins, plural(mins))
	case hours < 24:
		return fmt.Sprintf("%d hour%s ago", hours, plural(hours))
	}
	return ts.In(loc).Format(absoluteLayout)
}

// FormatTimestamp parses value and humanizes it. See FormatRelative.
func FormatTimestamp(value string, now time.Time, loc *time.Location) string {
	ts, ok := ParseTimestamp(value, loc)
	if !ok {
		return InvalidDate
	}
	return FormatRelative(ts, now, loc)
}

func plural(n int64) string {
	if n > 1 {
		return "s"
	}
	return ""
}
