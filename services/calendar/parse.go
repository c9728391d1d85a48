package calendar

import (
	"fmt"
	"strings"
	"time"
)

// Accepted datetime layouts, tried in order. Offsets are tolerated on
// input but stripped: all comparisons happen on wall-clock values in a
// single zone, and zone discipline belongs to the caller.
var datetimeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"2006-01-02",
}

// ParseDateTime parses a datetime string in any accepted layout and
// normalizes it to a naive wall-clock time.
func ParseDateTime(s string) (time.Time, error) {
	v := strings.TrimSpace(s)
	for _, layout := range datetimeLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return stripZone(t), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized datetime %q", s)
}

// ParseDate parses a "2006-01-02" date, tolerating a full datetime by
// truncating it to midnight.
func ParseDate(s string) (time.Time, error) {
	t, err := ParseDateTime(s)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
}

// stripZone drops the offset and keeps the wall-clock reading.
func stripZone(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), 0, time.UTC)
}

// FormatISO renders a time the way reports and slot payloads carry it,
// ISO 8601 with no offset.
func FormatISO(t time.Time) string {
	return t.Format("2006-01-02T15:04:05")
}

// FormatDisplay renders a time for humans, e.g. "Mon Mar 02 2:00 PM".
func FormatDisplay(t time.Time) string {
	return t.Format("Mon Jan 02 3:04 PM")
}
