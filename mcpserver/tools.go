// File: mcpserver/tools.go
package mcpserver

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"huddle/models"
)

func stringArg(args map[string]interface{}, name string) string {
	v, _ := args[name].(string)
	return v
}

// intArg reads a numeric argument; JSON numbers arrive as float64.
func intArg(args map[string]interface{}, name string, def int) int {
	if v, ok := args[name].(float64); ok && v > 0 {
		return int(v)
	}
	return def
}

// busyTimesArg accepts both a real array and a JSON-encoded string,
// since agent runtimes vary in how they pass structured arguments.
func busyTimesArg(args map[string]interface{}) ([]models.BusyInterval, error) {
	raw, ok := args["busy_times"]
	if !ok || raw == nil {
		return []models.BusyInterval{}, nil
	}
	switch v := raw.(type) {
	case string:
		if strings.TrimSpace(v) == "" {
			return []models.BusyInterval{}, nil
		}
		var busy []models.BusyInterval
		if err := json.Unmarshal([]byte(v), &busy); err != nil {
			return nil, fmt.Errorf("busy_times is not valid JSON: %w", err)
		}
		return busy, nil
	case []interface{}:
		busy := make([]models.BusyInterval, 0, len(v))
		for _, item := range v {
			m, ok := item.(map[string]interface{})
			if !ok {
				return nil, fmt.Errorf("busy_times entries must be objects with start and end")
			}
			start, _ := m["start"].(string)
			end, _ := m["end"].(string)
			busy = append(busy, models.BusyInterval{Start: start, End: end})
		}
		return busy, nil
	default:
		return nil, fmt.Errorf("busy_times must be an array of {start, end} objects")
	}
}

// nextWorkWeek returns the next full Monday through Friday after now,
// as YYYY-MM-DD strings. Used when a tool omits the date range.
func nextWorkWeek(now time.Time) (string, string) {
	daysUntilMonday := (int(time.Monday) - int(now.Weekday()) + 7) % 7
	if daysUntilMonday == 0 {
		daysUntilMonday = 7
	}
	start := now.AddDate(0, 0, daysUntilMonday)
	end := start.AddDate(0, 0, 4)
	return start.Format("2006-01-02"), end.Format("2006-01-02")
}

// truncateRunes caps s at n runes for compact listings.
func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
