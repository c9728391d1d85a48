package calendar

import (
	"fmt"
	"io"
	"strings"
	"time"

	"huddle/models"
	"huddle/utils"

	"github.com/emersion/go-ical"
	"go.uber.org/zap"
)

// Raw iCalendar datetime layouts tried when the property decoder
// rejects a value, e.g. exports that omit the VTIMEZONE block.
var icsLayouts = []string{
	"20060102T150405",
	"20060102T150405Z",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"20060102",
}

// BusyTimesFromICS extracts busy intervals from raw iCalendar data so
// a member can sync an exported calendar file instead of answering
// through a relay agent. Cancelled events and events missing either
// timestamp are skipped; times are normalized to naive wall clock.
func BusyTimesFromICS(data string) ([]models.BusyInterval, error) {
	if !strings.HasPrefix(strings.TrimSpace(data), "BEGIN:VCALENDAR") {
		return nil, fmt.Errorf("not an iCalendar payload")
	}

	logger := utils.GetLogger()
	decoder := ical.NewDecoder(strings.NewReader(data))
	var busy []models.BusyInterval

	for {
		cal, err := decoder.Decode()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("decode calendar: %w", err)
		}

		for _, comp := range cal.Children {
			if comp.Name != ical.CompEvent {
				continue
			}
			if status := comp.Props.Get(ical.PropStatus); status != nil && status.Value == "CANCELLED" {
				continue
			}

			start, err := eventTime(comp, ical.PropDateTimeStart)
			if err != nil {
				logger.Warn("skipping event with bad start", zap.Error(err))
				continue
			}
			end, err := eventTime(comp, ical.PropDateTimeEnd)
			if err != nil {
				logger.Warn("skipping event with bad end", zap.Error(err))
				continue
			}
			if start.IsZero() || end.IsZero() || !end.After(start) {
				continue
			}

			busy = append(busy, models.BusyInterval{
				Start: FormatISO(start),
				End:   FormatISO(end),
			})
		}
	}
	return busy, nil
}

// eventTime reads a datetime property, falling back to raw layouts
// when the standard accessor rejects the value. A missing property
// yields the zero time, which callers treat as "skip this event".
func eventTime(comp *ical.Component, name string) (time.Time, error) {
	prop := comp.Props.Get(name)
	if prop == nil {
		return time.Time{}, nil
	}
	if t, err := prop.DateTime(time.UTC); err == nil {
		return stripZone(t), nil
	}
	for _, layout := range icsLayouts {
		if t, err := time.ParseInLocation(layout, prop.Value, time.UTC); err == nil {
			return stripZone(t), nil
		}
	}
	return time.Time{}, fmt.Errorf("unable to parse %s value %q", name, prop.Value)
}
