package calendar

import (
	"fmt"
	"time"

	"huddle/models"
	"huddle/utils"

	"go.uber.org/zap"
)

// FindFreeSlots computes the windows in which every reporting member
// is free: business-hour windows over the date range, minus the union
// of all members' busy intervals, filtered to the minimum duration.
// Busy entries that fail to parse or are inverted are dropped with a
// warning; they never abort the computation. A range containing no
// business day yields an empty slice.
func FindFreeSlots(allBusy [][]models.BusyInterval, durationMinutes int, startDate, endDate string, dayStartHour, dayEndHour int) ([]models.FreeSlot, error) {
	rangeStart, err := ParseDate(startDate)
	if err != nil {
		return nil, fmt.Errorf("invalid start date: %w", err)
	}
	rangeEnd, err := ParseDate(endDate)
	if err != nil {
		return nil, fmt.Errorf("invalid end date: %w", err)
	}

	windows := BusinessWindows(rangeStart, rangeEnd, dayStartHour, dayEndHour, Weekdays())
	if len(windows) == 0 {
		return []models.FreeSlot{}, nil
	}

	available := SubtractIntervals(windows, MergeIntervals(CollectBusy(allBusy)))

	minDuration := time.Duration(durationMinutes) * time.Minute
	slots := make([]models.FreeSlot, 0)
	for _, w := range FilterByDuration(available, minDuration) {
		slots = append(slots, models.FreeSlot{
			Start:           FormatISO(w.Start),
			End:             FormatISO(w.End),
			Display:         fmt.Sprintf("%s - %s", FormatDisplay(w.Start), FormatDisplay(w.End)),
			DurationMinutes: int(w.Duration().Minutes()),
		})
	}
	return slots, nil
}

// CollectBusy parses every member's raw busy intervals into engine
// intervals. Entries with an unparseable timestamp or with start at
// or after end are skipped with a warning.
func CollectBusy(allBusy [][]models.BusyInterval) []Interval {
	logger := utils.GetLogger()
	var out []Interval
	for _, memberBusy := range allBusy {
		for _, raw := range memberBusy {
			start, err := ParseDateTime(raw.Start)
			if err != nil {
				logger.Warn("skipping busy interval with bad start", zap.String("start", raw.Start), zap.Error(err))
				continue
			}
			end, err := ParseDateTime(raw.End)
			if err != nil {
				logger.Warn("skipping busy interval with bad end", zap.String("end", raw.End), zap.Error(err))
				continue
			}
			if !end.After(start) {
				logger.Warn("skipping inverted busy interval", zap.String("start", raw.Start), zap.String("end", raw.End))
				continue
			}
			out = append(out, Interval{Start: start, End: end})
		}
	}
	return out
}
