package calendar

import "time"

// Weekdays returns the default business-day set, Monday through Friday.
func Weekdays() map[time.Weekday]bool {
	return map[time.Weekday]bool{
		time.Monday:    true,
		time.Tuesday:   true,
		time.Wednesday: true,
		time.Thursday:  true,
		time.Friday:    true,
	}
}

// BusinessWindows emits one free window per business day in the
// inclusive range [rangeStart, rangeEnd], spanning dayStartHour to
// dayEndHour o'clock. Days outside the weekday set produce no window
// at all, not a zero-length one. An inverted range yields nothing.
func BusinessWindows(rangeStart, rangeEnd time.Time, dayStartHour, dayEndHour int, weekdays map[time.Weekday]bool) []Interval {
	var windows []Interval
	for day := rangeStart; !day.After(rangeEnd); day = day.AddDate(0, 0, 1) {
		if !weekdays[day.Weekday()] {
			continue
		}
		windows = append(windows, Interval{
			Start: time.Date(day.Year(), day.Month(), day.Day(), dayStartHour, 0, 0, 0, day.Location()),
			End:   time.Date(day.Year(), day.Month(), day.Day(), dayEndHour, 0, 0, 0, day.Location()),
		})
	}
	return windows
}
