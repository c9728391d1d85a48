package calendar

import (
	"sort"
	"time"
)

// Interval is a half-open time range [Start, End).
type Interval struct {
	Start time.Time
	End   time.Time
}

// Duration returns the interval length.
func (iv Interval) Duration() time.Duration {
	return iv.End.Sub(iv.Start)
}

// MergeIntervals collapses overlapping or touching intervals into a
// sorted, non-overlapping set. Touching counts: [9,10) and [10,11)
// merge into [9,11). The input slice is not modified.
func MergeIntervals(intervals []Interval) []Interval {
	if len(intervals) == 0 {
		return nil
	}
	sorted := make([]Interval, len(intervals))
	copy(sorted, intervals)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Start.Before(sorted[j].Start)
	})

	merged := []Interval{sorted[0]}
	for _, iv := range sorted[1:] {
		last := &merged[len(merged)-1]
		if !iv.Start.After(last.End) {
			if iv.End.After(last.End) {
				last.End = iv.End
			}
			continue
		}
		merged = append(merged, iv)
	}
	return merged
}

// SubtractIntervals removes busy time from the free windows and
// returns the remaining fragments in chronological order. Free
// windows must be sorted and non-overlapping, which is what
// BusinessWindows produces; busy intervals may be in any order.
func SubtractIntervals(free, busy []Interval) []Interval {
	busySorted := make([]Interval, len(busy))
	copy(busySorted, busy)
	sort.Slice(busySorted, func(i, j int) bool {
		return busySorted[i].Start.Before(busySorted[j].Start)
	})

	var result []Interval
	idx := 0
	for _, w := range free {
		current := w.Start

		for idx < len(busySorted) && !busySorted[idx].End.After(current) {
			idx++
		}

		for bi := idx; bi < len(busySorted) && busySorted[bi].Start.Before(w.End); bi++ {
			b := busySorted[bi]
			if b.Start.After(current) {
				gapEnd := b.Start
				if w.End.Before(gapEnd) {
					gapEnd = w.End
				}
				result = append(result, Interval{Start: current, End: gapEnd})
			}
			if b.End.After(current) {
				current = b.End
			}
		}

		if current.Before(w.End) {
			result = append(result, Interval{Start: current, End: w.End})
		}
	}
	return result
}

// FilterByDuration drops fragments shorter than the minimum,
// preserving order.
func FilterByDuration(windows []Interval, minDuration time.Duration) []Interval {
	var kept []Interval
	for _, w := range windows {
		if w.Duration() >= minDuration {
			kept = append(kept, w)
		}
	}
	return kept
}
