package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// dt builds a naive wall-clock time on the given March 2026 day.
// March 2: Monday ... March 6: Friday, March 7/8: weekend.
func dt(day, hour, min int) time.Time {
	return time.Date(2026, time.March, day, hour, min, 0, 0, time.UTC)
}

func iv(startDay, startHour, startMin, endDay, endHour, endMin int) Interval {
	return Interval{Start: dt(startDay, startHour, startMin), End: dt(endDay, endHour, endMin)}
}

func TestMergeIntervals(t *testing.T) {
	tests := []struct {
		name     string
		input    []Interval
		expected []Interval
	}{
		{
			name:     "empty input",
			input:    nil,
			expected: nil,
		},
		{
			name:     "single interval unchanged",
			input:    []Interval{iv(2, 9, 0, 2, 10, 0)},
			expected: []Interval{iv(2, 9, 0, 2, 10, 0)},
		},
		{
			name: "overlapping intervals merge",
			input: []Interval{
				iv(2, 9, 0, 2, 11, 0),
				iv(2, 10, 0, 2, 12, 0),
			},
			expected: []Interval{iv(2, 9, 0, 2, 12, 0)},
		},
		{
			name: "touching intervals merge",
			input: []Interval{
				iv(2, 9, 0, 2, 10, 0),
				iv(2, 10, 0, 2, 11, 0),
			},
			expected: []Interval{iv(2, 9, 0, 2, 11, 0)},
		},
		{
			name: "disjoint intervals stay separate",
			input: []Interval{
				iv(2, 9, 0, 2, 10, 0),
				iv(2, 14, 0, 2, 15, 0),
			},
			expected: []Interval{
				iv(2, 9, 0, 2, 10, 0),
				iv(2, 14, 0, 2, 15, 0),
			},
		},
		{
			name: "unsorted input gets sorted",
			input: []Interval{
				iv(3, 9, 0, 3, 10, 0),
				iv(2, 9, 0, 2, 10, 0),
			},
			expected: []Interval{
				iv(2, 9, 0, 2, 10, 0),
				iv(3, 9, 0, 3, 10, 0),
			},
		},
		{
			name: "contained interval is absorbed",
			input: []Interval{
				iv(2, 9, 0, 2, 17, 0),
				iv(2, 11, 0, 2, 12, 0),
			},
			expected: []Interval{iv(2, 9, 0, 2, 17, 0)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MergeIntervals(tt.input)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestMergeIntervalsIdempotent(t *testing.T) {
	input := []Interval{
		iv(2, 9, 0, 2, 11, 0),
		iv(2, 10, 30, 2, 12, 0),
		iv(3, 14, 0, 3, 15, 0),
		iv(2, 12, 0, 2, 13, 0),
	}
	once := MergeIntervals(input)
	twice := MergeIntervals(once)
	assert.Equal(t, once, twice)
}

func TestMergeIntervalsDoesNotMutateInput(t *testing.T) {
	input := []Interval{
		iv(3, 9, 0, 3, 10, 0),
		iv(2, 9, 0, 2, 10, 0),
	}
	MergeIntervals(input)
	assert.Equal(t, dt(3, 9, 0), input[0].Start)
}

func TestSubtractIntervals(t *testing.T) {
	workday := iv(2, 9, 0, 2, 18, 0)

	tests := []struct {
		name     string
		free     []Interval
		busy     []Interval
		expected []Interval
	}{
		{
			name:     "no busy leaves window whole",
			free:     []Interval{workday},
			busy:     nil,
			expected: []Interval{workday},
		},
		{
			name:     "busy in the middle splits the window",
			free:     []Interval{workday},
			busy:     []Interval{iv(2, 12, 0, 2, 13, 0)},
			expected: []Interval{iv(2, 9, 0, 2, 12, 0), iv(2, 13, 0, 2, 18, 0)},
		},
		{
			name:     "busy equal to window consumes it",
			free:     []Interval{workday},
			busy:     []Interval{workday},
			expected: nil,
		},
		{
			name:     "busy touching window end leaves it untouched",
			free:     []Interval{iv(2, 9, 0, 2, 12, 0)},
			busy:     []Interval{iv(2, 12, 0, 2, 13, 0)},
			expected: []Interval{iv(2, 9, 0, 2, 12, 0)},
		},
		{
			name:     "busy ending at window start leaves it untouched",
			free:     []Interval{iv(2, 13, 0, 2, 18, 0)},
			busy:     []Interval{iv(2, 12, 0, 2, 13, 0)},
			expected: []Interval{iv(2, 13, 0, 2, 18, 0)},
		},
		{
			name:     "busy overlapping window start clips the head",
			free:     []Interval{workday},
			busy:     []Interval{iv(2, 8, 0, 2, 10, 30)},
			expected: []Interval{iv(2, 10, 30, 2, 18, 0)},
		},
		{
			name:     "busy overlapping window end clips the tail",
			free:     []Interval{workday},
			busy:     []Interval{iv(2, 16, 0, 2, 19, 0)},
			expected: []Interval{iv(2, 9, 0, 2, 16, 0)},
		},
		{
			name: "busy spanning two windows consumes across days",
			free: []Interval{iv(2, 9, 0, 2, 18, 0), iv(3, 9, 0, 3, 18, 0)},
			busy: []Interval{iv(2, 15, 0, 3, 11, 0)},
			expected: []Interval{
				iv(2, 9, 0, 2, 15, 0),
				iv(3, 11, 0, 3, 18, 0),
			},
		},
		{
			name: "multiple busy blocks fragment the window",
			free: []Interval{workday},
			busy: []Interval{
				iv(2, 10, 0, 2, 11, 0),
				iv(2, 14, 0, 2, 15, 30),
			},
			expected: []Interval{
				iv(2, 9, 0, 2, 10, 0),
				iv(2, 11, 0, 2, 14, 0),
				iv(2, 15, 30, 2, 18, 0),
			},
		},
		{
			name:     "unsorted busy is handled",
			free:     []Interval{workday},
			busy:     []Interval{iv(2, 14, 0, 2, 15, 0), iv(2, 10, 0, 2, 11, 0)},
			expected: []Interval{iv(2, 9, 0, 2, 10, 0), iv(2, 11, 0, 2, 14, 0), iv(2, 15, 0, 2, 18, 0)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SubtractIntervals(tt.free, tt.busy)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestSubtractIntervalsOutputAvoidsBusy(t *testing.T) {
	free := []Interval{iv(2, 9, 0, 2, 18, 0), iv(3, 9, 0, 3, 18, 0)}
	busy := []Interval{
		iv(2, 9, 30, 2, 10, 15),
		iv(2, 10, 0, 2, 12, 0),
		iv(3, 17, 0, 3, 18, 0),
	}
	got := SubtractIntervals(free, MergeIntervals(busy))
	for _, w := range got {
		for _, b := range busy {
			overlap := w.Start.Before(b.End) && b.Start.Before(w.End)
			assert.False(t, overlap, "fragment %v overlaps busy %v", w, b)
		}
	}
}

func TestFilterByDuration(t *testing.T) {
	windows := []Interval{
		iv(2, 9, 0, 2, 9, 20),   // 20 minutes
		iv(2, 10, 0, 2, 10, 45), // 45 minutes
		iv(2, 11, 0, 2, 11, 30), // exactly 30 minutes
	}
	got := FilterByDuration(windows, 30*time.Minute)
	assert.Equal(t, []Interval{
		iv(2, 10, 0, 2, 10, 45),
		iv(2, 11, 0, 2, 11, 30),
	}, got)
}

func TestBusinessWindows(t *testing.T) {
	t.Run("inclusive range emits one window per weekday", func(t *testing.T) {
		// Monday through Friday.
		got := BusinessWindows(dt(2, 0, 0), dt(6, 0, 0), 9, 18, Weekdays())
		assert.Len(t, got, 5)
		assert.Equal(t, dt(2, 9, 0), got[0].Start)
		assert.Equal(t, dt(2, 18, 0), got[0].End)
		assert.Equal(t, dt(6, 9, 0), got[4].Start)
	})

	t.Run("weekend days are absent, not empty", func(t *testing.T) {
		// Friday through Sunday: only Friday gets a window.
		got := BusinessWindows(dt(6, 0, 0), dt(8, 0, 0), 9, 18, Weekdays())
		assert.Len(t, got, 1)
		assert.Equal(t, time.Friday, got[0].Start.Weekday())
	})

	t.Run("weekend-only range yields nothing", func(t *testing.T) {
		got := BusinessWindows(dt(7, 0, 0), dt(8, 0, 0), 9, 18, Weekdays())
		assert.Empty(t, got)
	})

	t.Run("inverted range yields nothing", func(t *testing.T) {
		got := BusinessWindows(dt(6, 0, 0), dt(2, 0, 0), 9, 18, Weekdays())
		assert.Empty(t, got)
	})

	t.Run("custom hours are respected", func(t *testing.T) {
		got := BusinessWindows(dt(2, 0, 0), dt(2, 0, 0), 8, 17, Weekdays())
		assert.Equal(t, []Interval{iv(2, 8, 0, 2, 17, 0)}, got)
	})
}
