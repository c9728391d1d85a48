package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDateTime(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected time.Time
	}{
		{
			name:     "full datetime without offset",
			input:    "2026-03-02T14:30:00",
			expected: time.Date(2026, 3, 2, 14, 30, 0, 0, time.UTC),
		},
		{
			name:     "rfc3339 offset is stripped to wall clock",
			input:    "2026-03-02T14:30:00+02:00",
			expected: time.Date(2026, 3, 2, 14, 30, 0, 0, time.UTC),
		},
		{
			name:     "zulu suffix",
			input:    "2026-03-02T14:30:00Z",
			expected: time.Date(2026, 3, 2, 14, 30, 0, 0, time.UTC),
		},
		{
			name:     "minute precision",
			input:    "2026-03-02T14:30",
			expected: time.Date(2026, 3, 2, 14, 30, 0, 0, time.UTC),
		},
		{
			name:     "space separated",
			input:    "2026-03-02 14:30",
			expected: time.Date(2026, 3, 2, 14, 30, 0, 0, time.UTC),
		},
		{
			name:     "bare date",
			input:    "2026-03-02",
			expected: time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
		},
		{
			name:     "surrounding whitespace tolerated",
			input:    "  2026-03-02T14:30:00  ",
			expected: time.Date(2026, 3, 2, 14, 30, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDateTime(tt.input)
			require.NoError(t, err)
			assert.True(t, tt.expected.Equal(got), "got %v, want %v", got, tt.expected)
		})
	}
}

func TestParseDateTimeRejectsGarbage(t *testing.T) {
	for _, input := range []string{"", "tomorrow", "03/02/2026", "2026-13-40T99:99:99"} {
		_, err := ParseDateTime(input)
		assert.Error(t, err, "input %q", input)
	}
}

func TestParseDateTruncatesToMidnight(t *testing.T) {
	got, err := ParseDate("2026-03-02T14:30:00")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC), got)
}

func TestFormatDisplay(t *testing.T) {
	assert.Equal(t, "Mon Mar 02 2:00 PM", FormatDisplay(time.Date(2026, 3, 2, 14, 0, 0, 0, time.UTC)))
	assert.Equal(t, "Fri Mar 06 9:30 AM", FormatDisplay(time.Date(2026, 3, 6, 9, 30, 0, 0, time.UTC)))
}

func TestFormatISO(t *testing.T) {
	assert.Equal(t, "2026-03-02T09:00:00", FormatISO(time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)))
}
