package rank

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// day anchors the interval tests at a fixed date so clock-time literals stay
// readable.
var day = time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)

func at(hour, minute int) time.Time {
	return day.Add(time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute)
}

func TestFutureIntervals(t *testing.T) {
	now := at(8, 0)
	horizonEnd := now.Add(24 * time.Hour)

	testCases := []struct {
		name     string
		input    []Interval
		expected []Interval
	}{
		{
			name:     "empty input yields empty output",
			input:    nil,
			expected: nil,
		},
		{
			name: "overlapping intervals merge",
			input: []Interval{
				{Start: at(9, 0), End: at(10, 0)},
				{Start: at(9, 30), End: at(11, 0)},
				{Start: at(13, 0), End: at(14, 0)},
			},
			expected: []Interval{
				{Start: at(9, 0), End: at(11, 0)},
				{Start: at(13, 0), End: at(14, 0)},
			},
		},
		{
			name: "touching intervals merge",
			input: []Interval{
				{Start: at(9, 0), End: at(10, 0)},
				{Start: at(10, 0), End: at(11, 0)},
			},
			expected: []Interval{
				{Start: at(9, 0), End: at(11, 0)},
			},
		},
		{
			name: "unsorted input is sorted before merging",
			input: []Interval{
				{Start: at(13, 0), End: at(14, 0)},
				{Start: at(9, 0), End: at(10, 0)},
			},
			expected: []Interval{
				{Start: at(9, 0), End: at(10, 0)},
				{Start: at(13, 0), End: at(14, 0)},
			},
		},
		{
			name: "interval straddling now is clipped",
			input: []Interval{
				{Start: at(7, 0), End: at(9, 0)},
			},
			expected: []Interval{
				{Start: at(8, 0), End: at(9, 0)},
			},
		},
		{
			name: "interval past the horizon is clipped",
			input: []Interval{
				{Start: horizonEnd.Add(-time.Hour), End: horizonEnd.Add(2 * time.Hour)},
			},
			expected: []Interval{
				{Start: horizonEnd.Add(-time.Hour), End: horizonEnd},
			},
		},
		{
			name: "interval entirely in the past is dropped",
			input: []Interval{
				{Start: at(5, 0), End: at(6, 0)},
				{Start: at(9, 0), End: at(10, 0)},
			},
			expected: []Interval{
				{Start: at(9, 0), End: at(10, 0)},
			},
		},
		{
			name: "interval that is empty after clipping is dropped",
			input: []Interval{
				{Start: horizonEnd, End: horizonEnd.Add(time.Hour)},
			},
			expected: nil,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, FutureIntervals(tc.input, now, horizonEnd))
		})
	}
}

func TestFutureIntervals_Idempotent(t *testing.T) {
	now := at(8, 0)
	horizonEnd := now.Add(24 * time.Hour)

	input := []Interval{
		{Start: at(9, 0), End: at(10, 0)},
		{Start: at(9, 45), End: at(11, 0)},
		{Start: at(15, 0), End: at(16, 0)},
	}

	once := FutureIntervals(input, now, horizonEnd)
	twice := FutureIntervals(once, now, horizonEnd)
	assert.Equal(t, once, twice, "merging an already-merged sequence must not change it")
}

func TestFutureIntervals_DoesNotMutateInput(t *testing.T) {
	now := at(8, 0)
	horizonEnd := now.Add(24 * time.Hour)

	input := []Interval{
		{Start: at(13, 0), End: at(14, 0)},
		{Start: at(9, 0), End: at(10, 0)},
	}
	FutureIntervals(input, now, horizonEnd)

	assert.Equal(t, at(13, 0), input[0].Start, "caller's slice order must be preserved")
}
