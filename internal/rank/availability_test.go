package rank

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestArrival(t *testing.T) {
	now := at(8, 0)

	assert.Equal(t, now, Arrival(now, 0), "zero travel time means arrival now")
	assert.Equal(t, at(8, 20), Arrival(now, 1200))
}

func TestEvaluate(t *testing.T) {
	now := at(8, 0)
	horizonEnd := now.Add(24 * time.Hour)

	testCases := []struct {
		name        string
		intervals   []Interval
		arrival     time.Time
		fullyBooked bool
		waitHours   float64
		gapHours    float64
	}{
		{
			name:      "no intervals, free until horizon end",
			intervals: nil,
			arrival:   at(8, 0),
			gapHours:  24,
		},
		{
			name:      "free with a gap until the next booking",
			intervals: []Interval{{Start: at(10, 0), End: at(11, 0)}},
			arrival:   at(8, 0),
			gapHours:  2,
		},
		{
			name: "free between two bookings",
			intervals: []Interval{
				{Start: at(8, 0), End: at(9, 0)},
				{Start: at(11, 0), End: at(12, 0)},
			},
			arrival:  at(9, 30),
			gapHours: 1.5,
		},
		{
			name:        "busy at arrival, waits for release",
			intervals:   []Interval{{Start: at(8, 0), End: at(9, 30)}},
			arrival:     at(8, 20),
			fullyBooked: true,
			waitHours:   70.0 / 60.0,
		},
		{
			name:        "arrival exactly at a booking start is busy",
			intervals:   []Interval{{Start: at(10, 0), End: at(11, 0)}},
			arrival:     at(10, 0),
			fullyBooked: true,
			waitHours:   1,
		},
		{
			name:      "arrival exactly at a booking end is free",
			intervals: []Interval{{Start: at(9, 0), End: at(10, 0)}},
			arrival:   at(10, 0),
			gapHours:  22,
		},
		{
			name:      "arrival past horizon end floors the gap at zero",
			intervals: nil,
			arrival:   horizonEnd.Add(time.Hour),
			gapHours:  0,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			avail := Evaluate(tc.intervals, tc.arrival, now, horizonEnd)

			assert.Equal(t, tc.fullyBooked, avail.FullyBooked)
			assert.InDelta(t, tc.waitHours, avail.WaitHours, 1e-9)
			assert.InDelta(t, tc.gapHours, avail.FreeGapHours, 1e-9)
		})
	}
}

// Exactly one of wait and gap may be non-zero for any evaluation.
func TestEvaluate_ExactlyOneNonZero(t *testing.T) {
	now := at(8, 0)
	horizonEnd := now.Add(24 * time.Hour)

	intervals := []Interval{
		{Start: at(9, 0), End: at(10, 0)},
		{Start: at(12, 0), End: at(14, 30)},
	}

	for arrival := now; arrival.Before(horizonEnd); arrival = arrival.Add(17 * time.Minute) {
		avail := Evaluate(intervals, arrival, now, horizonEnd)
		if avail.WaitHours > 0 {
			assert.Zero(t, avail.FreeGapHours, "arrival %v: wait and gap are mutually exclusive", arrival)
		}
		if avail.FreeGapHours > 0 {
			assert.Zero(t, avail.WaitHours, "arrival %v: wait and gap are mutually exclusive", arrival)
		}
	}
}
