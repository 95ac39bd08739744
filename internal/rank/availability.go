package rank

import "time"

// Arrival projects the arrival instant from a travel duration in seconds.
// A duration of zero is valid and means arrival right now.
func Arrival(now time.Time, travelSeconds int) time.Time {
	return now.Add(time.Duration(travelSeconds) * time.Second)
}

// Availability describes a single charger at the projected arrival instant.
// Exactly one of WaitHours and FreeGapHours is non-zero: a charger is either
// busy with a bounded wait or free with a bounded window, never both.
type Availability struct {
	FullyBooked  bool
	WaitHours    float64
	FreeGapHours float64
}

// Evaluate determines a charger's availability at arrival. The intervals must
// be the output of FutureIntervals for the same now/horizonEnd pair.
//
// A charger with no intervals is free until the horizon end (floored at 0 if
// arrival already lies past it).
func Evaluate(intervals []Interval, arrival, now, horizonEnd time.Time) Availability {
	if inside, release := earliestRelease(intervals, arrival); inside {
		// No containing end should be missing for merged intervals, but if it
		// is, assume the charger stays busy for the whole horizon.
		wait := horizonEnd.Sub(now).Hours()
		if !release.IsZero() {
			wait = release.Sub(arrival).Hours()
		}
		if wait < 0 {
			wait = 0
		}
		return Availability{FullyBooked: true, WaitHours: wait}
	}

	gap := horizonEnd.Sub(arrival).Hours()
	if next, ok := nextStart(intervals, arrival); ok {
		gap = next.Sub(arrival).Hours()
	}
	if gap < 0 {
		gap = 0
	}
	return Availability{FreeGapHours: gap}
}

// earliestRelease reports whether arrival falls inside any interval, and if
// so, the earliest end among the containing intervals.
func earliestRelease(intervals []Interval, arrival time.Time) (bool, time.Time) {
	inside := false
	var release time.Time
	for _, iv := range intervals {
		if !iv.Contains(arrival) {
			continue
		}
		inside = true
		if release.IsZero() || iv.End.Before(release) {
			release = iv.End
		}
	}
	return inside, release
}

// nextStart returns the start of the first interval strictly after arrival.
func nextStart(intervals []Interval, arrival time.Time) (time.Time, bool) {
	for _, iv := range intervals {
		if iv.Start.After(arrival) {
			return iv.Start, true
		}
	}
	return time.Time{}, false
}
