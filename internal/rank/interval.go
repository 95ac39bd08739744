package rank

import (
	"sort"
	"time"
)

// Interval is a half-open booking window [Start, End).
type Interval struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether the instant t falls inside the window.
func (iv Interval) Contains(t time.Time) bool {
	return !iv.Start.After(t) && t.Before(iv.End)
}

// FutureIntervals clips every interval to [now, horizonEnd], drops the ones
// that become empty, and merges the rest into a sorted, disjoint sequence.
// Empty input yields empty output.
func FutureIntervals(intervals []Interval, now, horizonEnd time.Time) []Interval {
	clipped := make([]Interval, 0, len(intervals))
	for _, iv := range intervals {
		start, end := iv.Start, iv.End
		if start.Before(now) {
			start = now
		}
		if end.After(horizonEnd) {
			end = horizonEnd
		}
		if end.After(start) {
			clipped = append(clipped, Interval{Start: start, End: end})
		}
	}
	return mergeIntervals(clipped)
}

// mergeIntervals folds overlapping or touching intervals into the smallest
// cover, sorted ascending by start.
func mergeIntervals(intervals []Interval) []Interval {
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
			// Overlapping or touching: extend the running interval.
			if iv.End.After(last.End) {
				last.End = iv.End
			}
		} else {
			merged = append(merged, iv)
		}
	}
	return merged
}
