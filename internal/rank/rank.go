package rank

import "sort"

// Rank orders candidates best-first and returns the winner plus the rest in
// the same order. The comparator prefers, in turn: a charger that is not
// fully booked at arrival, the larger free window, the shorter wait, the
// shorter drive duration, and finally the shorter drive distance.
//
// Empty input yields a nil best and an empty remainder; that is the normal
// "no result" outcome, not an error.
func Rank(candidates []Candidate) (*Candidate, []Candidate) {
	if len(candidates) == 0 {
		return nil, []Candidate{}
	}

	ranked := make([]Candidate, len(candidates))
	copy(ranked, candidates)
	sort.SliceStable(ranked, func(i, j int) bool {
		return less(ranked[i], ranked[j])
	})

	best := ranked[0]
	return &best, ranked[1:]
}

func less(a, b Candidate) bool {
	if a.fullyBooked != b.fullyBooked {
		return a.fullyBooked < b.fullyBooked
	}
	if a.freeGap != b.freeGap {
		return a.freeGap > b.freeGap
	}
	if a.wait != b.wait {
		return a.wait < b.wait
	}
	if a.durationSec != b.durationSec {
		return a.durationSec < b.durationSec
	}
	return a.distanceM < b.distanceM
}
