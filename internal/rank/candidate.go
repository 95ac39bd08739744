package rank

import (
	"math"
	"time"
)

// clockLayout renders instants as local clock time for display.
const clockLayout = "15:04"

// StationInfo is the snapshot of one station handed to the candidate builder.
type StationInfo struct {
	ID      string
	Name    string
	Address string
	Status  string
	Lat     float64
	Lng     float64

	Chargers []ChargerInfo
}

// ChargerInfo is one charger with its raw (unmerged) booking windows.
type ChargerInfo struct {
	ID       string
	Bookings []Interval
}

// TravelEstimate mirrors one element of a batch distance query. OK is false
// when the provider could not produce an estimate for this destination.
type TravelEstimate struct {
	OK              bool
	DurationSeconds int
	DurationText    string
	DistanceMeters  int
	DistanceText    string
}

// BookedBlock is one merged booking window rendered for display.
type BookedBlock struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// Candidate is one rankable (station, charger) pairing. A station that
// reports no chargers contributes a single candidate with a nil ChargerID,
// treated as free for the whole horizon.
type Candidate struct {
	StationID string  `json:"station_id,omitempty"`
	Name      string  `json:"name"`
	Lat       float64 `json:"lat"`
	Lng       float64 `json:"lng"`
	Address   string  `json:"address,omitempty"`
	Status    string  `json:"status,omitempty"`

	ChargerID            *string       `json:"charger_id"`
	ArrivalTime          string        `json:"arrival_time"`
	FreeGapHours         float64       `json:"free_gap_hours"`
	FullyBookedAtArrival bool          `json:"fully_booked_at_arrival"`
	WaitHours            float64       `json:"wait_hours"`
	BookedBlocks         []BookedBlock `json:"booked_blocks"`

	TravelTime string `json:"travel_time"`
	Distance   string `json:"distance"`

	// Ranking keys. Unexported: they order candidates and never leave the
	// process.
	fullyBooked int
	freeGap     float64
	wait        float64
	durationSec int
	distanceM   int
}

// BuildCandidates expands each station into per-charger candidates, using the
// travel estimate at the matching index. Stations without a usable estimate
// are skipped; the second return value counts them. Estimates render display
// times in loc.
func BuildCandidates(stations []StationInfo, estimates []TravelEstimate, now time.Time, horizon time.Duration, loc *time.Location) ([]Candidate, int) {
	if loc == nil {
		loc = time.Local
	}
	horizonEnd := now.Add(horizon)

	var candidates []Candidate
	skipped := 0
	for i, st := range stations {
		if i >= len(estimates) || !estimates[i].OK {
			skipped++
			continue
		}
		est := estimates[i]
		arrival := Arrival(now, est.DurationSeconds)

		if len(st.Chargers) == 0 {
			// No charger inventory: rank the station as a single always-free
			// virtual charger.
			gap := horizonEnd.Sub(arrival).Hours()
			if gap < 0 {
				gap = 0
			}
			candidates = append(candidates, newCandidate(st, nil, arrival, Availability{FreeGapHours: gap}, nil, est, loc))
			continue
		}

		for _, ch := range st.Chargers {
			merged := FutureIntervals(ch.Bookings, now, horizonEnd)
			avail := Evaluate(merged, arrival, now, horizonEnd)
			chargerID := ch.ID
			candidates = append(candidates, newCandidate(st, &chargerID, arrival, avail, merged, est, loc))
		}
	}
	return candidates, skipped
}

func newCandidate(st StationInfo, chargerID *string, arrival time.Time, avail Availability, merged []Interval, est TravelEstimate, loc *time.Location) Candidate {
	blocks := make([]BookedBlock, 0, len(merged))
	for _, iv := range merged {
		blocks = append(blocks, BookedBlock{
			Start: iv.Start.In(loc).Format(clockLayout),
			End:   iv.End.In(loc).Format(clockLayout),
		})
	}

	fullyBooked := 0
	if avail.FullyBooked {
		fullyBooked = 1
	}

	return Candidate{
		StationID: st.ID,
		Name:      st.Name,
		Lat:       st.Lat,
		Lng:       st.Lng,
		Address:   st.Address,
		Status:    st.Status,

		ChargerID:            chargerID,
		ArrivalTime:          arrival.In(loc).Format(clockLayout),
		FreeGapHours:         round2(avail.FreeGapHours),
		FullyBookedAtArrival: avail.FullyBooked,
		WaitHours:            round2(avail.WaitHours),
		BookedBlocks:         blocks,

		TravelTime: est.DurationText,
		Distance:   est.DistanceText,

		fullyBooked: fullyBooked,
		freeGap:     avail.FreeGapHours,
		wait:        avail.WaitHours,
		durationSec: est.DurationSeconds,
		distanceM:   est.DistanceMeters,
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
