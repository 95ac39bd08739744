package advisor

import (
	"context"
	"fmt"
	"log"
	"time"

	"station-advisor-backend/config"
	"station-advisor-backend/internal/booking"
	"station-advisor-backend/internal/distance"
	"station-advisor-backend/internal/rank"
)

// BookingDirectory is the slice of the booking store the advisor needs.
type BookingDirectory interface {
	ResolveStationIDs(ctx context.Context, refs []booking.StationRef) ([]booking.StationRef, error)
	ChargersForStations(ctx context.Context, stationIDs []string, now, horizonEnd time.Time) (map[string][]booking.ChargerSchedule, error)
}

// DistanceProvider produces batch travel estimates from one origin.
type DistanceProvider interface {
	Matrix(ctx context.Context, origin distance.Coordinate, dests []distance.Coordinate) ([]distance.Element, error)
}

// BookingInput is one booking window supplied inline by the caller.
type BookingInput struct {
	StartTime time.Time `json:"start_time" binding:"required"`
	EndTime   time.Time `json:"end_time" binding:"required"`
}

// ChargerInput is one charger with its caller-supplied bookings.
type ChargerInput struct {
	ID       string         `json:"charger_id" binding:"required"`
	Bookings []BookingInput `json:"bookings"`
}

// StationInput is one candidate station. When Chargers is nil the advisor
// looks the station up in the booking store; a non-nil (possibly empty) slice
// is taken as authoritative.
type StationInput struct {
	ID       string         `json:"id"`
	Name     string         `json:"name"`
	Address  string         `json:"address"`
	Status   string         `json:"status"`
	Lat      *float64       `json:"lat"`
	Lng      *float64       `json:"lng"`
	Chargers []ChargerInput `json:"chargers"`
}

// Request is one recommendation invocation.
type Request struct {
	Origin       distance.Coordinate
	Stations     []StationInput
	HorizonHours float64
}

// Result is the ranked outcome of one invocation. Others never contains Best.
type Result struct {
	Best     *rank.Candidate  `json:"best"`
	Others   []rank.Candidate `json:"others"`
	Excluded int              `json:"excluded"`
}

// Service turns a set of candidate stations into a ranked recommendation.
type Service struct {
	store    BookingDirectory
	distance DistanceProvider
	horizon  time.Duration
	loc      *time.Location
	logger   *log.Logger
}

// NewService creates an advisor Service. An unknown display timezone falls
// back to UTC with a warning.
func NewService(store BookingDirectory, provider DistanceProvider, cfg *config.RankingConfig, logger *log.Logger) *Service {
	loc := time.UTC
	if cfg.DisplayTimezone != "" {
		parsed, err := time.LoadLocation(cfg.DisplayTimezone)
		if err != nil {
			logger.Printf("unknown display timezone %q, falling back to UTC: %v", cfg.DisplayTimezone, err)
		} else {
			loc = parsed
		}
	}
	return &Service{
		store:    store,
		distance: provider,
		horizon:  time.Duration(cfg.HorizonHours * float64(time.Hour)),
		loc:      loc,
		logger:   logger,
	}
}

// Recommend evaluates the request against the current wall clock.
func (s *Service) Recommend(ctx context.Context, req Request) (*Result, error) {
	return s.recommendAt(ctx, req, time.Now().UTC())
}

// recommendAt is the clock-injected core. Every computation in one invocation
// shares the same now.
func (s *Service) recommendAt(ctx context.Context, req Request, now time.Time) (*Result, error) {
	horizon := s.horizon
	if req.HorizonHours > 0 {
		horizon = time.Duration(req.HorizonHours * float64(time.Hour))
	}
	horizonEnd := now.Add(horizon)

	stations, excluded := s.normalizeStations(req.Stations)
	if len(stations) == 0 {
		if excluded > 0 {
			s.logger.Printf("recommendation: all %d stations excluded before ranking", excluded)
		}
		return &Result{Best: nil, Others: []rank.Candidate{}, Excluded: excluded}, nil
	}

	if err := s.attachStoredChargers(ctx, stations, now, horizonEnd); err != nil {
		return nil, err
	}

	dests := make([]distance.Coordinate, len(stations))
	for i, st := range stations {
		dests[i] = distance.Coordinate{Lat: st.info.Lat, Lng: st.info.Lng}
	}
	elements, err := s.distance.Matrix(ctx, req.Origin, dests)
	if err != nil {
		return nil, fmt.Errorf("distance provider: %w", err)
	}

	infos := make([]rank.StationInfo, len(stations))
	for i, st := range stations {
		infos[i] = st.info
	}
	estimates := make([]rank.TravelEstimate, len(elements))
	for i, el := range elements {
		estimates[i] = rank.TravelEstimate{
			OK:              el.OK,
			DurationSeconds: el.DurationSeconds,
			DurationText:    el.DurationText,
			DistanceMeters:  el.DistanceMeters,
			DistanceText:    el.DistanceText,
		}
	}

	candidates, unreachable := rank.BuildCandidates(infos, estimates, now, horizon, s.loc)
	excluded += unreachable
	if excluded > 0 {
		s.logger.Printf("recommendation: excluded %d of %d stations (missing coordinates or unreachable)",
			excluded, len(req.Stations))
	}

	best, others := rank.Rank(candidates)
	return &Result{Best: best, Others: others, Excluded: excluded}, nil
}

// pendingStation pairs a normalized station with whether its chargers must be
// fetched from the store.
type pendingStation struct {
	info      rank.StationInfo
	fromStore bool
}

// normalizeStations drops stations without coordinates and converts inline
// charger data. The second return value counts the dropped stations.
func (s *Service) normalizeStations(inputs []StationInput) ([]*pendingStation, int) {
	var stations []*pendingStation
	excluded := 0
	for _, in := range inputs {
		if in.Lat == nil || in.Lng == nil {
			excluded++
			continue
		}
		st := &pendingStation{
			info: rank.StationInfo{
				ID:      in.ID,
				Name:    in.Name,
				Address: in.Address,
				Status:  in.Status,
				Lat:     *in.Lat,
				Lng:     *in.Lng,
			},
			fromStore: in.Chargers == nil,
		}
		if in.Chargers != nil {
			st.info.Chargers = make([]rank.ChargerInfo, 0, len(in.Chargers))
			for _, ch := range in.Chargers {
				intervals := make([]rank.Interval, 0, len(ch.Bookings))
				for _, b := range ch.Bookings {
					intervals = append(intervals, rank.Interval{Start: b.StartTime, End: b.EndTime})
				}
				st.info.Chargers = append(st.info.Chargers, rank.ChargerInfo{ID: ch.ID, Bookings: intervals})
			}
		}
		stations = append(stations, st)
	}
	return stations, excluded
}

// attachStoredChargers resolves ids for the stations that carry no inline
// charger data and loads their schedules from the store. A station that
// cannot be resolved keeps an empty charger list and ranks as a virtual free
// charger.
func (s *Service) attachStoredChargers(ctx context.Context, stations []*pendingStation, now, horizonEnd time.Time) error {
	var refs []booking.StationRef
	var pending []*pendingStation
	for _, st := range stations {
		if !st.fromStore {
			continue
		}
		refs = append(refs, booking.StationRef{
			ID:   st.info.ID,
			Name: st.info.Name,
			Lat:  st.info.Lat,
			Lng:  st.info.Lng,
		})
		pending = append(pending, st)
	}
	if len(pending) == 0 {
		return nil
	}

	resolved, err := s.store.ResolveStationIDs(ctx, refs)
	if err != nil {
		return fmt.Errorf("booking store: %w", err)
	}

	var ids []string
	for i, ref := range resolved {
		pending[i].info.ID = ref.ID
		if ref.ID != "" {
			ids = append(ids, ref.ID)
		}
	}

	schedules, err := s.store.ChargersForStations(ctx, ids, now, horizonEnd)
	if err != nil {
		return fmt.Errorf("booking store: %w", err)
	}

	for _, st := range pending {
		st.info.Chargers = []rank.ChargerInfo{}
		if st.info.ID == "" {
			continue
		}
		for _, cs := range schedules[st.info.ID] {
			intervals := make([]rank.Interval, 0, len(cs.Bookings))
			for _, w := range cs.Bookings {
				intervals = append(intervals, rank.Interval{Start: w.StartTime, End: w.EndTime})
			}
			st.info.Chargers = append(st.info.Chargers, rank.ChargerInfo{ID: cs.ChargerID, Bookings: intervals})
		}
	}
	return nil
}
