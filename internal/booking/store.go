package booking

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"gorm.io/gorm"

	"station-advisor-backend/internal/model"
)

// coordTolerance is how far (in degrees, roughly 200m) a station may sit from
// the caller-supplied coordinates and still be considered the same station.
const coordTolerance = 0.002

// Store defines the booking-side database operations.
type Store interface {
	ResolveStationIDs(ctx context.Context, refs []StationRef) ([]StationRef, error)
	ChargersForStations(ctx context.Context, stationIDs []string, now, horizonEnd time.Time) (map[string][]ChargerSchedule, error)
	StationsInBounds(ctx context.Context, b Bounds) ([]model.Station, error)
	ReleasedChargers(ctx context.Context, since, now time.Time) ([]Release, error)
	DB() *gorm.DB
}

// gormStore implements the Store interface using GORM.
type gormStore struct {
	db *gorm.DB
}

// NewGormStore creates a new GORM-backed store.
func NewGormStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

// DB exposes the underlying connection for handlers that manage their own
// queries (subscriptions).
func (s *gormStore) DB() *gorm.DB {
	return s.db
}

// ResolveStationIDs fills in missing station identifiers by fuzzy name match
// or coordinate proximity, nearest station first. Resolution is best-effort:
// a ref that matches nothing keeps its empty ID.
func (s *gormStore) ResolveStationIDs(ctx context.Context, refs []StationRef) ([]StationRef, error) {
	resolved := make([]StationRef, len(refs))
	copy(resolved, refs)

	needsLookup := false
	for _, ref := range resolved {
		if ref.ID == "" {
			needsLookup = true
			break
		}
	}
	if !needsLookup {
		return resolved, nil
	}

	for i, ref := range resolved {
		if ref.ID != "" {
			continue
		}

		name := strings.ToLower(strings.TrimSpace(ref.Name))
		query := s.db.WithContext(ctx).
			Where("ABS(latitude - ?) < ? AND ABS(longitude - ?) < ?", ref.Lat, coordTolerance, ref.Lng, coordTolerance)
		if name != "" {
			query = query.Or("LOWER(name) LIKE ?", "%"+name+"%")
		}

		var matches []model.Station
		if err := query.Find(&matches).Error; err != nil {
			return nil, fmt.Errorf("station lookup for %q failed: %w", ref.Name, err)
		}
		if nearest, ok := nearestStation(matches, ref.Lat, ref.Lng); ok {
			resolved[i].ID = nearest.ID
		}
	}
	return resolved, nil
}

// nearestStation picks the match with the smallest coordinate delta. Ordering
// in Go keeps the query portable across postgres and sqlite.
func nearestStation(stations []model.Station, lat, lng float64) (model.Station, bool) {
	if len(stations) == 0 {
		return model.Station{}, false
	}
	best := stations[0]
	bestDelta := math.Abs(best.Latitude-lat) + math.Abs(best.Longitude-lng)
	for _, st := range stations[1:] {
		delta := math.Abs(st.Latitude-lat) + math.Abs(st.Longitude-lng)
		if delta < bestDelta {
			best = st
			bestDelta = delta
		}
	}
	return best, true
}

// ChargersForStations returns, per station id, every charger with its active
// bookings whose window intersects [now, horizonEnd). Cancelled and rejected
// bookings are excluded; a missing status counts as active. Every requested
// station id is present in the result, with an empty slice when it has no
// chargers.
func (s *gormStore) ChargersForStations(ctx context.Context, stationIDs []string, now, horizonEnd time.Time) (map[string][]ChargerSchedule, error) {
	result := make(map[string][]ChargerSchedule, len(stationIDs))
	for _, id := range stationIDs {
		result[id] = []ChargerSchedule{}
	}
	if len(stationIDs) == 0 {
		return result, nil
	}

	var chargers []model.Charger
	if err := s.db.WithContext(ctx).
		Where("station_id IN ?", stationIDs).
		Find(&chargers).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch chargers: %w", err)
	}
	if len(chargers) == 0 {
		return result, nil
	}

	chargerIDs := make([]string, len(chargers))
	scheduleByCharger := make(map[string]*ChargerSchedule, len(chargers))
	for i, ch := range chargers {
		chargerIDs[i] = ch.ID
		scheduleByCharger[ch.ID] = &ChargerSchedule{ChargerID: ch.ID, Bookings: []Window{}}
	}

	var bookings []model.Booking
	if err := s.db.WithContext(ctx).
		Where("charger_id IN ?", chargerIDs).
		Where("end_time > ? AND start_time < ?", now, horizonEnd).
		Where("booking_status IS NULL OR booking_status = '' OR booking_status NOT IN ?",
			[]string{model.BookingStatusCancelled, model.BookingStatusRejected}).
		Order("charger_id, start_time").
		Find(&bookings).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch bookings: %w", err)
	}

	for _, b := range bookings {
		if schedule, ok := scheduleByCharger[b.ChargerID]; ok {
			schedule.Bookings = append(schedule.Bookings, Window{StartTime: b.StartTime, EndTime: b.EndTime})
		}
	}

	for _, ch := range chargers {
		result[ch.StationID] = append(result[ch.StationID], *scheduleByCharger[ch.ID])
	}
	return result, nil
}

// StationsInBounds returns every station inside the bounding box.
func (s *gormStore) StationsInBounds(ctx context.Context, b Bounds) ([]model.Station, error) {
	var stations []model.Station
	if err := s.db.WithContext(ctx).
		Where("latitude BETWEEN ? AND ?", b.MinLat, b.MaxLat).
		Where("longitude BETWEEN ? AND ?", b.MinLng, b.MaxLng).
		Find(&stations).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch stations in bounds: %w", err)
	}
	return stations, nil
}

// ReleasedChargers returns chargers whose last active booking ended in
// (since, now] and that are not covered by another active booking at now.
func (s *gormStore) ReleasedChargers(ctx context.Context, since, now time.Time) ([]Release, error) {
	activeStatus := "booking_status IS NULL OR booking_status = '' OR booking_status NOT IN ?"
	excluded := []string{model.BookingStatusCancelled, model.BookingStatusRejected}

	var ended []model.Booking
	if err := s.db.WithContext(ctx).
		Where("end_time > ? AND end_time <= ?", since, now).
		Where(activeStatus, excluded).
		Find(&ended).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch ended bookings: %w", err)
	}
	if len(ended) == 0 {
		return nil, nil
	}

	seen := make(map[string]bool, len(ended))
	chargerIDs := make([]string, 0, len(ended))
	for _, b := range ended {
		if !seen[b.ChargerID] {
			seen[b.ChargerID] = true
			chargerIDs = append(chargerIDs, b.ChargerID)
		}
	}

	var busy []model.Booking
	if err := s.db.WithContext(ctx).
		Where("charger_id IN ?", chargerIDs).
		Where("start_time <= ? AND end_time > ?", now, now).
		Where(activeStatus, excluded).
		Find(&busy).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch still-busy chargers: %w", err)
	}
	busySet := make(map[string]bool, len(busy))
	for _, b := range busy {
		busySet[b.ChargerID] = true
	}

	freeIDs := make([]string, 0, len(chargerIDs))
	for _, id := range chargerIDs {
		if !busySet[id] {
			freeIDs = append(freeIDs, id)
		}
	}
	if len(freeIDs) == 0 {
		return nil, nil
	}

	var chargers []model.Charger
	if err := s.db.WithContext(ctx).
		Preload("Station").
		Where("id IN ?", freeIDs).
		Find(&chargers).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch released chargers: %w", err)
	}

	releases := make([]Release, 0, len(chargers))
	for _, ch := range chargers {
		releases = append(releases, Release{
			ChargerID:   ch.ID,
			StationID:   ch.StationID,
			StationName: ch.Station.Name,
		})
	}
	return releases, nil
}
