package booking

import "time"

// StationRef identifies a station supplied by the caller, possibly without a
// known identifier.
type StationRef struct {
	ID   string
	Name string
	Lat  float64
	Lng  float64
}

// Window is one booked time range [StartTime, EndTime) on a charger.
type Window struct {
	StartTime time.Time
	EndTime   time.Time
}

// ChargerSchedule is one charger plus its active bookings inside the horizon.
type ChargerSchedule struct {
	ChargerID string
	Bookings  []Window
}

// Release records a charger that has just come free.
type Release struct {
	ChargerID   string
	StationID   string
	StationName string
}

// Bounds is a latitude/longitude bounding box.
type Bounds struct {
	MinLat float64
	MaxLat float64
	MinLng float64
	MaxLng float64
}
