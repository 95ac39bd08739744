package model

import "time"

// Charger represents a single charging point belonging to a station.
type Charger struct {
	ID        string `gorm:"primaryKey;size:64"`
	StationID string `gorm:"index;not null;size:64"`
	CreatedAt time.Time
	UpdatedAt time.Time

	// Associations
	Station  Station   `gorm:"constraint:OnDelete:CASCADE"`
	Bookings []Booking `gorm:"foreignKey:ChargerID"`
}
