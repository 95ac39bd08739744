package model

import "time"

// Station represents an EV charging station.
type Station struct {
	ID        string  `gorm:"primaryKey;size:64"`
	Name      string  `gorm:"index;size:256;not null"`
	Address   string  `gorm:"size:512"`
	Status    string  `gorm:"size:32"`
	Latitude  float64 `gorm:"index;not null"`
	Longitude float64 `gorm:"index;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time

	// Associations
	Chargers []Charger `gorm:"foreignKey:StationID"`
}
