package model

import "time"

// Booking statuses as reported by the reservation system. A NULL or empty
// status counts as active.
const (
	BookingStatusPending   = "PENDING"
	BookingStatusConfirmed = "CONFIRMED"
	BookingStatusCancelled = "CANCELLED"
	BookingStatusRejected  = "REJECTED"
)

// Booking represents one reserved time window [StartTime, EndTime) on a charger.
type Booking struct {
	ID            int64     `gorm:"primaryKey;autoIncrement"`
	ChargerID     string    `gorm:"index;not null;size:64"`
	StartTime     time.Time `gorm:"index;not null"`
	EndTime       time.Time `gorm:"index;not null"`
	BookingStatus string    `gorm:"size:32"`
	CreatedAt     time.Time

	// Associations
	Charger Charger `gorm:"constraint:OnDelete:CASCADE"`
}
