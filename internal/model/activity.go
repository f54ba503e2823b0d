package model

import "time"

// Activity is a single logged emission event. Quantity is in the unit
// implied by ActivityType (km for transport, kWh for electricity) and
// Emission is kg CO2-equivalent.
type Activity struct {
	ID           uint   `gorm:"primaryKey"`
	UserID       uint   `gorm:"index;not null"`
	User         *User  `gorm:"constraint:OnDelete:CASCADE"`
	ActivityType string `gorm:"not null"`
	Quantity     float64
	Emission     float64
	ActivityDate time.Time
}
