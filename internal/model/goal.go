package model

import "time"

// Goal is a user-defined reduction target. TargetEmission has no lower
// bound: a negative target reads as "reduce by X".
type Goal struct {
	ID             uint   `gorm:"primaryKey"`
	UserID         uint   `gorm:"index;not null"`
	User           *User  `gorm:"constraint:OnDelete:CASCADE"`
	Description    string `gorm:"not null"`
	TargetEmission float64
	Deadline       time.Time
	CreatedAt      time.Time
}
