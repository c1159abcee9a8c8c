package models

import (
	"time"

	"gorm.io/datatypes"
)

// Availability - слот времени. IsBooked нигде не выставляется и не проверяется.
type Availability struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Date      datatypes.Date `gorm:"not null" json:"date"`
	StartTime time.Time      `gorm:"not null" json:"startTime"`
	EndTime   time.Time      `gorm:"not null" json:"endTime"`
	IsBooked  bool           `gorm:"default:false" json:"isBooked"`
	Timestamps
}
