package models

import "time"

type Appointment struct {
	ID             uint              `gorm:"primaryKey" json:"id"`
	DateTime       time.Time         `gorm:"not null" json:"dateTime"`
	Status         AppointmentStatus `gorm:"type:varchar(20);default:'PENDING'" json:"status"`
	TotalPrice     float64           `gorm:"type:double precision;not null" json:"totalPrice"`
	AvailabilityID *uint             `gorm:"index" json:"availabilityId"`
	UserID         *uint             `gorm:"index" json:"userId"`
	ServiceID      *uint             `gorm:"index" json:"serviceId"`

	Availability *Availability `gorm:"foreignKey:AvailabilityID" json:"-"`
	Service      *Service      `gorm:"foreignKey:ServiceID" json:"-"`
	Timestamps
}
