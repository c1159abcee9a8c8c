package models

type Notification struct {
	ID      uint              `gorm:"primaryKey" json:"id"`
	Message string            `gorm:"type:text;not null" json:"message"`
	Type    *NotificationType `gorm:"type:varchar(20)" json:"type"`
	IsRead  bool              `gorm:"default:false" json:"isRead"`
	UserID  *uint             `gorm:"index" json:"userId"`
	Timestamps
}
