package models

import "gorm.io/datatypes"

type ChatbotLog struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	UserMessage    string         `gorm:"type:text;not null" json:"userMessage"`
	DetectedIntent *string        `gorm:"type:varchar(255)" json:"detectedIntent"`
	Response       string         `gorm:"type:text;not null" json:"response"`
	Metadata       datatypes.JSON `json:"metadata,omitempty"`
	UserID         *uint          `gorm:"index" json:"userId"`
	Timestamps
}
