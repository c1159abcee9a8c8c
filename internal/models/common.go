package models

import (
	"math"
	"time"
)

// MaxID - верхняя граница serial (int4) первичных ключей
const MaxID = math.MaxInt32

// Timestamps - created_at/updated_at, общие для всех таблиц приложения
type Timestamps struct {
	CreatedAt time.Time `gorm:"autoCreateTime;not null" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}
