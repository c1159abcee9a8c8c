package models

// Service - услуга внутри категории. Только схема, логики нет.
type Service struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"type:varchar(255);not null" json:"title"`
	Description *string   `gorm:"type:text" json:"description"`
	Price       float64   `gorm:"type:double precision;not null" json:"price"`
	Duration    int       `gorm:"not null" json:"duration"` // minutes
	CategoryID  *uint     `gorm:"index" json:"categoryId"`
	Category    *Category `gorm:"foreignKey:CategoryID" json:"-"`
	Timestamps
}
