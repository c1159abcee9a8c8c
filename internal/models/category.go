package models

type Category struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	Name        string  `gorm:"type:varchar(255);not null" json:"name"`
	Description *string `gorm:"type:text" json:"description"`
	UserID      uint    `gorm:"not null;index" json:"userId"`
	User        *User   `gorm:"foreignKey:UserID" json:"-"`
	Timestamps

	Services []Service `gorm:"foreignKey:CategoryID" json:"-"`
}
