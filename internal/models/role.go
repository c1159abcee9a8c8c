package models

type Role struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	Name        string  `gorm:"type:varchar(255);not null;uniqueIndex" json:"name"`
	Description *string `gorm:"type:text" json:"description"`
	Timestamps
}

func (r Role) Tier() RoleTier {
	return TierForRole(r.Name)
}
