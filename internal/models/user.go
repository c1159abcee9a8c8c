package models

import (
	"strings"
	"time"
)

type User struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	FirstName     *string    `gorm:"column:firstname;type:varchar(255)" json:"firstName"`
	LastName      *string    `gorm:"column:lastname;type:varchar(255)" json:"lastName"`
	Name          *string    `gorm:"type:varchar(255)" json:"name"`
	Email         string     `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	EmailVerified *time.Time `gorm:"column:emailVerified" json:"emailVerified"`
	Image         *string    `gorm:"type:text" json:"image"`
	// nil для аккаунтов, созданных через OAuth
	Password *string `gorm:"type:text" json:"-"`
	Phone    *string `gorm:"type:varchar(20)" json:"phone"`
	RoleID   *uint   `gorm:"index" json:"roleId"`
	Role     *Role   `gorm:"foreignKey:RoleID" json:"role,omitempty"`
	Timestamps

	Categories    []Category     `gorm:"foreignKey:UserID" json:"-"`
	Appointments  []Appointment  `gorm:"foreignKey:UserID" json:"-"`
	Notifications []Notification `gorm:"foreignKey:UserID" json:"-"`
}

// HasPassword - false для social-only аккаунтов
func (u *User) HasPassword() bool {
	return u.Password != nil && *u.Password != ""
}

// RoleName возвращает имя роли, если она подгружена
func (u *User) RoleName() string {
	if u.Role == nil {
		return ""
	}
	return u.Role.Name
}

// DisplayName склеивает имя и фамилию
func DisplayName(first, last string) string {
	return strings.TrimSpace(strings.TrimSpace(first) + " " + strings.TrimSpace(last))
}

// Deref returns the pointed-to string or "".
func Deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
