package models

import "time"

// Account - привязка OAuth провайдера к пользователю
type Account struct {
	UserID            uint    `gorm:"column:userId;not null;index"`
	User              *User   `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Type              string  `gorm:"type:text;not null"`
	Provider          string  `gorm:"type:varchar(255);primaryKey"`
	ProviderAccountID string  `gorm:"column:providerAccountId;type:varchar(255);primaryKey"`
	RefreshToken      *string `gorm:"column:refresh_token;type:text"`
	AccessToken       *string `gorm:"column:access_token;type:text"`
	ExpiresAt         *int    `gorm:"column:expires_at"`
	TokenType         *string `gorm:"column:token_type;type:text"`
	Scope             *string `gorm:"type:text"`
	IDToken           *string `gorm:"column:id_token;type:text"`
	SessionState      *string `gorm:"column:session_state;type:text"`
}

func (Account) TableName() string { return "account" }

// Session - серверная запись о входе; JWT несёт её токен в jti
type Session struct {
	SessionToken string    `gorm:"column:sessionToken;type:varchar(255);primaryKey"`
	UserID       uint      `gorm:"column:userId;not null;index"`
	User         *User     `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Expires      time.Time `gorm:"not null;index"`
}

func (Session) TableName() string { return "session" }

func (s *Session) IsExpired(now time.Time) bool {
	return now.After(s.Expires)
}

// VerificationToken - одноразовый токен сброса пароля, identifier = email
type VerificationToken struct {
	Identifier string    `gorm:"type:varchar(255);primaryKey"`
	Token      string    `gorm:"type:varchar(255);primaryKey;uniqueIndex"`
	Expires    time.Time `gorm:"not null;index"`
}

func (VerificationToken) TableName() string { return "verificationToken" }

func (t *VerificationToken) IsExpired(now time.Time) bool {
	return now.After(t.Expires)
}
