package models

import "time"

type User struct {
	UUIDModel
	Name     string `gorm:"not null;size:255" json:"name"`
	Email    string `gorm:"uniqueIndex;not null;size:255" json:"email"`
	Password string `gorm:"not null" json:"-"`
	Timestamps
}

func (User) TableName() string {
	return "users"
}

// PersonalAccessToken records an issued bearer token. The token's jti claim
// is the row ID, so deleting the row revokes the token.
type PersonalAccessToken struct {
	UUIDModel
	UserID     string     `gorm:"size:36;not null;index" json:"user_id"`
	Name       string     `gorm:"size:255;not null" json:"name"`
	LastUsedAt *time.Time `json:"last_used_at"`
	ExpiresAt  time.Time  `json:"expires_at"`
	Timestamps
}

func (PersonalAccessToken) TableName() string {
	return "personal_access_tokens"
}
