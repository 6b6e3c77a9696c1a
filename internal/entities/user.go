package entities

import "time"

// User is an authentication identity. A linked Profile row shares its ID.
type User struct {
	Base
	Email            string     `gorm:"uniqueIndex;size:255;not null" json:"email"`
	FullName         string     `gorm:"size:255" json:"full_name,omitempty"`
	PasswordHash     string     `gorm:"size:100" json:"-"`
	EmailConfirmed   bool       `gorm:"not null;default:false" json:"email_confirmed"`
	LastLoginAt      *time.Time `json:"last_login_at,omitempty"`
	FailedLoginCount int        `gorm:"not null;default:0" json:"-"`
	LockedUntil      *time.Time `json:"-"`
}

func (User) TableName() string { return "users" }
