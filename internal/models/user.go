package models

import "time"

// User is the login identity. Role routing does not live here: an admin is
// flagged directly, employees and clients are recognised by their linked
// profile rows (Employee.UserID / EnrolledClient.UserID).
type User struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	Email        string `gorm:"uniqueIndex;not null" json:"email"`
	FullName     string `gorm:"not null" json:"full_name"`
	PasswordHash string `gorm:"not null" json:"-"`
	IsAdmin      bool   `gorm:"not null;default:false" json:"is_admin"`

	TOTPSecret  string `json:"-"`
	TOTPEnabled bool   `gorm:"not null;default:false" json:"totp_enabled"`

	FailedLoginCount int        `gorm:"not null;default:0" json:"-"`
	LockoutLevel     int        `gorm:"not null;default:0" json:"-"`
	LockoutUntil     *time.Time `json:"-"`

	CreatedAt time.Time `json:"created_at"`
}
