package models

import "time"

// PasswordReset correlates a password-reset request to an email address.
// The unique index on Email guarantees at most one live token per email;
// issuing a new token replaces the previous one.
type PasswordReset struct {
	ID        int       `json:"id" gorm:"primaryKey"`
	Email     string    `json:"email" gorm:"uniqueIndex;type:varchar(255)"`
	Token     string    `json:"-" gorm:"uniqueIndex;type:varchar(100)"`
	CreatedAt time.Time `json:"created_at"`
}
