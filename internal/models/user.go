package models

import "time"

// Roles a user account can hold. New accounts always start as RoleClient.
const (
	RoleClient = "client"
	RoleAdmin  = "admin"
	RoleSeller = "seller"
)

// User represents a registered account of the store.
type User struct {
	ID        int       `json:"id" gorm:"primaryKey"`
	FirstName string    `json:"first_name" gorm:"type:varchar(100)"`
	LastName  string    `json:"last_name" gorm:"type:varchar(100)"`
	Email     string    `json:"email" gorm:"uniqueIndex;type:varchar(255)"`
	Phone     string    `json:"phone" gorm:"type:varchar(30)"`
	Address   string    `json:"address" gorm:"type:varchar(100)"`
	Password  string    `json:"-" gorm:"type:varchar(255)"` // bcrypt hash, never serialized
	Role      string    `json:"role" gorm:"type:varchar(20)"`
	CreatedAt time.Time `json:"created_at"`
}

// Profile is the caller-visible projection of a User.
type Profile struct {
	ID        int       `json:"id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Address   string    `json:"address"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// ToProfile strips credentials off a User.
func (u *User) ToProfile() Profile {
	return Profile{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
		Phone:     u.Phone,
		Address:   u.Address,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	}
}
