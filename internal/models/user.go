package models

import (
	"time"
)

// Role is the permission tier of an account.
type Role int

const (
	RoleUser   Role = 0 // read-only access
	RoleEditor Role = 1 // read, create and update access
	RoleAdmin  Role = 2 // read, create, update, delete access
)

type User struct {
	ID       string `gorm:"type:uuid;primaryKey" json:"id"`
	Username string `gorm:"type:varchar(50);uniqueIndex;not null" json:"username"`
	Fullname string `gorm:"type:varchar(100);not null" json:"fullname"`
	Email    string `gorm:"type:varchar(100);not null" json:"email"`
	Role     Role   `gorm:"not null;default:0" json:"role"`
	// Salt and Hash never leave the server
	Salt      string    `gorm:"type:varchar(64);not null" json:"-"`
	Hash      string    `gorm:"type:varchar(512);not null" json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// URL returns the profile page path for this user.
func (u *User) URL() string {
	return "/users/" + u.ID
}
