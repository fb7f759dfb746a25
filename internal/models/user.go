package models

import (
	"time"

	"gorm.io/gorm"
)

type Role string

const (
	RoleAdmin Role = "ADMIN"
	RoleUser  Role = "USER"
)

// Valid reports whether r is one of the known roles. Unrecognized values are
// rejected at authentication instead of being treated as restricted.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleUser
}

type User struct {
	ID           uint64         `gorm:"primarykey" json:"id"`
	Username     string         `gorm:"type:varchar(255);uniqueIndex;not null" json:"username"`
	PasswordHash string         `gorm:"type:varchar(255);not null" json:"-"`
	Role         Role           `gorm:"type:varchar(20);not null" json:"role"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

// Identity is the caller descriptor the authorization predicates operate on.
// It is produced by the auth middleware and trusted unconditionally below it.
type Identity struct {
	Name string
	Role Role
}

func (i Identity) IsAdmin() bool {
	return i.Role == RoleAdmin
}

// Identity returns the caller descriptor for a stored user.
func (u *User) Identity() Identity {
	return Identity{Name: u.Username, Role: u.Role}
}
