package models

import (
	"time"

	"gorm.io/datatypes"
)

// Roles, ordered by privilege.
const (
	RoleAdmin   = "admin"
	RoleManager = "manager"
	RoleUser    = "user"
)

// ValidRole reports whether role is one of the known roles.
func ValidRole(role string) bool {
	return role == RoleAdmin || role == RoleManager || role == RoleUser
}

// User is an application account. Users are never hard-deleted; Active is
// flipped off instead so expense audit references stay resolvable.
type User struct {
	ID               string                      `gorm:"type:char(36);primaryKey" json:"id"`
	Name             string                      `gorm:"size:255;not null" json:"name"`
	Email            string                      `gorm:"size:255;uniqueIndex;not null" json:"email"`
	PasswordHash     string                      `gorm:"size:100;not null" json:"-"`
	Role             string                      `gorm:"size:20;not null;default:user" json:"role"`
	AssignedVentures datatypes.JSONSlice[string] `json:"assignedVentures"`
	NotifyByEmail    bool                        `gorm:"not null;default:true" json:"notifyByEmail"`
	Locale           string                      `gorm:"size:10;not null;default:pt-BR" json:"locale"`
	Active           bool                        `gorm:"not null;default:true" json:"active"`
	CreatedAt        time.Time                   `json:"createdAt"`
	UpdatedAt        time.Time                   `json:"updatedAt"`
}

// TableName overrides the table name for User
func (User) TableName() string {
	return "users"
}

// HasVenture reports whether the venture id is in the user's assignment list.
// Admins and managers are not scoped by assignment.
func (u *User) HasVenture(ventureID string) bool {
	if u.Role == RoleAdmin || u.Role == RoleManager {
		return true
	}
	for _, id := range u.AssignedVentures {
		if id == ventureID {
			return true
		}
	}
	return false
}
