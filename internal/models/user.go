package models

import (
	"time"
)

type User struct {
	ID           uint64    `gorm:"primarykey" json:"id"`
	Username     string    `gorm:"type:varchar(150);uniqueIndex;not null" json:"username"`
	Name         string    `gorm:"type:varchar(100);not null;default:''" json:"name"`
	Email        string    `gorm:"type:varchar(255);not null;default:''" json:"email"`
	PasswordHash string    `gorm:"type:varchar(255);not null" json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// Relations
	Groups []Group `gorm:"many2many:user_groups;" json:"-"`
}

// RoleNames returns the roles of the loaded groups.
func (u User) RoleNames() []Role {
	roles := make([]Role, 0, len(u.Groups))
	for _, g := range u.Groups {
		roles = append(roles, g.Name)
	}
	return roles
}

// PrimaryRole returns the first loaded role, or "" when the user has none.
// Group order is not meaningful, so the result is arbitrary for users that
// hold several roles.
func (u User) PrimaryRole() Role {
	if len(u.Groups) == 0 {
		return ""
	}
	return u.Groups[0].Name
}

// HasRole reports whether any loaded group matches role.
func (u User) HasRole(role Role) bool {
	for _, g := range u.Groups {
		if g.Name == role {
			return true
		}
	}
	return false
}
