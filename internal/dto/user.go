package dto

import (
	"github.com/yukikurage/project-tracker-api/internal/models"
)

// SimpleUserDTO is the compact user shape embedded in task and bug responses
type SimpleUserDTO struct {
	ID       uint64 `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name"`
}

// UserDTO represents a user with their primary role
type UserDTO struct {
	ID       uint64      `json:"id"`
	Name     string      `json:"name"`
	Role     models.Role `json:"role"`
	Username string      `json:"username"`
}

// TokenPairDTO is returned by login
type TokenPairDTO struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// AccessTokenDTO is returned by refresh
type AccessTokenDTO struct {
	Access string `json:"access"`
}

// ToUserDTO converts a User model (with groups preloaded) to UserDTO
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:       user.ID,
		Name:     user.Name,
		Role:     user.PrimaryRole(),
		Username: user.Username,
	}
}

// ToUserDTOs converts a slice of users
func ToUserDTOs(users []models.User) []UserDTO {
	items := make([]UserDTO, len(users))
	for i, u := range users {
		items[i] = ToUserDTO(u)
	}
	return items
}

// ToSimpleUserDTO returns nil when the relation was not set or not preloaded
func ToSimpleUserDTO(user *models.User) *SimpleUserDTO {
	if user == nil || user.ID == 0 {
		return nil
	}
	return &SimpleUserDTO{
		ID:       user.ID,
		Username: user.Username,
		Name:     user.Name,
	}
}
