package entity

import "time"

type UserRole string

const (
	RoleStudent UserRole = "student"
	RoleManager UserRole = "manager"
	RoleAdmin   UserRole = "admin"
)

// DefaultProfilePicture is the placeholder assigned when registration
// carries no image. It is never deleted from storage.
const DefaultProfilePicture = "uploads/profileImage.png"

func ValidRole(role UserRole) bool {
	switch role {
	case RoleStudent, RoleManager, RoleAdmin:
		return true
	}
	return false
}

type User struct {
	ID             string    `json:"id"`
	Username       string    `json:"username"`
	Email          string    `json:"email"`
	Password       string    `json:"-"`
	Role           UserRole  `json:"role"`
	ProfilePicture string    `json:"profilePicture"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
