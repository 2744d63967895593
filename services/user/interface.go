package user

import (
	userRepo "roomly/database/repository/user"
	"roomly/models"
)

// UserService handles registration, authentication, and account lookup.
type UserService interface {
	Register(username, email, password string) (*AuthResponse, error)
	Authenticate(email, password string) (*AuthResponse, error)
	GetUserByID(userID string) (*models.User, error)
	RevokeAuthToken(userID string) error
}

// DefaultUserService is the production implementation.
type DefaultUserService struct {
	Repo userRepo.UserRepository
}

// AuthResponse contains the user's ID and a signed token.
type AuthResponse struct {
	ID       string `json:"id"`
	Token    string `json:"token"`
	Username string `json:"username,omitempty"`
	Email    string `json:"email,omitempty"`
}
