package userRepo

import "roomly/models"

// UserRepository abstracts user persistence.
type UserRepository interface {
	Create(user *models.User) error
	GetByID(id string) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	Exists(id string) (bool, error)
	Delete(id string) error
}
