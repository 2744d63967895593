package roomRepo

import "roomly/models"

// RoomRepository abstracts room persistence.
type RoomRepository interface {
	Create(room *models.Room) error
	GetByID(id string) (*models.Room, error)
	GetAll() ([]models.Room, error)
	Exists(id string) (bool, error)
	Delete(id string) error
}
