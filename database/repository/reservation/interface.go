package reservationRepo

import "roomly/models"

// ReservationRepository abstracts reservation persistence. The scheduling
// engine depends only on this interface; tests use an in-memory fake.
type ReservationRepository interface {
	Create(res *models.Reservation) error
	GetByID(id string) (*models.Reservation, error)
	GetByRoom(roomID string) ([]models.Reservation, error)
	// GetByRoomAndDateRange returns every reservation for the room whose
	// [startDate, endDate] span intersects the given inclusive date range.
	GetByRoomAndDateRange(roomID, startDate, endDate string) ([]models.Reservation, error)
	// UpdateTimes rewrites a reservation's date/time fields in place,
	// preserving its ID.
	UpdateTimes(id, startDate, endDate, startTime, endTime string) (*models.Reservation, error)
	Delete(id string) error
}
