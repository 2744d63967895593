package booking

import (
	"time"

	reservationRepo "roomly/database/repository/reservation"
	roomRepo "roomly/database/repository/room"
	userRepo "roomly/database/repository/user"
	"roomly/models"
)

// SchedulingService is the reservation lifecycle surface exposed to the
// HTTP layer.
type SchedulingService interface {
	// Book attempts to reserve a room. A conflicting request from the same
	// owner updates the existing reservation in place; one from a different
	// owner fails with a ConflictError carrying alternative-slot detail.
	Book(roomID, startDate, startTime, endTime, ownerID string) (*models.BookingResponse, error)
	// Cancel deletes a reservation owned by the requester, returning it as
	// it stood before deletion.
	Cancel(reservationID, ownerID string) (*models.Reservation, error)
	// ListForRoom returns every reservation for a room.
	ListForRoom(roomID string) ([]models.Reservation, error)
	// AvailableWindows returns the free minute-of-day windows for a room on
	// a date, optionally filtered to a minimum duration.
	AvailableWindows(roomID, date string, minDuration int) ([]models.AvailableInterval, error)
}

// DefaultSchedulingEngine is the production implementation.
type DefaultSchedulingEngine struct {
	ReservationRepo reservationRepo.ReservationRepository
	RoomRepo        roomRepo.RoomRepository
	UserRepo        userRepo.UserRepository

	// SearchWindowDays bounds the nearest-slot day stepping in each
	// direction. Zero means DefaultSearchWindowDays.
	SearchWindowDays int

	// Now is the clock used for past-booking checks; nil means time.Now.
	Now func() time.Time

	locks roomLockStore
}

func (e *DefaultSchedulingEngine) now() time.Time {
	if e.Now != nil {
		return e.Now()
	}
	return time.Now()
}

func (e *DefaultSchedulingEngine) searchWindowDays() int {
	if e.SearchWindowDays > 0 {
		return e.SearchWindowDays
	}
	return DefaultSearchWindowDays
}
