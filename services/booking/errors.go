package booking

import (
	"fmt"

	"roomly/models"
)

// InvalidInputError signals a request the engine refuses outright, e.g. a
// duration outside the allowed bounds.
type InvalidInputError struct {
	Message string
}

func (e *InvalidInputError) Error() string {
	return e.Message
}

// PastBookingError signals a requested start that is not strictly in the
// future.
type PastBookingError struct {
	StartDate string
	StartTime string
}

func (e *PastBookingError) Error() string {
	return fmt.Sprintf("cannot book a slot in the past (%s %s)", e.StartDate, e.StartTime)
}

// NotFoundError signals an unknown room, user, or reservation.
type NotFoundError struct {
	Kind string // "room", "user", or "reservation"
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with id %s not found", e.Kind, e.ID)
}

// ForbiddenError signals a cancellation attempted by someone other than the
// reservation's owner.
type ForbiddenError struct {
	ReservationID string
}

func (e *ForbiddenError) Error() string {
	return fmt.Sprintf("reservation %s belongs to another user", e.ReservationID)
}

// ConflictError signals an overlap with a different owner's reservation. It
// carries the occupant, the occupied interval, and the composed suggestion
// text so callers can surface them verbatim.
type ConflictError struct {
	Message string
	Detail  models.ConflictDetail
}

func (e *ConflictError) Error() string {
	return e.Message
}
