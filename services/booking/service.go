package booking

import (
	"fmt"
	"sync"

	"roomly/models"
	"roomly/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Reservation duration bounds, minutes.
const (
	MinReservationMinutes = 30
	MaxReservationMinutes = 12 * 60
)

// UnknownUserName is the display-name fallback when a conflicting
// reservation's owner record no longer exists. Intentional degradation: the
// conflict is still reported rather than failing the whole request.
const UnknownUserName = "Unknown User"

// roomLockStore serializes booking mutations per room. The conflict-check
// then write sequence is a read-then-write race; two concurrent requests for
// the same room must not both observe "no conflict".
type roomLockStore struct {
	locks map[string]*sync.Mutex
	mu    sync.Mutex
}

func (s *roomLockStore) lock(roomID string) func() {
	s.mu.Lock()
	if s.locks == nil {
		s.locks = make(map[string]*sync.Mutex)
	}
	l, exists := s.locks[roomID]
	if !exists {
		l = &sync.Mutex{}
		s.locks[roomID] = l
	}
	s.mu.Unlock()

	l.Lock()
	return l.Unlock
}

// Book runs a single booking attempt's decision tree: validate, detect
// conflict, and either insert, overwrite (same owner), or reject with
// alternative-slot suggestions (different owner).
func (e *DefaultSchedulingEngine) Book(roomID, startDate, startTime, endTime, ownerID string) (*models.BookingResponse, error) {
	logger := utils.GetLogger()

	// Duration bounds are checked again here even though the HTTP layer
	// validates input; the engine must not rely on its callers for them.
	if endTime == startTime {
		return nil, &InvalidInputError{Message: "endTime must differ from startTime"}
	}
	duration := DurationMinutes(startTime, endTime)
	if duration < MinReservationMinutes || duration > MaxReservationMinutes {
		return nil, &InvalidInputError{
			Message: fmt.Sprintf("reservation duration must be between %d minutes and %d hours, got %d minutes",
				MinReservationMinutes, MaxReservationMinutes/60, duration),
		}
	}

	now := e.now()
	nowAbs := DaysSinceEpoch(now.Format(DateLayout))*minutesPerDay + now.Hour()*60 + now.Minute()
	if AbsoluteMinutes(startDate, startTime) <= nowAbs {
		return nil, &PastBookingError{StartDate: startDate, StartTime: startTime}
	}

	if ok, err := e.RoomRepo.Exists(roomID); err != nil {
		return nil, fmt.Errorf("failed to check room %s: %w", roomID, err)
	} else if !ok {
		return nil, &NotFoundError{Kind: "room", ID: roomID}
	}
	if ok, err := e.UserRepo.Exists(ownerID); err != nil {
		return nil, fmt.Errorf("failed to check user %s: %w", ownerID, err)
	} else if !ok {
		return nil, &NotFoundError{Kind: "user", ID: ownerID}
	}

	endDate := startDate
	if CrossesMidnight(startTime, endTime) {
		endDate = ShiftDate(startDate, 1)
	}

	unlock := e.locks.lock(roomID)
	defer unlock()

	existing, err := e.ReservationRepo.GetByRoomAndDateRange(roomID, startDate, endDate)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch reservations for room %s: %w", roomID, err)
	}

	// Collect every overlap: a single cross-owner overlap rejects the whole
	// request, even when the requester's own booking overlaps too. Overwriting
	// in that case would leave two different owners' reservations overlapping
	// in the store.
	var ownConflicts []models.Reservation
	var otherConflict *models.Reservation
	for i := range existing {
		if !ReservationOverlaps(existing[i], startDate, startTime, endDate, endTime) {
			continue
		}
		if existing[i].OwnerID != ownerID {
			otherConflict = &existing[i]
			break
		}
		ownConflicts = append(ownConflicts, existing[i])
	}

	if otherConflict != nil {
		return nil, e.buildConflictError(otherConflict, roomID, startDate, TimeToMinutes(startTime), duration)
	}

	if len(ownConflicts) == 0 {
		res := &models.Reservation{
			ID:        uuid.New().String(),
			RoomID:    roomID,
			OwnerID:   ownerID,
			StartDate: startDate,
			EndDate:   endDate,
			StartTime: startTime,
			EndTime:   endTime,
		}
		if err := e.ReservationRepo.Create(res); err != nil {
			return nil, fmt.Errorf("failed to create reservation: %w", err)
		}
		logger.Info("reservation created",
			zap.String("reservationID", res.ID),
			zap.String("roomID", roomID),
			zap.String("ownerID", ownerID))
		return &models.BookingResponse{Reservation: *res, WasUpdated: false}, nil
	}

	// Owner-overwrite: the later write replaces the earliest own booking in
	// place, preserving its identifier. Any further own bookings the new
	// interval overlaps are coalesced into it.
	target := ownConflicts[0]
	for _, extra := range ownConflicts[1:] {
		if err := e.ReservationRepo.Delete(extra.ID); err != nil {
			return nil, fmt.Errorf("failed to remove superseded reservation %s: %w", extra.ID, err)
		}
	}
	updated, err := e.ReservationRepo.UpdateTimes(target.ID, startDate, endDate, startTime, endTime)
	if err != nil {
		return nil, fmt.Errorf("failed to overwrite reservation %s: %w", target.ID, err)
	}
	logger.Info("reservation overwritten by owner",
		zap.String("reservationID", updated.ID),
		zap.String("roomID", roomID),
		zap.String("ownerID", ownerID))
	return &models.BookingResponse{Reservation: *updated, WasUpdated: true, Previous: &target}, nil
}

// buildConflictError assembles the structured conflict failure: occupant
// identity, the occupied interval, and nearest-slot suggestions.
func (e *DefaultSchedulingEngine) buildConflictError(conflict *models.Reservation, roomID, date string, attemptStart, duration int) error {
	occupantName := UnknownUserName
	if occupant, err := e.UserRepo.GetByID(conflict.OwnerID); err != nil {
		utils.GetLogger().Warn("failed to resolve conflicting reservation's owner",
			zap.String("ownerID", conflict.OwnerID), zap.Error(err))
	} else if occupant != nil {
		occupantName = occupant.Username
	}

	before, after := e.FindNearestSlots(roomID, date, attemptStart, duration, e.now())
	suggestion := FormatSuggestions(before, after)

	detail := models.ConflictDetail{
		OccupantID:   conflict.OwnerID,
		OccupantName: occupantName,
		StartDate:    conflict.StartDate,
		StartTime:    conflict.StartTime,
		EndDate:      conflict.EndDate,
		EndTime:      conflict.EndTime,
		Suggestion:   suggestion,
	}
	msg := fmt.Sprintf("Room is already booked by %s from %s %s to %s %s. %s",
		occupantName, detail.StartDate, detail.StartTime, detail.EndDate, detail.EndTime, suggestion)
	return &ConflictError{Message: msg, Detail: detail}
}

// Cancel deletes a reservation if the requester owns it, returning the
// reservation as it stood so callers can invalidate state keyed on its dates.
func (e *DefaultSchedulingEngine) Cancel(reservationID, ownerID string) (*models.Reservation, error) {
	res, err := e.ReservationRepo.GetByID(reservationID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch reservation %s: %w", reservationID, err)
	}
	if res == nil {
		return nil, &NotFoundError{Kind: "reservation", ID: reservationID}
	}
	if res.OwnerID != ownerID {
		return nil, &ForbiddenError{ReservationID: reservationID}
	}

	unlock := e.locks.lock(res.RoomID)
	defer unlock()

	if err := e.ReservationRepo.Delete(reservationID); err != nil {
		return nil, fmt.Errorf("failed to delete reservation %s: %w", reservationID, err)
	}
	utils.GetLogger().Info("reservation cancelled",
		zap.String("reservationID", reservationID),
		zap.String("ownerID", ownerID))
	return res, nil
}

// ListForRoom returns all reservations for a room, unfiltered.
func (e *DefaultSchedulingEngine) ListForRoom(roomID string) ([]models.Reservation, error) {
	if ok, err := e.RoomRepo.Exists(roomID); err != nil {
		return nil, fmt.Errorf("failed to check room %s: %w", roomID, err)
	} else if !ok {
		return nil, &NotFoundError{Kind: "room", ID: roomID}
	}
	return e.ReservationRepo.GetByRoom(roomID)
}
