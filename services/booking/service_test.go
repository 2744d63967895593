package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 6, 1, 8, 0, 0, 0, time.UTC)

func TestBook_Creates(t *testing.T) {
	engine, resRepo := newTestEngine(testNow)

	resp, err := engine.Book("room-1", "2026-06-25", "10:00", "11:00", "alice")
	require.NoError(t, err)
	assert.False(t, resp.WasUpdated)
	assert.NotEmpty(t, resp.Reservation.ID)
	assert.Equal(t, "room-1", resp.Reservation.RoomID)
	assert.Equal(t, "alice", resp.Reservation.OwnerID)
	assert.Equal(t, "2026-06-25", resp.Reservation.StartDate)
	assert.Equal(t, "2026-06-25", resp.Reservation.EndDate)

	stored, err := resRepo.GetByID(resp.Reservation.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
}

func TestBook_MidnightSpanSetsEndDate(t *testing.T) {
	engine, _ := newTestEngine(testNow)

	resp, err := engine.Book("room-3", "2026-06-26", "23:00", "02:00", "alice")
	require.NoError(t, err)
	assert.Equal(t, "2026-06-26", resp.Reservation.StartDate)
	assert.Equal(t, "2026-06-27", resp.Reservation.EndDate)
}

func TestBook_OwnerOverwritePreservesID(t *testing.T) {
	engine, _ := newTestEngine(testNow)

	first, err := engine.Book("room-1", "2026-06-25", "10:00", "11:00", "alice")
	require.NoError(t, err)

	second, err := engine.Book("room-1", "2026-06-25", "10:30", "11:30", "alice")
	require.NoError(t, err)
	assert.True(t, second.WasUpdated)
	assert.Equal(t, first.Reservation.ID, second.Reservation.ID)
	assert.Equal(t, "10:30", second.Reservation.StartTime)
	assert.Equal(t, "11:30", second.Reservation.EndTime)
	require.NotNil(t, second.Previous)
	assert.Equal(t, "10:00", second.Previous.StartTime)
	assert.Equal(t, "11:00", second.Previous.EndTime)
}

func TestBook_OverwriteRejectedWhenNeighborOverlaps(t *testing.T) {
	engine, resRepo := newTestEngine(testNow)

	first, err := engine.Book("room-1", "2026-06-25", "10:00", "11:00", "alice")
	require.NoError(t, err)
	seedReservation(resRepo, "bob-res", "room-1", "bob", "2026-06-25", "11:00", "12:00")

	// The new interval overlaps Alice's own booking and Bob's; the overlap
	// with Bob must reject the request rather than overwrite Alice's.
	_, err = engine.Book("room-1", "2026-06-25", "10:30", "11:30", "alice")
	var conflictErr *ConflictError
	require.ErrorAs(t, err, &conflictErr)
	assert.Equal(t, "bob", conflictErr.Detail.OccupantID)

	stored, err := resRepo.GetByID(first.Reservation.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, "10:00", stored.StartTime)
	assert.Equal(t, "11:00", stored.EndTime)
}

func TestBook_OverwriteCoalescesOwnBookings(t *testing.T) {
	engine, resRepo := newTestEngine(testNow)

	first, err := engine.Book("room-1", "2026-06-25", "09:00", "10:00", "alice")
	require.NoError(t, err)
	second, err := engine.Book("room-1", "2026-06-25", "11:00", "12:00", "alice")
	require.NoError(t, err)

	// A span covering both of Alice's bookings keeps the earliest ID and
	// removes the superseded one.
	resp, err := engine.Book("room-1", "2026-06-25", "09:30", "11:30", "alice")
	require.NoError(t, err)
	assert.True(t, resp.WasUpdated)
	assert.Equal(t, first.Reservation.ID, resp.Reservation.ID)

	gone, err := resRepo.GetByID(second.Reservation.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)

	all, err := resRepo.GetByRoom("room-1")
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "09:30", all[0].StartTime)
}

func TestBook_CrossOwnerConflictWithSuggestion(t *testing.T) {
	engine, _ := newTestEngine(testNow)

	_, err := engine.Book("room-1", "2026-06-25", "10:00", "11:00", "alice")
	require.NoError(t, err)

	_, err = engine.Book("room-1", "2026-06-25", "10:00", "11:00", "bob")
	require.Error(t, err)

	var conflictErr *ConflictError
	require.ErrorAs(t, err, &conflictErr)
	assert.Equal(t, "alice", conflictErr.Detail.OccupantID)
	assert.Equal(t, "Alice", conflictErr.Detail.OccupantName)
	assert.Equal(t, "10:00", conflictErr.Detail.StartTime)
	assert.Contains(t, conflictErr.Message, "Alice")
	assert.Contains(t, conflictErr.Message, "Nearest available slot")
	assert.NotEmpty(t, conflictErr.Detail.Suggestion)
}

func TestBook_ConflictOwnerMissingFallsBack(t *testing.T) {
	engine, resRepo := newTestEngine(testNow)

	// A reservation whose owner record has since been deleted.
	seedReservation(resRepo, "ghost-res", "room-1", "ghost", "2026-06-25", "10:00", "11:00")

	_, err := engine.Book("room-1", "2026-06-25", "10:00", "11:00", "bob")
	var conflictErr *ConflictError
	require.ErrorAs(t, err, &conflictErr)
	assert.Equal(t, UnknownUserName, conflictErr.Detail.OccupantName)
	assert.Contains(t, conflictErr.Message, UnknownUserName)
}

func TestBook_MidnightSpanningConflict(t *testing.T) {
	engine, _ := newTestEngine(testNow)

	_, err := engine.Book("room-3", "2026-06-26", "23:00", "02:00", "alice")
	require.NoError(t, err)

	_, err = engine.Book("room-3", "2026-06-27", "01:00", "03:00", "bob")
	var conflictErr *ConflictError
	require.ErrorAs(t, err, &conflictErr)
	assert.Equal(t, "alice", conflictErr.Detail.OccupantID)
}

func TestBook_AdjacencyAcrossMidnightAllowed(t *testing.T) {
	engine, _ := newTestEngine(testNow)

	_, err := engine.Book("room-3", "2026-06-26", "23:00", "02:00", "alice")
	require.NoError(t, err)

	resp, err := engine.Book("room-3", "2026-06-27", "02:00", "04:00", "bob")
	require.NoError(t, err)
	assert.False(t, resp.WasUpdated)
}

func TestBook_DurationBounds(t *testing.T) {
	engine, _ := newTestEngine(testNow)

	var invalidErr *InvalidInputError

	// Too short.
	_, err := engine.Book("room-1", "2026-06-25", "10:00", "10:15", "alice")
	require.ErrorAs(t, err, &invalidErr)

	// Too long.
	_, err = engine.Book("room-1", "2026-06-25", "08:00", "21:00", "alice")
	require.ErrorAs(t, err, &invalidErr)

	// Zero-length.
	_, err = engine.Book("room-1", "2026-06-25", "10:00", "10:00", "alice")
	require.ErrorAs(t, err, &invalidErr)
}

func TestBook_DurationBoundsCheckedBeforeConflict(t *testing.T) {
	engine, _ := newTestEngine(testNow)

	_, err := engine.Book("room-1", "2026-06-25", "10:00", "11:00", "alice")
	require.NoError(t, err)

	// Bob's request overlaps Alice's booking but is rejected for its
	// duration, not the conflict.
	var invalidErr *InvalidInputError
	_, err = engine.Book("room-1", "2026-06-25", "10:00", "10:15", "bob")
	require.ErrorAs(t, err, &invalidErr)
}

func TestBook_PastBookingRejected(t *testing.T) {
	engine, _ := newTestEngine(testNow)

	var pastErr *PastBookingError

	_, err := engine.Book("room-1", "2026-05-01", "10:00", "11:00", "alice")
	require.ErrorAs(t, err, &pastErr)

	// A start equal to now is not strictly in the future.
	_, err = engine.Book("room-1", "2026-06-01", "08:00", "09:00", "alice")
	require.ErrorAs(t, err, &pastErr)

	// Later the same day is fine.
	_, err = engine.Book("room-1", "2026-06-01", "08:01", "09:00", "alice")
	require.NoError(t, err)
}

func TestBook_UnknownRoomAndOwner(t *testing.T) {
	engine, _ := newTestEngine(testNow)

	var notFoundErr *NotFoundError

	_, err := engine.Book("room-99", "2026-06-25", "10:00", "11:00", "alice")
	require.ErrorAs(t, err, &notFoundErr)
	assert.Equal(t, "room", notFoundErr.Kind)

	_, err = engine.Book("room-1", "2026-06-25", "10:00", "11:00", "mallory")
	require.ErrorAs(t, err, &notFoundErr)
	assert.Equal(t, "user", notFoundErr.Kind)
}

func TestCancel(t *testing.T) {
	engine, resRepo := newTestEngine(testNow)

	resp, err := engine.Book("room-1", "2026-06-25", "10:00", "11:00", "alice")
	require.NoError(t, err)
	id := resp.Reservation.ID

	// Not the owner.
	var forbiddenErr *ForbiddenError
	_, err = engine.Cancel(id, "bob")
	require.ErrorAs(t, err, &forbiddenErr)

	// Unknown reservation.
	var notFoundErr *NotFoundError
	_, err = engine.Cancel("nope", "alice")
	require.ErrorAs(t, err, &notFoundErr)
	assert.Equal(t, "reservation", notFoundErr.Kind)

	// Owner cancels; the deleted reservation is returned.
	cancelled, err := engine.Cancel(id, "alice")
	require.NoError(t, err)
	assert.Equal(t, id, cancelled.ID)
	assert.Equal(t, "room-1", cancelled.RoomID)
	stored, err := resRepo.GetByID(id)
	require.NoError(t, err)
	assert.Nil(t, stored)
}

func TestListForRoom(t *testing.T) {
	engine, _ := newTestEngine(testNow)

	_, err := engine.Book("room-1", "2026-06-25", "10:00", "11:00", "alice")
	require.NoError(t, err)
	_, err = engine.Book("room-1", "2026-06-24", "14:00", "15:00", "bob")
	require.NoError(t, err)

	var notFoundErr *NotFoundError
	_, err = engine.ListForRoom("room-99")
	require.ErrorAs(t, err, &notFoundErr)

	first, err := engine.ListForRoom("room-1")
	require.NoError(t, err)
	require.Len(t, first, 2)
	// Listing never mutates state.
	second, err := engine.ListForRoom("room-1")
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
