package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"roomly/config"
	"roomly/models"
	"roomly/services/booking"
	"roomly/services/tasks"
	"roomly/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const availabilityCacheTTL = 30 * time.Second

// BookingHandler exposes the reservation lifecycle over HTTP.
type BookingHandler struct {
	Svc       booking.SchedulingService
	Reminders *tasks.ReminderScheduler
	Logger    *zap.Logger
}

func NewBookingHandler(svc booking.SchedulingService, reminders *tasks.ReminderScheduler, logger *zap.Logger) *BookingHandler {
	return &BookingHandler{Svc: svc, Reminders: reminders, Logger: logger}
}

// CreateReservationHandler books a room for the authenticated user.
func (h *BookingHandler) CreateReservationHandler(c *gin.Context) {
	var input models.BookingRequestInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	if !validDate(input.Date) {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", "date must be in YYYY-MM-DD format")
		return
	}
	if !validTime(input.StartTime) || !validTime(input.EndTime) {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", "times must be in HH:MM format")
		return
	}

	ownerID := c.GetString("userID")
	resp, err := h.Svc.Book(input.RoomID, input.Date, input.StartTime, input.EndTime, ownerID)
	if err != nil {
		h.respondBookingError(c, err)
		return
	}

	dates := []string{resp.Reservation.StartDate, resp.Reservation.EndDate}
	if resp.Previous != nil {
		dates = append(dates, resp.Previous.StartDate, resp.Previous.EndDate)
	}
	h.invalidateAvailability(resp.Reservation.RoomID, dates...)

	if h.Reminders != nil {
		lead := time.Duration(config.AppConfig.ReminderLeadMinutes) * time.Minute
		if err := h.Reminders.ScheduleReservationReminder(resp.Reservation, lead); err != nil {
			// Reminder delivery is best effort; the booking already succeeded.
			h.Logger.Warn("failed to schedule reminder",
				zap.String("reservationID", resp.Reservation.ID), zap.Error(err))
		}
	}

	status := http.StatusCreated
	if resp.WasUpdated {
		status = http.StatusOK
	}
	c.JSON(status, resp)
}

// CancelReservationHandler cancels a reservation owned by the caller.
func (h *BookingHandler) CancelReservationHandler(c *gin.Context) {
	reservationID := c.Param("id")
	ownerID := c.GetString("userID")

	cancelled, err := h.Svc.Cancel(reservationID, ownerID)
	if err != nil {
		h.respondBookingError(c, err)
		return
	}
	h.invalidateAvailability(cancelled.RoomID, cancelled.StartDate, cancelled.EndDate)
	c.JSON(http.StatusOK, gin.H{"status": "cancelled"})
}

// ListRoomReservationsHandler returns all reservations for a room.
func (h *BookingHandler) ListRoomReservationsHandler(c *gin.Context) {
	roomID := c.Param("id")
	reservations, err := h.Svc.ListForRoom(roomID)
	if err != nil {
		h.respondBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reservations": reservations})
}

// GetRoomAvailabilityHandler returns the free windows for a room on a date.
// The unfiltered window set is cached per room and date in Redis; a duration
// filter is applied after the cache so mutations can invalidate by room and
// date alone. The booking path itself never reads this cache, so a stale read
// can never corrupt a conflict check.
func (h *BookingHandler) GetRoomAvailabilityHandler(c *gin.Context) {
	roomID := c.Param("id")
	date := c.Query("date")
	if !validDate(date) {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", "date must be in YYYY-MM-DD format")
		return
	}
	minDuration := 0
	if raw := c.Query("duration"); raw != "" {
		d, err := strconv.Atoi(raw)
		if err != nil || d < 0 {
			utils.JSONError(c, http.StatusBadRequest, "invalid input", "duration must be a non-negative integer")
			return
		}
		minDuration = d
	}

	ctx := context.Background()
	cache := utils.GetCacheClient()
	cacheKey := availabilityCacheKey(roomID, date)
	if data, err := cache.Get(ctx, cacheKey).Result(); err == nil {
		var windows []models.AvailableInterval
		if err := json.Unmarshal([]byte(data), &windows); err == nil {
			c.JSON(http.StatusOK, gin.H{"roomId": roomID, "date": date, "windows": filterWindows(windows, minDuration)})
			return
		}
	}

	windows, err := h.Svc.AvailableWindows(roomID, date, 0)
	if err != nil {
		h.respondBookingError(c, err)
		return
	}

	if data, err := json.Marshal(windows); err == nil {
		if err := cache.Set(ctx, cacheKey, data, availabilityCacheTTL).Err(); err != nil {
			h.Logger.Debug("failed to cache availability", zap.String("key", cacheKey), zap.Error(err))
		}
	}

	c.JSON(http.StatusOK, gin.H{"roomId": roomID, "date": date, "windows": filterWindows(windows, minDuration)})
}

func availabilityCacheKey(roomID, date string) string {
	return fmt.Sprintf("availability:%s:%s", roomID, date)
}

func filterWindows(windows []models.AvailableInterval, minDuration int) []models.AvailableInterval {
	if minDuration <= 0 {
		return windows
	}
	out := make([]models.AvailableInterval, 0, len(windows))
	for _, w := range windows {
		if w.End-w.Start >= minDuration {
			out = append(out, w)
		}
	}
	return out
}

// invalidateAvailability drops the cached window sets for the given dates.
// Best effort: the short TTL bounds staleness if a delete fails.
func (h *BookingHandler) invalidateAvailability(roomID string, dates ...string) {
	ctx := context.Background()
	cache := utils.GetCacheClient()
	seen := make(map[string]struct{}, len(dates))
	for _, date := range dates {
		if _, dup := seen[date]; dup {
			continue
		}
		seen[date] = struct{}{}
		key := availabilityCacheKey(roomID, date)
		if err := cache.Del(ctx, key).Err(); err != nil {
			h.Logger.Debug("failed to invalidate availability cache", zap.String("key", key), zap.Error(err))
		}
	}
}

// respondBookingError maps the engine's typed failures onto HTTP statuses.
func (h *BookingHandler) respondBookingError(c *gin.Context, err error) {
	var (
		invalidErr   *booking.InvalidInputError
		pastErr      *booking.PastBookingError
		notFoundErr  *booking.NotFoundError
		forbiddenErr *booking.ForbiddenError
		conflictErr  *booking.ConflictError
	)
	switch {
	case errors.As(err, &invalidErr):
		utils.JSONError(c, http.StatusBadRequest, "invalid input", invalidErr.Error())
	case errors.As(err, &pastErr):
		utils.JSONError(c, http.StatusBadRequest, "cannot book in the past", pastErr.Error())
	case errors.As(err, &notFoundErr):
		utils.JSONError(c, http.StatusNotFound, notFoundErr.Kind+" not found", notFoundErr.Error())
	case errors.As(err, &forbiddenErr):
		utils.JSONError(c, http.StatusForbidden, "not the reservation owner", forbiddenErr.Error())
	case errors.As(err, &conflictErr):
		h.Logger.Info("booking conflict", zap.String("occupantID", conflictErr.Detail.OccupantID))
		c.JSON(http.StatusConflict, gin.H{
			"message":  conflictErr.Message,
			"conflict": conflictErr.Detail,
		})
	default:
		utils.JSONError(c, http.StatusInternalServerError, "booking failed", err.Error())
	}
}

func validDate(date string) bool {
	_, err := time.Parse("2006-01-02", date)
	return err == nil
}

func validTime(t string) bool {
	_, err := time.Parse("15:04", t)
	return err == nil
}
