package tasks

import (
	"encoding/json"
	"fmt"
	"time"

	"roomly/config"
	"roomly/models"

	"github.com/hibiken/asynq"
)

const TypeReservationRemind = "reservation:remind"

// NewReminderTask builds an asynq task scheduled to fire at the given time.
func NewReminderTask(payload models.ReminderPayload, fireAt time.Time) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeReservationRemind, b)
	opts := []asynq.Option{asynq.ProcessAt(fireAt)}

	return task, opts, nil
}

// ReminderScheduler enqueues reservation reminders onto the Redis-backed
// task queue.
type ReminderScheduler struct {
	client *asynq.Client
}

func NewReminderScheduler() *ReminderScheduler {
	return &ReminderScheduler{
		client: asynq.NewClient(asynq.RedisClientOpt{
			Addr:     config.AppConfig.RedisAddr,
			Password: config.AppConfig.RedisPassword,
			DB:       config.AppConfig.RedisReminderDB,
		}),
	}
}

// ScheduleReservationReminder queues a reminder to fire ahead of the
// reservation's start. Reservations starting too soon for the lead time get
// no reminder.
func (s *ReminderScheduler) ScheduleReservationReminder(res models.Reservation, lead time.Duration) error {
	start, err := time.ParseInLocation("2006-01-02 15:04", res.StartDate+" "+res.StartTime, time.Local)
	if err != nil {
		return fmt.Errorf("failed to parse reservation start: %w", err)
	}
	fireAt := start.Add(-lead)
	if fireAt.Before(time.Now()) {
		return nil
	}

	payload := models.ReminderPayload{
		ReservationID: res.ID,
		RoomID:        res.RoomID,
		OwnerID:       res.OwnerID,
		StartDate:     res.StartDate,
		StartTime:     res.StartTime,
		Title:         "Upcoming meeting",
		Body:          fmt.Sprintf("Your reservation starts at %s.", res.StartTime),
	}
	task, opts, err := NewReminderTask(payload, fireAt)
	if err != nil {
		return fmt.Errorf("failed to build reminder task: %w", err)
	}
	if _, err := s.client.Enqueue(task, opts...); err != nil {
		return fmt.Errorf("failed to enqueue reminder: %w", err)
	}
	return nil
}
