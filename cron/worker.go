package cron

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"roomly/config"
	reservationRepo "roomly/database/repository/reservation"
	"roomly/models"
	"roomly/services/tasks"
	"roomly/utils"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// InitReminderWorker runs the async worker in background.
func InitReminderWorker(resRepo reservationRepo.ReservationRepository) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisReminderDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeReservationRemind, handleReminderTask(resRepo))

	// Start async worker with retry logic.
	go func() {
		log.Println("[ReminderWorker] starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[ReminderWorker] attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[ReminderWorker] max retry attempts reached. Exiting.")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second)
			} else {
				break
			}
		}
	}()
}

// handleReminderTask fires a reservation reminder. Cancelled reservations
// are dropped silently.
func handleReminderTask(resRepo reservationRepo.ReservationRepository) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		logger := utils.GetLogger()

		var p models.ReminderPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			logger.Error("invalid reminder payload", zap.Error(err))
			return err
		}

		res, err := resRepo.GetByID(p.ReservationID)
		if err != nil {
			logger.Error("failed to resolve reservation for reminder",
				zap.String("reservationID", p.ReservationID), zap.Error(err))
			return err
		}
		if res == nil {
			logger.Debug("reservation cancelled before reminder fired",
				zap.String("reservationID", p.ReservationID))
			return nil
		}

		logger.Info("reservation reminder",
			zap.String("reservationID", res.ID),
			zap.String("roomID", res.RoomID),
			zap.String("ownerID", res.OwnerID),
			zap.String("title", p.Title),
			zap.String("body", p.Body))
		return nil
	}
}
