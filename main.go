package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"roomly/config"
	"roomly/cron"
	"roomly/database"
	reservationRepo "roomly/database/repository/reservation"
	roomRepo "roomly/database/repository/room"
	userRepoPkg "roomly/database/repository/user"
	"roomly/handlers"
	"roomly/middleware"
	"roomly/routes"
	"roomly/services/booking"
	"roomly/services/tasks"
	"roomly/services/user"
	"roomly/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()
	utils.InitAuthCache()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	resRepo := reservationRepo.NewMongoReservationRepo()
	rmRepo := roomRepo.NewMongoRoomRepo()
	usrRepo := userRepoPkg.NewMongoUserRepo()

	// services.
	userService := &user.DefaultUserService{
		Repo: usrRepo,
	}

	schedulingEngine := &booking.DefaultSchedulingEngine{
		ReservationRepo:  resRepo,
		RoomRepo:         rmRepo,
		UserRepo:         usrRepo,
		SearchWindowDays: config.AppConfig.SearchWindowDays,
	}

	reminderScheduler := tasks.NewReminderScheduler()
	cron.InitReminderWorker(resRepo)

	// handlers.
	handlerBundle := &routes.HandlerBundle{
		Auth:    handlers.NewAuthHandler(userService),
		Rooms:   handlers.NewRoomHandler(rmRepo),
		Booking: handlers.NewBookingHandler(schedulingEngine, reminderScheduler, logger),
	}

	routes.RegisterRoutes(router, handlerBundle)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
