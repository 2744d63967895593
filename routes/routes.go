package routes

import (
	"net/http"
	"time"

	"roomly/handlers"
	"roomly/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// HandlerBundle groups the handlers the router needs.
type HandlerBundle struct {
	Auth    *handlers.AuthHandler
	Rooms   *handlers.RoomHandler
	Booking *handlers.BookingHandler
}

// RegisterAuthRoutes registers registration and login endpoints.
func RegisterAuthRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/auth")
	{
		api.POST("/register", hb.Auth.RegisterHandler)
		api.POST("/login", hb.Auth.LoginHandler)

		// Protected routes (Require Authentication)
		api.Use(middleware.JWTAuthMiddleware())
		api.POST("/logout", hb.Auth.LogoutHandler)
	}
}

// RegisterRoomRoutes registers the room catalog endpoints.
func RegisterRoomRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/rooms")
	{
		api.GET("", hb.Rooms.ListRoomsHandler)
		api.GET("/:id", hb.Rooms.GetRoomHandler)
		api.GET("/:id/availability", hb.Booking.GetRoomAvailabilityHandler)
		api.GET("/:id/reservations", hb.Booking.ListRoomReservationsHandler)

		// Mutations require authentication.
		protected := api.Group("")
		protected.Use(middleware.JWTAuthMiddleware())
		protected.POST("", hb.Rooms.CreateRoomHandler)
	}
}

// RegisterReservationRoutes sets up the endpoints for the booking engine.
func RegisterReservationRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/reservations")
	{
		api.Use(middleware.JWTAuthMiddleware())
		api.POST("", hb.Booking.CreateReservationHandler)
		api.DELETE("/:id", hb.Booking.CancelReservationHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Hi, I'm Roomly"})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterAuthRoutes(r, hb)
	RegisterRoomRoutes(r, hb)
	RegisterReservationRoutes(r, hb)
	RegisterHealthRoute(r)
}
