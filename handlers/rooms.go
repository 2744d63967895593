package handlers

import (
	"net/http"

	roomRepo "roomly/database/repository/room"
	"roomly/models"
	"roomly/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RoomHandler exposes the room catalog.
type RoomHandler struct {
	Repo roomRepo.RoomRepository
}

func NewRoomHandler(repo roomRepo.RoomRepository) *RoomHandler {
	return &RoomHandler{Repo: repo}
}

// ListRoomsHandler returns all rooms.
func (h *RoomHandler) ListRoomsHandler(c *gin.Context) {
	rooms, err := h.Repo.GetAll()
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to list rooms", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"rooms": rooms})
}

// GetRoomHandler returns a single room by ID.
func (h *RoomHandler) GetRoomHandler(c *gin.Context) {
	id := c.Param("id")
	room, err := h.Repo.GetByID(id)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to fetch room", err.Error())
		return
	}
	if room == nil {
		utils.JSONError(c, http.StatusNotFound, "room not found", "no room with id "+id)
		return
	}
	c.JSON(http.StatusOK, room)
}

// CreateRoomHandler adds a room to the catalog.
func (h *RoomHandler) CreateRoomHandler(c *gin.Context) {
	var input struct {
		Name     string `json:"name" binding:"required"`
		Capacity int    `json:"capacity"`
		Location string `json:"location"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	room := &models.Room{
		ID:       uuid.New().String(),
		Name:     input.Name,
		Capacity: input.Capacity,
		Location: input.Location,
	}
	if err := h.Repo.Create(room); err != nil {
		utils.JSONError(c, http.StatusConflict, "failed to create room", err.Error())
		return
	}
	c.JSON(http.StatusCreated, room)
}
