package room

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	Service Service
}

func NewHandler(s Service) *Handler {
	return &Handler{Service: s}
}

// CreateRoom - POST /rooms
func (h *Handler) CreateRoom(c *gin.Context) {
	adminID := c.GetUint("admin_id")

	var req CreateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name, floor and price are required"})
		return
	}

	room, err := h.Service.Create(c.Request.Context(), adminID, req, c.ClientIP())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create room"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Room created successfully",
		"room":    gin.H{"id": room.ID},
	})
}

// ListRooms - GET /rooms
func (h *Handler) ListRooms(c *gin.Context) {
	adminID := c.GetUint("admin_id")

	rooms, err := h.Service.List(c.Request.Context(), adminID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch rooms"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "rooms": rooms})
}

// UpdateRoom - PATCH /rooms/:id
func (h *Handler) UpdateRoom(c *gin.Context) {
	adminID := c.GetUint("admin_id")

	roomID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid room id"})
		return
	}

	var req UpdateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name, floor and price are required"})
		return
	}

	room, err := h.Service.Update(c.Request.Context(), adminID, uint(roomID), req, c.ClientIP())
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": ErrNotFound.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update room"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Room updated successfully",
		"room":    room,
	})
}

// DeleteRoom - DELETE /rooms/:id
func (h *Handler) DeleteRoom(c *gin.Context) {
	adminID := c.GetUint("admin_id")

	roomID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid room id"})
		return
	}

	if err := h.Service.Delete(c.Request.Context(), adminID, uint(roomID), c.ClientIP()); err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": ErrNotFound.Error()})
		case errors.Is(err, ErrOccupied):
			c.JSON(http.StatusConflict, gin.H{"error": "cannot delete an occupied room"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete room"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Room deleted successfully"})
}
