package rent

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	Service Service

	// unitRate is the configured default electricity rate, surfaced with
	// rent listings so clients can precompute costs from meter readings.
	unitRate float64
}

func NewHandler(s Service, unitRate float64) *Handler {
	return &Handler{Service: s, unitRate: unitRate}
}

// ListRents - GET /room-rents
func (h *Handler) ListRents(c *gin.Context) {
	adminID := c.GetUint("admin_id")

	data, err := h.Service.ListForAdmin(c.Request.Context(), adminID, time.Now())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch rent entries"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": data, "electricityUnitRate": h.unitRate})
}

// ListUpcoming - GET /room-rents/upcoming
func (h *Handler) ListUpcoming(c *gin.Context) {
	adminID := c.GetUint("admin_id")

	data, err := h.Service.ListUpcoming(c.Request.Context(), adminID, time.Now())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch upcoming rents"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": data})
}

// ListForTenant - GET /room-rents/tenant
func (h *Handler) ListForTenant(c *gin.Context) {
	tenantID := c.GetString("tenant_id")
	if tenantID == "" {
		c.JSON(http.StatusForbidden, gin.H{"error": "tenant access required"})
		return
	}

	data, err := h.Service.ListForTenant(c.Request.Context(), tenantID, time.Now())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch rent entries"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": data, "electricityUnitRate": h.unitRate})
}

// UpdateRent - PATCH /room-rents/:id
func (h *Handler) UpdateRent(c *gin.Context) {
	adminID := c.GetUint("admin_id")

	entryID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid rent entry id"})
		return
	}

	var req UpdateRentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "roomId is required"})
		return
	}

	if err := h.Service.UpdateEntry(c.Request.Context(), adminID, uint(entryID), req, c.ClientIP()); err != nil {
		if errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": ErrNotFound.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update rent entry"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Room rent updated successfully"})
}

// GenerateRents - POST /room-rents/generate
//
// Manual trigger with the same semantics as the scheduled run; exists to
// recover from a missed or partially failed scheduled run.
func (h *Handler) GenerateRents(c *gin.Context) {
	result, err := h.Service.GenerateEntries(c.Request.Context(), time.Now())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate rent entries"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "created": result.Created, "message": result.Message})
}
