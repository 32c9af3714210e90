package updaterequest

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	Service Service
}

func NewHandler(s Service) *Handler {
	return &Handler{Service: s}
}

// CreateRequest - POST /update-requests
func (h *Handler) CreateRequest(c *gin.Context) {
	tenantID := c.GetString("tenant_id")
	if tenantID == "" {
		c.JSON(http.StatusForbidden, gin.H{"error": "tenant access required"})
		return
	}

	var req CreateRequest
	// message is optional; an empty body is fine
	_ = c.ShouldBindJSON(&req)

	created, err := h.Service.Create(c.Request.Context(), tenantID, req.Message)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": ErrNotFound.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create update request"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "request": created})
}

// TransitionRequest - PATCH /update-requests/:id
//
// Admins acknowledge or dismiss requests addressed to them; tenants may
// only dismiss (withdraw) their own.
func (h *Handler) TransitionRequest(c *gin.Context) {
	var req TransitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "status is required"})
		return
	}

	var updated *UpdateRequest
	var err error
	if tenantID := c.GetString("tenant_id"); tenantID != "" {
		if req.Status != StatusDismissed {
			c.JSON(http.StatusForbidden, gin.H{"error": "tenants may only dismiss their own requests"})
			return
		}
		updated, err = h.Service.Withdraw(c.Request.Context(), tenantID, c.Param("id"))
	} else {
		updated, err = h.Service.Transition(c.Request.Context(), c.GetUint("admin_id"), c.Param("id"), req.Status)
	}
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidStatus):
			c.JSON(http.StatusBadRequest, gin.H{"error": ErrInvalidStatus.Error()})
		case errors.Is(err, ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": ErrNotFound.Error()})
		case errors.Is(err, ErrTerminalStatus):
			c.JSON(http.StatusConflict, gin.H{"error": ErrTerminalStatus.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update request"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "request": updated})
}

// ListForAdmin - GET /update-requests/admin
func (h *Handler) ListForAdmin(c *gin.Context) {
	adminID := c.GetUint("admin_id")

	requests, err := h.Service.ListForAdmin(c.Request.Context(), adminID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch update requests"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "requests": requests})
}

// ListForTenant - GET /update-requests/tenant
func (h *Handler) ListForTenant(c *gin.Context) {
	tenantID := c.GetString("tenant_id")
	if tenantID == "" {
		c.JSON(http.StatusForbidden, gin.H{"error": "tenant access required"})
		return
	}

	requests, err := h.Service.ListForTenant(c.Request.Context(), tenantID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch update requests"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "requests": requests})
}
