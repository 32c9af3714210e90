package auth

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

// Register - POST /auth/register
func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name, phone, password and home_name are required"})
		return
	}

	admin, token, err := h.Service.Register(c.Request.Context(), req, c.ClientIP())
	if err != nil {
		if errors.Is(err, ErrPhoneRegistered) {
			c.JSON(http.StatusConflict, gin.H{"error": ErrPhoneRegistered.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Registration successful",
		"token":   token,
		"admin":   gin.H{"id": admin.ID},
	})
}

// Login - POST /auth/login
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "phone and password are required"})
		return
	}

	result, err := h.Service.Login(c.Request.Context(), req, c.ClientIP())
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": ErrInvalidCredentials.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
		return
	}

	resp := gin.H{
		"success": true,
		"message": "Login successful",
		"token":   result.Token,
		"role":    result.Role,
	}
	if result.Role == RoleAdmin {
		resp["admin"] = gin.H{"id": result.AdminID}
	} else {
		resp["tenant"] = gin.H{"id": result.TenantID}
	}

	c.JSON(http.StatusOK, resp)
}

// GetProfile - GET /admin/profile
func (h *Handler) GetProfile(c *gin.Context) {
	adminID := c.GetUint("admin_id")

	admin, err := h.Service.GetProfile(c.Request.Context(), adminID)
	if err != nil {
		if errors.Is(err, ErrAdminNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": ErrAdminNotFound.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "admin": admin})
}

// CheckPassword - POST /admin/check-password
func (h *Handler) CheckPassword(c *gin.Context) {
	adminID := c.GetUint("admin_id")

	var req CheckPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "old_password is required"})
		return
	}

	if err := h.Service.CheckPassword(c.Request.Context(), adminID, req.OldPassword); err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": ErrInvalidCredentials.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// ChangePassword - PATCH /admin/change-password
func (h *Handler) ChangePassword(c *gin.Context) {
	adminID := c.GetUint("admin_id")

	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "old_password and new_password are required"})
		return
	}

	if err := h.Service.ChangePassword(c.Request.Context(), adminID, req, c.ClientIP()); err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": ErrInvalidCredentials.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Password changed successfully"})
}

// DeleteAccount - DELETE /admin
func (h *Handler) DeleteAccount(c *gin.Context) {
	adminID := c.GetUint("admin_id")

	if err := h.Service.DeleteAccount(c.Request.Context(), adminID, c.ClientIP()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Account deleted"})
}
