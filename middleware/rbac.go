package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sharath018/rental-management-backend/internal/auth"
)

// RequireRole gates a route group to callers carrying one of the allowed roles.
func RequireRole(allowedRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString("role")
		if role == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
			return
		}

		for _, allowed := range allowedRoles {
			if role == allowed {
				c.Next()
				return
			}
		}

		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "insufficient role"})
	}
}

// RequireAdmin restricts a route to landlord accounts.
func RequireAdmin() gin.HandlerFunc {
	return RequireRole(auth.RoleAdmin)
}

// RequireTenant restricts a route to tenant portal accounts.
func RequireTenant() gin.HandlerFunc {
	return RequireRole(auth.RoleTenant)
}
