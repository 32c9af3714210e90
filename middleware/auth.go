package middleware

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/sharath018/rental-management-backend/config"
	"github.com/sharath018/rental-management-backend/internal/auth"
)

// AuthMiddleware validates the Bearer token and stores the caller's
// identity in the context. A missing or malformed header is 401, a token
// that fails verification is 403.
func AuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing Authorization header"})
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid Authorization header"})
			return
		}

		token, err := jwt.Parse(parts[1], func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(cfg.JWTSecret), nil
		})
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "invalid or expired token"})
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "invalid claims"})
			return
		}

		id, _ := claims["id"].(string)
		role, _ := claims["role"].(string)
		if id == "" || role == "" {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "id or role missing in token"})
			return
		}

		c.Set("role", role)

		switch role {
		case auth.RoleAdmin:
			adminID, err := strconv.ParseUint(id, 10, 32)
			if err != nil {
				c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "invalid admin id in token"})
				return
			}
			c.Set("admin_id", uint(adminID))
		case auth.RoleTenant:
			c.Set("tenant_id", id)
		default:
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "unknown role"})
			return
		}

		c.Next()
	}
}
