package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/myth3x/mythex-snapshare/internal/models"
)

// AdminOnly restricts access to users with the ADMIN role. Must run
// after AuthMiddleware, which resolves the role.
func AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get("role")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			c.Abort()
			return
		}

		if role != models.RoleAdmin {
			c.JSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
			c.Abort()
			return
		}

		c.Next()
	}
}
