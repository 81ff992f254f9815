package middleware

import (
	"net/http" // HTTP status codes

	"creditline/internal/domain" // Role values

	"github.com/gin-gonic/gin" // Gin web framework
)

// EmployeeOnlyMiddleware lets through requests whose token carries the
// employee role. It must run after JWTAuthMiddleware.
func EmployeeOnlyMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, exists := c.Get(ContextUserID); !exists {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		// Role comes from the signed token, no store lookup needed
		if role, _ := c.Get(ContextRole); role != domain.RoleEmployee {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Employee access required"})
			return
		}
		c.Next()
	}
}
