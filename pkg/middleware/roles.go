package middleware

import (
	"net/http"

	"learnhub/internal/entity"
	"learnhub/pkg/response"

	"github.com/gin-gonic/gin"
)

// RequireRoles gates a route on the verified identity's role. It must run
// after AuthMiddleware.
func RequireRoles(allowedRoles ...entity.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := entity.UserRole(c.GetString(ContextUserRole))

		for _, allowed := range allowedRoles {
			if role == allowed {
				c.Next()
				return
			}
		}

		c.JSON(http.StatusForbidden, response.Fail("Insufficient permissions"))
		c.Abort()
	}
}
