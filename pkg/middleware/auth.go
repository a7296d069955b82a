package middleware

import (
	"net/http"
	"strings"

	"learnhub/pkg/cache"
	"learnhub/pkg/jwt"
	"learnhub/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// Context keys set for downstream handlers.
const (
	ContextUserID    = "user_id"
	ContextUserEmail = "user_email"
	ContextUserRole  = "user_role"
	ContextToken     = "token"
	ContextTokenExp  = "token_exp"
)

// AuthMiddleware verifies the bearer token before any handler logic runs.
// redisClient may be nil; then logout revocation is not checked.
func AuthMiddleware(jwtService *jwt.Service, redisClient *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, response.Fail("Token not found"))
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, response.Fail("Invalid token"))
			c.Abort()
			return
		}

		tokenString := parts[1]
		claims, err := jwtService.ValidateToken(tokenString)
		if err != nil {
			c.JSON(http.StatusUnauthorized, response.Fail("Invalid token"))
			c.Abort()
			return
		}

		if cache.IsTokenDenied(c.Request.Context(), redisClient, tokenString) {
			c.JSON(http.StatusUnauthorized, response.Fail("Invalid token"))
			c.Abort()
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextUserEmail, claims.Email)
		c.Set(ContextUserRole, claims.Role)
		c.Set(ContextToken, tokenString)
		if claims.ExpiresAt != nil {
			c.Set(ContextTokenExp, claims.ExpiresAt.Time)
		}
		c.Next()
	}
}
