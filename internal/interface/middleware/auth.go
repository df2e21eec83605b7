package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-account-service/pkg/helpers"
	"github.com/oksasatya/go-account-service/pkg/response"
)

const CtxUserIDKey = "userID"

// Auth reads the bearer token from the Authorization header, validates it,
// and injects the subject id into the Gin context.
func Auth(jwt *helpers.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := strings.TrimSpace(strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer "))
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.Status{Success: false, Message: "No token provided"})
			return
		}
		claims, err := jwt.ParseToken(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.Status{Success: false, Message: "Invalid token"})
			return
		}
		c.Set(CtxUserIDKey, claims.UserID)
		c.Next()
	}
}
