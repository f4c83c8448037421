package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/veritylabs/verityai/src/api/auth"
)

// JWT gates a route behind a bearer token and stores the verified user id
// in the request context under "userID".
func JWT(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		bearer := c.GetHeader("Authorization")
		if !strings.HasPrefix(bearer, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   "Access denied. No token provided.",
			})
			return
		}

		userID, err := auth.UserIDFromToken(bearer[7:], secret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   "Invalid or expired token",
			})
			return
		}

		c.Set("userID", userID)
		c.Next()
	}
}
