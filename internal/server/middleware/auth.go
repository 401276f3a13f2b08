package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// Auth checks for a valid bearer token in the Authorization header. An empty
// key list disables auth, which suits local single-user use.
func Auth(keys []string) gin.HandlerFunc {
	valid := make(map[string]bool, len(keys))
	for _, k := range keys {
		valid[k] = true
	}

	return func(c *gin.Context) {
		if len(valid) == 0 {
			c.Next()
			return
		}

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing Authorization header"})
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" || !valid[parts[1]] {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid API key"})
			return
		}

		c.Next()
	}
}
