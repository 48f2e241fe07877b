package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RequireAuthHeader gates the external proxy's mutating routes on the mere
// presence of an Authorization header. The check is intentionally shallow:
// write access is enforced by the backing store's own rules, this layer
// only turns anonymous writes away with the proxy's bare error shape.
func RequireAuthHeader() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		c.Next()
	}
}
