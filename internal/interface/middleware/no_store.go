package middleware

import "github.com/gin-gonic/gin"

// NoStore marks responses as uncacheable. API bodies carry account data and tokens.
func NoStore() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Cache-Control", "no-store")
		c.Header("Pragma", "no-cache")
		c.Next()
	}
}
