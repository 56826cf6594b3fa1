package middleware

import (
	"github.com/gin-gonic/gin"
)

const realIPKey = "real_ip"

// RealIP stores the client IP in the Gin context. Forwarding headers count only
// when the engine trusts the peer (SetTrustedProxies, TrustedPlatform); a
// direct caller cannot choose its own address.
func RealIP() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(realIPKey, c.ClientIP())
		c.Next()
	}
}
