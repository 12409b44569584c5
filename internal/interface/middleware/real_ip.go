package middleware

import (
	"net"
	"strings"

	"github.com/gin-gonic/gin"
)

const realIPKey = "real_ip"

// RealIP stores the client address under "real_ip", preferring
// CF-Connecting-IP, then the left-most X-Forwarded-For entry, then gin's
// ClientIP.
func RealIP() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(realIPKey, clientAddr(c))
		c.Next()
	}
}

func clientAddr(c *gin.Context) string {
	if ip := net.ParseIP(strings.TrimSpace(c.GetHeader("CF-Connecting-IP"))); ip != nil {
		return ip.String()
	}
	first, _, _ := strings.Cut(c.GetHeader("X-Forwarded-For"), ",")
	if ip := net.ParseIP(strings.TrimSpace(first)); ip != nil {
		return ip.String()
	}
	return c.ClientIP()
}
