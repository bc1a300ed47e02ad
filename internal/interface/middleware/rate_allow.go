package middleware

import (
	"net"

	"github.com/gin-gonic/gin"
)

// AllowPrivateIP bypasses the limiter for loopback and private-range clients.
func AllowPrivateIP() AllowFunc {
	return func(c *gin.Context) bool {
		parsed := net.ParseIP(ipFromCtx(c))
		if parsed == nil {
			return false
		}
		return parsed.IsLoopback() || parsed.IsPrivate()
	}
}

// AllowRoles bypasses the limiter for authenticated users with one of roles.
// It only sees users once Authenticate has run.
func AllowRoles(roles ...string) AllowFunc {
	return func(c *gin.Context) bool {
		u, ok := CurrentUser(c)
		if !ok {
			return false
		}
		for _, r := range roles {
			if string(u.Role) == r {
				return true
			}
		}
		return false
	}
}
