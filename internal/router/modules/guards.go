package modules

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/oksasatya/go-jobboard-api/internal/domain/entity"
	"github.com/oksasatya/go-jobboard-api/internal/interface/middleware"
)

// Guards builds the per-route gate and rate limit middleware shared by the
// modules. A nil Redis or RateLimit=false turns the limiters into no-ops.
type Guards struct {
	Users     middleware.UserLoader
	Tokens    middleware.TokenVerifier
	Redis     *redis.Client
	RateLimit bool
}

func (g Guards) limit(rule middleware.Rule, subject middleware.KeyFunc, allow middleware.AllowFunc) gin.HandlerFunc {
	if !g.RateLimit {
		return func(c *gin.Context) { c.Next() }
	}
	return middleware.RateLimit(g.Redis, rule, subject, allow)
}

// ByIP limits anonymous endpoints per client IP and route.
func (g Guards) ByIP(max int) gin.HandlerFunc {
	return g.limit(middleware.PerMinute("", max), middleware.ByClientIP(), nil)
}

// Gate authenticates the caller with opts, then limits per user. Admins
// are not limited.
func (g Guards) Gate(opts middleware.GateOptions) []gin.HandlerFunc {
	return []gin.HandlerFunc{
		middleware.Authenticate(g.Users, g.Tokens, opts),
		g.limit(middleware.PerMinute("api", 120), middleware.ByUser(), middleware.AllowRoles(string(entity.RoleAdmin))),
	}
}

// Verified admits any verified user.
func (g Guards) Verified() []gin.HandlerFunc { return g.Gate(middleware.GateOptions{}) }

// Role admits verified users holding one of roles.
func (g Guards) Role(roles ...entity.Role) []gin.HandlerFunc { return g.Gate(middleware.Only(roles...)) }

// with appends h to the gate chain.
func with(chain []gin.HandlerFunc, h ...gin.HandlerFunc) []gin.HandlerFunc {
	out := make([]gin.HandlerFunc, 0, len(chain)+len(h))
	out = append(out, chain...)
	return append(out, h...)
}
