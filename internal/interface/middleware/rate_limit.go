package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/oksasatya/go-jobboard-api/pkg/response"
)

const rateKeyPrefix = "jobboard:rl:"

// Rule allows Max requests per Window for one subject. An empty Name scopes
// the counter to the matched route.
type Rule struct {
	Name   string
	Max    int
	Window time.Duration
}

// PerMinute is the common Rule shape.
func PerMinute(name string, max int) Rule {
	return Rule{Name: name, Max: max, Window: time.Minute}
}

func (r Rule) key(c *gin.Context, subject string) string {
	scope := r.Name
	if scope == "" {
		if scope = c.FullPath(); scope == "" {
			scope = c.Request.URL.Path
		}
	}
	return rateKeyPrefix + scope + ":" + subject
}

// KeyFunc names the subject a request is counted against.
type KeyFunc func(c *gin.Context) string

// AllowFunc returns true to skip the limiter for a request.
type AllowFunc func(*gin.Context) bool

func ipFromCtx(c *gin.Context) string {
	if ip := c.GetString("real_ip"); ip != "" {
		return ip
	}
	if ip := c.ClientIP(); ip != "" {
		return ip
	}
	return "unknown"
}

// ByClientIP counts requests per client address.
func ByClientIP() KeyFunc {
	return func(c *gin.Context) string { return "ip:" + ipFromCtx(c) }
}

// ByUser counts requests per authenticated user, falling back to the client
// address. It must run after Authenticate.
func ByUser() KeyFunc {
	return func(c *gin.Context) string {
		if uid := c.GetString(CtxUserIDKey); uid != "" {
			return "user:" + uid
		}
		return "ip:" + ipFromCtx(c)
	}
}

// hitScript counts one request and reports the window's remaining time in ms.
var hitScript = redis.NewScript(`
local n = redis.call("INCR", KEYS[1])
if n == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return {n, redis.call("PTTL", KEYS[1])}
`)

type quota struct {
	Remaining int
	ResetSec  int
	Exceeded  bool
}

func quotaFor(count, pttlMS int64, max int) quota {
	q := quota{Remaining: max - int(count), Exceeded: count > int64(max)}
	if q.Remaining < 0 {
		q.Remaining = 0
	}
	if pttlMS > 0 {
		q.ResetSec = int((pttlMS + 999) / 1000)
	}
	return q
}

func hit(c *gin.Context, rdb *redis.Client, key string, window time.Duration) (count, pttl int64, err error) {
	res, err := hitScript.Run(c.Request.Context(), rdb, []string{key}, window.Milliseconds()).Int64Slice()
	if err != nil {
		return 0, 0, err
	}
	if len(res) == 2 {
		return res[0], res[1], nil
	}
	return 0, 0, redis.Nil
}

// RateLimit enforces rule with a fixed Redis window. A nil client or an
// empty rule disables it, and Redis errors let the request through.
func RateLimit(rdb *redis.Client, rule Rule, subject KeyFunc, allow AllowFunc) gin.HandlerFunc {
	if rdb == nil || rule.Max <= 0 || rule.Window <= 0 || subject == nil {
		return func(c *gin.Context) { c.Next() }
	}
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions || (allow != nil && allow(c)) {
			c.Next()
			return
		}
		count, pttl, err := hit(c, rdb, rule.key(c, subject(c)), rule.Window)
		if err != nil {
			c.Next()
			return
		}
		q := quotaFor(count, pttl, rule.Max)
		c.Header("X-RateLimit-Limit", strconv.Itoa(rule.Max))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(q.Remaining))
		c.Header("X-RateLimit-Reset", strconv.Itoa(q.ResetSec))
		if q.Exceeded {
			c.Header("Retry-After", strconv.Itoa(q.ResetSec))
			response.Abort(c, http.StatusTooManyRequests, "too many requests, please try again later", nil)
			return
		}
		c.Next()
	}
}
