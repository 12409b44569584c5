package middleware

import (
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/oksasatya/fashion-studio/pkg/response"
)

const rateKeyPrefix = "fs:rl:"

// KeyFunc names the bucket a request counts against.
type KeyFunc func(c *gin.Context) string

// SkipFunc reports whether a request is exempt from the limit.
type SkipFunc func(*gin.Context) bool

// Rule is one fixed-window limit. Name separates buckets of different rules
// that share a key, e.g. the API-wide and the health limit for the same IP.
type Rule struct {
	Name   string
	Limit  int
	Window time.Duration
	Key    KeyFunc
	Skip   SkipFunc
}

// ipFromCtx prefers the address RealIP resolved.
func ipFromCtx(c *gin.Context) string {
	if ip := c.GetString(realIPKey); ip != "" {
		return ip
	}
	if ip := c.ClientIP(); ip != "" {
		return ip
	}
	return "unknown"
}

func KeyByIP() KeyFunc {
	return func(c *gin.Context) string { return "ip:" + ipFromCtx(c) }
}

// KeyByIPAndPath uses the route pattern so /stores/:storeId is one bucket.
func KeyByIPAndPath() KeyFunc {
	return func(c *gin.Context) string {
		route := c.FullPath()
		if route == "" {
			route = c.Request.URL.Path
		}
		return "route:" + route + ":ip:" + ipFromCtx(c)
	}
}

// KeyByUserID limits authenticated callers per user and anyone else per IP.
func KeyByUserID() KeyFunc {
	return func(c *gin.Context) string {
		if uid := c.GetString(CtxUserIDKey); uid != "" {
			return "user:" + uid
		}
		return "anon:ip:" + ipFromCtx(c)
	}
}

// AllowPrivateIP exempts loopback and private-range clients.
func AllowPrivateIP() SkipFunc {
	return func(c *gin.Context) bool {
		ip := net.ParseIP(ipFromCtx(c))
		return ip != nil && (ip.IsLoopback() || ip.IsPrivate())
	}
}

// hitScript increments the bucket, starts the window on the first hit and
// returns {count, remaining window in ms}.
var hitScript = redis.NewScript(`
local n = redis.call("INCR", KEYS[1])
if n == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return {n, redis.call("PTTL", KEYS[1])}
`)

// quota is the outcome of one hit against a rule.
type quota struct {
	limit     int
	remaining int
	resetSec  int
	exceeded  bool
}

func newQuota(limit int, count, pttlMs int64) quota {
	q := quota{limit: limit, remaining: max(limit-int(count), 0), exceeded: count > int64(limit)}
	if pttlMs > 0 {
		q.resetSec = int((pttlMs + 999) / 1000)
	}
	return q
}

func (q quota) writeHeaders(c *gin.Context) {
	c.Header("X-RateLimit-Limit", strconv.Itoa(q.limit))
	c.Header("X-RateLimit-Remaining", strconv.Itoa(q.remaining))
	c.Header("X-RateLimit-Reset", strconv.Itoa(q.resetSec))
	if q.exceeded && q.resetSec > 0 {
		c.Header("Retry-After", strconv.Itoa(q.resetSec))
	}
}

// RateLimit enforces rule with a redis fixed window. A nil client or an
// incomplete rule disables it; redis errors let the request through.
// OPTIONS preflights are never counted.
func RateLimit(rdb *redis.Client, rule Rule) gin.HandlerFunc {
	if rdb == nil || rule.Limit <= 0 || rule.Window <= 0 || rule.Key == nil {
		return func(c *gin.Context) { c.Next() }
	}
	prefix := rateKeyPrefix + rule.Name + ":"
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions || (rule.Skip != nil && rule.Skip(c)) {
			c.Next()
			return
		}
		res, err := hitScript.Run(c.Request.Context(), rdb, []string{prefix + rule.Key(c)}, rule.Window.Milliseconds()).Int64Slice()
		if err != nil || len(res) != 2 {
			c.Next()
			return
		}
		q := newQuota(rule.Limit, res[0], res[1])
		q.writeHeaders(c)
		if q.exceeded {
			response.Abort(c, http.StatusTooManyRequests, "too many requests, retry in "+strconv.Itoa(q.resetSec)+"s", nil)
			return
		}
		c.Next()
	}
}
