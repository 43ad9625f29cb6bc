package middleware

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/apitemplate/go-user-api/internal/ratelimit"
	"github.com/apitemplate/go-user-api/pkg/response"
)

// KeyFunc builds the client-identifying part of a rate-limit key from the request.
type KeyFunc func(c *gin.Context) string

// AllowFunc returns true to bypass the limit for a request.
type AllowFunc func(c *gin.Context) bool

// KeyByClientIP identifies the client by the first address of the
// X-Forwarded-For chain, then X-Real-IP, then the literal "unknown".
// Requests that cannot be attributed to a distinct client share the
// "unknown" bucket; that is a documented limitation.
func KeyByClientIP() KeyFunc {
	return func(c *gin.Context) string {
		if xff := c.GetHeader("X-Forwarded-For"); xff != "" {
			first := strings.TrimSpace(strings.SplitN(xff, ",", 2)[0])
			if first != "" {
				return first
			}
		}
		if ip := strings.TrimSpace(c.GetHeader("X-Real-IP")); ip != "" {
			return ip
		}
		return "unknown"
	}
}

// Options configures one limiter instance. Instances with disjoint prefixes
// never share counters, even for the same client key.
type Options struct {
	Max     int
	Window  time.Duration
	Prefix  string
	Message string
}

// RateLimit enforces a fixed-window counter per key on the given store:
// - standard headers (limit/remaining/reset) on every response
// - 429 with Retry-After once the count exceeds Max within a window
// - fail-open when the store errors, so limiter outages never take the API down
func RateLimit(store ratelimit.Store, opts Options, keyFn KeyFunc, allow AllowFunc) gin.HandlerFunc {
	if store == nil || opts.Max <= 0 || opts.Window <= 0 || keyFn == nil {
		return func(c *gin.Context) { c.Next() }
	}
	return func(c *gin.Context) {
		if allow != nil && allow(c) {
			c.Next()
			return
		}
		// skip CORS preflight
		if strings.EqualFold(c.Request.Method, http.MethodOptions) {
			c.Next()
			return
		}

		key := opts.Prefix + ":" + keyFn(c)
		count, resetAt, err := store.Increment(c.Request.Context(), key, opts.Window)
		if err != nil {
			c.Next()
			return
		}

		remaining := opts.Max - count
		if remaining < 0 {
			remaining = 0
		}
		c.Header("X-RateLimit-Limit", strconv.Itoa(opts.Max))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(ceilUnix(resetAt), 10))

		if count > opts.Max {
			retryAfter := int64(time.Until(resetAt)+time.Second-1) / int64(time.Second)
			if retryAfter < 0 {
				retryAfter = 0
			}
			c.Header("Retry-After", strconv.FormatInt(retryAfter, 10))
			response.Abort(c, http.StatusTooManyRequests, opts.Message, nil)
			return
		}
		c.Next()
	}
}

func ceilUnix(t time.Time) int64 {
	sec := t.Unix()
	if t.Nanosecond() > 0 {
		sec++
	}
	return sec
}
