package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"sync"
	"time"

	"salon-booking/internal/handler/httperr"
	"salon-booking/internal/pkg/config"
	"salon-booking/internal/pkg/errs"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"
)

var (
	errRateLimited        = httperr.New("rate limit exceeded")
	errLimiterUnavailable = httperr.New("rate limiter unavailable")
)

var fixedWindowScript = redis.NewScript(`
local current = redis.call("INCR", KEYS[1])
if current == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return current
`)

// RateLimiter limits requests per caller and route. Counters live in Redis when a
// client is configured so that every instance shares them; otherwise each
// instance keeps token buckets in memory.
type RateLimiter struct {
	rdb      *redis.Client
	limit    int
	window   time.Duration
	failOpen bool
	logger   *slog.Logger

	now func() time.Time

	mu        sync.Mutex
	buckets   map[string]*bucket
	lastSweep time.Time
}

type bucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func NewRateLimiter(rdb *redis.Client, cfg config.RedisConfig, logger *slog.Logger) *RateLimiter {
	limit := cfg.RateLimit
	if limit <= 0 {
		limit = 60
	}
	window := cfg.RateLimitWindow
	if window <= 0 {
		window = time.Minute
	}
	return &RateLimiter{
		rdb:      rdb,
		limit:    limit,
		window:   window,
		failOpen: cfg.FailOpen,
		logger:   logger,
		now:      time.Now,
		buckets:  make(map[string]*bucket),
	}
}

// Limit guards one route; scope keeps counters of different routes apart.
func (rl *RateLimiter) Limit(scope string) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := "rl:" + scope + ":" + callerKey(c)

		allowed, err := rl.allow(c.Request.Context(), key)
		if err != nil {
			rl.logger.Warn("redis rate limiter error", "scope", scope, "error", err.Error())
			if !rl.failOpen {
				httperr.AbortWithError(c, http.StatusServiceUnavailable, errLimiterUnavailable, "Rate limiter unavailable", nil)
				return
			}
			allowed = rl.allowLocal(key)
		}
		if !allowed {
			rl.logger.Warn("Rate limit exceeded", "scope", scope, "caller", key)
			c.Header("Retry-After", strconv.Itoa(int(rl.window.Seconds())))
			httperr.AbortWithError(c, http.StatusTooManyRequests, errRateLimited, "Rate limit exceeded. Try again later.", nil)
			return
		}
		c.Next()
	}
}

func (rl *RateLimiter) allow(ctx context.Context, key string) (bool, error) {
	if rl.rdb == nil {
		return rl.allowLocal(key), nil
	}
	count, err := rl.incr(ctx, key)
	if err != nil {
		return false, err
	}
	return count <= int64(rl.limit), nil
}

func (rl *RateLimiter) incr(ctx context.Context, key string) (int64, error) {
	res, err := fixedWindowScript.Run(ctx, rl.rdb, []string{key}, rl.window.Milliseconds()).Result()
	if err != nil {
		return 0, err
	}
	switch v := res.(type) {
	case int64:
		return v, nil
	case string:
		return strconv.ParseInt(v, 10, 64)
	default:
		return 0, errs.Newf("unexpected redis script result type %T", res)
	}
}

func (rl *RateLimiter) allowLocal(key string) bool {
	now := rl.now()
	rl.mu.Lock()
	defer rl.mu.Unlock()

	rl.sweep(now)
	b, ok := rl.buckets[key]
	if !ok {
		b = &bucket{limiter: rate.NewLimiter(rate.Every(rl.window/time.Duration(rl.limit)), rl.limit)}
		rl.buckets[key] = b
	}
	b.lastSeen = now
	return b.limiter.AllowN(now, 1)
}

// sweep drops buckets idle for a whole window. Such a bucket has refilled
// completely, so a fresh one answers the same. Runs at most once per window.
func (rl *RateLimiter) sweep(now time.Time) {
	if now.Sub(rl.lastSweep) < rl.window {
		return
	}
	for key, b := range rl.buckets {
		if now.Sub(b.lastSeen) >= rl.window {
			delete(rl.buckets, key)
		}
	}
	rl.lastSweep = now
}

func callerKey(c *gin.Context) string {
	if id, ok := GetUserID(c); ok {
		return "user:" + id.String()
	}
	return "ip:" + c.ClientIP()
}
