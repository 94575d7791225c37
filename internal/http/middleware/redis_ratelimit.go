package middleware

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// RedisRateLimiter is a fixed-window counter shared by every replica: the
// first request of a window creates "<prefix>:<key>" with INCR and arms its
// expiry; requests past Limit within the window get 429.
type RedisRateLimiter struct {
	Client redis.UniversalClient
	Limit  int64
	Window time.Duration
	KeyFn  KeyFunc
	Prefix string
}

// NewRedisRateLimiter allows limit requests per window and key. limit < 1 is
// raised to 1.
func NewRedisRateLimiter(client redis.UniversalClient, limit int, window time.Duration, keyFn KeyFunc) *RedisRateLimiter {
	if limit < 1 {
		limit = 1
	}
	return &RedisRateLimiter{
		Client: client,
		Limit:  int64(limit),
		Window: window,
		KeyFn:  keyFn,
		Prefix: "idolmatch:rl",
	}
}

// Allow counts one request for key and reports whether it fits the window,
// plus the time left until the window resets.
func (rl *RedisRateLimiter) Allow(ctx context.Context, key string) (bool, time.Duration, error) {
	k := rl.Prefix + ":" + key
	n, err := rl.Client.Incr(ctx, k).Result()
	if err != nil {
		return false, 0, err
	}
	if n == 1 {
		if err := rl.Client.Expire(ctx, k, rl.Window).Err(); err != nil {
			return false, 0, err
		}
	}
	if n <= rl.Limit {
		return true, 0, nil
	}
	ttl, err := rl.Client.TTL(ctx, k).Result()
	if err != nil || ttl < 0 {
		// a key that lost its expiry would block the caller forever
		_ = rl.Client.Expire(ctx, k, rl.Window).Err()
		ttl = rl.Window
	}
	return false, ttl, nil
}

// Handler enforces the window. Redis failures let the request through with a
// warning; replays are never counted.
func (rl *RedisRateLimiter) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if IsRateBypass(c) {
			c.Next()
			return
		}
		ok, retry, err := rl.Allow(c.Request.Context(), rl.KeyFn(c))
		if err != nil {
			LoggerFrom(c).Warn().Err(err).Msg("rate limiter unavailable")
			c.Next()
			return
		}
		if !ok {
			tooManyRequests(c, retry)
			return
		}
		c.Next()
	}
}
