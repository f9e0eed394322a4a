package middleware

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// LoginLimiterConfig defines how many login attempts an IP gets per window.
type LoginLimiterConfig struct {
	MaxAttempts int
	Window      time.Duration
}

// LoginLimiter throttles credential guessing on the login route using a
// per-IP Redis counter.
type LoginLimiter struct {
	redis  *redis.Client
	ctx    context.Context
	config LoginLimiterConfig
}

func NewLoginLimiter(redisClient *redis.Client, config LoginLimiterConfig) *LoginLimiter {
	return &LoginLimiter{
		redis:  redisClient,
		ctx:    context.Background(),
		config: config,
	}
}

// Middleware returns the gin middleware for the login route. With no
// Redis client configured the limiter is inert.
func (ll *LoginLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if ll.redis == nil {
			c.Next()
			return
		}

		clientIP := c.ClientIP()

		allowed, retryAfter, err := ll.CheckLimit(clientIP)
		if err != nil {
			// Fail open: a broken limiter must not lock everyone out
			c.Next()
			return
		}

		if !allowed {
			c.Header("Retry-After", fmt.Sprintf("%d", int(retryAfter.Seconds())))
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error":       "Too many login attempts. Please try again later.",
				"retry_after": int(retryAfter.Seconds()),
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

// CheckLimit counts an attempt for ip inside the sliding window.
// Returns: (allowed bool, retryAfter duration, error)
func (ll *LoginLimiter) CheckLimit(ip string) (bool, time.Duration, error) {
	key := fmt.Sprintf("loginattempt:%s", ip)

	// INCR with EXPIRE gives an atomic windowed counter
	count, err := ll.redis.Incr(ll.ctx, key).Result()
	if err != nil {
		return false, 0, err
	}

	// Set expiry on first attempt (count = 1)
	if count == 1 {
		if err := ll.redis.Expire(ll.ctx, key, ll.config.Window).Err(); err != nil {
			return false, 0, err
		}
	}

	if count > int64(ll.config.MaxAttempts) {
		ttl, err := ll.redis.TTL(ll.ctx, key).Result()
		if err != nil {
			ttl = ll.config.Window
		}
		return false, ttl, nil
	}

	return true, 0, nil
}

// Reset clears the attempt counter for ip, used after a successful login.
func (ll *LoginLimiter) Reset(ip string) error {
	if ll.redis == nil {
		return nil
	}
	return ll.redis.Del(ll.ctx, fmt.Sprintf("loginattempt:%s", ip)).Err()
}
