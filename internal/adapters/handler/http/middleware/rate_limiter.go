package middleware

import (
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/comitanigiacomo/studylog-engine/internal/config"
)

const rateLimitKeyPrefix = "studylog:rate:"

// RateLimitKey is the Redis counter of one client IP.
func RateLimitKey(clientIP string) string {
	return rateLimitKeyPrefix + clientIP
}

// RateLimiterMiddleware allows cfg.Requests per client IP in each
// cfg.Window, counted in a Redis key that expires with the window. Redis
// failures let the request through.
func RateLimiterMiddleware(rdb *redis.Client, cfg config.RateLimitConfig) gin.HandlerFunc {
	limit := int64(cfg.Requests)
	limitHeader := strconv.Itoa(cfg.Requests)

	return func(c *gin.Context) {
		key := RateLimitKey(c.ClientIP())
		ctx := c.Request.Context()

		count, err := rdb.Incr(ctx, key).Result()
		if err != nil {
			log.Printf("[CACHE] Rate limiter skipped for %s: %v", c.ClientIP(), err)
			c.Next()
			return
		}

		// The first request of a window starts its clock.
		if count == 1 {
			if err := rdb.Expire(ctx, key, cfg.Window).Err(); err != nil {
				log.Printf("[CACHE] Rate limiter could not start window for %s, dropping counter: %v", c.ClientIP(), err)
				rdb.Del(ctx, key)
				c.Next()
				return
			}
		}

		ttl, err := rdb.TTL(ctx, key).Result()
		if err != nil || ttl < 0 {
			ttl = cfg.Window
		}

		c.Header("X-RateLimit-Limit", limitHeader)
		c.Header("X-RateLimit-Remaining", strconv.FormatInt(max(0, limit-count), 10))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(time.Now().Add(ttl).Unix(), 10))

		if count > limit {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"status":     "error",
				"message":    "Too many requests. Slow down!",
				"retry_in_s": int(ttl.Round(time.Second).Seconds()),
			})
			return
		}

		c.Next()
	}
}
