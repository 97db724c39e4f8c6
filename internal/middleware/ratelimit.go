package middleware

import (
	"context"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// RateStore is the slice of the redis API the limiter needs.
// *redis.Client satisfies it.
type RateStore interface {
	Incr(ctx context.Context, key string) *redis.IntCmd
	Expire(ctx context.Context, key string, expiration time.Duration) *redis.BoolCmd
}

// RateLimit counts requests per client IP in fixed windows backed by
// redis. When the store errors the request is let through: losing rate
// limiting is better than losing the API.
func RateLimit(store RateStore, limit int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := "ratelimit:" + c.ClientIP() + ":" + strconv.FormatInt(time.Now().Unix()/int64(window.Seconds()), 10)

		n, err := store.Incr(c.Request.Context(), key).Result()
		if err != nil {
			log.Printf("[ratelimit][warn] redis incr failed: %v", err)
			c.Next()
			return
		}
		if n == 1 {
			store.Expire(c.Request.Context(), key, window)
		}
		if n > int64(limit) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"success": false,
				"message": "Too many requests, please try again later",
			})
			return
		}
		c.Next()
	}
}
