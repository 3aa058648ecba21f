package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/ulule/limiter/v3"
	ginlimiter "github.com/ulule/limiter/v3/drivers/middleware/gin"
	memory "github.com/ulule/limiter/v3/drivers/store/memory"
	sredis "github.com/ulule/limiter/v3/drivers/store/redis"
	"go.uber.org/zap"

	"github.com/sharath018/potluck-rsvp-backend/utils"
)

// RateLimiter limits requests per client IP. Counters live in Redis when a
// client is given so several instances share them, otherwise in memory.
// The IP is gin's ClientIP, so forwarded headers only count from trusted proxies.
func RateLimiter(perMinute int64, client *redis.Client) gin.HandlerFunc {
	return newLimiter("potluck:rl:", perMinute, client)
}

// SubmitLimiter is a stricter limit for the public RSVP form.
func SubmitLimiter(perMinute int64, client *redis.Client) gin.HandlerFunc {
	return newLimiter("potluck:rl-submit:", perMinute, client)
}

func newLimiter(prefix string, perMinute int64, client *redis.Client) gin.HandlerFunc {
	if perMinute <= 0 {
		perMinute = 100
	}
	rate := limiter.Rate{
		Period: 1 * time.Minute,
		Limit:  perMinute,
	}

	var store limiter.Store = memory.NewStoreWithOptions(limiter.StoreOptions{
		Prefix:          prefix,
		CleanUpInterval: 5 * time.Minute,
	})
	if client != nil {
		redisStore, err := sredis.NewStoreWithOptions(client, limiter.StoreOptions{Prefix: prefix})
		if err != nil {
			utils.Log.Warn("redis rate limit store unavailable, using memory", zap.Error(err))
		} else {
			store = redisStore
		}
	}

	instance := limiter.New(store, rate)
	return ginlimiter.NewMiddleware(instance, ginlimiter.WithKeyGetter(func(c *gin.Context) string {
		return c.ClientIP()
	}))
}
