package middleware

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/ulule/limiter/v3"
	ginlimiter "github.com/ulule/limiter/v3/drivers/middleware/gin"
	"github.com/ulule/limiter/v3/drivers/store/memory"
	sredis "github.com/ulule/limiter/v3/drivers/store/redis"

	"github.com/sharath018/rental-management-backend/config"
)

// RateLimiter limits requests per client IP. It counts in Redis when an
// address is configured, so the limit holds across instances, and falls
// back to an in-process store otherwise.
func RateLimiter(cfg *config.Config) gin.HandlerFunc {
	rate := limiter.Rate{
		Period: 1 * time.Minute,
		Limit:  100,
	}

	var store limiter.Store
	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		s, err := sredis.NewStoreWithOptions(client, limiter.StoreOptions{
			Prefix: "ratelimit",
		})
		if err != nil {
			log.Printf("rate limiter: redis store unavailable, using memory store: %v", err)
			store = memory.NewStore()
		} else {
			store = s
		}
	} else {
		store = memory.NewStore()
	}

	return ginlimiter.NewMiddleware(limiter.New(store, rate))
}
