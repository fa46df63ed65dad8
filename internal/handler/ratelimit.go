package handler

import (
	"math"
	"net/http"
	"strconv"
	"time"

	"choicefiction/internal/models"

	ratelimit "github.com/JGLTechnologies/gin-rate-limit"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// NewRedisRateLimitStore - счетчики лимита в Redis, общие для всех экземпляров сервиса.
func NewRedisRateLimitStore(client *redis.Client, perMinute uint) ratelimit.Store {
	return ratelimit.RedisStore(&ratelimit.RedisOptions{
		RedisClient: client,
		Rate:        time.Minute,
		Limit:       perMinute,
	})
}

// NewMemoryRateLimitStore - счетчики в памяти процесса (без Redis и в тестах).
func NewMemoryRateLimitStore(perMinute uint) ratelimit.Store {
	return ratelimit.InMemoryStore(&ratelimit.InMemoryOptions{
		Rate:  time.Minute,
		Limit: perMinute,
	})
}

// NewRateLimiter ограничивает частоту запросов по IP клиента.
func NewRateLimiter(store ratelimit.Store, logger *zap.Logger) gin.HandlerFunc {
	return ratelimit.RateLimiter(store, &ratelimit.Options{
		ErrorHandler: func(c *gin.Context, info ratelimit.Info) {
			logger.Warn("Rate limit exceeded",
				zap.String("clientIP", c.ClientIP()),
				zap.Time("resetTime", info.ResetTime),
				zap.String("path", c.Request.URL.Path),
			)
			c.Header("Retry-After", strconv.Itoa(int(math.Ceil(time.Until(info.ResetTime).Seconds()))))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, models.ErrorResponse{Error: models.MsgTooManyRequests})
		},
		KeyFunc: func(c *gin.Context) string {
			return c.ClientIP()
		},
	})
}
