package middleware

import (
	"net/http"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func redisLimitedRouter(t *testing.T, subject string, rps float64, burst int) *gin.Engine {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/ping", asIdentity(subject), RedisRateLimitMiddleware(client, rps, burst, time.Minute), func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})
	return r
}

func TestRedisRateLimitMiddleware_WindowBudget(t *testing.T) {
	// rps=0 with burst=2 allows exactly two requests per window
	r := redisLimitedRouter(t, "redis-rl-a", 0, 2)

	assert.Equal(t, http.StatusOK, hit(r).Code)
	assert.Equal(t, http.StatusOK, hit(r).Code)

	w := hit(r)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "60", w.Header().Get("Retry-After"))
}

func TestRedisRateLimitMiddleware_NilClientFallsBack(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/ping", asIdentity("redis-rl-fallback"), RedisRateLimitMiddleware(nil, 0.0001, 1, time.Minute), func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})

	// behaves like the in-memory limiter
	assert.Equal(t, http.StatusOK, hit(r).Code)
	assert.Equal(t, http.StatusTooManyRequests, hit(r).Code)
}

func TestRedisRateLimitMiddleware_RedisDownFailsClosed(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/ping", asIdentity("redis-rl-down"), RedisRateLimitMiddleware(client, 10, 10, time.Minute), func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})

	mr.Close()
	w := hit(r)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
