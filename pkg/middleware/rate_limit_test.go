package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

// asIdentity pins the limiter key so parallel tests do not share buckets.
func asIdentity(subject string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(identityKey, Identity{Subject: subject})
		c.Next()
	}
}

func limitedRouter(subject string, rps float64, burst int) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/ping", asIdentity(subject), RateLimitMiddleware(rps, burst), func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})
	return r
}

func hit(r *gin.Engine) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	return w
}

func TestRateLimitMiddleware_BurstThenReject(t *testing.T) {
	r := limitedRouter("rl-burst", 0.0001, 3)

	for i := 0; i < 3; i++ {
		w := hit(r)
		assert.Equal(t, http.StatusOK, w.Code, "request %d inside the burst", i)
	}

	w := hit(r)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "1", w.Header().Get("Retry-After"))
}

func TestRateLimitMiddleware_KeysAreIndependent(t *testing.T) {
	a := limitedRouter("rl-user-a", 0.0001, 1)
	b := limitedRouter("rl-user-b", 0.0001, 1)

	assert.Equal(t, http.StatusOK, hit(a).Code)
	assert.Equal(t, http.StatusTooManyRequests, hit(a).Code)

	// a different key still has its full budget
	assert.Equal(t, http.StatusOK, hit(b).Code)
}

func TestLimiterKey(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	key := limiterKey(c)
	assert.Contains(t, key, "ip:", "anonymous requests key by client IP")

	c.Set(identityKey, Identity{Subject: "u42"})
	assert.Equal(t, "sub:u42", limiterKey(c), "authenticated requests key by subject")
}
