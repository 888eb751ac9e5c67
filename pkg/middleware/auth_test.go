package middleware

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type fakeToken struct {
	claims map[string]interface{}
}

func (t fakeToken) Claims(v interface{}) error {
	m, ok := v.(*map[string]interface{})
	if !ok {
		return fmt.Errorf("unexpected claims target %T", v)
	}
	*m = t.claims
	return nil
}

// fakeVerifier accepts "user:<id>" tokens; "nosub" verifies but carries no
// subject claim.
type fakeVerifier struct{}

func (fakeVerifier) Verify(_ context.Context, raw string) (Token, error) {
	if raw == "nosub" {
		return fakeToken{claims: map[string]interface{}{}}, nil
	}
	if strings.HasPrefix(raw, "user:") {
		return fakeToken{claims: map[string]interface{}{"sub": strings.TrimPrefix(raw, "user:")}}, nil
	}
	return nil, fmt.Errorf("bad token")
}

func authRouter(required bool) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	mw := OptionalAuth(fakeVerifier{})
	if required {
		mw = RequireAuth(fakeVerifier{})
	}
	r.GET("/whoami", mw, func(c *gin.Context) {
		id := IdentityFrom(c)
		c.JSON(http.StatusOK, gin.H{"subject": id.Subject, "anonymous": id.Anonymous()})
	})
	return r
}

func get(r *gin.Engine, header string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRequireAuth(t *testing.T) {
	r := authRouter(true)

	w := get(r, "Bearer user:u1")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"subject":"u1"`)

	cases := map[string]string{
		"missing header":   "",
		"not bearer":       "Basic dXNlcjpwYXNz",
		"invalid token":    "Bearer garbage",
		"no subject claim": "Bearer nosub",
	}
	for name, header := range cases {
		t.Run(name, func(t *testing.T) {
			w := get(r, header)
			assert.Equal(t, http.StatusUnauthorized, w.Code)
		})
	}
}

func TestOptionalAuth(t *testing.T) {
	r := authRouter(false)

	w := get(r, "Bearer user:u1")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"subject":"u1"`)

	// any failure downgrades to anonymous instead of rejecting
	for _, header := range []string{"", "Bearer garbage", "Bearer nosub"} {
		w := get(r, header)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"anonymous":true`)
	}
}

func TestIdentityFromWithoutMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	id := IdentityFrom(c)
	assert.True(t, id.Anonymous())
}
