package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/conduitapp/articled/internal/models"
	"github.com/conduitapp/articled/internal/users"
	"github.com/conduitapp/articled/pkg/middleware"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeVerifier struct{}

type fakeToken struct{ sub string }

func (t fakeToken) Claims(v interface{}) error {
	m, ok := v.(*map[string]interface{})
	if !ok {
		return fmt.Errorf("unexpected claims target %T", v)
	}
	*m = map[string]interface{}{"sub": t.sub}
	return nil
}

func (fakeVerifier) Verify(_ context.Context, raw string) (middleware.Token, error) {
	if !strings.HasPrefix(raw, "user:") {
		return nil, fmt.Errorf("bad token")
	}
	return fakeToken{sub: strings.TrimPrefix(raw, "user:")}, nil
}

type profileResp struct {
	Profile struct {
		Username  string `json:"username"`
		Bio       string `json:"bio"`
		Following bool   `json:"following"`
	} `json:"profile"`
}

func profileRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	repo := users.NewMemoryUserRepository()
	repo.Put(&models.User{ID: "u-josh", Username: "josh", Bio: "writes articles"})
	repo.Put(&models.User{ID: "u-ana", Username: "ana"})

	r := gin.New()
	NewProfileHandler(users.NewService(repo)).Register(r, fakeVerifier{})
	return r
}

func doProfile(r *gin.Engine, method, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestProfileGet(t *testing.T) {
	r := profileRouter(t)

	w := doProfile(r, http.MethodGet, "/api/profiles/josh", "")
	require.Equal(t, http.StatusOK, w.Code)
	var resp profileResp
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "josh", resp.Profile.Username)
	assert.Equal(t, "writes articles", resp.Profile.Bio)
	assert.False(t, resp.Profile.Following, "anonymous viewers never see following=true")

	w = doProfile(r, http.MethodGet, "/api/profiles/ghost", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestProfileFollowCycle(t *testing.T) {
	r := profileRouter(t)

	w := doProfile(r, http.MethodPost, "/api/profiles/josh/follow", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doProfile(r, http.MethodPost, "/api/profiles/josh/follow", "user:u-ana")
	require.Equal(t, http.StatusOK, w.Code)
	var resp profileResp
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Profile.Following)

	// the followed state is visible on a plain profile read
	w = doProfile(r, http.MethodGet, "/api/profiles/josh", "user:u-ana")
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Profile.Following)

	w = doProfile(r, http.MethodDelete, "/api/profiles/josh/follow", "user:u-ana")
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Profile.Following)

	w = doProfile(r, http.MethodPost, "/api/profiles/ghost/follow", "user:u-ana")
	assert.Equal(t, http.StatusNotFound, w.Code)
}
