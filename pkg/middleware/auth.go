package middleware

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Token is the minimal interface for a verified token that can expose claims.
type Token interface {
	Claims(v interface{}) error
}

// Verifier is the minimal interface the auth middleware depends on.
type Verifier interface {
	Verify(ctx context.Context, raw string) (Token, error)
}

// Identity is the resolved viewer of a request. The zero value is the
// anonymous viewer; handlers branch on this tag instead of poking at raw
// claims.
type Identity struct {
	Subject string // user ID, empty for anonymous
}

func (id Identity) Anonymous() bool { return id.Subject == "" }

const identityKey = "identity"

// IdentityFrom returns the identity stored by RequireAuth/OptionalAuth.
// Routes without either middleware see the anonymous identity.
func IdentityFrom(c *gin.Context) Identity {
	if v, ok := c.Get(identityKey); ok {
		if id, ok := v.(Identity); ok {
			return id
		}
	}
	return Identity{}
}

// resolve extracts and verifies the bearer token, returning the identity or
// an error. Shared by both entry points; only they decide what a failure
// means.
func resolve(c *gin.Context, ver Verifier) (Identity, error) {
	auth := c.GetHeader("Authorization")
	if auth == "" {
		return Identity{}, fmt.Errorf("missing Authorization header")
	}
	var raw string
	if n, _ := fmt.Sscanf(auth, "Bearer %s", &raw); n != 1 {
		return Identity{}, fmt.Errorf("invalid Authorization header")
	}
	tok, err := ver.Verify(c.Request.Context(), raw)
	if err != nil {
		return Identity{}, err
	}
	var claims map[string]interface{}
	if err := tok.Claims(&claims); err != nil {
		return Identity{}, err
	}
	sub, _ := claims["sub"].(string)
	if sub == "" {
		return Identity{}, fmt.Errorf("token carries no subject")
	}
	return Identity{Subject: sub}, nil
}

// RequireAuth rejects requests without a valid bearer token with 401 before
// the handler runs.
func RequireAuth(ver Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := resolve(c, ver)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		c.Set(identityKey, id)
		c.Next()
	}
}

// OptionalAuth resolves the viewer when credentials are present and valid,
// and downgrades to the anonymous identity otherwise. It never fails the
// request.
func OptionalAuth(ver Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := resolve(c, ver)
		if err != nil {
			id = Identity{}
		}
		c.Set(identityKey, id)
		c.Next()
	}
}
