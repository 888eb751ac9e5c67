package tokens

import (
	"context"
	"fmt"
	"time"

	"github.com/conduitapp/articled/internal/config"
	"github.com/conduitapp/articled/internal/models"
	"github.com/conduitapp/articled/pkg/middleware"
	"github.com/golang-jwt/jwt/v5"
)

// GenerateAccessToken creates a signed HS256 access token for the user. The
// external identity service normally mints these; this helper exists for
// tooling and tests that need a valid token against the same secret.
func GenerateAccessToken(cfg *config.Config, u *models.User, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"sub":      u.ID,
		"username": u.Username,
		"email":    u.Email,
		"iat":      time.Now().Unix(),
		"exp":      time.Now().Add(ttl).Unix(),
	}
	jt := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return jt.SignedString([]byte(cfg.JWT.Secret))
}

// HSVerifier verifies HS256 tokens against a shared secret and satisfies
// middleware.Verifier. Used when no OIDC issuer is configured.
type HSVerifier struct {
	secret []byte
}

func NewHSVerifier(secret string) *HSVerifier {
	return &HSVerifier{secret: []byte(secret)}
}

type hsToken struct {
	claims jwt.MapClaims
}

func (t *hsToken) Claims(v interface{}) error {
	if mm, ok := v.(*map[string]interface{}); ok {
		*mm = t.claims
		return nil
	}
	return fmt.Errorf("unsupported claims type %T", v)
}

func (h *HSVerifier) Verify(ctx context.Context, raw string) (middleware.Token, error) {
	parsed, err := jwt.Parse(raw, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return h.secret, nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok || !parsed.Valid {
		return nil, fmt.Errorf("invalid token claims")
	}
	return &hsToken{claims: claims}, nil
}
