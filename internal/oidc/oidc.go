package oidc

import (
	"context"
	"fmt"

	"github.com/conduitapp/articled/pkg/middleware"
	"github.com/coreos/go-oidc/v3/oidc"
)

// Verifier wraps the OIDC provider and token verifier. Deployments that
// front the platform with an OIDC identity provider use this instead of the
// shared-secret HS256 verifier.
type Verifier struct {
	ctx      context.Context
	provider *oidc.Provider
	verifier *oidc.IDTokenVerifier
}

// NewVerifier creates an OIDC verifier for the given issuer and client ID.
func NewVerifier(ctx context.Context, issuer, clientID string) (*Verifier, error) {
	provider, err := oidc.NewProvider(ctx, issuer)
	if err != nil {
		return nil, fmt.Errorf("failed to discover OIDC provider: %w", err)
	}
	verifier := provider.Verifier(&oidc.Config{ClientID: clientID})
	return &Verifier{ctx: ctx, provider: provider, verifier: verifier}, nil
}

// Verify verifies the raw ID token and returns it as a middleware.Token.
func (v *Verifier) Verify(ctx context.Context, raw string) (middleware.Token, error) {
	idToken, err := v.verifier.Verify(ctx, raw)
	if err != nil {
		return nil, err
	}
	return idToken, nil
}
