// Package http provides HTTP handlers and middleware for API key operations.
package http

import (
	"context"

	"github.com/odiadev/keygate/internal/keys/domain"
)

// apiKeyKey is a context key type for storing verified API keys.
type apiKeyKey struct{}

// WithAPIKey stores a verified API key in the context.
// This is typically called by APIKeyMiddleware after successful verification.
func WithAPIKey(ctx context.Context, key *domain.APIKey) context.Context {
	return context.WithValue(ctx, apiKeyKey{}, key)
}

// GetAPIKey retrieves a verified API key from the context.
// Returns (key, true) if present, or (nil, false) if no key was set.
func GetAPIKey(ctx context.Context) (*domain.APIKey, bool) {
	key, ok := ctx.Value(apiKeyKey{}).(*domain.APIKey)
	return key, ok
}
