// Package usecase implements business logic orchestration for API key operations.
package usecase

import (
	"context"
	"time"

	"github.com/odiadev/keygate/internal/keys/domain"
)

// APIKeyRepository defines persistence operations for API keys.
type APIKeyRepository interface {
	// Create inserts a new API key. Returns domain.ErrDuplicatePrefix when
	// the prefix collides with an existing record.
	Create(ctx context.Context, key *domain.APIKey) error

	// GetByPrefix retrieves a key by its lookup prefix. Returns
	// domain.ErrAPIKeyNotFound if no record exists.
	GetByPrefix(ctx context.Context, prefix string) (*domain.APIKey, error)

	// Revoke marks the key as revoked, keeping the original revocation time
	// when called repeatedly. Returns domain.ErrAPIKeyNotFound if no record
	// exists for the prefix.
	Revoke(ctx context.Context, prefix string, revokedAt time.Time) error

	// List retrieves keys ordered by creation time, newest first.
	List(ctx context.Context, offset, limit int) ([]*domain.APIKey, error)

	// TouchLastUsed updates the key's last_used_at timestamp.
	TouchLastUsed(ctx context.Context, prefix string, usedAt time.Time) error
}

// APIKeyUseCase defines API key lifecycle operations.
type APIKeyUseCase interface {
	// Issue mints and persists a new API key. The complete token appears only
	// in the returned output and is never stored or logged.
	Issue(ctx context.Context, input *domain.IssueKeyInput) (*domain.IssueKeyOutput, error)

	// Verify checks a presented token against the store. Checks run in order
	// (format, existence, revocation, origin, digest) and the verification
	// reports the first failure. The error return is reserved for backend
	// failures; a denied key is not an error.
	Verify(ctx context.Context, presentedKey, origin string) (domain.Verification, error)

	// Revoke permanently deactivates the key with the given prefix.
	// Revoking an already revoked key succeeds.
	Revoke(ctx context.Context, prefix string) error

	// List retrieves keys ordered by creation time, newest first.
	List(ctx context.Context, offset, limit int) ([]*domain.APIKey, error)
}
