package domain

import (
	"github.com/odiadev/keygate/internal/errors"
)

// API key errors.
var (
	// ErrAPIKeyNotFound indicates no key exists for the given prefix.
	ErrAPIKeyNotFound = errors.Wrap(errors.ErrNotFound, "api key not found")

	// ErrDuplicatePrefix indicates the generated prefix collided with an
	// existing record. Issuance retries with a fresh prefix.
	ErrDuplicatePrefix = errors.Wrap(errors.ErrConflict, "api key prefix already exists")
)
