// Package service provides technical services for API key operations.
//
// This package implements key minting, peppered HMAC digesting, and
// constant-time comparison used by issuance and verification.
package service

import "context"

// MintedKey is the outcome of minting a new API key. Full is the only copy
// of the complete token; it is returned to the caller once and never stored.
type MintedKey struct {
	Full   string // Complete token, e.g. "pk_live_abc12345_..."
	Prefix string // Lookup handle embedded in the token
	Hash   string // Peppered HMAC digest of Full
}

// KeyService defines operations for API key minting, digesting, and parsing.
// Implementations must use cryptographically secure random generation and
// compare digests in constant time.
type KeyService interface {
	// Mint creates a new API key of the given type. Returns the complete
	// token (shown to the caller exactly once), its prefix, and the digest
	// to persist.
	Mint(keyType string) (MintedKey, error)

	// HashKey computes the peppered HMAC-SHA256 digest of a complete token.
	HashKey(fullKey string) string

	// ParsePrefix extracts the lookup prefix from a presented token.
	// Returns false if the token does not have the expected shape.
	ParsePrefix(fullKey string) (prefix string, ok bool)

	// CompareDigest compares a computed digest against a stored digest
	// without leaking timing information about matching bytes.
	CompareDigest(computed, stored string) bool
}

// PepperService resolves the server pepper used for key digesting. The pepper
// may be supplied directly or as a KMS-encrypted ciphertext.
type PepperService interface {
	// Resolve returns the pepper bytes, decrypting via KMS when configured.
	Resolve(ctx context.Context) ([]byte, error)
}
