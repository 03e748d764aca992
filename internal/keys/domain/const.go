// Package domain defines API key domain models and business logic.
// Implements prefix-addressed API keys whose secrets are stored only as
// peppered HMAC digests, with origin allow-lists and scoped access.
package domain

// KeyType distinguishes publishable keys from secret keys.
// The type is embedded in the issued token and does not change verification
// semantics; it signals intended usage to integrators.
type KeyType string

const (
	// KeyTypePublic marks keys intended for client-side (publishable) use.
	KeyTypePublic KeyType = "pk"

	// KeyTypeSecret marks keys intended for server-side use.
	KeyTypeSecret KeyType = "sk"
)

const (
	// PrefixLength is the length of the random lookup handle embedded in
	// every issued key.
	PrefixLength = 8

	// DefaultScope is granted when an issue request names no scopes.
	DefaultScope = "tts:read"

	// DefaultRatePerMin is the per-key request rate applied when unset.
	DefaultRatePerMin = 60

	// DefaultDailyQuota is the per-key daily request budget applied when unset.
	DefaultDailyQuota = 2000
)

// ValidKeyType reports whether t is a known key type.
func ValidKeyType(t KeyType) bool {
	return t == KeyTypePublic || t == KeyTypeSecret
}
