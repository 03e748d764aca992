package domain

import (
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
)

// APIKey represents a persisted API key record. The key secret itself is
// never stored: Hash holds the peppered HMAC digest of the full token, and
// Prefix is the random handle used to locate the record during verification.
type APIKey struct {
	ID          uuid.UUID  // Unique identifier (UUIDv7)
	Name        string     // Human-readable label chosen at issuance
	Type        KeyType    // "pk" or "sk"
	Prefix      string     // Random lookup handle embedded in the token
	Hash        string     // Base64 HMAC-SHA256 digest of the full token
	Scopes      []string   // Granted scopes, e.g. "tts:read"
	RatePerMin  int        // Per-key request rate limit
	DailyQuota  int        // Per-key daily request budget
	DomainAllow []string   // Allowed origin hostnames (empty allows any origin)
	ProjectID   *string    // Optional owning project
	CreatedBy   string     // Admin identity that issued the key
	RevokedAt   *time.Time // Time of revocation (nil if active)
	LastUsedAt  *time.Time // Last successful verification (best-effort)
	CreatedAt   time.Time
}

// IsRevoked reports whether the key has been revoked.
func (k *APIKey) IsRevoked() bool {
	return k.RevokedAt != nil
}

// HasScope reports whether the key grants the given scope.
func (k *APIKey) HasScope(scope string) bool {
	return slices.Contains(k.Scopes, scope)
}

// AllowsOrigin checks the request origin hostname against the key's domain
// allow-list. An empty allow-list allows any origin. An empty host also
// passes: requests without an Origin header (server-to-server callers) skip
// the origin check entirely.
//
// A hostname matches an allowed domain when it equals the domain or is a
// subdomain of it: "app.odia.dev" matches "odia.dev" but "notodia.dev" does
// not. Comparison is case-insensitive.
func (k *APIKey) AllowsOrigin(host string) bool {
	if len(k.DomainAllow) == 0 {
		return true
	}

	host = strings.ToLower(strings.TrimSpace(host))
	if host == "" {
		return true
	}

	for _, domain := range k.DomainAllow {
		domain = strings.ToLower(strings.TrimSpace(domain))
		if domain == "" {
			continue
		}
		if host == domain || strings.HasSuffix(host, "."+domain) {
			return true
		}
	}

	return false
}
