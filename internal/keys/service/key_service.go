package service

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strings"

	apperrors "github.com/odiadev/keygate/internal/errors"
	"github.com/odiadev/keygate/internal/keys/domain"
)

const (
	// prefixBytes yields an 8-character base64 prefix.
	prefixBytes = 6

	// tailBytes yields a 32-character base64 tail, 192 bits of entropy.
	tailBytes = 24

	keyEnvSegment = "live"
)

// keyService implements KeyService using HMAC-SHA256 under a server pepper.
type keyService struct {
	pepper []byte
}

// NewKeyService creates a new KeyService using the given pepper for digesting.
func NewKeyService(pepper []byte) KeyService {
	return &keyService{pepper: pepper}
}

// Mint creates a new API key of the given type.
//
// Token shape: {type}_{env}_{prefix}_{tail}, e.g. "pk_live_abc12345_...".
// Prefix and tail are random bytes in a URL-safe base64 alphabet with '_'
// replaced by '-' so that splitting the token on '_' stays unambiguous.
func (s *keyService) Mint(keyType string) (MintedKey, error) {
	if !domain.ValidKeyType(domain.KeyType(keyType)) {
		return MintedKey{}, apperrors.Wrap(apperrors.ErrInvalidInput, fmt.Sprintf("invalid key type %q", keyType))
	}

	prefix, err := randomSegment(prefixBytes)
	if err != nil {
		return MintedKey{}, apperrors.Wrap(err, "failed to generate key prefix")
	}

	tail, err := randomSegment(tailBytes)
	if err != nil {
		return MintedKey{}, apperrors.Wrap(err, "failed to generate key tail")
	}

	full := strings.Join([]string{keyType, keyEnvSegment, prefix, tail}, "_")

	return MintedKey{
		Full:   full,
		Prefix: prefix,
		Hash:   s.HashKey(full),
	}, nil
}

// HashKey computes the base64-encoded HMAC-SHA256 digest of the complete
// token under the server pepper.
func (s *keyService) HashKey(fullKey string) string {
	mac := hmac.New(sha256.New, s.pepper)
	mac.Write([]byte(fullKey))
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

// ParsePrefix extracts the lookup prefix from a presented token. The token
// must have exactly four '_'-separated segments with a known type, the "live"
// environment marker, and a prefix of the expected length.
func (s *keyService) ParsePrefix(fullKey string) (string, bool) {
	parts := strings.Split(fullKey, "_")
	if len(parts) != 4 {
		return "", false
	}

	if !domain.ValidKeyType(domain.KeyType(parts[0])) {
		return "", false
	}
	if parts[1] != keyEnvSegment {
		return "", false
	}
	if len(parts[2]) != domain.PrefixLength {
		return "", false
	}
	if parts[3] == "" {
		return "", false
	}

	return parts[2], true
}

// CompareDigest compares digests in constant time. Length is checked first:
// a length mismatch short-circuits, which leaks nothing useful since all
// stored digests have the same length.
func (s *keyService) CompareDigest(computed, stored string) bool {
	if len(computed) != len(stored) {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(computed), []byte(stored)) == 1
}

// randomSegment returns n random bytes in a URL-safe base64 alphabet with
// '_' swapped for '-' to keep the token's '_' delimiters unambiguous.
func randomSegment(n int) (string, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	encoded := base64.RawURLEncoding.EncodeToString(buf)
	return strings.ReplaceAll(encoded, "_", "-"), nil
}
