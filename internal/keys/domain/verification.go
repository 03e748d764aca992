package domain

// DenyReason identifies why a key failed verification. Checks run in a fixed
// order, and the reason reported is always the first check that failed.
type DenyReason string

const (
	// DenyBadFormat indicates the presented token could not be parsed.
	DenyBadFormat DenyReason = "bad_format"

	// DenyNotFound indicates no record exists for the token's prefix.
	DenyNotFound DenyReason = "not_found"

	// DenyRevoked indicates the key exists but has been revoked.
	DenyRevoked DenyReason = "revoked"

	// DenyOriginDenied indicates the request origin is not on the key's allow-list.
	DenyOriginDenied DenyReason = "origin_denied"

	// DenyBadSig indicates the token's digest does not match the stored hash.
	DenyBadSig DenyReason = "bad_sig"
)

// Verification is the outcome of checking a presented token. Key is set only
// when OK is true; Reason is set only when OK is false.
type Verification struct {
	OK     bool
	Reason DenyReason
	Key    *APIKey
}

// Denied builds a failed verification with the given reason.
func Denied(reason DenyReason) Verification {
	return Verification{OK: false, Reason: reason}
}

// Verified builds a successful verification for the given key.
func Verified(key *APIKey) Verification {
	return Verification{OK: true, Key: key}
}
