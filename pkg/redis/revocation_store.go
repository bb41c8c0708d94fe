package redis

import (
	"context"
	"time"
)

const revokedKeyPrefix = "revoked:"

// RevocationStore tracks revoked session-token ids. Session tokens are
// stateless, so sign-out alone only clears the client cookie; recording the
// token's jti here until its natural expiry closes that gap. When Redis is
// not configured the store is disabled and revocation checks fail open.
type RevocationStore struct {
	enabled bool
}

var (
	setRevokedValue  = Set
	existsRevokedKey = Exists
)

// NewRevocationStore creates a revocation store. Pass enabled=false when no
// Redis backend is available; Revoke and IsRevoked become no-ops.
func NewRevocationStore(enabled bool) *RevocationStore {
	return &RevocationStore{enabled: enabled}
}

// Revoke marks a token id as revoked for the remainder of its lifetime
func (s *RevocationStore) Revoke(ctx context.Context, jti string, ttl time.Duration) error {
	if !s.enabled || jti == "" || ttl <= 0 {
		return nil
	}
	return setRevokedValue(ctx, revokedKeyPrefix+jti, "1", ttl)
}

// IsRevoked reports whether a token id has been revoked. Backend errors are
// swallowed: an unreachable Redis must not lock every session out.
func (s *RevocationStore) IsRevoked(ctx context.Context, jti string) bool {
	if !s.enabled || jti == "" {
		return false
	}
	revoked, err := existsRevokedKey(ctx, revokedKeyPrefix+jti)
	if err != nil {
		return false
	}
	return revoked
}
