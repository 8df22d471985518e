package redis

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/redis/go-redis/v9"
)

// RevocationStore tracks signed-out tokens in Redis. Each entry carries a
// TTL equal to the token's remaining lifetime, so revocations expire together
// with the tokens they shadow and the set stays bounded.
type RevocationStore struct {
	client *redis.Client
}

// NewRevocationStore creates a new RevocationStore.
func NewRevocationStore(client *redis.Client) *RevocationStore {
	return &RevocationStore{client: client}
}

// Revoke marks a token as signed out until it expires on its own.
func (s *RevocationStore) Revoke(ctx context.Context, token string, ttl time.Duration) error {
	if ttl <= 0 {
		// Token already expired, nothing to track.
		return nil
	}
	return s.client.Set(ctx, revocationKey(token), "1", ttl).Err()
}

// IsRevoked reports whether a token has been signed out.
func (s *RevocationStore) IsRevoked(ctx context.Context, token string) (bool, error) {
	n, err := s.client.Exists(ctx, revocationKey(token)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// revocationKey hashes the token so raw credentials never land in Redis.
func revocationKey(token string) string {
	sum := sha256.Sum256([]byte(token))
	return "revoked:" + hex.EncodeToString(sum[:])
}
