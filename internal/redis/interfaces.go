package redis

import (
	"context"
	"time"
)

// RevocationStoreInterface defines the interface for token revocation.
type RevocationStoreInterface interface {
	Revoke(ctx context.Context, token string, ttl time.Duration) error
	IsRevoked(ctx context.Context, token string) (bool, error)
}

// Ensure concrete types implement interfaces.
var _ RevocationStoreInterface = (*RevocationStore)(nil)
