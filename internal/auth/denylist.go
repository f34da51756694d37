package auth

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const denylistKeyPrefix = "auth:revoked:"

// TokenDenylist records revoked token ids in Redis until they would
// have expired anyway.
type TokenDenylist struct {
	client *redis.Client
}

// NewTokenDenylist wraps a Redis client. A nil client yields a denylist
// that revokes nothing, for deployments without Redis.
func NewTokenDenylist(client *redis.Client) *TokenDenylist {
	return &TokenDenylist{client: client}
}

// Revoke marks the token id revoked until expiresAt.
func (d *TokenDenylist) Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error {
	if d == nil || d.client == nil || tokenID == "" {
		return nil
	}
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return nil
	}
	return d.client.Set(ctx, denylistKeyPrefix+tokenID, "1", ttl).Err()
}

// IsRevoked reports whether the token id has been revoked. Lookup
// failures fail open: an unreachable Redis must not lock everyone out.
func (d *TokenDenylist) IsRevoked(ctx context.Context, tokenID string) bool {
	if d == nil || d.client == nil || tokenID == "" {
		return false
	}
	n, err := d.client.Exists(ctx, denylistKeyPrefix+tokenID).Result()
	if err != nil {
		return false
	}
	return n > 0
}
