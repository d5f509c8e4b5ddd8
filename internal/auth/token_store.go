package auth

import (
	"context"
	"time"

	"warehouse/internal/cache"
)

const revokedTokenKeyPrefix = "revoked_token:"

// TokenStore tracks revoked tokens by their ID (jti).
type TokenStore interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) bool
}

// RedisTokenStore keeps revocations in redis until the token would have
// expired anyway. With redis down nothing is revoked.
type RedisTokenStore struct {
	cache *cache.Client
}

var _ TokenStore = (*RedisTokenStore)(nil)

// NewTokenStore creates a new token store.
func NewTokenStore(cache *cache.Client) *RedisTokenStore {
	return &RedisTokenStore{cache: cache}
}

// Revoke marks tokenID as revoked for ttl.
func (s *RedisTokenStore) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	return s.cache.Set(ctx, revokedTokenKeyPrefix+tokenID, []byte("1"), ttl)
}

// IsRevoked reports whether tokenID has been revoked.
func (s *RedisTokenStore) IsRevoked(ctx context.Context, tokenID string) bool {
	return s.cache.Exists(ctx, revokedTokenKeyPrefix+tokenID)
}
