package redis

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/stockmanager/admin-console/internal/core/domain"
	"github.com/stockmanager/admin-console/internal/infrastructure/tokenstore"
)

// TokenStore keeps the token pair in Redis.
// Key format: <scope>:access_token and <scope>:refresh_token, without expiry.
type TokenStore struct {
	client redis.Cmdable
	scope  string
}

// NewTokenStore creates a TokenStore wrapping the given Redis client.
func NewTokenStore(client redis.Cmdable, scope string) *TokenStore {
	return &TokenStore{client: client, scope: scope}
}

func (s *TokenStore) Get(ctx context.Context) (domain.TokenPair, error) {
	vals, err := s.client.MGet(ctx, s.key(tokenstore.AccessTokenKey), s.key(tokenstore.RefreshTokenKey)).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return domain.TokenPair{}, fmt.Errorf("token store get: %w", err)
	}
	var pair domain.TokenPair
	if len(vals) == 2 {
		pair.Access, _ = vals[0].(string)
		pair.Refresh, _ = vals[1].(string)
	}
	return pair, nil
}

func (s *TokenStore) Set(ctx context.Context, pair domain.TokenPair) error {
	_, err := s.client.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.Set(ctx, s.key(tokenstore.AccessTokenKey), pair.Access, 0)
		p.Set(ctx, s.key(tokenstore.RefreshTokenKey), pair.Refresh, 0)
		return nil
	})
	if err != nil {
		return fmt.Errorf("token store set: %w", err)
	}
	return nil
}

func (s *TokenStore) Clear(ctx context.Context) error {
	if err := s.client.Del(ctx, s.key(tokenstore.AccessTokenKey), s.key(tokenstore.RefreshTokenKey)).Err(); err != nil {
		return fmt.Errorf("token store clear: %w", err)
	}
	return nil
}

func (s *TokenStore) key(name string) string {
	return s.scope + ":" + name
}
