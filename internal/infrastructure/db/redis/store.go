package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/99minutos/storefront/internal/core/domain"
)

const defaultPrefix = "storefront"

// Store keeps client state in Redis.
// Keys:
//   - <prefix>:token  string holding the bearer token
//   - <prefix>:carts  hash mapping identity id to the JSON-encoded line items
type Store struct {
	client *redis.Client
	prefix string
}

// NewStore wraps client. An empty prefix uses defaultPrefix.
func NewStore(client *redis.Client, prefix string) *Store {
	if prefix == "" {
		prefix = defaultPrefix
	}
	return &Store{client: client, prefix: prefix}
}

func (s *Store) tokenKey() string { return s.prefix + ":token" }
func (s *Store) cartsKey() string { return s.prefix + ":carts" }

func (s *Store) LoadToken(ctx context.Context) (string, error) {
	token, err := s.client.Get(ctx, s.tokenKey()).Result()
	if errors.Is(err, redis.Nil) {
		return "", domain.ErrKeyNotFound
	}
	if err != nil {
		return "", fmt.Errorf("load token: %w", err)
	}
	return token, nil
}

func (s *Store) SaveToken(ctx context.Context, token string) error {
	if err := s.client.Set(ctx, s.tokenKey(), token, 0).Err(); err != nil {
		return fmt.Errorf("save token: %w", err)
	}
	return nil
}

func (s *Store) DeleteToken(ctx context.Context) error {
	if err := s.client.Del(ctx, s.tokenKey()).Err(); err != nil {
		return fmt.Errorf("delete token: %w", err)
	}
	return nil
}

func (s *Store) LoadCart(ctx context.Context, identityID string) ([]domain.LineItem, error) {
	raw, err := s.client.HGet(ctx, s.cartsKey(), identityID).Bytes()
	if errors.Is(err, redis.Nil) {
		return []domain.LineItem{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load cart: %w", err)
	}

	var items []domain.LineItem
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("decode cart: %w", err)
	}
	return items, nil
}

func (s *Store) SaveCart(ctx context.Context, identityID string, items []domain.LineItem) error {
	raw, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encode cart: %w", err)
	}
	if err := s.client.HSet(ctx, s.cartsKey(), identityID, raw).Err(); err != nil {
		return fmt.Errorf("save cart: %w", err)
	}
	return nil
}

func (s *Store) DeleteCart(ctx context.Context, identityID string) error {
	if err := s.client.HDel(ctx, s.cartsKey(), identityID).Err(); err != nil {
		return fmt.Errorf("delete cart: %w", err)
	}
	return nil
}

func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *Store) Close() error {
	return s.client.Close()
}
