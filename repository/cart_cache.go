package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"shop-service/models"

	"github.com/redis/go-redis/v9"
)

var ErrCacheMiss = errors.New("cart not in cache")

// CartCache holds the request-facing copy of the cart. It is never the
// source of truth; reconciliation overwrites it together with the user
// document so a stale copy is never re-read.
type CartCache interface {
	Get(ctx context.Context, userID string) (*models.Cart, error)
	Set(ctx context.Context, userID string, cart models.Cart) error
	Delete(ctx context.Context, userID string) error
}

type RedisCartCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisCartCache(client *redis.Client, ttl time.Duration) *RedisCartCache {
	return &RedisCartCache{client: client, ttl: ttl}
}

func (c *RedisCartCache) key(userID string) string {
	return fmt.Sprintf("cart:user:%s", userID)
}

func (c *RedisCartCache) Get(ctx context.Context, userID string) (*models.Cart, error) {
	data, err := c.client.Get(ctx, c.key(userID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("redis get failed: %w", err)
	}

	var cart models.Cart
	if err := json.Unmarshal(data, &cart); err != nil {
		return nil, fmt.Errorf("unmarshal cart failed: %w", err)
	}
	return &cart, nil
}

func (c *RedisCartCache) Set(ctx context.Context, userID string, cart models.Cart) error {
	data, err := json.Marshal(cart)
	if err != nil {
		return fmt.Errorf("marshal cart failed: %w", err)
	}
	if err := c.client.Set(ctx, c.key(userID), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (c *RedisCartCache) Delete(ctx context.Context, userID string) error {
	if err := c.client.Del(ctx, c.key(userID)).Err(); err != nil {
		return fmt.Errorf("redis delete failed: %w", err)
	}
	return nil
}
