package sessions

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps sessions in Redis so they survive restarts.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore builds a Redis-backed session store.
func NewRedisStore(addr, password string) *RedisStore {
	return &RedisStore{
		client: redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: password,
		}),
	}
}

// Create issues and stores a new session token with a ttl enforced by Redis.
func (s *RedisStore) Create(ctx context.Context, userID string, ttl time.Duration) (string, error) {
	token, err := generateToken()
	if err != nil {
		return "", err
	}
	if err := s.client.Set(ctx, sessionRedisKey(tokenHash(token)), userID, ttl).Err(); err != nil {
		return "", err
	}
	return token, nil
}

// Get resolves a token. Expiry is handled by the key's ttl.
func (s *RedisStore) Get(ctx context.Context, token string) (string, error) {
	userID, err := s.client.Get(ctx, sessionRedisKey(tokenHash(token))).Result()
	if err == redis.Nil {
		return "", ErrNoSession
	}
	if err != nil {
		return "", err
	}
	return userID, nil
}

// Delete revokes a token. Idempotent.
func (s *RedisStore) Delete(ctx context.Context, token string) error {
	return s.client.Del(ctx, sessionRedisKey(tokenHash(token))).Err()
}

func sessionRedisKey(hash string) string {
	return fmt.Sprintf("session:%s", hash)
}
