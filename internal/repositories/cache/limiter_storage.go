package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const limiterPrefix = "limiter:"

// LimiterStorage backs the fiber rate limiter with redis so counters are
// shared between server instances. It satisfies fiber.Storage.
type LimiterStorage struct {
	client  *redis.Client
	timeout time.Duration
}

func NewLimiterStorage(client *redis.Client) *LimiterStorage {
	return &LimiterStorage{client: client, timeout: 2 * time.Second}
}

func (s *LimiterStorage) ctx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), s.timeout)
}

func (s *LimiterStorage) Get(key string) ([]byte, error) {
	if key == "" {
		return nil, nil
	}
	ctx, cancel := s.ctx()
	defer cancel()

	val, err := s.client.Get(ctx, limiterPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	return val, err
}

func (s *LimiterStorage) Set(key string, val []byte, exp time.Duration) error {
	if key == "" || len(val) == 0 {
		return nil
	}
	ctx, cancel := s.ctx()
	defer cancel()
	return s.client.Set(ctx, limiterPrefix+key, val, exp).Err()
}

func (s *LimiterStorage) Delete(key string) error {
	if key == "" {
		return nil
	}
	ctx, cancel := s.ctx()
	defer cancel()
	return s.client.Del(ctx, limiterPrefix+key).Err()
}

// Reset removes every limiter key. Keys outside the limiter prefix are left
// alone.
func (s *LimiterStorage) Reset() error {
	ctx, cancel := s.ctx()
	defer cancel()

	iter := s.client.Scan(ctx, 0, limiterPrefix+"*", 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	return s.client.Del(ctx, keys...).Err()
}

// Close is a no-op; the client is owned by the caller.
func (s *LimiterStorage) Close() error {
	return nil
}
