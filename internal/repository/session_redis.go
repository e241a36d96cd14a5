package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/shashankreddy3k/inventory-forecast-app/internal/domain/models"
	drepo "github.com/shashankreddy3k/inventory-forecast-app/internal/domain/repository"
)

const sessionKeyPrefix = "forecast:session:"

// RedisSessionStore keeps session datasets in Redis with TTL expiry, for
// deployments where uploads must survive a process restart or be shared
// across replicas within the session window.
type RedisSessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisSessionStore connects to Redis and verifies the connection.
func NewRedisSessionStore(addr, password string, db int, ttl time.Duration) (*RedisSessionStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &RedisSessionStore{client: client, ttl: ttl}, nil
}

func (s *RedisSessionStore) Put(ctx context.Context, id string, ds *models.Dataset) error {
	data, err := json.Marshal(ds)
	if err != nil {
		return fmt.Errorf("marshal dataset: %w", err)
	}
	return s.client.Set(ctx, sessionKeyPrefix+id, data, s.ttl).Err()
}

func (s *RedisSessionStore) Get(ctx context.Context, id string) (*models.Dataset, error) {
	key := sessionKeyPrefix + id

	data, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, drepo.ErrSessionNotFound
		}
		return nil, fmt.Errorf("redis get: %w", err)
	}

	var ds models.Dataset
	if err := json.Unmarshal(data, &ds); err != nil {
		return nil, fmt.Errorf("unmarshal dataset: %w", err)
	}

	// Sliding expiry, same behavior as the memory backend.
	s.client.Expire(ctx, key, s.ttl)
	return &ds, nil
}

func (s *RedisSessionStore) Delete(ctx context.Context, id string) error {
	return s.client.Unlink(ctx, sessionKeyPrefix+id).Err()
}

// Close closes the Redis connection.
func (s *RedisSessionStore) Close() error {
	return s.client.Close()
}

var _ drepo.SessionStore = (*RedisSessionStore)(nil)
