package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"peluqueria/internal/config"
	"peluqueria/internal/models"

	"github.com/redis/go-redis/v9"
)

const activityKey = "peluqueria:actividad"

// NewRedisClient builds a Redis client from configuration.
func NewRedisClient(cfg config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
		PoolSize: cfg.PoolSize,
	})
}

// RedisActivityStore keeps the newest entries of the activity feed in a
// capped Redis list, newest first.
type RedisActivityStore struct {
	client *redis.Client
	size   int
	ttl    time.Duration
}

func NewRedisActivityStore(client *redis.Client, size int, ttl time.Duration) *RedisActivityStore {
	if size <= 0 {
		size = models.DefaultActivityFeedSize
	}
	return &RedisActivityStore{
		client: client,
		size:   size,
		ttl:    ttl,
	}
}

func (r *RedisActivityStore) Append(ctx context.Context, entry models.Actividad) error {
	if r.client == nil {
		return fmt.Errorf("redis client is nil")
	}
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to marshal actividad: %w", err)
	}

	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.LPush(ctx, activityKey, data)
		pipe.LTrim(ctx, activityKey, 0, int64(r.size-1))
		if r.ttl > 0 {
			pipe.Expire(ctx, activityKey, r.ttl)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to append actividad to redis: %w", err)
	}
	return nil
}

func (r *RedisActivityStore) Recent(ctx context.Context, limit int) ([]models.Actividad, error) {
	if r.client == nil {
		return nil, fmt.Errorf("redis client is nil")
	}
	if limit <= 0 || limit > r.size {
		limit = r.size
	}

	vals, err := r.client.LRange(ctx, activityKey, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read actividad from redis: %w", err)
	}

	out := make([]models.Actividad, 0, len(vals))
	for _, v := range vals {
		var a models.Actividad
		if err := json.Unmarshal([]byte(v), &a); err != nil {
			return nil, fmt.Errorf("failed to unmarshal actividad: %w", err)
		}
		out = append(out, a)
	}
	return out, nil
}

// Ping checks the Redis connection.
func Ping(ctx context.Context, client *redis.Client) error {
	if _, err := client.Ping(ctx).Result(); err != nil {
		return fmt.Errorf("failed to ping Redis: %w", err)
	}
	return nil
}

// Close closes the Redis connection.
func Close(client *redis.Client) error {
	if client != nil {
		return client.Close()
	}
	return nil
}
