package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"merchant-admin-layer/internal/domain"
	"merchant-admin-layer/internal/ports"

	"github.com/redis/go-redis/v9"
)

const (
	sessionKeyPrefix     = "session:"
	shopSessionKeyPrefix = "shop_sessions:"
)

// RedisSessionRepository implements SessionRepository using Redis.
// Each session is a JSON string; a per-shop set indexes the shop's session ids.
type RedisSessionRepository struct {
	client redis.UniversalClient
}

var _ ports.SessionRepository = (*RedisSessionRepository)(nil)

// NewRedisSessionRepository creates a new Redis session repository
func NewRedisSessionRepository(client redis.UniversalClient) *RedisSessionRepository {
	return &RedisSessionRepository{client: client}
}

// NewRedisClient creates a client from a redis:// URL and verifies the connection
func NewRedisClient(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis url: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}
	return client, nil
}

// Store saves or replaces a session
func (r *RedisSessionRepository) Store(ctx context.Context, session *domain.Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}

	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, sessionKeyPrefix+session.ID, data, 0)
		pipe.SAdd(ctx, shopSessionKeyPrefix+session.Shop, session.ID)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to store session: %w", err)
	}
	return nil
}

// Load retrieves a session by id, or nil when it does not exist
func (r *RedisSessionRepository) Load(ctx context.Context, id string) (*domain.Session, error) {
	data, err := r.client.Get(ctx, sessionKeyPrefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	var session domain.Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("failed to decode session: %w", err)
	}
	return &session, nil
}

// DeleteByShop removes every session of the shop
func (r *RedisSessionRepository) DeleteByShop(ctx context.Context, shop string) error {
	indexKey := shopSessionKeyPrefix + shop
	ids, err := r.client.SMembers(ctx, indexKey).Result()
	if err != nil {
		return fmt.Errorf("failed to list shop sessions: %w", err)
	}

	keys := []string{indexKey, sessionKeyPrefix + domain.OfflineSessionID(shop)}
	for _, id := range ids {
		keys = append(keys, sessionKeyPrefix+id)
	}

	if err := r.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("failed to delete shop sessions: %w", err)
	}
	return nil
}

// Ping reports whether Redis is reachable
func (r *RedisSessionRepository) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}
