// Package redis implements the session repository on a Redis key-value
// store, letting multiple server instances share live sessions.
package redis

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mayankdobriyal1920/mini-insight-ops/internal/domain"
)

const sessionKeyPrefix = "session:"

// SessionRepository is a Redis-backed domain.SessionRepository. Expiry is
// delegated to Redis key TTLs.
type SessionRepository struct {
	client *redis.Client
	logger *slog.Logger
}

func NewSessionRepository(client *redis.Client, logger *slog.Logger) *SessionRepository {
	return &SessionRepository{
		client: client,
		logger: logger.With("component", "redis_session_repository"),
	}
}

func (r *SessionRepository) Create(ctx context.Context, sessionID, userID string, ttl time.Duration) error {
	if err := r.client.Set(ctx, sessionKeyPrefix+sessionID, userID, ttl).Err(); err != nil {
		return fmt.Errorf("set session in redis: %w", err)
	}
	return nil
}

func (r *SessionRepository) Get(ctx context.Context, sessionID string) (string, error) {
	userID, err := r.client.Get(ctx, sessionKeyPrefix+sessionID).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", domain.ErrNotFound
		}
		return "", fmt.Errorf("get session from redis: %w", err)
	}
	return userID, nil
}

func (r *SessionRepository) Delete(ctx context.Context, sessionID string) error {
	if err := r.client.Del(ctx, sessionKeyPrefix+sessionID).Err(); err != nil {
		return fmt.Errorf("delete session from redis: %w", err)
	}
	return nil
}
