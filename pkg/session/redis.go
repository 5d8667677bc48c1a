package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "session:"

// RedisSessionRepo stores sessions as JSON values whose key TTL is the
// session expiry, so expired sessions vanish on their own.
type RedisSessionRepo struct {
	client *redis.Client
}

func NewRedisSessionRepo(client *redis.Client) *RedisSessionRepo {
	return &RedisSessionRepo{client: client}
}

func (r *RedisSessionRepo) key(sessionID string) string {
	return redisKeyPrefix + sessionID
}

func (r *RedisSessionRepo) Create(ctx context.Context, userID, sessionID string, ttl time.Duration) (*Session, error) {
	if sessionID == "" || userID == "" {
		return nil, fmt.Errorf("session: missing session id or user id")
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("session: ttl must be positive")
	}

	now := time.Now().UTC()
	s := &Session{ID: sessionID, UserID: userID, CreatedAt: now, ExpiresAt: now.Add(ttl)}

	data, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("session: failed to marshal: %w", err)
	}
	if err := r.client.Set(ctx, r.key(sessionID), data, ttl).Err(); err != nil {
		return nil, err
	}
	return s, nil
}

func (r *RedisSessionRepo) IsValid(ctx context.Context, sessionID string) (bool, error) {
	n, err := r.client.Exists(ctx, r.key(sessionID)).Result()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

func (r *RedisSessionRepo) Invalidate(ctx context.Context, sessionID string) error {
	return r.client.Del(ctx, r.key(sessionID)).Err()
}
