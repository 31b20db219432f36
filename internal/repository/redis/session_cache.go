package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

var (
	ErrSessionNotCached = errors.New("session not cached")
	ErrRedisUnavailable = errors.New("redis unavailable")
)

const SessionTokenPrefix = "session:token"

// SessionCacheRepository keeps token -> user id with the session's remaining
// TTL, so most resolves skip MySQL. It is a cache only: a miss or a redis
// fault sends the caller back to the session table, never to a 401.
type SessionCacheRepository struct{}

func sessionKey(token string) string {
	return fmt.Sprintf("%s:%s", SessionTokenPrefix, token)
}

func (r *SessionCacheRepository) Put(ctx context.Context, token string, userID uuid.UUID, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	if err := Client.Set(ctx, sessionKey(token), userID.String(), ttl).Err(); err != nil {
		return ErrRedisUnavailable
	}
	return nil
}

func (r *SessionCacheRepository) Get(ctx context.Context, token string) (uuid.UUID, error) {
	val, err := Client.Get(ctx, sessionKey(token)).Result()
	if errors.Is(err, redis.Nil) {
		return uuid.Nil, ErrSessionNotCached
	}
	if err != nil {
		return uuid.Nil, ErrRedisUnavailable
	}
	id, err := uuid.Parse(val)
	if err != nil {
		return uuid.Nil, ErrSessionNotCached
	}
	return id, nil
}

func (r *SessionCacheRepository) Delete(ctx context.Context, token string) error {
	if err := Client.Del(ctx, sessionKey(token)).Err(); err != nil {
		return ErrRedisUnavailable
	}
	return nil
}
