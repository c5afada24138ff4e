package session

import (
	"context"
	"time"

	"skill-radar/internal/infrastructure/cache"
)

const redisKeyPrefix = "session:"

type RedisStore struct {
	cache *cache.Redis
	now   func() time.Time
}

func NewRedisStore(c *cache.Redis, now func() time.Time) *RedisStore {
	if now == nil {
		now = time.Now
	}
	return &RedisStore{cache: c, now: now}
}

func (r *RedisStore) Get(ctx context.Context, id string) (Session, error) {
	var s Session
	ok, err := r.cache.GetJSON(ctx, redisKeyPrefix+id, &s)
	if err != nil {
		return Session{}, err
	}
	if !ok {
		return Session{}, ErrNotFound
	}
	return s, nil
}

// Save stores s with a TTL equal to its remaining lifetime. Already expired
// sessions are not written.
func (r *RedisStore) Save(ctx context.Context, s Session) error {
	ttl := s.ExpiresAt.Sub(r.now())
	if ttl <= 0 {
		return nil
	}
	return r.cache.SetJSON(ctx, redisKeyPrefix+s.ID, s, ttl)
}

func (r *RedisStore) Delete(ctx context.Context, id string) error {
	return r.cache.Delete(ctx, redisKeyPrefix+id)
}
