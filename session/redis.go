package session

import (
	"context"
	"fmt"

	"github.com/octabyte/bm-social/db/redis"
	"github.com/octabyte/bm-social/models"
	goredis "github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "bm-social:session:"

// RedisStore keeps one hash per profile, one field per session entry.
type RedisStore struct {
	client *goredis.Client
	key    string
}

func NewRedisStore(client *goredis.Client, profile string) *RedisStore {
	return &RedisStore{client: client, key: redisKeyPrefix + profile}
}

func (r *RedisStore) Save(ctx context.Context, session models.Session) error {
	if err := redis.ReplaceHash(ctx, r.client, r.key, toEntries(session), 0); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

func (r *RedisStore) Load(ctx context.Context) (models.Session, error) {
	entries, err := redis.HGetAll(ctx, r.client, r.key)
	if err != nil {
		return models.Session{}, fmt.Errorf("failed to load session: %w", err)
	}
	return fromEntries(entries)
}

func (r *RedisStore) Clear(ctx context.Context) error {
	if err := redis.Del(ctx, r.client, r.key); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}
