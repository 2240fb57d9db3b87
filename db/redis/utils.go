package redis

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// Del deletes a key from Redis.
func Del(ctx context.Context, client *redis.Client, key string) error {
	return client.Del(ctx, key).Err()
}

// HGetAll returns every field of the hash at key. A missing key yields an
// empty map.
func HGetAll(ctx context.Context, client *redis.Client, key string) (map[string]string, error) {
	values, err := client.HGetAll(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return map[string]string{}, nil
	}
	return values, err
}

// ReplaceHash drops the hash at key and writes values in a single
// transaction, so readers never see a mix of old and new fields.
func ReplaceHash(ctx context.Context, client *redis.Client, key string, values map[string]string, ttl time.Duration) error {
	_, err := client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, key)
		if len(values) > 0 {
			args := make([]interface{}, 0, len(values)*2)
			for field, value := range values {
				args = append(args, field, value)
			}
			pipe.HSet(ctx, key, args...)
		}
		if ttl > 0 {
			pipe.Expire(ctx, key, ttl)
		}
		return nil
	})
	return err
}
