package store

import (
	"context"
	"fmt"
	"strconv"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

const (
	redisValueField   = "value"
	redisVersionField = "version"
)

// RedisKV stores each entry as a hash with value and version fields.
type RedisKV struct {
	rdb *goredis.Client
}

// NewRedisKV connects to addr and pings it before returning.
func NewRedisKV(ctx context.Context, addr string) (*RedisKV, error) {
	if addr == "" {
		return nil, fmt.Errorf("missing redis addr")
	}
	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return &RedisKV{rdb: rdb}, nil
}

// Client exposes the underlying connection so publishers can share it.
func (r *RedisKV) Client() *goredis.Client { return r.rdb }

func (r *RedisKV) Get(ctx context.Context, key string) (Entry, bool, error) {
	fields, err := r.rdb.HGetAll(ctx, key).Result()
	if err != nil {
		return Entry{}, false, err
	}
	raw, ok := fields[redisValueField]
	if !ok {
		return Entry{}, false, nil
	}
	version, err := strconv.Atoi(fields[redisVersionField])
	if err != nil {
		version = 0
	}
	return Entry{Value: []byte(raw), Version: version}, true, nil
}

func (r *RedisKV) Set(ctx context.Context, key string, e Entry) error {
	return r.rdb.HSet(ctx, key,
		redisValueField, string(e.Value),
		redisVersionField, e.Version,
	).Err()
}

func (r *RedisKV) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return r.rdb.Del(ctx, keys...).Err()
}

func (r *RedisKV) Close() error { return r.rdb.Close() }
