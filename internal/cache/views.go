package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	keyPrefix = "view:"
	genPrefix = "viewgen:"
)

// Views caches rendered view data in Redis, keyed by request path and a variant
// such as the query string. Invalidating a path drops every variant under it and
// bumps the path's generation, so a read that started before the invalidation
// cannot store its now stale result.
type Views struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewViews returns a Redis-backed view cache.
func NewViews(rdb *redis.Client, ttl time.Duration) *Views {
	return &Views{rdb: rdb, ttl: ttl}
}

// Connect parses a redis:// URL, pings the server and returns the client.
func Connect(ctx context.Context, redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	rdb := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return rdb, nil
}

// Get decodes the cached value into dst. It reports false on a miss.
func (v *Views) Get(ctx context.Context, path, variant string, dst any) (bool, error) {
	b, err := v.rdb.Get(ctx, key(path, variant)).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(b, dst); err != nil {
		return false, err
	}
	return true, nil
}

// Generation returns the current invalidation generation of path.
// Read it before loading the data that will be passed to Set.
func (v *Views) Generation(ctx context.Context, path string) (int64, error) {
	gen, err := v.rdb.Get(ctx, genKey(path)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return gen, err
}

// Set stores value for path and variant unless path was invalidated after gen was read.
func (v *Views) Set(ctx context.Context, path, variant string, gen int64, value any) error {
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	gk := genKey(path)
	err = v.rdb.Watch(ctx, func(tx *redis.Tx) error {
		cur, err := tx.Get(ctx, gk).Int64()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		if cur != gen {
			return nil
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key(path, variant), b, v.ttl)
			return nil
		})
		return err
	}, gk)
	if errors.Is(err, redis.TxFailedErr) {
		return nil
	}
	return err
}

// Invalidate removes every cached variant of path and of paths nested under it.
func (v *Views) Invalidate(ctx context.Context, path string) error {
	if err := v.rdb.Incr(ctx, genKey(path)).Err(); err != nil {
		return err
	}
	iter := v.rdb.Scan(ctx, 0, keyPrefix+normalizePath(path)+"*", 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	return v.rdb.Del(ctx, keys...).Err()
}

func key(path, variant string) string {
	return keyPrefix + normalizePath(path) + "|" + strings.TrimSpace(variant)
}

func genKey(path string) string {
	return genPrefix + normalizePath(path)
}

func normalizePath(path string) string {
	path = strings.TrimSpace(path)
	if len(path) > 1 {
		path = strings.TrimSuffix(path, "/")
	}
	return path
}

// Nop is a cache that never hits. It is used when Redis is not configured.
type Nop struct{}

func (Nop) Get(context.Context, string, string, any) (bool, error) { return false, nil }

func (Nop) Generation(context.Context, string) (int64, error) { return 0, nil }

func (Nop) Set(context.Context, string, string, int64, any) error { return nil }

func (Nop) Invalidate(context.Context, string) error { return nil }
