package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const versionKey = "bookie:summary:version"

// NewRedisClient connects to redis. An empty addr means the cache is disabled and
// (nil, nil) is returned.
func NewRedisClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	addr = strings.ReplaceAll(strings.TrimSpace(addr), " ", "")
	if addr == "" {
		return nil, nil
	}
	rc := redis.NewClient(&redis.Options{Addr: addr, Password: password, DB: db})
	if err := rc.Ping(ctx).Err(); err != nil {
		_ = rc.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return rc, nil
}

// SummaryCache stores rendered summary read-models. Entries are never deleted one by one:
// every write to tickets, settings or blocked numbers bumps a version counter and
// stale keys simply expire.
// A SummaryCache with a nil client is a no-op.
type SummaryCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewSummaryCache(client *redis.Client, ttl time.Duration) *SummaryCache {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &SummaryCache{client: client, ttl: ttl}
}

func (c *SummaryCache) Enabled() bool {
	return c != nil && c.client != nil
}

func (c *SummaryCache) version(ctx context.Context) (int64, error) {
	v, err := c.client.Get(ctx, versionKey).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return v, err
}

func (c *SummaryCache) itemKey(ctx context.Context, kind, key, round string) (string, error) {
	v, err := c.version(ctx)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("bookie:%s:v%d:%s:%s", kind, v, key, round), nil
}

// Get loads a cached value into dst. It reports false on a miss or when the cache is disabled.
func (c *SummaryCache) Get(ctx context.Context, kind, key, round string, dst any) (bool, error) {
	if !c.Enabled() {
		return false, nil
	}
	k, err := c.itemKey(ctx, kind, key, round)
	if err != nil {
		return false, err
	}
	raw, err := c.client.Get(ctx, k).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return false, fmt.Errorf("decode cached %s: %w", kind, err)
	}
	return true, nil
}

func (c *SummaryCache) Set(ctx context.Context, kind, key, round string, v any) error {
	if !c.Enabled() {
		return nil
	}
	k, err := c.itemKey(ctx, kind, key, round)
	if err != nil {
		return err
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, k, raw, c.ttl).Err()
}

// Invalidate makes every cached entry unreachable. Failures are logged, not returned:
// a stale cache only lives for the TTL.
func (c *SummaryCache) Invalidate(ctx context.Context) {
	if !c.Enabled() {
		return
	}
	if err := c.client.Incr(ctx, versionKey).Err(); err != nil {
		logrus.WithError(err).Warn("summary cache invalidate failed")
	}
}
