package redis

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"math/rand"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"

	"github.com/turtacn/Jyotish-Intelligence/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/Jyotish-Intelligence/pkg/errors"
)

var (
	ErrCacheMiss           = errors.New(errors.CodeNotFound, "cache miss")
	ErrSerializationFailed = errors.New(errors.CodeCacheError, "cache serialization failed")
)

// Cache is a JSON-valued key/value cache.
type Cache interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	// GetOrSet reads key into dest, or runs loader once per key across
	// concurrent callers, stores its result and decodes it into dest.
	GetOrSet(ctx context.Context, key string, dest interface{}, ttl time.Duration, loader func(ctx context.Context) (interface{}, error)) (hit bool, err error)
	DeleteByPrefix(ctx context.Context, prefix string) (int64, error)
	Ping(ctx context.Context) error
}

type redisCache struct {
	client     *Client
	logger     logging.Logger
	prefix     string
	defaultTTL time.Duration
	jitter     float64
	group      singleflight.Group
}

type CacheOption func(*redisCache)

func WithPrefix(prefix string) CacheOption { return func(c *redisCache) { c.prefix = prefix } }

func WithDefaultTTL(ttl time.Duration) CacheOption { return func(c *redisCache) { c.defaultTTL = ttl } }

// WithJitter spreads expirations by ±fraction of the TTL.  0 disables.
func WithJitter(fraction float64) CacheOption { return func(c *redisCache) { c.jitter = fraction } }

// NewRedisCache builds a Cache on client.  Keys are namespaced with
// "jyotish:" unless WithPrefix says otherwise.
func NewRedisCache(client *Client, log logging.Logger, opts ...CacheOption) Cache {
	if log == nil {
		log = logging.NewNopLogger()
	}
	c := &redisCache{
		client:     client,
		logger:     log.Named("cache"),
		prefix:     "jyotish:",
		defaultTTL: 24 * time.Hour,
		jitter:     0.1,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *redisCache) key(k string) string { return c.prefix + k }

func (c *redisCache) ttl(ttl time.Duration) time.Duration {
	if ttl <= 0 {
		ttl = c.defaultTTL
	}
	if c.jitter <= 0 {
		return ttl
	}
	return ttl + time.Duration(float64(ttl)*c.jitter*(rand.Float64()*2-1))
}

func (c *redisCache) Get(ctx context.Context, key string, dest interface{}) error {
	data, err := c.client.get(ctx, c.key(key))
	if stderrors.Is(err, redis.Nil) {
		return ErrCacheMiss
	}
	if err != nil {
		return errors.Wrap(err, errors.CodeCacheError, "cache get").WithDetail(key)
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return ErrSerializationFailed.WithCause(err).WithDetail(key)
	}
	return nil
}

func (c *redisCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return ErrSerializationFailed.WithCause(err).WithDetail(key)
	}
	if err := c.client.set(ctx, c.key(key), data, c.ttl(ttl)); err != nil {
		return errors.Wrap(err, errors.CodeCacheError, "cache set").WithDetail(key)
	}
	return nil
}

func (c *redisCache) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	full := make([]string, len(keys))
	for i, k := range keys {
		full[i] = c.key(k)
	}
	_, err := c.client.del(ctx, full...)
	return err
}

func (c *redisCache) GetOrSet(ctx context.Context, key string, dest interface{}, ttl time.Duration,
	loader func(ctx context.Context) (interface{}, error)) (bool, error) {

	err := c.Get(ctx, key, dest)
	switch {
	case err == nil:
		return true, nil
	case errors.IsCode(err, errors.CodeNotFound):
	default:
		// a broken cache must not block the computation
		c.logger.Warn("cache read failed, computing", logging.String("key", key), logging.Err(err))
	}

	raw, err, _ := c.group.Do(key, func() (interface{}, error) {
		v, err := loader(ctx)
		if err != nil {
			return nil, err
		}
		data, err := json.Marshal(v)
		if err != nil {
			return nil, ErrSerializationFailed.WithCause(err).WithDetail(key)
		}
		if err := c.client.set(ctx, c.key(key), data, c.ttl(ttl)); err != nil {
			c.logger.Warn("cache write failed", logging.String("key", key), logging.Err(err))
		}
		return data, nil
	})
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(raw.([]byte), dest); err != nil {
		return false, ErrSerializationFailed.WithCause(err).WithDetail(key)
	}
	return false, nil
}

func (c *redisCache) DeleteByPrefix(ctx context.Context, prefix string) (int64, error) {
	var (
		deleted int64
		cursor  uint64
	)
	match := c.key(prefix) + "*"
	for {
		keys, next, err := c.client.scan(ctx, cursor, match, 100)
		if err != nil {
			return deleted, err
		}
		if len(keys) > 0 {
			n, err := c.client.del(ctx, keys...)
			if err != nil {
				return deleted, err
			}
			deleted += n
		}
		if cursor = next; cursor == 0 {
			return deleted, nil
		}
	}
}

func (c *redisCache) Ping(ctx context.Context) error { return c.client.Ping(ctx) }

//Personal.AI order the ending
