// Package redis holds the Redis connection and the read-through cache used
// to memoize analysis results.  Analyses are pure functions of their input,
// so a cached entry never goes stale; TTLs only bound memory.
package redis

import (
	"context"
	"crypto/tls"
	"runtime"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/turtacn/Jyotish-Intelligence/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/Jyotish-Intelligence/pkg/errors"
)

var (
	ErrClientClosed     = errors.New(errors.CodeCacheError, "redis client is closed")
	ErrConnectionFailed = errors.New(errors.CodeCacheError, "redis connection failed")
)

// RedisConfig is the redis section of the application configuration.
type RedisConfig struct {
	Enabled      bool          `mapstructure:"enabled" yaml:"enabled" json:"enabled"`
	Mode         string        `mapstructure:"mode" yaml:"mode" json:"mode"` // standalone, sentinel, cluster
	Addr         string        `mapstructure:"addr" yaml:"addr" json:"addr"`
	Addrs        []string      `mapstructure:"addrs" yaml:"addrs" json:"addrs"`
	MasterName   string        `mapstructure:"master_name" yaml:"master_name" json:"master_name"`
	Username     string        `mapstructure:"username" yaml:"username" json:"username"`
	Password     string        `mapstructure:"password" yaml:"password" json:"-"`
	DB           int           `mapstructure:"db" yaml:"db" json:"db"`
	PoolSize     int           `mapstructure:"pool_size" yaml:"pool_size" json:"pool_size"`
	DialTimeout  time.Duration `mapstructure:"dial_timeout" yaml:"dial_timeout" json:"dial_timeout"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout" yaml:"read_timeout" json:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout" yaml:"write_timeout" json:"write_timeout"`
	TLSEnabled   bool          `mapstructure:"tls_enabled" yaml:"tls_enabled" json:"tls_enabled"`
}

// Client is a closable wrapper around a go-redis universal client.
type Client struct {
	rdb    redis.UniversalClient
	cfg    RedisConfig
	logger logging.Logger

	mu     sync.RWMutex
	closed bool
}

// NewClient connects according to cfg and verifies the connection with PING.
func NewClient(ctx context.Context, cfg RedisConfig, log logging.Logger) (*Client, error) {
	if log == nil {
		log = logging.NewNopLogger()
	}
	applyDefaults(&cfg)

	opts := &redis.UniversalOptions{
		Addrs:        cfg.Addrs,
		MasterName:   cfg.MasterName,
		Username:     cfg.Username,
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     cfg.PoolSize,
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
	if cfg.TLSEnabled {
		opts.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
	}

	var rdb redis.UniversalClient
	switch cfg.Mode {
	case "cluster":
		rdb = redis.NewClusterClient(opts.Cluster())
	case "sentinel":
		rdb = redis.NewFailoverClient(opts.Failover())
	default:
		if cfg.Mode != "standalone" {
			log.Warn("unknown redis mode, using standalone", logging.String("mode", cfg.Mode))
		}
		rdb = redis.NewClient(opts.Simple())
	}

	pingCtx, cancel := context.WithTimeout(ctx, cfg.DialTimeout)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, ErrConnectionFailed.WithCause(err).WithDetail(cfg.Addr)
	}

	log.Info("redis connected", logging.String("mode", cfg.Mode), logging.Strings("addrs", cfg.Addrs))
	return &Client{rdb: rdb, cfg: cfg, logger: log}, nil
}

func applyDefaults(cfg *RedisConfig) {
	if cfg.Mode == "" {
		cfg.Mode = "standalone"
	}
	if len(cfg.Addrs) == 0 && cfg.Addr != "" {
		cfg.Addrs = []string{cfg.Addr}
	}
	if cfg.Addr == "" && len(cfg.Addrs) > 0 {
		cfg.Addr = cfg.Addrs[0]
	}
	if cfg.PoolSize == 0 {
		cfg.PoolSize = 10 * runtime.GOMAXPROCS(0)
	}
	if cfg.DialTimeout == 0 {
		cfg.DialTimeout = 5 * time.Second
	}
	if cfg.ReadTimeout == 0 {
		cfg.ReadTimeout = 3 * time.Second
	}
	if cfg.WriteTimeout == 0 {
		cfg.WriteTimeout = 3 * time.Second
	}
}

// Ping checks the connection.
func (c *Client) Ping(ctx context.Context) error {
	if c.isClosed() {
		return ErrClientClosed
	}
	return c.rdb.Ping(ctx).Err()
}

// Close releases the pool.  Subsequent calls are no-ops.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil
	}
	c.closed = true
	if err := c.rdb.Close(); err != nil {
		c.logger.Error("redis close failed", logging.Err(err))
		return err
	}
	return nil
}

// Underlying exposes the go-redis client for commands this wrapper omits.
func (c *Client) Underlying() redis.UniversalClient { return c.rdb }

func (c *Client) get(ctx context.Context, key string) ([]byte, error) {
	if c.isClosed() {
		return nil, ErrClientClosed
	}
	return c.rdb.Get(ctx, key).Bytes()
}

func (c *Client) set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if c.isClosed() {
		return ErrClientClosed
	}
	return c.rdb.Set(ctx, key, value, ttl).Err()
}

func (c *Client) del(ctx context.Context, keys ...string) (int64, error) {
	if c.isClosed() {
		return 0, ErrClientClosed
	}
	return c.rdb.Del(ctx, keys...).Result()
}

func (c *Client) scan(ctx context.Context, cursor uint64, match string, count int64) ([]string, uint64, error) {
	if c.isClosed() {
		return nil, 0, ErrClientClosed
	}
	return c.rdb.Scan(ctx, cursor, match, count).Result()
}

func (c *Client) isClosed() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.closed
}

//Personal.AI order the ending
