package config

import (
	"time"

	"github.com/spf13/viper"

	"github.com/turtacn/Jyotish-Intelligence/internal/domain/lifedomain"
	"github.com/turtacn/Jyotish-Intelligence/internal/domain/strength"
)

// ─────────────────────────────────────────────────────────────────────────────
// Default value constants
// ─────────────────────────────────────────────────────────────────────────────

const (
	DefaultServerHost            = "0.0.0.0"
	DefaultServerPort            = 8080
	DefaultServerMode            = "release"
	DefaultServerReadTimeout     = 10 * time.Second
	DefaultServerWriteTimeout    = 10 * time.Second
	DefaultServerShutdownTimeout = 15 * time.Second
	DefaultMaxBodySize           = 1 << 20

	DefaultRedisAddr = "localhost:6379"

	DefaultCacheTTL    = 24 * time.Hour
	DefaultCachePrefix = "jyotish:"
	DefaultCacheJitter = 0.1

	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"

	DefaultMetricsNamespace = "jyotish"
	DefaultMetricsPath      = "/metrics"

	DefaultCalibration = "sav"
	DefaultTierScheme  = "coarse"
)

// DefaultCalibrations are the built-in normalizer ranges.  "sav" matches the
// usual 18–38 Sarvashtakavarga spread, "raw" the wide 0–60 range.
func DefaultCalibrations() map[string]strength.Calibration {
	return map[string]strength.Calibration{
		"sav":   {Min: 18, Max: 38},
		"sav40": {Min: 18, Max: 40},
		"raw":   {Min: 0, Max: 60},
	}
}

// DefaultTierSchemes are the built-in tier tables keyed by scheme name.
func DefaultTierSchemes() map[string]strength.TierTable {
	return map[string]strength.TierTable{
		"coarse": strength.CoarseTiers(),
		"fine":   strength.FineTiers(),
	}
}

// NewDefaultConfig returns a Config usable without any file or environment.
func NewDefaultConfig() *Config {
	cfg := &Config{}
	ApplyDefaults(cfg)
	return cfg
}

// setViperDefaults registers scalar defaults so that JYOTISH_* variables
// are honoured by Unmarshal even when the key is absent from the file.
func setViperDefaults(v *viper.Viper) {
	v.SetDefault("server.host", DefaultServerHost)
	v.SetDefault("server.port", DefaultServerPort)
	v.SetDefault("server.mode", DefaultServerMode)
	v.SetDefault("server.read_timeout", DefaultServerReadTimeout)
	v.SetDefault("server.write_timeout", DefaultServerWriteTimeout)
	v.SetDefault("server.max_body_size", DefaultMaxBodySize)
	v.SetDefault("server.shutdown_timeout", DefaultServerShutdownTimeout)

	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.mode", "standalone")
	v.SetDefault("redis.addr", DefaultRedisAddr)
	v.SetDefault("redis.username", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	v.SetDefault("cache.ttl", DefaultCacheTTL)
	v.SetDefault("cache.prefix", DefaultCachePrefix)
	v.SetDefault("cache.jitter", DefaultCacheJitter)

	v.SetDefault("log.level", DefaultLogLevel)
	v.SetDefault("log.format", DefaultLogFormat)

	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.path", DefaultMetricsPath)
	v.SetDefault("metrics.namespace", DefaultMetricsNamespace)

	v.SetDefault("scoring.default_calibration", DefaultCalibration)
	v.SetDefault("scoring.default_tier_scheme", DefaultTierScheme)
}

// ─────────────────────────────────────────────────────────────────────────────
// ApplyDefaults
// ─────────────────────────────────────────────────────────────────────────────

// ApplyDefaults fills every zero-value field in cfg with the engine default.
// Explicit values are left alone.  Built-in calibration profiles and tier
// schemes are added only under names the configuration does not already use.
func ApplyDefaults(cfg *Config) {
	if cfg == nil {
		return
	}

	// ── Server ────────────────────────────────────────────────────────────────
	if cfg.Server.Host == "" {
		cfg.Server.Host = DefaultServerHost
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = DefaultServerPort
	}
	if cfg.Server.Mode == "" {
		cfg.Server.Mode = DefaultServerMode
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = DefaultServerReadTimeout
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = DefaultServerWriteTimeout
	}
	if cfg.Server.MaxBodySize == 0 {
		cfg.Server.MaxBodySize = DefaultMaxBodySize
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = DefaultServerShutdownTimeout
	}

	// ── Redis / cache ─────────────────────────────────────────────────────────
	if cfg.Redis.Addr == "" && len(cfg.Redis.Addrs) == 0 {
		cfg.Redis.Addr = DefaultRedisAddr
	}
	if cfg.Cache.TTL == 0 {
		cfg.Cache.TTL = DefaultCacheTTL
	}
	if cfg.Cache.Prefix == "" {
		cfg.Cache.Prefix = DefaultCachePrefix
	}

	// ── Log ───────────────────────────────────────────────────────────────────
	if cfg.Log.Level == "" {
		cfg.Log.Level = DefaultLogLevel
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = DefaultLogFormat
	}

	// ── Metrics ───────────────────────────────────────────────────────────────
	if cfg.Metrics.Namespace == "" {
		cfg.Metrics.Namespace = DefaultMetricsNamespace
	}
	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = DefaultMetricsPath
	}

	// ── Scoring ───────────────────────────────────────────────────────────────
	if cfg.Scoring.Calibrations == nil {
		cfg.Scoring.Calibrations = make(map[string]strength.Calibration)
	}
	for name, cal := range DefaultCalibrations() {
		if _, ok := cfg.Scoring.Calibrations[name]; !ok {
			cfg.Scoring.Calibrations[name] = cal
		}
	}
	if cfg.Scoring.TierSchemes == nil {
		cfg.Scoring.TierSchemes = make(map[string]strength.TierTable)
	}
	for name, table := range DefaultTierSchemes() {
		if _, ok := cfg.Scoring.TierSchemes[name]; !ok {
			cfg.Scoring.TierSchemes[name] = table
		}
	}
	for name, table := range cfg.Scoring.TierSchemes {
		if table.Name == "" {
			table.Name = name
			cfg.Scoring.TierSchemes[name] = table
		}
	}
	if cfg.Scoring.DefaultCalibration == "" {
		cfg.Scoring.DefaultCalibration = DefaultCalibration
	}
	if cfg.Scoring.DefaultTierScheme == "" {
		cfg.Scoring.DefaultTierScheme = DefaultTierScheme
	}
	if len(cfg.Scoring.Domains) == 0 {
		cfg.Scoring.Domains = lifedomain.DefaultDefinitions()
	}
}

//Personal.AI order the ending
