// Package config defines the configuration tree of the Jyotish engine.  Only
// plain data types and validation live here; loading is in loader.go.
package config

import (
	"sort"
	"time"

	"github.com/turtacn/Jyotish-Intelligence/internal/domain/lifedomain"
	"github.com/turtacn/Jyotish-Intelligence/internal/domain/strength"
	"github.com/turtacn/Jyotish-Intelligence/internal/infrastructure/database/redis"
	"github.com/turtacn/Jyotish-Intelligence/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/Jyotish-Intelligence/internal/infrastructure/monitoring/prometheus"
	"github.com/turtacn/Jyotish-Intelligence/pkg/errors"
)

// ─────────────────────────────────────────────────────────────────────────────
// Sub-configuration structs
// ─────────────────────────────────────────────────────────────────────────────

// ServerConfig holds HTTP server tunables.
type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	Mode            string        `mapstructure:"mode"` // "debug" | "release" | "test"
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	MaxBodySize     int64         `mapstructure:"max_body_size"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// CacheConfig controls memoisation of analysis results.  Caching is active
// only when redis.enabled is true.
type CacheConfig struct {
	TTL    time.Duration `mapstructure:"ttl"`
	Prefix string        `mapstructure:"prefix"`
	Jitter float64       `mapstructure:"jitter"`
}

// MetricsConfig controls the Prometheus registry and its HTTP path.
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`

	prometheus.CollectorConfig `mapstructure:",squash"`
}

// ScoringConfig holds the named calibration profiles, tier schemes and
// life-domain definitions selected per request.
type ScoringConfig struct {
	Calibrations       map[string]strength.Calibration `mapstructure:"calibrations"`
	DefaultCalibration string                          `mapstructure:"default_calibration"`
	TierSchemes        map[string]strength.TierTable   `mapstructure:"tier_schemes"`
	DefaultTierScheme  string                          `mapstructure:"default_tier_scheme"`
	Domains            []lifedomain.Definition         `mapstructure:"domains"`
}

// Calibration resolves a calibration profile by name.  An empty name selects
// DefaultCalibration.
func (s ScoringConfig) Calibration(name string) (strength.Calibration, error) {
	if name == "" {
		name = s.DefaultCalibration
	}
	cal, ok := s.Calibrations[name]
	if !ok {
		return strength.Calibration{}, errors.New(errors.CodeUnknownProfile, "unknown calibration profile").
			WithDetail(name)
	}
	return cal, nil
}

// TierScheme resolves a tier table by name.  An empty name selects
// DefaultTierScheme.
func (s ScoringConfig) TierScheme(name string) (strength.TierTable, error) {
	if name == "" {
		name = s.DefaultTierScheme
	}
	table, ok := s.TierSchemes[name]
	if !ok {
		return strength.TierTable{}, errors.New(errors.CodeUnknownProfile, "unknown tier scheme").
			WithDetail(name)
	}
	return table, nil
}

// CalibrationNames lists the configured profiles in sorted order.
func (s ScoringConfig) CalibrationNames() []string {
	names := make([]string, 0, len(s.Calibrations))
	for n := range s.Calibrations {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// TierSchemeNames lists the configured schemes in sorted order.
func (s ScoringConfig) TierSchemeNames() []string {
	names := make([]string, 0, len(s.TierSchemes))
	for n := range s.TierSchemes {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// ─────────────────────────────────────────────────────────────────────────────
// Root
// ─────────────────────────────────────────────────────────────────────────────

// Config is the root of the configuration tree.
type Config struct {
	Server  ServerConfig      `mapstructure:"server"`
	Redis   redis.RedisConfig `mapstructure:"redis"`
	Cache   CacheConfig       `mapstructure:"cache"`
	Log     logging.LogConfig `mapstructure:"log"`
	Metrics MetricsConfig     `mapstructure:"metrics"`
	Scoring ScoringConfig     `mapstructure:"scoring"`
}

// ─────────────────────────────────────────────────────────────────────────────
// Validation
// ─────────────────────────────────────────────────────────────────────────────

// Validate performs semantic validation of a fully defaulted Config and
// returns the first problem found.  A degenerate calibration or a malformed
// tier table is a configuration error and keeps the process from starting.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return errors.Newf(errors.CodeValidation, "config: server.port %d is out of range [1, 65535]", c.Server.Port)
	}
	switch c.Server.Mode {
	case "debug", "release", "test":
	default:
		return errors.Newf(errors.CodeValidation, "config: server.mode %q is invalid; expected debug|release|test", c.Server.Mode)
	}

	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return errors.Newf(errors.CodeValidation, "config: log.level %q is invalid; expected debug|info|warn|error", c.Log.Level)
	}
	switch c.Log.Format {
	case "json", "console":
	default:
		return errors.Newf(errors.CodeValidation, "config: log.format %q is invalid; expected json|console", c.Log.Format)
	}

	if c.Redis.Enabled && c.Redis.Addr == "" && len(c.Redis.Addrs) == 0 {
		return errors.New(errors.CodeValidation, "config: redis.addr is required when redis is enabled")
	}
	if c.Cache.TTL < 0 {
		return errors.Newf(errors.CodeValidation, "config: cache.ttl must be ≥ 0, got %s", c.Cache.TTL)
	}
	if c.Cache.Jitter < 0 || c.Cache.Jitter >= 1 {
		return errors.Newf(errors.CodeValidation, "config: cache.jitter must be in [0, 1), got %g", c.Cache.Jitter)
	}

	if c.Metrics.Enabled && c.Metrics.Namespace == "" {
		return errors.New(errors.CodeValidation, "config: metrics.namespace is required when metrics are enabled")
	}

	return c.Scoring.Validate()
}

// Validate checks every profile, scheme and domain definition, and that the
// default names resolve.
func (s ScoringConfig) Validate() error {
	for _, name := range s.CalibrationNames() {
		if err := s.Calibrations[name].Validate(); err != nil {
			return errors.Wrap(err, errors.CodeUnknown, "config: scoring.calibrations."+name)
		}
	}
	for _, name := range s.TierSchemeNames() {
		if err := s.TierSchemes[name].Validate(); err != nil {
			return errors.Wrap(err, errors.CodeUnknown, "config: scoring.tier_schemes."+name)
		}
	}
	if _, err := s.Calibration(""); err != nil {
		return err
	}
	if _, err := s.TierScheme(""); err != nil {
		return err
	}

	seen := make(map[string]bool, len(s.Domains))
	for _, d := range s.Domains {
		if err := d.Validate(); err != nil {
			return err
		}
		if seen[d.Name] {
			return errors.New(errors.CodeValidation, "config: duplicate domain").WithDetail(d.Name)
		}
		seen[d.Name] = true
	}
	return nil
}

//Personal.AI order the ending
