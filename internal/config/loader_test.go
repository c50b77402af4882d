package config

import (
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/Jyotish-Intelligence/internal/domain/strength"
	"github.com/turtacn/Jyotish-Intelligence/pkg/errors"
)

const validConfigYAML = `
server:
  port: 9090
  mode: test
redis:
  enabled: true
  addr: "cache:6379"
cache:
  ttl: 1h
log:
  level: debug
  format: console
metrics:
  namespace: astro
scoring:
  default_calibration: narrow
  calibrations:
    narrow:
      min: 20
      max: 34
  tier_schemes:
    halves:
      basis: percent
      thresholds:
        - min: 50
          tier: Good
      floor: Challenging
  domains:
    - name: career
      houses: [10]
      karakas: [Sun, Saturn]
    - name: family
      houses: [4]
      karakas: [Moon]
`

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_FromFile_ValidConfig(t *testing.T) {
	cfg, err := Load(writeConfig(t, validConfigYAML))
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "test", cfg.Server.Mode)
	assert.True(t, cfg.Redis.Enabled)
	assert.Equal(t, "cache:6379", cfg.Redis.Addr)
	assert.Equal(t, time.Hour, cfg.Cache.TTL)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Equal(t, "astro", cfg.Metrics.Namespace)

	cal, err := cfg.Scoring.Calibration("")
	require.NoError(t, err)
	assert.Equal(t, strength.Calibration{Min: 20, Max: 34}, cal)
	assert.Contains(t, cfg.Scoring.Calibrations, "sav", "built-in profiles stay available")

	halves, err := cfg.Scoring.TierScheme("halves")
	require.NoError(t, err)
	assert.Equal(t, "halves", halves.Name)
	assert.Equal(t, strength.TierGood, halves.TierOf(75))
	assert.Equal(t, strength.TierChallenging, halves.TierOf(10))

	require.Len(t, cfg.Scoring.Domains, 2)
	assert.Equal(t, "family", cfg.Scoring.Domains[1].Name)
	assert.EqualValues(t, 4, cfg.Scoring.Domains[1].Houses[0])
}

func TestLoad_ShippedConfig(t *testing.T) {
	cfg, err := Load(filepath.Join("..", "..", "configs", "config.yaml"))
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, strength.Calibration{Min: 18, Max: 38}, cfg.Scoring.Calibrations["sav"])
	assert.Equal(t, []string{"coarse", "fine"}, cfg.Scoring.TierSchemeNames())
	assert.Len(t, cfg.Scoring.Domains, 5)
	assert.True(t, cfg.Metrics.Enabled)
}

func TestLoad_FromFile_FileNotFound(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.CodeNotFound))
}

func TestLoad_FromFile_InvalidYAML(t *testing.T) {
	_, err := Load(writeConfig(t, "server: [unclosed"))
	assert.Error(t, err)
}

func TestLoad_FromFile_DegenerateCalibration(t *testing.T) {
	_, err := Load(writeConfig(t, `
scoring:
  calibrations:
    broken:
      min: 40
      max: 18
`))
	require.Error(t, err)
	assert.True(t, errors.IsDegenerateCalibration(err))
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("JYOTISH_SERVER_PORT", "7070")
	t.Setenv("JYOTISH_LOG_LEVEL", "warn")

	cfg, err := Load(writeConfig(t, validConfigYAML))
	require.NoError(t, err)
	assert.Equal(t, 7070, cfg.Server.Port)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoadFromEnv_NoFile(t *testing.T) {
	t.Setenv("JYOTISH_REDIS_ADDR", "redis.internal:6380")
	t.Setenv("JYOTISH_SCORING_DEFAULT_TIER_SCHEME", "fine")

	cfg, err := LoadFromEnv()
	require.NoError(t, err)
	assert.Equal(t, DefaultServerPort, cfg.Server.Port)
	assert.Equal(t, "redis.internal:6380", cfg.Redis.Addr)
	assert.Equal(t, "fine", cfg.Scoring.DefaultTierScheme)
	assert.Len(t, cfg.Scoring.Domains, 5)
}

func TestLoad_EmptyPathUsesEnv(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, DefaultCalibration, cfg.Scoring.DefaultCalibration)
}

func TestMustLoad_Panic(t *testing.T) {
	assert.Panics(t, func() { MustLoad(filepath.Join(t.TempDir(), "missing.yaml")) })
}

func TestWatch_ReloadsOnWrite(t *testing.T) {
	path := writeConfig(t, "log:\n  level: info\n")

	var (
		level  atomic.Value
		failed atomic.Int32
	)
	err := Watch(path,
		func(cfg *Config) { level.Store(cfg.Log.Level) },
		func(error) { failed.Add(1) },
	)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(path, []byte("log:\n  level: debug\n"), 0o600))
	assert.Eventually(t, func() bool {
		v, _ := level.Load().(string)
		return v == "debug"
	}, 5*time.Second, 20*time.Millisecond)

	require.NoError(t, os.WriteFile(path, []byte("log:\n  level: shouty\n"), 0o600))
	assert.Eventually(t, func() bool { return failed.Load() > 0 }, 5*time.Second, 20*time.Millisecond)
}

func TestWatch_MissingFile(t *testing.T) {
	err := Watch(filepath.Join(t.TempDir(), "missing.yaml"), func(*Config) {}, nil)
	assert.Error(t, err)
}

//Personal.AI order the ending
