package game

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

const testConfigYAML = `
seed: replay-1
arena:
  width: 1600
  cell_size: 32
player:
  start:
    x: 10
    y: -20
  drag: 0.5
enemy:
  wander_sampling: square
wave:
  item_every: 3
log:
  level: debug
`

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadConfigOverlaysDefaults(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, testConfigYAML))
	require.NoError(t, err)

	assert.Equal(t, "replay-1", cfg.Seed)
	assert.Equal(t, 1600.0, cfg.Arena.Width)
	assert.Equal(t, 32.0, cfg.Arena.CellSize)
	assert.Equal(t, Vec2{10, -20}, cfg.Player.Start)
	assert.Equal(t, 0.5, cfg.Player.Drag)
	assert.Equal(t, WanderSquare, cfg.Enemy.WanderSampling)
	assert.Equal(t, 3, cfg.Wave.ItemEvery)
	assert.Equal(t, "debug", cfg.Log.Level)

	// Untouched keys keep their defaults
	d := DefaultConfig()
	assert.Equal(t, d.Arena.Height, cfg.Arena.Height)
	assert.Equal(t, d.Player.Damage, cfg.Player.Damage)
	assert.Equal(t, d.Enemy.Awareness, cfg.Enemy.Awareness)
}

func TestLoadConfigEnvOverride(t *testing.T) {
	t.Setenv("SWARMARENA_ARENA_WIDTH", "900")

	cfg, err := LoadConfig(writeConfig(t, testConfigYAML))
	require.NoError(t, err)
	assert.Equal(t, 900.0, cfg.Arena.Width)
}

func TestLoadConfigErrors(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "failed to read config")

	_, err = LoadConfig(writeConfig(t, "arena: [not, a, map"))
	assert.Error(t, err)
}

func TestSanitizeClampsBrokenValues(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Arena.Width = -5
	cfg.Arena.ClampTop = 0
	cfg.Arena.CellSize = 0
	cfg.Player.FireInterval = 0
	cfg.Player.Mass = -1
	cfg.Player.Radius = 0
	cfg.Enemy.Awareness = 0
	cfg.Enemy.WanderSampling = "zigzag"
	cfg.Wave.ItemEvery = 0
	cfg.Wave.SpawnAttempts = 0

	s := cfg.Sanitize()
	d := DefaultConfig()

	assert.Equal(t, 1.0, s.Arena.Width)
	assert.Equal(t, d.Arena.ClampTop, s.Arena.ClampTop)
	assert.Equal(t, d.Arena.CellSize, s.Arena.CellSize)
	assert.Equal(t, d.Player.MinFireInterval, s.Player.FireInterval)
	assert.Equal(t, d.Player.Mass, s.Player.Mass)
	assert.Equal(t, minRadius, s.Player.Radius)
	assert.Equal(t, d.Enemy.Awareness, s.Enemy.Awareness)
	assert.Equal(t, WanderAngular, s.Enemy.WanderSampling)
	assert.Equal(t, d.Wave.ItemEvery, s.Wave.ItemEvery)
	assert.Equal(t, 1, s.Wave.SpawnAttempts)
}

func TestDefaultConfigIsSane(t *testing.T) {
	d := DefaultConfig()
	assert.Equal(t, d, d.Sanitize())

	b := d.Arena.Bounds()
	assert.InDelta(t, -1200/2.2, b.Min.X, 1e-9)
	assert.InDelta(t, 800/2.3, b.Max.Y, 1e-9)
	assert.InDelta(t, -800/2.5, b.Min.Y, 1e-9)
}

func TestNewLoggerHonoursLevel(t *testing.T) {
	logger, err := NewLogger(LogConfig{Level: "warn"})
	require.NoError(t, err)
	assert.False(t, logger.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, logger.Core().Enabled(zapcore.WarnLevel))

	logger, err = NewLogger(LogConfig{Level: "debug", Development: true})
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(zapcore.DebugLevel))

	logger, err = NewLogger(LogConfig{Level: "loud"})
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(zapcore.InfoLevel))
	assert.False(t, logger.Core().Enabled(zapcore.DebugLevel))
}
