package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "survivor.toml")
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	return p
}

func TestLoadShippedConfig(t *testing.T) {
	cfg, err := Load(filepath.Join("..", "..", "config", "survivor.toml"))
	require.NoError(t, err)
	assert.Equal(t, time.Second/32, cfg.Simulation.TickRate)
	assert.Equal(t, 8, cfg.Simulation.MaxTicksPerFrame)
	assert.Equal(t, 500*time.Millisecond, cfg.Spawner.Interval)
	assert.Equal(t, "player", cfg.Player.Archetype)
}

func TestFileOverlaysDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, `
[simulation]
tick_rate = "20ms"

[logging]
level = "debug"
`))
	require.NoError(t, err)
	assert.Equal(t, 20*time.Millisecond, cfg.Simulation.TickRate)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, 60, cfg.Simulation.FrameRate, "untouched keys keep defaults")
	assert.Equal(t, "enemy", cfg.Spawner.Archetype)
}

func TestValidateCollectsAllErrors(t *testing.T) {
	_, err := Load(writeConfig(t, `
[simulation]
tick_rate = "0s"
max_ticks_per_frame = 0

[physics]
damping = 2.0

[logging]
format = "xml"
`))
	require.Error(t, err)
	msg := err.Error()
	assert.Contains(t, msg, "simulation.tick_rate must be positive")
	assert.Contains(t, msg, "simulation.max_ticks_per_frame must be at least 1")
	assert.Contains(t, msg, "physics.damping must be in (0, 1]")
	assert.Contains(t, msg, `logging.format "xml"`)
}

func TestDisabledSpawnerSkipsItsChecks(t *testing.T) {
	cfg := Defaults()
	cfg.Spawner.Enabled = false
	cfg.Spawner.Interval = 0
	assert.NoError(t, cfg.Validate())
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = Load(writeConfig(t, "this is = = not toml"))
	assert.ErrorContains(t, err, "parse config")
}
