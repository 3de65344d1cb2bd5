package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"go.uber.org/multierr"
)

type Config struct {
	Simulation SimulationConfig `toml:"simulation"`
	Physics    PhysicsConfig    `toml:"physics"`
	Spawner    SpawnerConfig    `toml:"spawner"`
	Player     PlayerConfig     `toml:"player"`
	Data       DataConfig       `toml:"data"`
	Logging    LoggingConfig    `toml:"logging"`
}

type SimulationConfig struct {
	TickRate         time.Duration `toml:"tick_rate"`           // fixed simulation step
	MaxTicksPerFrame int           `toml:"max_ticks_per_frame"` // catch-up clamp
	FrameRate        int           `toml:"frame_rate"`          // frames per second of the outer loop
	StatsInterval    int           `toml:"stats_interval"`      // ticks between stats log lines, 0 = off
}

type PhysicsConfig struct {
	Damping               float64 `toml:"damping"` // velocity kept per second, 1 = none
	ContactForceThreshold float64 `toml:"contact_force_threshold"`
}

type SpawnerConfig struct {
	Enabled   bool          `toml:"enabled"`
	Archetype string        `toml:"archetype"`
	Interval  time.Duration `toml:"interval"`
	X         float64       `toml:"x"`
	Y         float64       `toml:"y"`
	MaxAlive  int           `toml:"max_alive"`
}

type PlayerConfig struct {
	Archetype string  `toml:"archetype"`
	X         float64 `toml:"x"`
	Y         float64 `toml:"y"`
}

type DataConfig struct {
	Archetypes string `toml:"archetypes"`
	Scripts    string `toml:"scripts"`
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" or "console"
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg := Defaults()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var errs error
	if c.Simulation.TickRate <= 0 {
		errs = multierr.Append(errs, errors.New("simulation.tick_rate must be positive"))
	}
	if c.Simulation.MaxTicksPerFrame < 1 {
		errs = multierr.Append(errs, errors.New("simulation.max_ticks_per_frame must be at least 1"))
	}
	if c.Simulation.FrameRate < 1 {
		errs = multierr.Append(errs, errors.New("simulation.frame_rate must be at least 1"))
	}
	if c.Simulation.StatsInterval < 0 {
		errs = multierr.Append(errs, errors.New("simulation.stats_interval must not be negative"))
	}
	if c.Physics.Damping <= 0 || c.Physics.Damping > 1 {
		errs = multierr.Append(errs, errors.New("physics.damping must be in (0, 1]"))
	}
	if c.Physics.ContactForceThreshold < 0 {
		errs = multierr.Append(errs, errors.New("physics.contact_force_threshold must not be negative"))
	}
	if c.Spawner.Enabled {
		if c.Spawner.Interval <= 0 {
			errs = multierr.Append(errs, errors.New("spawner.interval must be positive"))
		}
		if c.Spawner.Archetype == "" {
			errs = multierr.Append(errs, errors.New("spawner.archetype is required"))
		}
	}
	if c.Player.Archetype == "" {
		errs = multierr.Append(errs, errors.New("player.archetype is required"))
	}
	switch c.Logging.Format {
	case "json", "console":
	default:
		errs = multierr.Append(errs, fmt.Errorf("logging.format %q is not json or console", c.Logging.Format))
	}
	return errs
}

// Defaults returns the built-in configuration that a config file overlays.
func Defaults() *Config {
	return &Config{
		Simulation: SimulationConfig{
			TickRate:         time.Second / 32,
			MaxTicksPerFrame: 8,
			FrameRate:        60,
			StatsInterval:    320, // 10 seconds at 32 ticks/s
		},
		Physics: PhysicsConfig{
			Damping: 1.0,
		},
		Spawner: SpawnerConfig{
			Enabled:   true,
			Archetype: "enemy",
			Interval:  500 * time.Millisecond,
			X:         200,
			Y:         200,
			MaxAlive:  256,
		},
		Player: PlayerConfig{
			Archetype: "player",
		},
		Data: DataConfig{
			Archetypes: "data/yaml/archetypes.yaml",
			Scripts:    "scripts",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}
