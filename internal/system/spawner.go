package system

import (
	"fmt"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/zap"

	coresys "github.com/vampsurvivor/survivor/internal/core/system"
	"github.com/vampsurvivor/survivor/internal/world"
)

// SpawnerConfig drives the periodic enemy spawner.
type SpawnerConfig struct {
	Archetype string
	Interval  time.Duration
	Position  mgl64.Vec2
	MaxAlive  int // 0 = unbounded
}

// SpawnerSystem spawns one enemy every Interval of simulated time.
// Phase 4 (Gameplay).
type SpawnerSystem struct {
	world   *world.State
	cfg     SpawnerConfig
	log     *zap.Logger
	elapsed time.Duration
	spawned int
}

func NewSpawnerSystem(ws *world.State, cfg SpawnerConfig, log *zap.Logger) *SpawnerSystem {
	return &SpawnerSystem{world: ws, cfg: cfg, log: log}
}

func (s *SpawnerSystem) Phase() coresys.Phase { return coresys.PhaseGameplay }

func (s *SpawnerSystem) Update(dt time.Duration) error {
	s.elapsed += dt
	if s.elapsed < s.cfg.Interval {
		return nil
	}
	s.elapsed -= s.cfg.Interval

	if s.cfg.MaxAlive > 0 && s.world.EnemyCount() >= s.cfg.MaxAlive {
		return nil
	}
	id, err := s.world.Spawn(s.cfg.Archetype, world.SpawnParams{Position: s.cfg.Position})
	if err != nil {
		return fmt.Errorf("spawner: %w", err)
	}
	s.spawned++
	s.log.Debug("enemy spawned", zap.Uint64("entity", uint64(id)), zap.Int("total", s.spawned))
	return nil
}

// Spawned returns the number of entities spawned so far.
func (s *SpawnerSystem) Spawned() int { return s.spawned }
