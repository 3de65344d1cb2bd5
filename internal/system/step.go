package system

import (
	"time"

	"go.uber.org/zap"

	coresys "github.com/vampsurvivor/survivor/internal/core/system"
	"github.com/vampsurvivor/survivor/internal/physics"
	"github.com/vampsurvivor/survivor/internal/world"
)

// StepSystem advances the physics engine by one fixed tick and holds the
// produced events until the collision pass drains them. Phase 2 (Step).
type StepSystem struct {
	world   *world.State
	log     *zap.Logger
	pending physics.StepEvents
}

func NewStepSystem(ws *world.State, log *zap.Logger) *StepSystem {
	return &StepSystem{world: ws, log: log}
}

func (s *StepSystem) Phase() coresys.Phase { return coresys.PhaseStep }

func (s *StepSystem) Update(dt time.Duration) error {
	if n := s.pending.Len(); n > 0 {
		// events never cross a tick boundary
		s.log.Warn("undrained physics events discarded", zap.Int("events", n))
	}
	s.pending = s.world.Physics.Step(dt.Seconds())
	return nil
}

// Drain returns this tick's events and empties the queue.
func (s *StepSystem) Drain() physics.StepEvents {
	ev := s.pending
	s.pending = physics.StepEvents{}
	return ev
}
