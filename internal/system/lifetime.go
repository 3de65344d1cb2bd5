package system

import (
	"time"

	"github.com/vampsurvivor/survivor/internal/component"
	"github.com/vampsurvivor/survivor/internal/core/ecs"
	coresys "github.com/vampsurvivor/survivor/internal/core/system"
	"github.com/vampsurvivor/survivor/internal/world"
)

// LifetimeSystem counts down timed entities and marks them for despawn.
// Phase 4 (Gameplay).
type LifetimeSystem struct {
	world *world.State
}

func NewLifetimeSystem(ws *world.State) *LifetimeSystem {
	return &LifetimeSystem{world: ws}
}

func (s *LifetimeSystem) Phase() coresys.Phase { return coresys.PhaseGameplay }

func (s *LifetimeSystem) Update(_ time.Duration) error {
	ws := s.world
	ecs.Each(ws.Lifetimes, func(id ecs.EntityID, lt *component.Lifetime) {
		lt.RemainingTicks--
		if lt.RemainingTicks <= 0 {
			ws.Despawns.Set(id, &component.Despawn{})
		}
	}, ecs.Without(ws.Despawns))
	return nil
}
