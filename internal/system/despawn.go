package system

import (
	"time"

	"go.uber.org/zap"

	"github.com/vampsurvivor/survivor/internal/core/ecs"
	"github.com/vampsurvivor/survivor/internal/core/event"
	coresys "github.com/vampsurvivor/survivor/internal/core/system"
	"github.com/vampsurvivor/survivor/internal/world"
)

// DespawnSystem tears down every entity carrying the Despawn marker.
// Physics resources go first, then the entity itself. Phase 6 (Despawn).
type DespawnSystem struct {
	world      *world.State
	bridge     *HandleBridge
	collisions *CollisionSystem
	bus        *event.Bus
	log        *zap.Logger
}

func NewDespawnSystem(ws *world.State, bridge *HandleBridge, collisions *CollisionSystem, bus *event.Bus, log *zap.Logger) *DespawnSystem {
	return &DespawnSystem{world: ws, bridge: bridge, collisions: collisions, bus: bus, log: log}
}

func (s *DespawnSystem) Phase() coresys.Phase { return coresys.PhaseDespawn }

func (s *DespawnSystem) Update(_ time.Duration) error {
	for _, id := range ecs.CollectSorted(s.world.Despawns) {
		s.despawn(id)
	}
	return nil
}

func (s *DespawnSystem) despawn(id ecs.EntityID) {
	ws := s.world
	s.collisions.Detach(id)

	owned := false
	if rb, ok := ws.RigidBodies.Get(id); ok {
		owned = true
		if !ws.Physics.RemoveBody(rb.Handle) {
			s.log.Warn("despawned entity held a stale body handle",
				zap.Uint64("entity", uint64(id)),
				zap.Uint64("body", uint64(rb.Handle)))
		}
	}
	s.bridge.Forget(id)

	if !ws.ECS.Destroy(id) {
		s.log.Debug("despawn of dead entity", zap.Uint64("entity", uint64(id)))
		return
	}
	event.Emit(s.bus, event.EntityDespawned{Entity: id, Physics: owned})
}
