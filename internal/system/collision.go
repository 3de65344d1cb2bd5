package system

import (
	"time"

	"go.uber.org/zap"

	"github.com/vampsurvivor/survivor/internal/component"
	"github.com/vampsurvivor/survivor/internal/core/ecs"
	"github.com/vampsurvivor/survivor/internal/core/event"
	coresys "github.com/vampsurvivor/survivor/internal/core/system"
	"github.com/vampsurvivor/survivor/internal/physics"
	"github.com/vampsurvivor/survivor/internal/world"
)

// CollisionSystem turns the tick's collider events into symmetric
// CollideWith relations. Phase 3 (Collision).
type CollisionSystem struct {
	world  *world.State
	bridge *HandleBridge
	step   *StepSystem
	bus    *event.Bus
	log    *zap.Logger
}

func NewCollisionSystem(ws *world.State, bridge *HandleBridge, step *StepSystem, bus *event.Bus, log *zap.Logger) *CollisionSystem {
	return &CollisionSystem{world: ws, bridge: bridge, step: step, bus: bus, log: log}
}

func (s *CollisionSystem) Phase() coresys.Phase { return coresys.PhaseCollision }

func (s *CollisionSystem) Update(_ time.Duration) error {
	events := s.step.Drain()
	for _, ev := range events.Collisions {
		s.Apply(ev)
	}
	for _, cf := range events.ContactForces {
		a, okA := s.bridge.EntityOf(cf.A)
		b, okB := s.bridge.EntityOf(cf.B)
		if !okA || !okB {
			continue
		}
		event.Emit(s.bus, event.ContactForce{A: a, B: b, Magnitude: cf.Magnitude})
	}
	return nil
}

// Apply updates both relations for one event. It reports false when the
// event was dropped because a side no longer resolves to a live entity.
func (s *CollisionSystem) Apply(ev physics.CollisionEvent) bool {
	a, okA := s.bridge.EntityOf(ev.A)
	b, okB := s.bridge.EntityOf(ev.B)
	if !okA || !okB {
		s.log.Debug("collision event for stale collider dropped",
			zap.Stringer("kind", ev.Kind),
			zap.Uint64("a", uint64(ev.A)),
			zap.Uint64("b", uint64(ev.B)))
		return false
	}
	if a == b {
		return false
	}
	ra, okA := s.world.CollideWith.Get(a)
	rb, okB := s.world.CollideWith.Get(b)
	if !okA || !okB {
		s.log.Debug("collision event for entity without relation dropped",
			zap.Uint64("a", uint64(a)),
			zap.Uint64("b", uint64(b)))
		return false
	}

	switch ev.Kind {
	case physics.Started:
		addOnce(ra, b)
		addOnce(rb, a)
	case physics.Stopped:
		removeOne(ra, b)
		removeOne(rb, a)
	}
	return true
}

// Detach removes id from every relation that lists it and clears its own.
func (s *CollisionSystem) Detach(id ecs.EntityID) {
	rel, ok := s.world.CollideWith.Get(id)
	if !ok {
		return
	}
	for _, other := range rel.Entities {
		if r, ok := s.world.CollideWith.Get(other); ok {
			removeOne(r, id)
		}
	}
	rel.Entities = rel.Entities[:0]
}

func addOnce(r *component.CollideWith, id ecs.EntityID) {
	if !r.Contains(id) {
		r.Entities = append(r.Entities, id)
	}
}

func removeOne(r *component.CollideWith, id ecs.EntityID) {
	for i, e := range r.Entities {
		if e == id {
			last := len(r.Entities) - 1
			r.Entities[i] = r.Entities[last]
			r.Entities = r.Entities[:last]
			return
		}
	}
}
