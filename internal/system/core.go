package system

import (
	"go.uber.org/zap"

	"github.com/vampsurvivor/survivor/internal/core/event"
	coresys "github.com/vampsurvivor/survivor/internal/core/system"
	"github.com/vampsurvivor/survivor/internal/world"
)

// Core groups the systems that keep the entity store and the physics engine
// consistent: bridge, step, collision, despawn and transform sync.
type Core struct {
	Bridge     *HandleBridge
	Step       *StepSystem
	Collisions *CollisionSystem
	Despawn    *DespawnSystem
	Sync       *TransformSyncSystem
}

func NewCore(ws *world.State, bus *event.Bus, log *zap.Logger) *Core {
	bridge := NewHandleBridge(ws, log.Named("bridge"))
	step := NewStepSystem(ws, log.Named("step"))
	collisions := NewCollisionSystem(ws, bridge, step, bus, log.Named("collision"))
	return &Core{
		Bridge:     bridge,
		Step:       step,
		Collisions: collisions,
		Despawn:    NewDespawnSystem(ws, bridge, collisions, bus, log.Named("despawn")),
		Sync:       NewTransformSyncSystem(ws),
	}
}

// Register adds every core system to r.
func (c *Core) Register(r *coresys.Runner) {
	r.Register(c.Bridge)
	r.Register(c.Step)
	r.Register(c.Collisions)
	r.Register(c.Despawn)
	r.Register(c.Sync)
}
