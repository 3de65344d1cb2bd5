package system

import (
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/vampsurvivor/survivor/internal/component"
	"github.com/vampsurvivor/survivor/internal/core/ecs"
	coresys "github.com/vampsurvivor/survivor/internal/core/system"
	"github.com/vampsurvivor/survivor/internal/world"
)

// EnemyAISystem steers every enemy straight at the player. Without a player
// enemies stop. Phase 4 (Gameplay).
type EnemyAISystem struct {
	world *world.State
}

func NewEnemyAISystem(ws *world.State) *EnemyAISystem {
	return &EnemyAISystem{world: ws}
}

func (s *EnemyAISystem) Phase() coresys.Phase { return coresys.PhaseGameplay }

func (s *EnemyAISystem) Update(_ time.Duration) error {
	ws := s.world
	var target mgl64.Vec2
	hasTarget := false
	if player, ok := ws.Player(); ok {
		target, hasTarget = ws.Position(player)
	}

	ecs.Each2(ws.RigidBodies, ws.Speeds, func(_ ecs.EntityID, rb *component.RigidBody, sp *component.Speed) {
		var vel mgl64.Vec2
		if hasTarget {
			if pos, ok := ws.Physics.Translation(rb.Handle); ok {
				if d := target.Sub(pos); d.Len() > 0 {
					vel = d.Normalize().Mul(sp.Value)
				}
			}
		}
		ws.Physics.SetLinearVelocity(rb.Handle, vel)
	}, ecs.With(ws.Enemies))
	return nil
}
