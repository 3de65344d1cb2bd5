package system

import (
	"math"
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/vampsurvivor/survivor/internal/component"
	"github.com/vampsurvivor/survivor/internal/core/ecs"
	coresys "github.com/vampsurvivor/survivor/internal/core/system"
	"github.com/vampsurvivor/survivor/internal/world"
)

// InputSource yields the desired movement direction for the current tick.
// Keyboard polling lives behind it.
type InputSource interface {
	Direction() mgl64.Vec2
}

// InputSystem turns the input direction into player body velocity.
// Phase 4 (Gameplay).
type InputSystem struct {
	world *world.State
	input InputSource
}

func NewInputSystem(ws *world.State, input InputSource) *InputSystem {
	return &InputSystem{world: ws, input: input}
}

func (s *InputSystem) Phase() coresys.Phase { return coresys.PhaseGameplay }

func (s *InputSystem) Update(_ time.Duration) error {
	ws := s.world
	dir := s.input.Direction()
	if dir.Len() > 0 {
		dir = dir.Normalize()
	}
	ecs.Each2(ws.RigidBodies, ws.Speeds, func(_ ecs.EntityID, rb *component.RigidBody, sp *component.Speed) {
		ws.Physics.SetLinearVelocity(rb.Handle, dir.Mul(sp.Value))
	}, ecs.With(ws.Players))
	return nil
}

// CircleInput steers in a circle, one full turn every Period calls.
// It stands in for a keyboard when running headless.
type CircleInput struct {
	Period int
	step   int
}

func (c *CircleInput) Direction() mgl64.Vec2 {
	if c.Period <= 0 {
		return mgl64.Vec2{}
	}
	a := 2 * math.Pi * float64(c.step%c.Period) / float64(c.Period)
	c.step++
	return mgl64.Vec2{math.Cos(a), math.Sin(a)}
}

// StaticInput always returns the same direction.
type StaticInput mgl64.Vec2

func (s StaticInput) Direction() mgl64.Vec2 { return mgl64.Vec2(s) }
