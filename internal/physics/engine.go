package physics

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/jakecoffman/cp"
	"go.uber.org/zap"
)

var (
	ErrUnknownBody     = errors.New("unknown body handle")
	ErrUnknownCollider = errors.New("unknown collider handle")
	ErrInvalidCollider = errors.New("invalid collider descriptor")
)

// every collider shares one collision type so a single handler sees all pairs
const entityCollisionType cp.CollisionType = 1

// Options tune the engine. The zero value is usable.
type Options struct {
	// Damping is the fraction of velocity kept per second (1 = none).
	Damping float64
	// ContactForceThreshold enables contact-force events at or above this
	// magnitude. 0 disables them.
	ContactForceThreshold float64
}

type bodyEntry struct {
	body      *cp.Body
	kind      BodyKind
	mass      float64
	lockRot   bool
	colliders []ColliderHandle
}

type colliderEntry struct {
	shape        *cp.Shape
	parent       BodyHandle
	sensor       bool
	activeEvents bool
	userData     uint64
}

// Engine wraps a Chipmunk space with handle-based bookkeeping.
// Single-goroutine access only (game loop).
type Engine struct {
	space *cp.Space
	log   *zap.Logger

	bodies       map[BodyHandle]*bodyEntry
	colliders    map[ColliderHandle]*colliderEntry
	shapeHandles map[*cp.Shape]ColliderHandle
	nextBody     BodyHandle
	nextCollider ColliderHandle

	forceThreshold float64
	stepDt         float64
	pending        StepEvents
}

// NewEngine creates a top-down space: zero gravity, no sleeping.
func NewEngine(opts Options, log *zap.Logger) *Engine {
	space := cp.NewSpace()
	space.SetGravity(cp.Vector{})
	if opts.Damping > 0 && opts.Damping < 1 {
		space.SetDamping(opts.Damping)
	}

	e := &Engine{
		space:          space,
		log:            log,
		bodies:         make(map[BodyHandle]*bodyEntry, 256),
		colliders:      make(map[ColliderHandle]*colliderEntry, 256),
		shapeHandles:   make(map[*cp.Shape]ColliderHandle, 256),
		forceThreshold: opts.ContactForceThreshold,
	}

	h := space.NewCollisionHandler(entityCollisionType, entityCollisionType)
	h.BeginFunc = e.onBegin
	h.SeparateFunc = e.onSeparate
	h.PostSolveFunc = e.onPostSolve
	return e
}

// InsertBody adds a body and returns its handle.
func (e *Engine) InsertBody(desc BodyDescriptor) BodyHandle {
	var body *cp.Body
	mass := desc.Mass
	switch desc.Kind {
	case Kinematic:
		body = cp.NewKinematicBody()
	case Static:
		body = cp.NewStaticBody()
	default:
		if mass <= 0 {
			mass = 1
		}
		// moment is recomputed from the first collider unless rotations are locked
		body = cp.NewBody(mass, cp.INFINITY)
		if desc.LinearDamping > 0 {
			damping := desc.LinearDamping
			body.SetVelocityUpdateFunc(func(b *cp.Body, gravity cp.Vector, d, dt float64) {
				cp.BodyUpdateVelocity(b, gravity, d*math.Exp(-damping*dt), dt)
			})
		}
	}

	body.SetPosition(toVector(desc.Translation))
	if desc.Kind != Static {
		body.SetVelocity(desc.LinearVelocity.X(), desc.LinearVelocity.Y())
	}
	e.space.AddBody(body)

	e.nextBody++
	h := e.nextBody
	e.bodies[h] = &bodyEntry{
		body:    body,
		kind:    desc.Kind,
		mass:    mass,
		lockRot: desc.LockRotations,
	}
	return h
}

// InsertColliderWithParent attaches a box collider to parent.
func (e *Engine) InsertColliderWithParent(desc ColliderDescriptor, parent BodyHandle) (ColliderHandle, error) {
	entry, ok := e.bodies[parent]
	if !ok {
		return 0, fmt.Errorf("insert collider: %w: %d", ErrUnknownBody, parent)
	}
	hx, hy := desc.HalfExtents.X(), desc.HalfExtents.Y()
	if hx <= 0 || hy <= 0 || math.IsNaN(hx) || math.IsNaN(hy) {
		return 0, fmt.Errorf("insert collider: %w: half extents %v", ErrInvalidCollider, desc.HalfExtents)
	}

	off := desc.Offset
	bb := cp.BB{L: off.X() - hx, B: off.Y() - hy, R: off.X() + hx, T: off.Y() + hy}
	shape := cp.NewBox2(entry.body, bb, 0)
	shape.SetSensor(desc.Sensor)
	shape.SetFriction(desc.Friction)
	shape.SetElasticity(desc.Elasticity)
	shape.SetCollisionType(entityCollisionType)
	e.space.AddShape(shape)

	if entry.kind == Dynamic && !entry.lockRot && len(entry.colliders) == 0 {
		entry.body.SetMoment(cp.MomentForBox(entry.mass, 2*hx, 2*hy))
	}

	e.nextCollider++
	h := e.nextCollider
	e.colliders[h] = &colliderEntry{
		shape:        shape,
		parent:       parent,
		sensor:       desc.Sensor,
		activeEvents: desc.ActiveEvents,
	}
	e.shapeHandles[shape] = h
	entry.colliders = append(entry.colliders, h)
	return h, nil
}

// SetUserData stores an opaque value on a collider.
func (e *Engine) SetUserData(h ColliderHandle, v uint64) error {
	c, ok := e.colliders[h]
	if !ok {
		return fmt.Errorf("set user data: %w: %d", ErrUnknownCollider, h)
	}
	c.userData = v
	c.shape.UserData = v
	return nil
}

// UserData returns the value stored by SetUserData.
func (e *Engine) UserData(h ColliderHandle) (uint64, bool) {
	c, ok := e.colliders[h]
	if !ok {
		return 0, false
	}
	return c.userData, true
}

// Step advances the space by dt seconds and returns the events it produced.
func (e *Engine) Step(dt float64) StepEvents {
	e.pending = StepEvents{}
	if dt > 0 {
		e.stepDt = dt
		e.space.Step(dt)
	}
	out := e.pending
	e.pending = StepEvents{}
	return out
}

// Translation returns the body origin in world space.
func (e *Engine) Translation(h BodyHandle) (mgl64.Vec2, bool) {
	b, ok := e.bodies[h]
	if !ok {
		return mgl64.Vec2{}, false
	}
	return fromVector(b.body.Position()), true
}

// LinearVelocity returns the body velocity.
func (e *Engine) LinearVelocity(h BodyHandle) (mgl64.Vec2, bool) {
	b, ok := e.bodies[h]
	if !ok {
		return mgl64.Vec2{}, false
	}
	return fromVector(b.body.Velocity()), true
}

// SetLinearVelocity sets the velocity of a dynamic or kinematic body.
func (e *Engine) SetLinearVelocity(h BodyHandle, v mgl64.Vec2) bool {
	b, ok := e.bodies[h]
	if !ok || b.kind == Static {
		return false
	}
	b.body.SetVelocity(v.X(), v.Y())
	if b.kind == Dynamic {
		b.body.Activate()
	}
	return true
}

// RemoveBody removes the body and every collider it owns.
func (e *Engine) RemoveBody(h BodyHandle) bool {
	b, ok := e.bodies[h]
	if !ok {
		return false
	}
	for _, ch := range b.colliders {
		c := e.colliders[ch]
		e.space.RemoveShape(c.shape)
		delete(e.shapeHandles, c.shape)
		delete(e.colliders, ch)
	}
	e.space.RemoveBody(b.body)
	delete(e.bodies, h)
	// separation callbacks fired by the removal belong to no step
	e.pending = StepEvents{}
	return true
}

// ContainsBody reports whether h is live.
func (e *Engine) ContainsBody(h BodyHandle) bool {
	_, ok := e.bodies[h]
	return ok
}

// ContainsCollider reports whether h is live.
func (e *Engine) ContainsCollider(h ColliderHandle) bool {
	_, ok := e.colliders[h]
	return ok
}

// ParentOf returns the body a collider is attached to.
func (e *Engine) ParentOf(h ColliderHandle) (BodyHandle, bool) {
	c, ok := e.colliders[h]
	if !ok {
		return 0, false
	}
	return c.parent, true
}

func (e *Engine) BodyCount() int     { return len(e.bodies) }
func (e *Engine) ColliderCount() int { return len(e.colliders) }

func (e *Engine) onBegin(arb *cp.Arbiter, _ *cp.Space, _ interface{}) bool {
	e.record(arb, Started)
	return true
}

func (e *Engine) onSeparate(arb *cp.Arbiter, _ *cp.Space, _ interface{}) {
	e.record(arb, Stopped)
}

func (e *Engine) onPostSolve(arb *cp.Arbiter, _ *cp.Space, _ interface{}) {
	if e.forceThreshold <= 0 || e.stepDt <= 0 {
		return
	}
	ha, hb, ok := e.pair(arb)
	if !ok {
		return
	}
	f := arb.TotalImpulse().Length() / e.stepDt
	if f < e.forceThreshold {
		return
	}
	e.pending.ContactForces = append(e.pending.ContactForces, ContactForceEvent{A: ha, B: hb, Magnitude: f})
}

func (e *Engine) record(arb *cp.Arbiter, kind CollisionKind) {
	ha, hb, ok := e.pair(arb)
	if !ok {
		return
	}
	ca, cb := e.colliders[ha], e.colliders[hb]
	if !ca.activeEvents && !cb.activeEvents {
		return
	}
	e.pending.Collisions = append(e.pending.Collisions, CollisionEvent{
		Kind:   kind,
		A:      ha,
		B:      hb,
		Sensor: ca.sensor || cb.sensor,
	})
}

func (e *Engine) pair(arb *cp.Arbiter) (ColliderHandle, ColliderHandle, bool) {
	sa, sb := arb.Shapes()
	ha, okA := e.shapeHandles[sa]
	hb, okB := e.shapeHandles[sb]
	if !okA || !okB {
		e.log.Debug("physics callback for untracked shape")
		return 0, 0, false
	}
	return ha, hb, true
}

func toVector(v mgl64.Vec2) cp.Vector   { return cp.Vector{X: v.X(), Y: v.Y()} }
func fromVector(v cp.Vector) mgl64.Vec2 { return mgl64.Vec2{v.X, v.Y} }
