package physics

import "github.com/go-gl/mathgl/mgl64"

// BodyHandle identifies a body inserted into an Engine. Handles increase
// monotonically and are never reused within one Engine.
type BodyHandle uint64

// ColliderHandle identifies a collider inserted into an Engine.
type ColliderHandle uint64

// BodyKind selects how a body is integrated.
type BodyKind int

const (
	Dynamic   BodyKind = iota // moved by forces, impulses and velocity
	Kinematic                 // moved by velocity only, infinite mass
	Static                    // never moves
)

func (k BodyKind) String() string {
	switch k {
	case Dynamic:
		return "dynamic"
	case Kinematic:
		return "kinematic"
	case Static:
		return "static"
	}
	return "unknown"
}

// ParseBodyKind maps a data-file name to a BodyKind.
func ParseBodyKind(s string) (BodyKind, bool) {
	switch s {
	case "", "dynamic":
		return Dynamic, true
	case "kinematic":
		return Kinematic, true
	case "static":
		return Static, true
	}
	return Dynamic, false
}

// BodyDescriptor is authoring-time body data. Consumed once by InsertBody.
type BodyDescriptor struct {
	Kind           BodyKind
	Translation    mgl64.Vec2
	LinearVelocity mgl64.Vec2
	LinearDamping  float64 // per second; 0 = none
	Mass           float64 // dynamic only; <= 0 means 1
	LockRotations  bool
}

// ColliderDescriptor is an axis-aligned box attached to a body.
type ColliderDescriptor struct {
	HalfExtents  mgl64.Vec2
	Offset       mgl64.Vec2 // box center relative to the body origin
	Sensor       bool       // reports overlaps, no contact response
	ActiveEvents bool       // report Started/Stopped events for this collider
	Friction     float64
	Elasticity   float64
}
