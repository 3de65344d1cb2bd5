package physics

// CollisionKind distinguishes the start and end of a touch.
type CollisionKind int

const (
	Started CollisionKind = iota
	Stopped
)

func (k CollisionKind) String() string {
	if k == Started {
		return "started"
	}
	return "stopped"
}

// CollisionEvent reports a transition between two colliders during one step.
type CollisionEvent struct {
	Kind   CollisionKind
	A, B   ColliderHandle
	Sensor bool // at least one side is a sensor
}

// ContactForceEvent reports the force of a solid contact during one step.
type ContactForceEvent struct {
	A, B      ColliderHandle
	Magnitude float64
}

// StepEvents is everything one Step produced, in the order it happened.
// It belongs to the tick that produced it.
type StepEvents struct {
	Collisions    []CollisionEvent
	ContactForces []ContactForceEvent
}

func (e StepEvents) Len() int {
	return len(e.Collisions) + len(e.ContactForces)
}
