package event

import "github.com/vampsurvivor/survivor/internal/core/ecs"

// EntityDied is emitted when an entity's health reaches zero.
type EntityDied struct {
	Entity ecs.EntityID
	Player bool
	Tick   uint64
}

// EntityDespawned is emitted after an entity and its physics resources are gone.
type EntityDespawned struct {
	Entity  ecs.EntityID
	Physics bool // it owned a body
}

// ContactForce reports a solid contact whose force crossed the configured threshold.
type ContactForce struct {
	A, B      ecs.EntityID
	Magnitude float64
}
