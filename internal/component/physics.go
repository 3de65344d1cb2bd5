package component

import (
	"github.com/vampsurvivor/survivor/internal/core/ecs"
	"github.com/vampsurvivor/survivor/internal/physics"
)

// RigidBody holds the engine handle of the entity's body.
type RigidBody struct {
	Handle physics.BodyHandle
}

// Collider holds the engine handle of the entity's collider.
type Collider struct {
	Handle physics.ColliderHandle
}

// CollideWith lists the entities currently touching this one.
// Order is irrelevant; a counterpart appears at most once.
type CollideWith struct {
	Entities []ecs.EntityID
}

// Contains reports whether id is in the relation.
func (c *CollideWith) Contains(id ecs.EntityID) bool {
	for _, e := range c.Entities {
		if e == id {
			return true
		}
	}
	return false
}
