package component

import "github.com/vampsurvivor/survivor/internal/core/ecs"

// Pure data. All mutations happen in systems.

type Speed struct {
	Value float64
}

type Health struct {
	Current float64
	Max     float64
}

type Damage struct {
	Amount float64
}

// DamagePlayer selects which side a damage source hurts: the player when
// true, everything else when false.
type DamagePlayer struct {
	Enabled bool
}

// Owner records the entity that spawned this one.
type Owner struct {
	Entity ecs.EntityID
}

// Lifetime despawns the entity when RemainingTicks reaches zero.
type Lifetime struct {
	RemainingTicks int
}

// Despawn marks an entity for removal at the next despawn pass.
type Despawn struct{}

// Tags.
type (
	Player     struct{}
	Enemy      struct{}
	Projectile struct{}
)
