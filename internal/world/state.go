package world

import (
	"fmt"
	"math"
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/vampsurvivor/survivor/internal/component"
	"github.com/vampsurvivor/survivor/internal/core/ecs"
	"github.com/vampsurvivor/survivor/internal/data"
	"github.com/vampsurvivor/survivor/internal/physics"
)

// State owns the entity store, every component store and the physics engine.
// Accessed only from the game loop goroutine — no locks needed.
type State struct {
	ECS     *ecs.World
	Physics *physics.Engine

	Transforms *ecs.PtrComponentStore[component.Transform]
	Sprites    *ecs.PtrComponentStore[component.Sprite]

	// physics, before and after the bridge
	BodyDescs     *ecs.PtrComponentStore[physics.BodyDescriptor]
	ColliderDescs *ecs.PtrComponentStore[physics.ColliderDescriptor]
	RigidBodies   *ecs.PtrComponentStore[component.RigidBody]
	Colliders     *ecs.PtrComponentStore[component.Collider]
	CollideWith   *ecs.PtrComponentStore[component.CollideWith]

	// gameplay
	Speeds        *ecs.PtrComponentStore[component.Speed]
	Healths       *ecs.PtrComponentStore[component.Health]
	Damages       *ecs.PtrComponentStore[component.Damage]
	DamagePlayers *ecs.PtrComponentStore[component.DamagePlayer]
	Owners        *ecs.PtrComponentStore[component.Owner]
	Lifetimes     *ecs.PtrComponentStore[component.Lifetime]
	Abilities     *ecs.PtrComponentStore[component.Abilities]
	Despawns      *ecs.PtrComponentStore[component.Despawn]

	Players     *ecs.PtrComponentStore[component.Player]
	Enemies     *ecs.PtrComponentStore[component.Enemy]
	Projectiles *ecs.PtrComponentStore[component.Projectile]

	archetypes *data.ArchetypeTable
	tickRate   time.Duration
}

// NewState creates every store on a fresh ECS world. tickRate converts
// archetype durations (lifetimes, cooldowns) into tick counts.
func NewState(engine *physics.Engine, archetypes *data.ArchetypeTable, tickRate time.Duration) *State {
	w := ecs.NewWorld()
	return &State{
		ECS:     w,
		Physics: engine,

		Transforms: ecs.NewStore[component.Transform](w),
		Sprites:    ecs.NewStore[component.Sprite](w),

		BodyDescs:     ecs.NewStore[physics.BodyDescriptor](w),
		ColliderDescs: ecs.NewStore[physics.ColliderDescriptor](w),
		RigidBodies:   ecs.NewStore[component.RigidBody](w),
		Colliders:     ecs.NewStore[component.Collider](w),
		CollideWith:   ecs.NewStore[component.CollideWith](w),

		Speeds:        ecs.NewStore[component.Speed](w),
		Healths:       ecs.NewStore[component.Health](w),
		Damages:       ecs.NewStore[component.Damage](w),
		DamagePlayers: ecs.NewStore[component.DamagePlayer](w),
		Owners:        ecs.NewStore[component.Owner](w),
		Lifetimes:     ecs.NewStore[component.Lifetime](w),
		Abilities:     ecs.NewStore[component.Abilities](w),
		Despawns:      ecs.NewStore[component.Despawn](w),

		Players:     ecs.NewStore[component.Player](w),
		Enemies:     ecs.NewStore[component.Enemy](w),
		Projectiles: ecs.NewStore[component.Projectile](w),

		archetypes: archetypes,
		tickRate:   tickRate,
	}
}

// SpawnParams places a spawned entity.
type SpawnParams struct {
	Position mgl64.Vec2
	// Direction is scaled to the archetype speed for the initial velocity.
	Direction mgl64.Vec2
	// Owner is the spawning entity, zero for none.
	Owner ecs.EntityID
}

// Spawn creates an entity from a named archetype. The entity carries body and
// collider descriptors; the handle bridge inserts them on the next tick.
func (s *State) Spawn(name string, p SpawnParams) (ecs.EntityID, error) {
	a, err := s.archetypes.Get(name)
	if err != nil {
		return 0, fmt.Errorf("spawn: %w", err)
	}

	id := s.ECS.CreateEntity()
	s.Transforms.Set(id, component.NewTransform(p.Position))
	s.Sprites.Set(id, &component.Sprite{Asset: a.Sprite.Asset, Scale: a.Sprite.Scale})

	var vel mgl64.Vec2
	if p.Direction.Len() > 0 {
		vel = p.Direction.Normalize().Mul(a.Speed)
	}
	s.BodyDescs.Set(id, &physics.BodyDescriptor{
		Kind:           a.BodyKind(),
		Translation:    p.Position,
		LinearVelocity: vel,
		LinearDamping:  a.Body.LinearDamping,
		Mass:           a.Body.Mass,
		LockRotations:  a.Body.LockRotations,
	})
	s.ColliderDescs.Set(id, &physics.ColliderDescriptor{
		HalfExtents:  mgl64.Vec2{a.Collider.HalfWidth, a.Collider.HalfHeight},
		Offset:       mgl64.Vec2{a.Collider.OffsetX, a.Collider.OffsetY},
		Sensor:       a.Collider.Sensor,
		ActiveEvents: a.Collider.ActiveEvents,
		Friction:     a.Collider.Friction,
		Elasticity:   a.Collider.Elasticity,
	})

	if a.Speed > 0 {
		s.Speeds.Set(id, &component.Speed{Value: a.Speed})
	}
	if a.Health > 0 {
		s.Healths.Set(id, &component.Health{Current: a.Health, Max: a.Health})
	}
	if a.Damage > 0 {
		s.Damages.Set(id, &component.Damage{Amount: a.Damage})
	}
	if a.Lifetime > 0 {
		s.Lifetimes.Set(id, &component.Lifetime{RemainingTicks: s.ticks(a.Lifetime)})
	}
	if len(a.Abilities) > 0 {
		slots := make([]component.AbilitySlot, len(a.Abilities))
		for i, ab := range a.Abilities {
			slots[i] = component.AbilitySlot{Kind: a.AbilityKind(i), CooldownTicks: s.ticks(ab.Cooldown)}
		}
		s.Abilities.Set(id, &component.Abilities{Slots: slots})
	}
	if p.Owner != 0 {
		s.Owners.Set(id, &component.Owner{Entity: p.Owner})
	}

	switch a.Role {
	case data.RolePlayer:
		s.Players.Set(id, &component.Player{})
	case data.RoleEnemy:
		s.Enemies.Set(id, &component.Enemy{})
	case data.RoleProjectile:
		s.Projectiles.Set(id, &component.Projectile{})
		// a projectile hurts the side its owner is not on
		s.DamagePlayers.Set(id, &component.DamagePlayer{Enabled: !s.Players.Has(p.Owner)})
	}
	return id, nil
}

// ticks converts d to whole ticks, at least one.
func (s *State) ticks(d time.Duration) int {
	if s.tickRate <= 0 {
		return 1
	}
	n := int(math.Ceil(float64(d) / float64(s.tickRate)))
	if n < 1 {
		n = 1
	}
	return n
}

// Player returns the live player entity with the lowest id.
func (s *State) Player() (ecs.EntityID, bool) {
	ids := ecs.CollectSorted(s.Players, ecs.Without(s.Despawns))
	if len(ids) == 0 {
		return 0, false
	}
	return ids[0], true
}

// Position returns the authoritative position of id: the physics body
// translation once the bridge ran, the spawn transform before.
func (s *State) Position(id ecs.EntityID) (mgl64.Vec2, bool) {
	if rb, ok := s.RigidBodies.Get(id); ok {
		if pos, ok := s.Physics.Translation(rb.Handle); ok {
			return pos, true
		}
	}
	if t, ok := s.Transforms.Get(id); ok {
		return t.Position, true
	}
	return mgl64.Vec2{}, false
}

// EnemyCount returns the number of live enemies, pending despawns included.
func (s *State) EnemyCount() int {
	return s.Enemies.Len()
}
