package system_test

import (
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/vampsurvivor/survivor/internal/core/ecs"
	"github.com/vampsurvivor/survivor/internal/core/event"
	coresys "github.com/vampsurvivor/survivor/internal/core/system"
	"github.com/vampsurvivor/survivor/internal/data"
	"github.com/vampsurvivor/survivor/internal/physics"
	"github.com/vampsurvivor/survivor/internal/scripting"
	"github.com/vampsurvivor/survivor/internal/system"
	"github.com/vampsurvivor/survivor/internal/world"
)

const tickRate = time.Second / 32

const testArchetypes = `
archetypes:
  - name: player
    role: player
    speed: 100
    health: 100
    body: { kind: dynamic, lock_rotations: true }
    collider: { half_width: 8, half_height: 8, active_events: true }
    abilities:
      - { kind: fireball, cooldown: 1s }
  - name: enemy
    role: enemy
    speed: 50
    health: 100
    damage: 10
    body: { kind: dynamic, lock_rotations: true }
    collider: { half_width: 8, half_height: 8, active_events: true }
  - name: dummy
    role: enemy
    health: 100
    damage: 10
    body: { kind: kinematic }
    collider: { half_width: 8, half_height: 8, active_events: true }
  - name: shooter
    role: enemy
    health: 100
    body: { kind: kinematic }
    collider: { half_width: 8, half_height: 8, active_events: true }
    abilities:
      - { kind: fireball, cooldown: 500ms }
  - name: fireball
    role: projectile
    speed: 300
    damage: 1000
    lifetime: 100ms
    body: { kind: kinematic, lock_rotations: true }
    collider: { half_width: 4, half_height: 4, sensor: true, active_events: true }
  - name: wall
    role: prop
    body: { kind: static }
    collider: { half_width: 32, half_height: 4 }
`

type fixture struct {
	ws    *world.State
	bus   *event.Bus
	core  *system.Core
	clock *coresys.GameTick
	log   *zap.Logger
	logs  *observer.ObservedLogs
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	return newFixtureWith(t, physics.Options{})
}

func newFixtureWith(t *testing.T, opts physics.Options) *fixture {
	t.Helper()
	table, err := data.ParseArchetypeTable([]byte(testArchetypes))
	require.NoError(t, err)

	obs, logs := observer.New(zap.DebugLevel)
	log := zap.New(obs)
	ws := world.NewState(physics.NewEngine(opts, log), table, tickRate)
	bus := event.NewBus()
	return &fixture{
		ws:    ws,
		bus:   bus,
		core:  system.NewCore(ws, bus, log),
		clock: coresys.NewGameTick(tickRate, coresys.DefaultMaxTicksPerFrame),
		log:   log,
		logs:  logs,
	}
}

func (f *fixture) spawn(t *testing.T, name string, x, y float64) ecs.EntityID {
	t.Helper()
	id, err := f.ws.Spawn(name, world.SpawnParams{Position: mgl64.Vec2{x, y}})
	require.NoError(t, err)
	return id
}

func (f *fixture) bridge(t *testing.T) {
	t.Helper()
	require.NoError(t, f.core.Bridge.Update(tickRate))
}

func (f *fixture) collider(t *testing.T, id ecs.EntityID) physics.ColliderHandle {
	t.Helper()
	c, ok := f.ws.Colliders.Get(id)
	require.True(t, ok, "entity %d has no collider", id)
	return c.Handle
}

func (f *fixture) touching(t *testing.T, id ecs.EntityID) []ecs.EntityID {
	t.Helper()
	rel, ok := f.ws.CollideWith.Get(id)
	require.True(t, ok, "entity %d has no relation", id)
	return rel.Entities
}

func (f *fixture) velocity(t *testing.T, id ecs.EntityID) mgl64.Vec2 {
	t.Helper()
	rb, ok := f.ws.RigidBodies.Get(id)
	require.True(t, ok)
	v, ok := f.ws.Physics.LinearVelocity(rb.Handle)
	require.True(t, ok)
	return v
}

func started(a, b physics.ColliderHandle) physics.CollisionEvent {
	return physics.CollisionEvent{Kind: physics.Started, A: a, B: b}
}

func stopped(a, b physics.ColliderHandle) physics.CollisionEvent {
	return physics.CollisionEvent{Kind: physics.Stopped, A: a, B: b}
}

// baseDamage returns the base damage unchanged and records every hit.
type baseDamage struct {
	hits []scripting.HitContext
}

func (b *baseDamage) CalcHit(ctx scripting.HitContext) float64 {
	b.hits = append(b.hits, ctx)
	return ctx.BaseDamage
}
