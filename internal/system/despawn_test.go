package system_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vampsurvivor/survivor/internal/component"
	"github.com/vampsurvivor/survivor/internal/core/event"
)

func TestDespawnFreesExactlyOwnedPhysics(t *testing.T) {
	f := newFixture(t)
	ws := f.ws
	var despawned []event.EntityDespawned
	event.Subscribe(f.bus, func(ev event.EntityDespawned) { despawned = append(despawned, ev) })

	keep := f.spawn(t, "dummy", 0, 0)
	gone := f.spawn(t, "dummy", 100, 0)
	other := f.spawn(t, "wall", 200, 0)
	f.bridge(t)
	rb, _ := ws.RigidBodies.Get(gone)
	col := f.collider(t, gone)
	require.Equal(t, 3, ws.Physics.BodyCount())

	ws.Despawns.Set(gone, &component.Despawn{})
	require.NoError(t, f.core.Despawn.Update(tickRate))

	assert.False(t, ws.ECS.Alive(gone))
	assert.True(t, ws.ECS.Alive(keep))
	assert.True(t, ws.ECS.Alive(other))
	assert.Equal(t, 2, ws.Physics.BodyCount())
	assert.Equal(t, 2, ws.Physics.ColliderCount())
	assert.False(t, ws.Physics.ContainsBody(rb.Handle))
	assert.False(t, ws.Physics.ContainsCollider(col))
	assert.Equal(t, 2, f.core.Bridge.Len())
	assert.Zero(t, ws.Despawns.Len(), "the marker goes with the entity")

	f.bus.SwapBuffers()
	f.bus.DispatchAll()
	require.Len(t, despawned, 1)
	assert.Equal(t, event.EntityDespawned{Entity: gone, Physics: true}, despawned[0])

	require.NoError(t, f.core.Despawn.Update(tickRate))
	assert.Equal(t, 2, ws.Physics.BodyCount(), "a second pass frees nothing")
}

func TestDespawnBeforeBridge(t *testing.T) {
	f := newFixture(t)
	ws := f.ws
	id := f.spawn(t, "enemy", 0, 0)
	ws.Despawns.Set(id, &component.Despawn{})

	require.NoError(t, f.core.Despawn.Update(tickRate))
	assert.False(t, ws.ECS.Alive(id))
	assert.False(t, ws.BodyDescs.Has(id))

	f.bridge(t)
	assert.Zero(t, ws.Physics.BodyCount(), "descriptors of a despawned entity are never inserted")
}

func TestDespawnDetachesRelations(t *testing.T) {
	f := newFixture(t)
	a := f.spawn(t, "dummy", 0, 0)
	b := f.spawn(t, "dummy", 100, 0)
	c := f.spawn(t, "dummy", 200, 0)
	f.bridge(t)
	f.core.Collisions.Apply(started(f.collider(t, a), f.collider(t, b)))
	f.core.Collisions.Apply(started(f.collider(t, a), f.collider(t, c)))
	f.core.Collisions.Apply(started(f.collider(t, b), f.collider(t, c)))

	f.ws.Despawns.Set(a, &component.Despawn{})
	require.NoError(t, f.core.Despawn.Update(tickRate))

	assert.NotContains(t, f.touching(t, b), a)
	assert.NotContains(t, f.touching(t, c), a)
	assert.Contains(t, f.touching(t, b), c)
	assert.Contains(t, f.touching(t, c), b)
}
