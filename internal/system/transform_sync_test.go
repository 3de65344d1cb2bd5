package system_test

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransformSyncIsOneWay(t *testing.T) {
	f := newFixture(t)
	ws := f.ws
	id := f.spawn(t, "dummy", 10, 20)
	f.bridge(t)

	tr, ok := ws.Transforms.Get(id)
	require.True(t, ok)
	tr.Position = mgl64.Vec2{999, 999}

	require.NoError(t, f.core.Sync.Update(0))
	assert.Equal(t, mgl64.Vec2{10, 20}, tr.Position)

	rb, _ := ws.RigidBodies.Get(id)
	pos, _ := ws.Physics.Translation(rb.Handle)
	assert.Equal(t, mgl64.Vec2{10, 20}, pos, "the transform edit never reached the body")
}

func TestTransformSyncFollowsBody(t *testing.T) {
	f := newFixture(t)
	ws := f.ws
	id := f.spawn(t, "dummy", 0, 0)
	f.bridge(t)
	rb, _ := ws.RigidBodies.Get(id)
	require.True(t, ws.Physics.SetLinearVelocity(rb.Handle, mgl64.Vec2{32, 0}))

	require.NoError(t, f.core.Step.Update(tickRate))
	tr, _ := ws.Transforms.Get(id)
	assert.Equal(t, mgl64.Vec2{0, 0}, tr.Position, "no sync until the render pass")

	require.NoError(t, f.core.Sync.Update(0))
	assert.InDelta(t, 1, tr.Position.X(), 1e-9)
	assert.InDelta(t, 0, tr.Position.Y(), 1e-9)
}

func TestTransformSyncSkipsUnbridged(t *testing.T) {
	f := newFixture(t)
	id := f.spawn(t, "dummy", 5, 5)
	tr, _ := f.ws.Transforms.Get(id)
	tr.Position = mgl64.Vec2{1, 1}

	require.NoError(t, f.core.Sync.Update(0))
	assert.Equal(t, mgl64.Vec2{1, 1}, tr.Position)
}
