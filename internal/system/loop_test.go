package system_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	coresys "github.com/vampsurvivor/survivor/internal/core/system"
	"github.com/vampsurvivor/survivor/internal/system"
)

// pipeline wires the full tick without AI or input so runs are repeatable.
func (f *fixture) pipeline() (*coresys.Scheduler, *system.StatsSystem) {
	ws := f.ws
	r := coresys.NewRunner()
	r.Register(system.NewEventSystem(f.bus))
	stats := system.NewStatsSystem(ws, f.bus, 0, f.log)
	r.Register(stats)
	f.core.Register(r)
	r.Register(system.NewAbilitySystem(ws, f.log))
	r.Register(system.NewDamageSystem(ws, &baseDamage{}, tickRate))
	r.Register(system.NewLifetimeSystem(ws))
	r.Register(system.NewDeathSystem(ws, f.clock, f.bus, f.log))
	return coresys.NewScheduler(f.clock, r, f.log), stats
}

func TestFrameRunsWholeTicksThenSync(t *testing.T) {
	f := newFixture(t)
	sched, _ := f.pipeline()
	id := f.spawn(t, "wall", 7, 9)

	n, err := sched.Frame(0.1)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Equal(t, uint64(3), f.clock.TicksElapsed)
	assert.InDelta(t, 0.00625, f.clock.Accumulator, 1e-9)
	assert.True(t, f.ws.RigidBodies.Has(id))
	assert.Equal(t, 1, f.ws.Physics.BodyCount())

	n, err = sched.Frame(0.01)
	require.NoError(t, err)
	assert.Zero(t, n)
	n, err = sched.Frame(0.03)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestFrameClampsCatchUp(t *testing.T) {
	f := newFixture(t)
	sched, _ := f.pipeline()

	n, err := sched.Frame(1.0)
	require.NoError(t, err)
	assert.Equal(t, coresys.DefaultMaxTicksPerFrame, n)
	assert.Equal(t, uint64(24), f.clock.DroppedTicks)
	assert.Less(t, f.clock.Accumulator, f.clock.TickRate)
}

func TestFireballKillsEnemyAndLeavesNoLeaks(t *testing.T) {
	f := newFixture(t)
	ws := f.ws
	sched, stats := f.pipeline()
	player := f.spawn(t, "player", 0, 0)
	enemy := f.spawn(t, "enemy", 30, 0)

	for i := 0; i < 4; i++ {
		_, err := sched.Frame(0.1)
		require.NoError(t, err)
	}

	assert.False(t, ws.ECS.Alive(enemy))
	assert.True(t, ws.ECS.Alive(player))
	assert.Equal(t, 1, ws.ECS.Len(), "the fireball expired too")
	assert.Equal(t, 1, ws.Physics.BodyCount())
	assert.Equal(t, 1, ws.Physics.ColliderCount())
	assert.Equal(t, 1, f.core.Bridge.Len())
	assert.Empty(t, f.touching(t, player))

	s := stats.Snapshot()
	assert.Equal(t, 1, s.Kills)
	assert.Equal(t, 2, s.Despawned)
	assert.Zero(t, s.PlayerDeaths)

	h, _ := ws.Healths.Get(player)
	assert.Equal(t, 100.0, h.Current, "own projectile never hurts the player")
}
