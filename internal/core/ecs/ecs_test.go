package ecs

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type position struct{ X, Y float64 }
type velocity struct{ X, Y float64 }
type tag struct{}

func TestPoolGenerationInvalidatesStaleIDs(t *testing.T) {
	p := NewEntityPool()
	a := p.Create()
	require.NotZero(t, a)
	require.True(t, p.Alive(a))

	require.True(t, p.Destroy(a))
	assert.False(t, p.Alive(a))
	assert.False(t, p.Destroy(a), "second destroy of a stale id is a no-op")

	b := p.Create()
	assert.Equal(t, a.Index(), b.Index(), "slot is reused")
	assert.NotEqual(t, a, b)
	assert.Equal(t, a.Generation()+1, b.Generation())
	assert.False(t, p.Alive(a))
	assert.True(t, p.Alive(b))
	assert.Equal(t, 1, p.Len())
}

func TestAttachRejectsDeadEntity(t *testing.T) {
	w := NewWorld()
	pos := NewStore[position](w)

	id := w.CreateEntity()
	require.NoError(t, Attach(w, pos, id, &position{X: 1}))
	require.True(t, w.Destroy(id))

	err := Attach(w, pos, id, &position{X: 2})
	assert.ErrorIs(t, err, ErrEntityNotAlive)
	assert.False(t, pos.Has(id))
}

func TestDestroyClearsEveryStore(t *testing.T) {
	w := NewWorld()
	pos := NewStore[position](w)
	vel := NewStore[velocity](w)

	id := w.CreateEntity()
	pos.Set(id, &position{})
	vel.Set(id, &velocity{})

	require.True(t, w.Destroy(id))
	assert.False(t, pos.Has(id))
	assert.False(t, vel.Has(id))
	assert.Zero(t, w.Len())
	assert.False(t, w.Destroy(id))
}

func TestEach2WithoutFilter(t *testing.T) {
	w := NewWorld()
	pos := NewStore[position](w)
	vel := NewStore[velocity](w)
	marks := NewStore[tag](w)

	moving := w.CreateEntity()
	pos.Set(moving, &position{})
	vel.Set(moving, &velocity{X: 1})

	marked := w.CreateEntity()
	pos.Set(marked, &position{})
	vel.Set(marked, &velocity{X: 1})
	marks.Set(marked, &tag{})

	still := w.CreateEntity()
	pos.Set(still, &position{})

	var seen []EntityID
	Each2(pos, vel, func(id EntityID, p *position, v *velocity) {
		seen = append(seen, id)
	}, Without(marks))
	assert.Equal(t, []EntityID{moving}, seen)

	seen = seen[:0]
	Each2(pos, vel, func(id EntityID, p *position, v *velocity) {
		seen = append(seen, id)
	}, With(marks))
	assert.Equal(t, []EntityID{marked}, seen)
}

func TestEach3VisitsOnlyFullMatches(t *testing.T) {
	w := NewWorld()
	pos := NewStore[position](w)
	vel := NewStore[velocity](w)
	marks := NewStore[tag](w)

	for i := 0; i < 5; i++ {
		id := w.CreateEntity()
		pos.Set(id, &position{})
		if i%2 == 0 {
			vel.Set(id, &velocity{})
		}
		if i < 3 {
			marks.Set(id, &tag{})
		}
	}

	n := 0
	Each3(pos, vel, marks, func(EntityID, *position, *velocity, *tag) { n++ })
	assert.Equal(t, 2, n)
}

func TestCollectAllowsMutation(t *testing.T) {
	w := NewWorld()
	pos := NewStore[position](w)
	for i := 0; i < 4; i++ {
		pos.Set(w.CreateEntity(), &position{})
	}
	for _, id := range Collect(pos) {
		w.Destroy(id)
	}
	assert.Zero(t, pos.Len())
	assert.Zero(t, w.Len())
}

func TestCollectSortedIsAscending(t *testing.T) {
	w := NewWorld()
	pos := NewStore[position](w)
	marks := NewStore[tag](w)

	var want []EntityID
	for i := 0; i < 64; i++ {
		id := w.CreateEntity()
		pos.Set(id, &position{X: float64(i)})
		if i%3 == 0 {
			marks.Set(id, &tag{})
			continue
		}
		want = append(want, id)
	}
	// a reused slot carries a higher generation than its first occupant
	require.True(t, w.Destroy(want[0]))
	reused := w.CreateEntity()
	pos.Set(reused, &position{})
	want = append(want[1:], reused)
	slices.Sort(want)

	for i := 0; i < 5; i++ {
		got := CollectSorted(pos, Without(marks))
		assert.True(t, slices.IsSorted(got))
		assert.Equal(t, want, got)
	}
	assert.Empty(t, CollectSorted(NewStore[velocity](w)))
}
