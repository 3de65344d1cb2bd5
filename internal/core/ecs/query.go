package ecs

import "slices"

// Filter narrows a query. Filters are evaluated after the component lookup.
type Filter func(EntityID) bool

// With keeps entities that carry the component held by p.
func With(p Presence) Filter {
	return func(id EntityID) bool { return p.Has(id) }
}

// Without keeps entities that do not carry the component held by p.
func Without(p Presence) Filter {
	return func(id EntityID) bool { return !p.Has(id) }
}

func accept(id EntityID, filters []Filter) bool {
	for _, f := range filters {
		if !f(id) {
			return false
		}
	}
	return true
}

// Each iterates over entities that have component A.
func Each[A any](sa *PtrComponentStore[A], fn func(EntityID, *A), filters ...Filter) {
	for id, a := range sa.data {
		if accept(id, filters) {
			fn(id, a)
		}
	}
}

// Each2 iterates over entities that have both component A and B.
// It iterates over the smaller store and checks the larger one.
func Each2[A, B any](sa *PtrComponentStore[A], sb *PtrComponentStore[B], fn func(EntityID, *A, *B), filters ...Filter) {
	if sa.Len() <= sb.Len() {
		for id, a := range sa.data {
			if b, ok := sb.data[id]; ok && accept(id, filters) {
				fn(id, a, b)
			}
		}
	} else {
		for id, b := range sb.data {
			if a, ok := sa.data[id]; ok && accept(id, filters) {
				fn(id, a, b)
			}
		}
	}
}

// Each3 iterates over entities that have components A, B, and C.
func Each3[A, B, C any](sa *PtrComponentStore[A], sb *PtrComponentStore[B], sc *PtrComponentStore[C], fn func(EntityID, *A, *B, *C), filters ...Filter) {
	// Iterate the smallest store
	smallest := sa.Len()
	which := 0
	if sb.Len() < smallest {
		smallest = sb.Len()
		which = 1
	}
	if sc.Len() < smallest {
		which = 2
	}

	switch which {
	case 0:
		for id, a := range sa.data {
			if b, ok := sb.data[id]; ok {
				if c, ok := sc.data[id]; ok && accept(id, filters) {
					fn(id, a, b, c)
				}
			}
		}
	case 1:
		for id, b := range sb.data {
			if a, ok := sa.data[id]; ok {
				if c, ok := sc.data[id]; ok && accept(id, filters) {
					fn(id, a, b, c)
				}
			}
		}
	case 2:
		for id, c := range sc.data {
			if a, ok := sa.data[id]; ok {
				if b, ok := sb.data[id]; ok && accept(id, filters) {
					fn(id, a, b, c)
				}
			}
		}
	}
}

// Collect returns the ids of entities that have component A and pass filters.
// Use it when the loop body mutates stores the query reads.
func Collect[A any](sa *PtrComponentStore[A], filters ...Filter) []EntityID {
	ids := make([]EntityID, 0, sa.Len())
	for id := range sa.data {
		if accept(id, filters) {
			ids = append(ids, id)
		}
	}
	return ids
}

// CollectSorted is Collect in ascending id order. Use it where iteration
// order reaches the physics engine or other order-sensitive state.
func CollectSorted[A any](sa *PtrComponentStore[A], filters ...Filter) []EntityID {
	ids := Collect(sa, filters...)
	slices.Sort(ids)
	return ids
}
