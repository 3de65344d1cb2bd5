package ecs

import "errors"

// ErrEntityNotAlive is returned when a component is attached to a destroyed entity.
var ErrEntityNotAlive = errors.New("entity not alive")

// Removable is implemented by all component stores so the Registry can
// bulk-remove an entity's data from every store on destroy.
type Removable interface {
	Remove(id EntityID)
}

// Presence reports whether an entity carries a component.
type Presence interface {
	Has(id EntityID) bool
}

// PtrComponentStore is a generic typed map store for ECS components.
type PtrComponentStore[T any] struct {
	data map[EntityID]*T
}

func NewPtrComponentStore[T any]() *PtrComponentStore[T] {
	return &PtrComponentStore[T]{
		data: make(map[EntityID]*T, 256),
	}
}

func (s *PtrComponentStore[T]) Set(id EntityID, c *T) {
	s.data[id] = c
}

func (s *PtrComponentStore[T]) Get(id EntityID) (*T, bool) {
	c, ok := s.data[id]
	return c, ok
}

func (s *PtrComponentStore[T]) Remove(id EntityID) {
	delete(s.data, id)
}

func (s *PtrComponentStore[T]) Has(id EntityID) bool {
	_, ok := s.data[id]
	return ok
}

func (s *PtrComponentStore[T]) Len() int {
	return len(s.data)
}

// Attach sets c on id after checking that the entity is still alive.
func Attach[T any](w *World, s *PtrComponentStore[T], id EntityID, c *T) error {
	if !w.Alive(id) {
		return ErrEntityNotAlive
	}
	s.Set(id, c)
	return nil
}
