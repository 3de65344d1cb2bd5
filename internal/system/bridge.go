package system

import (
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/vampsurvivor/survivor/internal/component"
	"github.com/vampsurvivor/survivor/internal/core/ecs"
	coresys "github.com/vampsurvivor/survivor/internal/core/system"
	"github.com/vampsurvivor/survivor/internal/physics"
	"github.com/vampsurvivor/survivor/internal/world"
)

type bridgeEntry struct {
	body     physics.BodyHandle
	collider physics.ColliderHandle
}

// HandleBridge inserts pending body/collider descriptors into the physics
// engine exactly once per entity and owns the entity <-> handle table.
// Phase 1 (Bridge).
//
// Physics handles are never reused within a run and entity ids carry a
// generation, so a table hit for a destroyed entity is caught by the
// liveness check in EntityOf rather than resolving to a newer entity.
type HandleBridge struct {
	world *world.State
	log   *zap.Logger

	byEntity   map[ecs.EntityID]bridgeEntry
	byCollider map[physics.ColliderHandle]ecs.EntityID
}

func NewHandleBridge(ws *world.State, log *zap.Logger) *HandleBridge {
	return &HandleBridge{
		world:      ws,
		log:        log,
		byEntity:   make(map[ecs.EntityID]bridgeEntry, 256),
		byCollider: make(map[physics.ColliderHandle]ecs.EntityID, 256),
	}
}

func (b *HandleBridge) Phase() coresys.Phase { return coresys.PhaseBridge }

func (b *HandleBridge) Update(_ time.Duration) error {
	ws := b.world
	pending := ecs.CollectSorted(ws.BodyDescs, ecs.With(ws.ColliderDescs), ecs.Without(ws.RigidBodies))
	for _, id := range pending {
		if err := b.insert(id); err != nil {
			return err
		}
	}
	return nil
}

func (b *HandleBridge) insert(id ecs.EntityID) error {
	ws := b.world
	bodyDesc, _ := ws.BodyDescs.Get(id)
	colDesc, _ := ws.ColliderDescs.Get(id)

	if prev, dup := b.byEntity[id]; dup {
		b.log.Error("entity already bridged, descriptors discarded",
			zap.Uint64("entity", uint64(id)),
			zap.Uint64("body", uint64(prev.body)))
		ws.BodyDescs.Remove(id)
		ws.ColliderDescs.Remove(id)
		return nil
	}

	body := ws.Physics.InsertBody(*bodyDesc)
	col, err := ws.Physics.InsertColliderWithParent(*colDesc, body)
	if err != nil {
		ws.Physics.RemoveBody(body)
		return fmt.Errorf("bridge entity %d: %w", id, err)
	}
	if err := ws.Physics.SetUserData(col, uint64(id)); err != nil {
		ws.Physics.RemoveBody(body)
		return fmt.Errorf("bridge entity %d: %w", id, err)
	}

	if err := ecs.Attach(ws.ECS, ws.RigidBodies, id, &component.RigidBody{Handle: body}); err != nil {
		if errors.Is(err, ecs.ErrEntityNotAlive) {
			b.log.Warn("entity gone before handles attached, body discarded",
				zap.Uint64("entity", uint64(id)))
			ws.Physics.RemoveBody(body)
			ws.BodyDescs.Remove(id)
			ws.ColliderDescs.Remove(id)
			return nil
		}
		return err
	}
	ws.Colliders.Set(id, &component.Collider{Handle: col})
	ws.CollideWith.Set(id, &component.CollideWith{})
	ws.BodyDescs.Remove(id)
	ws.ColliderDescs.Remove(id)

	b.byEntity[id] = bridgeEntry{body: body, collider: col}
	b.byCollider[col] = id
	return nil
}

// EntityOf resolves a collider handle to the live entity that owns it.
func (b *HandleBridge) EntityOf(h physics.ColliderHandle) (ecs.EntityID, bool) {
	id, ok := b.byCollider[h]
	if !ok || !b.world.ECS.Alive(id) {
		return 0, false
	}
	return id, true
}

// HandlesOf returns the handles inserted for id.
func (b *HandleBridge) HandlesOf(id ecs.EntityID) (physics.BodyHandle, physics.ColliderHandle, bool) {
	e, ok := b.byEntity[id]
	if !ok {
		return 0, 0, false
	}
	return e.body, e.collider, true
}

// Forget drops id from the table. The caller frees the physics body.
func (b *HandleBridge) Forget(id ecs.EntityID) {
	e, ok := b.byEntity[id]
	if !ok {
		return
	}
	delete(b.byCollider, e.collider)
	delete(b.byEntity, id)
}

// Len returns the number of bridged entities.
func (b *HandleBridge) Len() int { return len(b.byEntity) }
