package system

import (
	"time"

	"github.com/vampsurvivor/survivor/internal/component"
	"github.com/vampsurvivor/survivor/internal/core/ecs"
	coresys "github.com/vampsurvivor/survivor/internal/core/system"
	"github.com/vampsurvivor/survivor/internal/world"
)

// TransformSyncSystem copies body translations into render transforms.
// One way only. Phase 7 (Render), once per frame.
type TransformSyncSystem struct {
	world *world.State
}

func NewTransformSyncSystem(ws *world.State) *TransformSyncSystem {
	return &TransformSyncSystem{world: ws}
}

func (s *TransformSyncSystem) Phase() coresys.Phase { return coresys.PhaseRender }

func (s *TransformSyncSystem) Update(_ time.Duration) error {
	ws := s.world
	ecs.Each2(ws.Transforms, ws.RigidBodies, func(_ ecs.EntityID, t *component.Transform, rb *component.RigidBody) {
		if pos, ok := ws.Physics.Translation(rb.Handle); ok {
			t.Position = pos
		}
	})
	return nil
}
