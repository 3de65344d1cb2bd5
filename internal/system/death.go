package system

import (
	"time"

	"go.uber.org/zap"

	"github.com/vampsurvivor/survivor/internal/component"
	"github.com/vampsurvivor/survivor/internal/core/ecs"
	"github.com/vampsurvivor/survivor/internal/core/event"
	coresys "github.com/vampsurvivor/survivor/internal/core/system"
	"github.com/vampsurvivor/survivor/internal/world"
)

// DeathSystem marks entities whose health reached zero for despawn and
// announces the death. Phase 5 (Resolve).
type DeathSystem struct {
	world *world.State
	clock *coresys.GameTick
	bus   *event.Bus
	log   *zap.Logger
}

func NewDeathSystem(ws *world.State, clock *coresys.GameTick, bus *event.Bus, log *zap.Logger) *DeathSystem {
	return &DeathSystem{world: ws, clock: clock, bus: bus, log: log}
}

func (s *DeathSystem) Phase() coresys.Phase { return coresys.PhaseResolve }

func (s *DeathSystem) Update(_ time.Duration) error {
	ws := s.world
	for _, id := range ecs.CollectSorted(ws.Healths, ecs.Without(ws.Despawns)) {
		h, _ := ws.Healths.Get(id)
		if h.Current > 0 {
			continue
		}
		ws.Despawns.Set(id, &component.Despawn{})
		player := ws.Players.Has(id)
		if player {
			s.log.Info("player died", zap.Uint64("entity", uint64(id)), zap.Uint64("tick", s.clock.TicksElapsed))
		}
		event.Emit(s.bus, event.EntityDied{Entity: id, Player: player, Tick: s.clock.TicksElapsed})
	}
	return nil
}
