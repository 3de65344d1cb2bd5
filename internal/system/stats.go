package system

import (
	"time"

	"go.uber.org/zap"

	"github.com/vampsurvivor/survivor/internal/core/event"
	coresys "github.com/vampsurvivor/survivor/internal/core/system"
	"github.com/vampsurvivor/survivor/internal/world"
)

// Stats are running totals collected from gameplay events.
type Stats struct {
	Kills        int
	PlayerDeaths int
	Despawned    int
	Contacts     int
}

// StatsSystem tallies gameplay events and logs a summary every interval
// ticks. Phase 0 (Events), after delivery.
type StatsSystem struct {
	world    *world.State
	log      *zap.Logger
	interval int
	ticks    int
	stats    Stats
}

func NewStatsSystem(ws *world.State, bus *event.Bus, interval int, log *zap.Logger) *StatsSystem {
	s := &StatsSystem{world: ws, log: log, interval: interval}
	event.Subscribe(bus, func(ev event.EntityDied) {
		if ev.Player {
			s.stats.PlayerDeaths++
		} else {
			s.stats.Kills++
		}
	})
	event.Subscribe(bus, func(event.EntityDespawned) { s.stats.Despawned++ })
	event.Subscribe(bus, func(event.ContactForce) { s.stats.Contacts++ })
	return s
}

func (s *StatsSystem) Phase() coresys.Phase { return coresys.PhaseEvents }

func (s *StatsSystem) Update(_ time.Duration) error {
	s.ticks++
	if s.interval > 0 && s.ticks%s.interval == 0 {
		s.Log()
	}
	return nil
}

// Log writes the current totals at info level.
func (s *StatsSystem) Log() {
	ws := s.world
	s.log.Info("simulation stats",
		zap.Int("ticks", s.ticks),
		zap.Int("entities", ws.ECS.Len()),
		zap.Int("enemies", ws.EnemyCount()),
		zap.Int("bodies", ws.Physics.BodyCount()),
		zap.Int("colliders", ws.Physics.ColliderCount()),
		zap.Int("kills", s.stats.Kills),
		zap.Int("despawned", s.stats.Despawned),
		zap.Int("contacts", s.stats.Contacts))
}

// Snapshot returns the current totals.
func (s *StatsSystem) Snapshot() Stats { return s.stats }
