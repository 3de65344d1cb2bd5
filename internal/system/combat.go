package system

import (
	"time"

	"github.com/vampsurvivor/survivor/internal/component"
	"github.com/vampsurvivor/survivor/internal/core/ecs"
	coresys "github.com/vampsurvivor/survivor/internal/core/system"
	"github.com/vampsurvivor/survivor/internal/scripting"
	"github.com/vampsurvivor/survivor/internal/world"
)

// HitCalculator computes the damage of one hit. *scripting.Engine implements it.
type HitCalculator interface {
	CalcHit(ctx scripting.HitContext) float64
}

// DamageSystem applies damage from current touches. Projectiles hurt every
// touched entity on the side they target; enemies hurt a touched player.
// Damage repeats every tick the touch lasts. Phase 4 (Gameplay).
type DamageSystem struct {
	world    *world.State
	calc     HitCalculator
	tickRate float64
}

func NewDamageSystem(ws *world.State, calc HitCalculator, tickRate time.Duration) *DamageSystem {
	return &DamageSystem{world: ws, calc: calc, tickRate: tickRate.Seconds()}
}

func (s *DamageSystem) Phase() coresys.Phase { return coresys.PhaseGameplay }

func (s *DamageSystem) Update(_ time.Duration) error {
	ws := s.world

	ecs.Each3(ws.CollideWith, ws.Damages, ws.DamagePlayers, func(_ ecs.EntityID, rel *component.CollideWith, dmg *component.Damage, dp *component.DamagePlayer) {
		for _, other := range rel.Entities {
			if ws.Players.Has(other) != dp.Enabled {
				continue
			}
			s.hit(other, scripting.HitProjectile, dmg.Amount)
		}
	}, ecs.With(ws.Projectiles), ecs.Without(ws.Despawns))

	ecs.Each2(ws.CollideWith, ws.Damages, func(_ ecs.EntityID, rel *component.CollideWith, dmg *component.Damage) {
		for _, other := range rel.Entities {
			if ws.Players.Has(other) {
				s.hit(other, scripting.HitContact, dmg.Amount)
			}
		}
	}, ecs.With(ws.Enemies), ecs.Without(ws.Despawns))
	return nil
}

func (s *DamageSystem) hit(target ecs.EntityID, kind scripting.HitKind, base float64) {
	ws := s.world
	h, ok := ws.Healths.Get(target)
	if !ok || h.Current <= 0 {
		return
	}
	h.Current -= s.calc.CalcHit(scripting.HitContext{
		Kind:           kind,
		BaseDamage:     base,
		TargetHealth:   h.Current,
		TargetMax:      h.Max,
		TickRate:       s.tickRate,
		TargetIsPlayer: ws.Players.Has(target),
	})
}
