package system

import (
	"fmt"
	"math"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/zap"

	"github.com/vampsurvivor/survivor/internal/component"
	"github.com/vampsurvivor/survivor/internal/core/ecs"
	coresys "github.com/vampsurvivor/survivor/internal/core/system"
	"github.com/vampsurvivor/survivor/internal/world"
)

// castFunc fires one ability for caster. It reports false when there was
// nothing to cast at; the slot then stays ready.
type castFunc func(s *AbilitySystem, caster ecs.EntityID, kind component.AbilityKind) (bool, error)

// castTable is the dispatch table. Adding an ability means adding a kind and an
// entry here.
var castTable = map[component.AbilityKind]castFunc{
	component.AbilityFireball: castProjectile,
}

// AbilitySystem counts down cooldowns and casts ready abilities.
// Phase 4 (Gameplay).
type AbilitySystem struct {
	world *world.State
	log   *zap.Logger
	casts int
}

func NewAbilitySystem(ws *world.State, log *zap.Logger) *AbilitySystem {
	return &AbilitySystem{world: ws, log: log}
}

func (s *AbilitySystem) Phase() coresys.Phase { return coresys.PhaseGameplay }

func (s *AbilitySystem) Update(_ time.Duration) error {
	ws := s.world
	for _, caster := range ecs.CollectSorted(ws.Abilities, ecs.Without(ws.Despawns)) {
		ab, _ := ws.Abilities.Get(caster)
		for i := range ab.Slots {
			slot := &ab.Slots[i]
			if slot.ReadyIn > 0 {
				slot.ReadyIn--
				continue
			}
			cast, ok := castTable[slot.Kind]
			if !ok {
				s.log.Error("no cast for ability", zap.Stringer("ability", slot.Kind))
				continue
			}
			fired, err := cast(s, caster, slot.Kind)
			if err != nil {
				return fmt.Errorf("cast %s: %w", slot.Kind, err)
			}
			if fired {
				slot.ReadyIn = slot.CooldownTicks
				s.casts++
			}
		}
	}
	return nil
}

// Casts returns the number of abilities fired so far.
func (s *AbilitySystem) Casts() int { return s.casts }

// castProjectile spawns the projectile archetype named after the ability,
// aimed at the nearest hostile.
func castProjectile(s *AbilitySystem, caster ecs.EntityID, kind component.AbilityKind) (bool, error) {
	ws := s.world
	origin, ok := ws.Position(caster)
	if !ok {
		return false, nil
	}
	target, ok := s.nearestHostile(caster, origin)
	if !ok {
		return false, nil
	}
	dir := target.Sub(origin)
	if dir.Len() == 0 {
		return false, nil
	}
	if _, err := ws.Spawn(kind.String(), world.SpawnParams{
		Position:  origin,
		Direction: dir,
		Owner:     caster,
	}); err != nil {
		return false, err
	}
	return true, nil
}

// nearestHostile returns the closest enemy for a player caster, the player
// for anyone else.
func (s *AbilitySystem) nearestHostile(caster ecs.EntityID, from mgl64.Vec2) (mgl64.Vec2, bool) {
	ws := s.world
	if !ws.Players.Has(caster) {
		if player, ok := ws.Player(); ok {
			return ws.Position(player)
		}
		return mgl64.Vec2{}, false
	}

	best := math.Inf(1)
	var target mgl64.Vec2
	found := false
	for _, id := range ecs.CollectSorted(ws.Enemies, ecs.Without(ws.Despawns)) {
		pos, ok := ws.Position(id)
		if !ok {
			continue
		}
		d := pos.Sub(from)
		if dist := d.Dot(d); dist < best {
			best, target, found = dist, pos, true
		}
	}
	return target, found
}
