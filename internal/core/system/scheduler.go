package system

import (
	"math"
	"time"

	"go.uber.org/zap"
)

// DefaultMaxTicksPerFrame bounds catch-up work when a frame runs long.
const DefaultMaxTicksPerFrame = 8

// DefaultTickRate is used when a clock is built with a non-positive rate.
const DefaultTickRate = time.Second / 32

// GameTick is the process-wide simulation clock. Only the Scheduler mutates it.
type GameTick struct {
	TickRate         float64 // seconds per tick
	Accumulator      float64 // unsimulated seconds carried between frames
	TicksElapsed     uint64
	MaxTicksPerFrame int
	DroppedTicks     uint64 // whole ticks discarded by the catch-up clamp
}

// NewGameTick returns a clock with the given tick duration. A non-positive
// tick rate falls back to DefaultTickRate.
func NewGameTick(tickRate time.Duration, maxTicksPerFrame int) *GameTick {
	if tickRate <= 0 {
		tickRate = DefaultTickRate
	}
	if maxTicksPerFrame < 1 {
		maxTicksPerFrame = DefaultMaxTicksPerFrame
	}
	return &GameTick{
		TickRate:         tickRate.Seconds(),
		MaxTicksPerFrame: maxTicksPerFrame,
	}
}

// TickDuration returns the tick rate as a time.Duration.
func (g *GameTick) TickDuration() time.Duration {
	return time.Duration(g.TickRate * float64(time.Second))
}

// Scheduler is the fixed-step outer loop. Each call to Frame runs zero or more
// whole ticks, then the render phase exactly once.
type Scheduler struct {
	clock  *GameTick
	runner *Runner
	log    *zap.Logger
}

func NewScheduler(clock *GameTick, runner *Runner, log *zap.Logger) *Scheduler {
	return &Scheduler{clock: clock, runner: runner, log: log}
}

func (s *Scheduler) Clock() *GameTick { return s.clock }

// Frame advances the simulation by the render frame delta dt (seconds) and
// returns the number of ticks executed.
func (s *Scheduler) Frame(dt float64) (int, error) {
	c := s.clock
	if dt < 0 || math.IsNaN(dt) || math.IsInf(dt, 0) {
		dt = 0
	}
	if c.TickRate <= 0 || math.IsNaN(c.TickRate) {
		c.TickRate = DefaultTickRate.Seconds()
	}
	c.Accumulator += dt

	tickDur := c.TickDuration()
	ticks := 0
	for c.Accumulator >= c.TickRate {
		if ticks >= c.MaxTicksPerFrame {
			dropped := uint64(c.Accumulator / c.TickRate)
			c.Accumulator = math.Mod(c.Accumulator, c.TickRate)
			c.DroppedTicks += dropped
			s.log.Warn("simulation falling behind, catch-up ticks dropped",
				zap.Int("ran", ticks),
				zap.Uint64("dropped", dropped),
				zap.Uint64("tick", c.TicksElapsed))
			break
		}
		if err := s.runner.Tick(tickDur); err != nil {
			return ticks, err
		}
		c.Accumulator -= c.TickRate
		c.TicksElapsed++
		ticks++
	}

	if err := s.runner.TickPhase(PhaseRender, time.Duration(dt*float64(time.Second))); err != nil {
		return ticks, err
	}
	return ticks, nil
}
