package system

import "time"

// Phase defines execution ordering within a single tick.
type Phase int

const (
	PhaseEvents    Phase = iota // 0: deliver last tick's gameplay events
	PhaseBridge                 // 1: insert pending bodies/colliders
	PhaseStep                   // 2: advance physics one tick
	PhaseCollision              // 3: translate collision events into relations
	PhaseGameplay               // 4: input, AI, spawning, abilities, damage
	PhaseResolve                // 5: death checks, despawn marking
	PhaseDespawn                // 6: free physics, destroy marked entities
	PhaseRender                 // 7: once per frame, after all ticks
)

var phaseNames = [...]string{"events", "bridge", "step", "collision", "gameplay", "resolve", "despawn", "render"}

func (p Phase) String() string {
	if p < 0 || int(p) >= len(phaseNames) {
		return "unknown"
	}
	return phaseNames[p]
}

// System is the interface every ECS system implements.
// A returned error is fatal for the frame and surfaces to the loop owner.
type System interface {
	Phase() Phase
	Update(dt time.Duration) error
}
