// Package components defines ECS components for the simulation.
package components

import "github.com/mlange-42/ark/ecs"

// State is an agent's lifecycle state. The states are mutually exclusive;
// fertility rides along as a sub-flag on Lifecycle because a fertile agent
// is always also homebound, at home, or (for one radar pass) foraging.
type State uint8

const (
	StateHungry    State = iota // Has not eaten today
	StateForaging               // Fed once; roams for a second item
	StateReturning              // Walking to the nearest world edge
	StateAtHome                 // Reached an edge; waits out the night
	StateDead                   // Marked for removal at end of tick
)

// String returns the state name for logs and the HUD.
func (s State) String() string {
	switch s {
	case StateHungry:
		return "hungry"
	case StateForaging:
		return "foraging"
	case StateReturning:
		return "returning"
	case StateAtHome:
		return "at-home"
	case StateDead:
		return "dead"
	default:
		return "unknown"
	}
}

// Position represents an entity's world position in centered coordinates:
// the world spans [-W/2, +W/2] x [-H/2, +H/2].
type Position struct {
	X, Y float32
}

// Heading represents an entity's facing direction.
type Heading struct {
	Angle float32 // radians
}

// Traits holds the heritable traits. Both are strictly positive and are
// mutated only at reproduction.
type Traits struct {
	Speed float32 // Movement speed multiplier
	Sense float32 // Radar range in world units
}

// Energy tracks an agent's remaining energy. The agent dies at <= 0.
type Energy struct {
	Value float32
}

// Lifecycle bundles the state machine position with the fertility flag.
type Lifecycle struct {
	State   State
	Fertile bool
}

// Free reports whether the agent roams freely (neither homebound, home,
// nor dead).
func (l Lifecycle) Free() bool {
	return l.State == StateHungry || l.State == StateForaging
}

// Tracked is the agent's current radar target: the food item it is
// steering toward. Cleared when the target leaves sensing range or is
// consumed.
type Tracked struct {
	Has  bool
	Food ecs.Entity // Handle of the tracked food item
	X, Y float32    // Target position at adoption time
	Dist float32    // Distance at adoption time
}

// Clear drops the current target.
func (t *Tracked) Clear() {
	*t = Tracked{}
}

// Food marks a food entity. Eaten flips exactly once, atomically with the
// consumption bookkeeping, so at most one agent benefits from an item.
type Food struct {
	Eaten bool
}
