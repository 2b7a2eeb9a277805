// Package progress holds the pure health/cleanliness progression logic.
// Everything here is deterministic and side-effect free: the orchestrator
// applies actions and commits whole states, never partial updates.
package progress

import "github.com/adiwidya/kariesar/common"

// Action is a user-requested interaction with the tooth.
type Action string

const (
	ActionBrush   Action = "brush"
	ActionSweet   Action = "sweet"
	ActionHealthy Action = "healthy"
	ActionReset   Action = "reset"
)

// Valid reports whether a is one of the known actions.
func (a Action) Valid() bool {
	switch a {
	case ActionBrush, ActionSweet, ActionHealthy, ActionReset:
		return true
	}
	return false
}

// terminalStage is the sweet count at which the tooth is beyond saving.
const terminalStage = 8

// State is the authoritative simulation state. Cleanliness and health live
// in [0,100] and always commit together.
type State struct {
	Cleanliness float64
	Health      float64
	// Stage counts sweet-food actions since the last reset. Brushing does
	// not clear it: damage accumulates until an explicit reset.
	Stage int
	// HealthyStreak counts consecutive healthy-food actions toward the
	// every-second-one health bonus.
	HealthyStreak int
}

// NewState returns the fresh (100, 100, 0) state used at placement and reset.
func NewState() State {
	return State{Cleanliness: 100, Health: 100}
}

// Terminal reports the locked condition: both bars empty.
func (s State) Terminal() bool {
	return s.Cleanliness <= 0 && s.Health <= 0
}

// Outcome describes what a transition did, for the orchestrator and UI.
type Outcome struct {
	Changed bool
	// NewlyTerminal is true only on the transition that entered the locked
	// state, so the terminal event fires exactly once.
	NewlyTerminal bool
	Message       string
}

// Rules are the per-action deltas. They default to DefaultRules and may be
// overridden by a tuning script (see LoadRules).
type Rules struct {
	BrushClean         float64
	BrushHealth        float64
	SweetClean         float64
	SweetHealth        float64 // applied on every second sweet action
	HealthyClean       float64
	HealthyHealthBonus float64 // applied on every second consecutive healthy action
}

func DefaultRules() Rules {
	return Rules{
		BrushClean:         25,
		BrushHealth:        25,
		SweetClean:         12.5,
		SweetHealth:        25,
		HealthyClean:       12.5,
		HealthyHealthBonus: 25,
	}
}

// Apply runs a transition under the default rules.
func Apply(action Action, s State) (State, Outcome) {
	return DefaultRules().Apply(action, s)
}

// Apply maps an action to a new state. Sub-operations are not commutative;
// the order below (health before cleanliness within a paired sweet step) is
// the committed order.
func (r Rules) Apply(action Action, s State) (State, Outcome) {
	wasTerminal := s.Terminal()

	if action == ActionReset {
		next := NewState()
		return next, Outcome{Changed: next != s, Message: msgReset}
	}

	// Locked: nothing but reset moves the state; only the terminal caption
	// is re-affirmed.
	if wasTerminal {
		return s, Outcome{Message: msgTerminal}
	}

	next := s
	var msg string

	switch action {
	case ActionBrush:
		next.Cleanliness = common.Clamp(next.Cleanliness+r.BrushClean, 0, 100)
		next.Health = common.Clamp(next.Health+r.BrushHealth, 0, 100)
		next.HealthyStreak = 0
		msg = msgBrush

	case ActionSweet:
		next.Stage++
		if next.Stage%2 == 0 {
			next.Health = common.Clamp(next.Health-r.SweetHealth, 0, 100)
		}
		next.Cleanliness = common.Clamp(next.Cleanliness-r.SweetClean, 0, 100)
		next.HealthyStreak = 0
		if next.Stage >= terminalStage {
			next.Stage = terminalStage
			next.Cleanliness = 0
			next.Health = 0
		}
		msg = StageMessage(next.Stage)

	case ActionHealthy:
		next.Cleanliness = common.Clamp(next.Cleanliness+r.HealthyClean, 0, 100)
		next.HealthyStreak++
		if next.HealthyStreak >= 2 {
			next.Health = common.Clamp(next.Health+r.HealthyHealthBonus, 0, 100)
			next.HealthyStreak = 0
			msg = msgHealthyBonus
		} else {
			msg = msgHealthy
		}

	default:
		return s, Outcome{}
	}

	// Terminal is re-checked after every transition, not only in the sweet
	// branch: other paths could also drive both bars to zero.
	nowTerminal := next.Terminal()
	if nowTerminal {
		msg = msgTerminal
	}
	return next, Outcome{
		Changed:       next != s,
		NewlyTerminal: nowTerminal && !wasTerminal,
		Message:       msg,
	}
}

// HealthKey is one of the five discrete visual buckets a health value maps
// to. Each key has its own model asset.
type HealthKey int

const (
	Key100 HealthKey = 100
	Key75  HealthKey = 75
	Key50  HealthKey = 50
	Key25  HealthKey = 25
	Key0   HealthKey = 0
)

// Keys lists every bucket, healthiest first.
func Keys() []HealthKey {
	return []HealthKey{Key100, Key75, Key50, Key25, Key0}
}

// ToHealthKey buckets a health value with >= thresholds: 74.999 is Key50.
func ToHealthKey(health float64) HealthKey {
	switch {
	case health >= 100:
		return Key100
	case health >= 75:
		return Key75
	case health >= 50:
		return Key50
	case health >= 25:
		return Key25
	default:
		return Key0
	}
}

// Key returns the visual bucket for the state's health.
func (s State) Key() HealthKey {
	return ToHealthKey(s.Health)
}
