// Package session owns the orchestration context: it connects the UI and AR
// driver events to the state machine, the interactor animator, and the
// placement manager. No package-level state; everything hangs off a Session.
package session

import (
	"github.com/adiwidya/kariesar/progress"
	"github.com/adiwidya/kariesar/scene"
)

// Event is the discriminated union of outbound notifications. Each concrete
// payload carries exactly the fields its consumers need; subscribers switch
// on the concrete type.
type Event interface {
	event()
}

// AnimationStatus is the result of an interactor animation request.
type AnimationStatus string

const (
	StatusOK      AnimationStatus = "ok"
	StatusSkipped AnimationStatus = "skipped"
	StatusError   AnimationStatus = "error"
)

// ModelPlaced fires once the initial placement succeeds.
type ModelPlaced struct {
	Entity *scene.Node
}

// AnimationFinished reports how an action request ended.
type AnimationFinished struct {
	Action progress.Action
	Status AnimationStatus
}

// StateChanged fires after every committed transition.
type StateChanged struct {
	Cleanliness float64
	Health      float64
	Stage       int
	Key         progress.HealthKey
	Message     string
}

// TerminalReached fires exactly once, when the lock condition is entered.
type TerminalReached struct {
	Reason string
}

func (ModelPlaced) event()       {}
func (AnimationFinished) event() {}
func (StateChanged) event()      {}
func (TerminalReached) event()   {}

// Bus delivers events synchronously, in publish order, to every subscriber.
type Bus struct {
	subs []func(Event)
}

func (b *Bus) Subscribe(fn func(Event)) {
	if b == nil || fn == nil {
		return
	}
	b.subs = append(b.subs, fn)
}

func (b *Bus) publish(e Event) {
	if b == nil || e == nil {
		return
	}
	for _, fn := range b.subs {
		fn(e)
	}
}
