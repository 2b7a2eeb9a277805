package session

import (
	"errors"

	"github.com/adiwidya/kariesar/interactor"
	"github.com/adiwidya/kariesar/placement"
	"github.com/adiwidya/kariesar/progress"
	"go.uber.org/zap"
)

// Config tunes the orchestrator.
type Config struct {
	// ActionTimeout bounds how long a playback may run before the liveness
	// safeguard clears it and re-enables input, in seconds.
	ActionTimeout float64
}

func DefaultConfig() Config {
	return Config{ActionTimeout: 10}
}

// pendingAction is the in-flight animation token. A completion commits a
// transition only while its playback is still the pending one; anything
// else is stale and discarded.
type pendingAction struct {
	action   progress.Action
	playback *interactor.Playback
	elapsed  float64
}

// Session is the explicit context object owning all mutable simulation
// state. Single-threaded: every method must be called from the frame loop.
type Session struct {
	cfg      Config
	placer   *placement.Manager
	animator *interactor.Animator
	bus      *Bus
	rules    progress.Rules
	log      *zap.Logger

	state   progress.State
	pending *pendingAction
}

func New(cfg Config, placer *placement.Manager, animator *interactor.Animator, bus *Bus, rules progress.Rules, log *zap.Logger) *Session {
	if log == nil {
		log = zap.NewNop()
	}
	if cfg.ActionTimeout <= 0 {
		cfg.ActionTimeout = DefaultConfig().ActionTimeout
	}
	if bus == nil {
		bus = &Bus{}
	}
	return &Session{
		cfg:      cfg,
		placer:   placer,
		animator: animator,
		bus:      bus,
		rules:    rules,
		log:      log,
		state:    progress.NewState(),
	}
}

// Bus returns the outbound event bus for subscribers.
func (s *Session) Bus() *Bus {
	return s.bus
}

// State returns the current simulation state.
func (s *Session) State() progress.State {
	return s.state
}

// InputLocked reports whether action requests would currently be ignored:
// an animation is in flight, nothing is placed, or the state is terminal.
func (s *Session) InputLocked() bool {
	return s.pending != nil || !s.placer.Placed() || s.state.Terminal()
}

// SetRules swaps the progression rules (prefab hot reload).
func (s *Session) SetRules(r progress.Rules) {
	s.rules = r
}

// HandlePlacement performs the initial placement at a pose delivered by the
// AR driver. Placing twice is a benign no-op. The logical state is not
// reset here: it is fresh after New and HandleReset, and re-placement after
// a session end resumes the surviving lesson, syncing the model to it.
func (s *Session) HandlePlacement(pose placement.Pose) {
	if _, err := s.placer.PlaceInitial(pose); err != nil {
		if errors.Is(err, placement.ErrAlreadyPlaced) {
			return
		}
		s.log.Warn("placement failed", zap.Error(err))
		return
	}
	if key := s.state.Key(); key != s.placer.CurrentKey() {
		if err := s.placer.SwapTo(key); err != nil {
			s.log.Warn("model sync after placement failed", zap.Error(err))
		}
	}
	s.bus.publish(ModelPlaced{Entity: s.placer.Current()})
	s.publishState("")
}

// HandleAction services an action-request from the UI. Requests that cannot
// run right now (terminal lock, nothing placed, animation in flight) are
// surfaced as skipped, never as errors.
func (s *Session) HandleAction(action progress.Action) {
	if action == progress.ActionReset {
		s.HandleReset()
		return
	}
	if !action.Valid() {
		s.log.Warn("unknown action ignored", zap.String("action", string(action)))
		return
	}
	if s.state.Terminal() {
		// Rejected at the input gate: no animation round-trip.
		s.bus.publish(AnimationFinished{Action: action, Status: StatusSkipped})
		return
	}
	if s.pending != nil {
		s.log.Debug("action ignored, animation in flight",
			zap.String("action", string(action)),
			zap.String("pending", string(s.pending.action)))
		s.bus.publish(AnimationFinished{Action: action, Status: StatusSkipped})
		return
	}

	playback, err := s.animator.Start(action, s.placer.Current())
	if err != nil {
		if errors.Is(err, interactor.ErrNoTarget) {
			s.bus.publish(AnimationFinished{Action: action, Status: StatusSkipped})
			return
		}
		s.log.Warn("interactor start failed", zap.String("action", string(action)), zap.Error(err))
		s.bus.publish(AnimationFinished{Action: action, Status: StatusError})
		return
	}
	s.pending = &pendingAction{action: action, playback: playback}
}

// HandleReset restores the fresh state and removes the placed entity. Per
// the error-handling policy a reset outside the terminal state is a benign
// no-op, surfaced as skipped: the lesson cannot be restarted mid-way.
func (s *Session) HandleReset() {
	if !s.state.Terminal() {
		s.bus.publish(AnimationFinished{Action: progress.ActionReset, Status: StatusSkipped})
		return
	}
	s.cancelPending()
	s.state = progress.NewState()
	s.placer.Remove()
	s.publishState("")
}

// HandleSessionEnded cleans up the visual placement when the AR session
// ends. The logical health state deliberately survives: re-placing the
// model resumes the same lesson.
func (s *Session) HandleSessionEnded() {
	s.cancelPending()
	s.placer.Remove()
}

// Step drives the in-flight playback from the per-frame tick and commits
// the state transition when the animation completes.
func (s *Session) Step(dt float64) {
	pend := s.pending
	if pend == nil {
		return
	}

	done := pend.playback.Update(dt)
	pend.elapsed += dt

	if !done {
		if pend.elapsed >= s.cfg.ActionTimeout {
			// Liveness safeguard: clear the pending state and re-enable
			// input without committing a phantom transition.
			s.log.Warn("animation timed out, recovering",
				zap.String("action", string(pend.action)),
				zap.Float64("elapsed", pend.elapsed))
			pend.playback.Cancel()
			s.pending = nil
			s.bus.publish(AnimationFinished{Action: pend.action, Status: StatusError})
		}
		return
	}

	if s.pending != pend || pend.playback.Action() != pend.action {
		// Stale completion: its token no longer matches the pending action.
		// Discard so a transition is never double-applied.
		s.log.Warn("stale animation completion discarded",
			zap.String("action", string(pend.playback.Action())))
		return
	}
	s.pending = nil

	if err := pend.playback.Err(); err != nil {
		s.log.Warn("animation failed", zap.String("action", string(pend.action)), zap.Error(err))
		s.bus.publish(AnimationFinished{Action: pend.action, Status: StatusError})
		return
	}

	s.commit(pend.action)
	s.bus.publish(AnimationFinished{Action: pend.action, Status: StatusOK})
}

// commit applies the completed action to the state machine, swaps the
// visual model if the health bucket changed, and notifies observers.
func (s *Session) commit(action progress.Action) {
	next, out := s.rules.Apply(action, s.state)
	s.state = next

	if s.placer.Placed() && s.placer.CurrentKey() != next.Key() {
		if err := s.placer.SwapTo(next.Key()); err != nil {
			// Stale-but-valid model stays; the bars still tell the story.
			s.log.Warn("model swap failed", zap.Int("key", int(next.Key())), zap.Error(err))
		}
	}

	s.publishState(out.Message)
	if out.NewlyTerminal {
		s.bus.publish(TerminalReached{Reason: out.Message})
	}
}

func (s *Session) publishState(message string) {
	s.bus.publish(StateChanged{
		Cleanliness: s.state.Cleanliness,
		Health:      s.state.Health,
		Stage:       s.state.Stage,
		Key:         s.state.Key(),
		Message:     message,
	})
}

func (s *Session) cancelPending() {
	if s.pending == nil {
		return
	}
	s.pending.playback.Cancel()
	s.pending = nil
}
