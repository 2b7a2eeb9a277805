package session

import (
	"errors"
	"testing"

	"github.com/adiwidya/kariesar/asset"
	"github.com/adiwidya/kariesar/interactor"
	"github.com/adiwidya/kariesar/placement"
	"github.com/adiwidya/kariesar/progress"
	"github.com/adiwidya/kariesar/scene"
	"go.uber.org/zap"
)

type rigLoader struct {
	fail map[string]bool
}

func (l *rigLoader) Load(id string) (*asset.Template, error) {
	if l.fail[id] {
		return nil, errors.New("load failed")
	}
	root := scene.NewNode(id)
	root.Mesh = &scene.Mesh{
		Geometry: scene.NewGeometry(id),
		Material: scene.NewMaterial(id, 0xffffff),
	}
	return &asset.Template{Root: root}, nil
}

type rig struct {
	sess   *Session
	placer *placement.Manager
	root   *scene.Node
	events []Event
}

func newRig(t *testing.T, cfg Config, failIDs ...string) *rig {
	t.Helper()
	fail := make(map[string]bool)
	for _, id := range failIDs {
		fail[id] = true
	}
	cache := asset.NewCache(&rigLoader{fail: fail}, zap.NewNop())
	root := scene.NewNode("world")
	placer := placement.NewManager(cache, root, map[progress.HealthKey]string{
		progress.Key100: "tooth_100",
		progress.Key75:  "tooth_75",
		progress.Key50:  "tooth_50",
		progress.Key25:  "tooth_25",
		progress.Key0:   "tooth_0",
	}, 0.2, zap.NewNop())
	animator := interactor.NewAnimator(cache, interactor.DefaultPresets(), zap.NewNop())

	r := &rig{root: root, placer: placer}
	r.sess = New(cfg, placer, animator, &Bus{}, progress.DefaultRules(), zap.NewNop())
	r.sess.Bus().Subscribe(func(e Event) {
		r.events = append(r.events, e)
	})
	return r
}

func (r *rig) place(t *testing.T) {
	t.Helper()
	r.sess.HandlePlacement(placement.Pose{})
	if !r.placer.Placed() {
		t.Fatalf("placement did not happen")
	}
}

// run steps the session until no animation is pending.
func (r *rig) run(t *testing.T) {
	t.Helper()
	const dt = 1.0 / 60.0
	for i := 0; i < 10000; i++ {
		r.sess.Step(dt)
		if r.sess.pending == nil {
			return
		}
	}
	t.Fatalf("session never became idle")
}

func (r *rig) finished() []AnimationFinished {
	var out []AnimationFinished
	for _, e := range r.events {
		if f, ok := e.(AnimationFinished); ok {
			out = append(out, f)
		}
	}
	return out
}

func (r *rig) stateChanges() []StateChanged {
	var out []StateChanged
	for _, e := range r.events {
		if s, ok := e.(StateChanged); ok {
			out = append(out, s)
		}
	}
	return out
}

func (r *rig) terminals() []TerminalReached {
	var out []TerminalReached
	for _, e := range r.events {
		if te, ok := e.(TerminalReached); ok {
			out = append(out, te)
		}
	}
	return out
}

// doAction requests an action and drives it to completion.
func (r *rig) doAction(t *testing.T, a progress.Action) {
	t.Helper()
	r.sess.HandleAction(a)
	r.run(t)
}

func TestActionBeforePlacementIsSkipped(t *testing.T) {
	r := newRig(t, DefaultConfig())
	r.sess.HandleAction(progress.ActionBrush)

	fin := r.finished()
	if len(fin) != 1 || fin[0].Status != StatusSkipped {
		t.Fatalf("finished events = %+v, want one skipped", fin)
	}
	if got := r.sess.State(); got != progress.NewState() {
		t.Fatalf("state changed without placement: %+v", got)
	}
}

func TestSweetPipeline(t *testing.T) {
	r := newRig(t, DefaultConfig())
	r.place(t)
	r.doAction(t, progress.ActionSweet)

	s := r.sess.State()
	if s.Cleanliness != 87.5 || s.Health != 100 || s.Stage != 1 {
		t.Fatalf("state = %+v, want (87.5, 100, 1)", s)
	}

	fin := r.finished()
	if len(fin) != 1 || fin[0].Status != StatusOK || fin[0].Action != progress.ActionSweet {
		t.Fatalf("finished events = %+v", fin)
	}
	// Health still 100: no swap.
	if r.placer.CurrentKey() != progress.Key100 {
		t.Fatalf("model swapped without a bucket change")
	}
}

func TestHealthDropSwapsModel(t *testing.T) {
	r := newRig(t, DefaultConfig())
	r.place(t)
	r.doAction(t, progress.ActionSweet)
	r.doAction(t, progress.ActionSweet)

	if got := r.sess.State().Health; got != 75 {
		t.Fatalf("health = %v, want 75", got)
	}
	if r.placer.CurrentKey() != progress.Key75 {
		t.Fatalf("model key = %v, want 75", r.placer.CurrentKey())
	}
	if len(r.root.Children()) != 1 {
		t.Fatalf("%d live placed entities, want 1", len(r.root.Children()))
	}
}

func TestRapidDoubleRequestIgnoredSecond(t *testing.T) {
	r := newRig(t, DefaultConfig())
	r.place(t)

	r.sess.HandleAction(progress.ActionSweet)
	r.sess.HandleAction(progress.ActionBrush) // while the first is in flight

	fin := r.finished()
	if len(fin) != 1 || fin[0].Action != progress.ActionBrush || fin[0].Status != StatusSkipped {
		t.Fatalf("second request not skipped: %+v", fin)
	}

	r.run(t)

	if got := len(r.stateChanges()); got != 2 { // placement sync + one commit
		t.Fatalf("%d state-changed events, want 2", got)
	}
	s := r.sess.State()
	if s.Cleanliness != 87.5 || s.Stage != 1 {
		t.Fatalf("state = %+v, want only the sweet applied", s)
	}
}

func TestEightSweetsTerminalPipeline(t *testing.T) {
	r := newRig(t, DefaultConfig())
	r.place(t)

	for i := 0; i < 8; i++ {
		r.doAction(t, progress.ActionSweet)
	}

	s := r.sess.State()
	if s.Cleanliness != 0 || s.Health != 0 || s.Stage != 8 {
		t.Fatalf("state = %+v, want (0, 0, 8)", s)
	}
	if got := len(r.terminals()); got != 1 {
		t.Fatalf("terminal-reached fired %d times, want 1", got)
	}
	if r.placer.CurrentKey() != progress.Key0 {
		t.Fatalf("model key = %v, want 0", r.placer.CurrentKey())
	}

	// Scenario: action while terminal is rejected at the gate.
	before := len(r.events)
	r.sess.HandleAction(progress.ActionSweet)
	fin := r.events[before:]
	if len(fin) != 1 {
		t.Fatalf("events after terminal request: %+v", fin)
	}
	if f, ok := fin[0].(AnimationFinished); !ok || f.Status != StatusSkipped {
		t.Fatalf("terminal request not skipped: %+v", fin[0])
	}
	if got := r.sess.State(); got != s {
		t.Fatalf("terminal state mutated: %+v", got)
	}
}

func TestResetOnlyFromTerminal(t *testing.T) {
	r := newRig(t, DefaultConfig())
	r.place(t)
	r.doAction(t, progress.ActionSweet)

	// Outside terminal: benign no-op.
	r.sess.HandleReset()
	if got := r.sess.State().Stage; got != 1 {
		t.Fatalf("reset outside terminal changed state: stage %d", got)
	}
	fin := r.finished()
	last := fin[len(fin)-1]
	if last.Action != progress.ActionReset || last.Status != StatusSkipped {
		t.Fatalf("reset outside terminal not surfaced as skipped: %+v", last)
	}

	for i := 0; i < 7; i++ {
		r.doAction(t, progress.ActionSweet)
	}
	if !r.sess.State().Terminal() {
		t.Fatalf("expected terminal state")
	}

	r.sess.HandleReset()
	if got := r.sess.State(); got != progress.NewState() {
		t.Fatalf("state after reset = %+v", got)
	}
	if r.placer.Placed() {
		t.Fatalf("reset should remove the placed entity")
	}
}

func TestTimeoutRecoversWithoutPhantomTransition(t *testing.T) {
	r := newRig(t, Config{ActionTimeout: 0.1})
	r.place(t)

	r.sess.HandleAction(progress.ActionBrush) // ~2.5 s procedural orbit
	const dt = 1.0 / 60.0
	for i := 0; i < 20 && r.sess.pending != nil; i++ {
		r.sess.Step(dt)
	}

	if r.sess.pending != nil {
		t.Fatalf("timeout did not clear the pending action")
	}
	fin := r.finished()
	if len(fin) != 1 || fin[0].Status != StatusError {
		t.Fatalf("finished events = %+v, want one error", fin)
	}
	if got := r.sess.State(); got != progress.NewState() {
		t.Fatalf("timeout committed a phantom transition: %+v", got)
	}
	// The prop was cleaned up and input works again.
	if len(r.placer.Current().Children()) != 0 {
		t.Fatalf("timed-out prop left attached")
	}
	r.doAction(t, progress.ActionSweet)
	if r.sess.State().Stage != 1 {
		t.Fatalf("input not re-enabled after timeout")
	}
}

func TestInteractorLoadFailureSurfacesError(t *testing.T) {
	r := newRig(t, DefaultConfig(), "candy")
	r.place(t)

	r.sess.HandleAction(progress.ActionSweet)
	fin := r.finished()
	if len(fin) != 1 || fin[0].Status != StatusError {
		t.Fatalf("finished events = %+v, want one error", fin)
	}
	if got := r.sess.State(); got != progress.NewState() {
		t.Fatalf("failed animation mutated state: %+v", got)
	}
	if r.sess.pending != nil {
		t.Fatalf("failed start left a pending action")
	}
}

func TestSwapFailureKeepsStaleModel(t *testing.T) {
	r := newRig(t, DefaultConfig(), "tooth_75")
	r.place(t)
	r.doAction(t, progress.ActionSweet)
	r.doAction(t, progress.ActionSweet)

	// State advanced to health 75, but the 75 model could not load.
	if got := r.sess.State().Health; got != 75 {
		t.Fatalf("health = %v, want 75", got)
	}
	if r.placer.CurrentKey() != progress.Key100 {
		t.Fatalf("stale model policy violated: key %v", r.placer.CurrentKey())
	}
	if len(r.root.Children()) != 1 {
		t.Fatalf("blank scene after failed swap")
	}
}

func TestSessionEndedKeepsLogicalState(t *testing.T) {
	r := newRig(t, DefaultConfig())
	r.place(t)
	r.doAction(t, progress.ActionSweet)
	r.doAction(t, progress.ActionSweet) // health 75

	// End the AR session mid-animation.
	r.sess.HandleAction(progress.ActionSweet)
	r.sess.HandleSessionEnded()

	if r.placer.Placed() {
		t.Fatalf("session end should remove the visual placement")
	}
	if got := r.sess.State().Health; got != 75 {
		t.Fatalf("session end reset the logical state: health %v", got)
	}

	// Re-placing resumes the lesson and syncs the model to the bucket.
	r.sess.HandlePlacement(placement.Pose{})
	if r.placer.CurrentKey() != progress.Key75 {
		t.Fatalf("re-placement did not sync model: key %v", r.placer.CurrentKey())
	}
}

func TestDoublePlacementIsNoop(t *testing.T) {
	r := newRig(t, DefaultConfig())
	r.place(t)
	placedEvents := 0
	for _, e := range r.events {
		if _, ok := e.(ModelPlaced); ok {
			placedEvents++
		}
	}

	r.sess.HandlePlacement(placement.Pose{})
	got := 0
	for _, e := range r.events {
		if _, ok := e.(ModelPlaced); ok {
			got++
		}
	}
	if got != placedEvents {
		t.Fatalf("double placement emitted another model-placed event")
	}
	if len(r.root.Children()) != 1 {
		t.Fatalf("double placement duplicated the entity")
	}
}

func TestDeterministicSessionReplay(t *testing.T) {
	seq := []progress.Action{
		progress.ActionSweet, progress.ActionHealthy, progress.ActionSweet,
		progress.ActionBrush, progress.ActionSweet, progress.ActionSweet,
		progress.ActionHealthy, progress.ActionHealthy, progress.ActionSweet,
	}

	run := func() progress.State {
		r := newRig(t, DefaultConfig())
		r.place(t)
		for _, a := range seq {
			r.doAction(t, a)
		}
		return r.sess.State()
	}

	first := run()
	second := run()
	if first != second {
		t.Fatalf("session replay diverged: %+v vs %+v", first, second)
	}
}
