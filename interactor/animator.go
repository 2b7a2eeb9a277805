// Package interactor orchestrates the transient props (brush, candy,
// broccoli) that dramatize user actions: spawn, attach under the placed
// tooth, phase-based motion, detach, dispose. Disposal is unconditional -
// a prop is never left dangling, whatever way the animation ends.
package interactor

import (
	"errors"
	"fmt"

	"github.com/adiwidya/kariesar/asset"
	"github.com/adiwidya/kariesar/progress"
	"github.com/adiwidya/kariesar/scene"
	"go.uber.org/zap"
)

var (
	ErrNoTarget = errors.New("interactor: no placed entity to animate against")
	ErrNoPreset = errors.New("interactor: no preset for action")
)

// flash defaults follow the reference behavior: warm yellow, 0.35 s.
const (
	defaultFlashColor    = 0xffe066
	defaultFlashDuration = 0.35
)

// Animator spawns and drives interactor playbacks. It enforces no mutual
// exclusion itself; the session keeps at most one playback in flight.
type Animator struct {
	cache         *asset.Cache
	presets       map[progress.Action]Preset
	flashColor    uint32
	flashDuration float64
	log           *zap.Logger
}

func NewAnimator(cache *asset.Cache, presets map[progress.Action]Preset, log *zap.Logger) *Animator {
	if presets == nil {
		presets = DefaultPresets()
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Animator{
		cache:         cache,
		presets:       presets,
		flashColor:    defaultFlashColor,
		flashDuration: defaultFlashDuration,
		log:           log,
	}
}

// SetPresets replaces the per-action presets (prefab hot reload).
func (a *Animator) SetPresets(presets map[progress.Action]Preset) {
	if a != nil && presets != nil {
		a.presets = presets
	}
}

// PresetAssetIDs returns the interactor asset identifiers, for preloading.
func (a *Animator) PresetAssetIDs() []string {
	if a == nil {
		return nil
	}
	ids := make([]string, 0, len(a.presets))
	for _, action := range []progress.Action{progress.ActionBrush, progress.ActionSweet, progress.ActionHealthy} {
		if p, ok := a.presets[action]; ok && p.AssetID != "" {
			ids = append(ids, p.AssetID)
		}
	}
	return ids
}

// Start spawns the prop for action under parent and returns a playback the
// frame tick drives to completion. A load failure is returned as an error;
// everything after a successful start resolves.
func (a *Animator) Start(action progress.Action, parent *scene.Node) (*Playback, error) {
	if a == nil || parent == nil || parent.Disposed() {
		return nil, ErrNoTarget
	}
	preset, ok := a.presets[action]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNoPreset, action)
	}

	inst, err := a.cache.Instantiate(preset.AssetID)
	if err != nil {
		return nil, err
	}

	wrapper := scene.NewNode("interactor_" + string(action))
	wrapper.Position = preset.Start.Position
	wrapper.Rotation = preset.Start.Rotation
	wrapper.Scale = preset.Start.Scale
	wrapper.Attach(inst.Root)
	parent.Attach(wrapper)

	var strategy AnimationStrategy
	if action == progress.ActionBrush && len(inst.Clips) > 0 {
		// Capability check: assets that ship a baked clip play it; the
		// procedural orbit is the fallback.
		strategy = newClipStrategy(inst.Clips[0])
	} else if action == progress.ActionBrush {
		strategy = newOrbitStrategy(wrapper, preset.Start, preset.Orbit)
	} else {
		strategy = newDropStrategy(wrapper, preset.Start, preset.Drop)
	}

	return &Playback{
		action:   action,
		wrapper:  wrapper,
		strategy: strategy,
		flash:    startFlash(parent, a.flashColor, a.flashDuration),
		log:      a.log,
	}, nil
}

// Playback is one in-flight interactor animation.
type Playback struct {
	action   progress.Action
	wrapper  *scene.Node
	strategy AnimationStrategy
	flash    *flashEffect
	log      *zap.Logger

	finished bool
	err      error
}

func (p *Playback) Action() progress.Action {
	if p == nil {
		return ""
	}
	return p.action
}

// Update advances the playback by dt seconds and reports completion. A
// panic inside a phase callback is captured as the playback error; cleanup
// runs regardless.
func (p *Playback) Update(dt float64) (done bool) {
	if p == nil || p.finished {
		return true
	}

	defer func() {
		if r := recover(); r != nil {
			p.err = fmt.Errorf("interactor: %s animation panicked: %v", p.action, r)
			p.log.Error("interactor animation failed", zap.String("action", string(p.action)), zap.Any("panic", r))
			p.finish()
			done = true
		}
	}()

	p.flash.update(dt)
	if p.strategy.Advance(dt) {
		p.finish()
		return true
	}
	return false
}

// Cancel tears the playback down immediately. Used by the liveness timeout
// and by reset/session-end while an animation is in flight.
func (p *Playback) Cancel() {
	if p == nil || p.finished {
		return
	}
	p.finish()
}

// Done reports whether the playback has finished and cleaned up.
func (p *Playback) Done() bool {
	return p == nil || p.finished
}

// Err returns the failure captured during playback, if any.
func (p *Playback) Err() error {
	if p == nil {
		return nil
	}
	return p.err
}

// finish detaches and disposes the wrapper and reverts the flash. It is the
// single exit path: success, cancellation, and panic recovery all land here.
func (p *Playback) finish() {
	if p.finished {
		return
	}
	p.finished = true
	p.flash.revert()
	if p.wrapper != nil {
		p.wrapper.RemoveFromParent()
		p.wrapper.Dispose()
	}
}
