// Package tween provides frame-driven interpolation. Nothing here owns a
// timer: callers advance tweens from the render loop's per-frame tick and
// sample the current value until completion.
package tween

import "github.com/adiwidya/kariesar/common"

// Tween interpolates from From to To over Duration seconds using Ease.
type Tween struct {
	From     float64
	To       float64
	Duration float64
	Ease     common.EaseFunc

	elapsed float64
}

func New(from, to, duration float64, ease common.EaseFunc) *Tween {
	if ease == nil {
		ease = common.EaseLinear
	}
	if duration < 0 {
		duration = 0
	}
	return &Tween{From: from, To: to, Duration: duration, Ease: ease}
}

// Advance moves the tween forward by dt seconds and reports whether it has
// completed. A zero-duration tween completes on the first call.
func (t *Tween) Advance(dt float64) bool {
	if t == nil {
		return true
	}
	if dt > 0 {
		t.elapsed += dt
	}
	return t.Done()
}

func (t *Tween) Done() bool {
	return t == nil || t.elapsed >= t.Duration
}

// Progress returns eased progress in [0,1].
func (t *Tween) Progress() float64 {
	if t == nil || t.Duration <= 0 {
		return 1
	}
	lin := common.Clamp(t.elapsed/t.Duration, 0, 1)
	return t.Ease(lin)
}

// Value returns the interpolated value at the current progress.
func (t *Tween) Value() float64 {
	if t == nil {
		return 0
	}
	return common.Lerp(t.From, t.To, t.Progress())
}

// Reset rewinds the tween to its start.
func (t *Tween) Reset() {
	if t != nil {
		t.elapsed = 0
	}
}
