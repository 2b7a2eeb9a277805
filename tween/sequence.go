package tween

import "github.com/adiwidya/kariesar/common"

// Phase is one window of a multi-phase animation. Update receives the eased
// local progress of the phase in [0,1] once per frame while the phase is
// active, and is guaranteed a final call with progress 1 before the sequence
// moves on, so handoffs between phases are seamless.
type Phase struct {
	Name     string
	Duration float64
	Ease     common.EaseFunc
	Update   func(progress float64)
}

// Sequence runs phases back to back. Each phase owns a disjoint time window;
// the active phase is selected by total elapsed time falling inside its
// window.
type Sequence struct {
	phases  []Phase
	index   int
	elapsed float64 // elapsed within the active phase
}

func NewSequence(phases ...Phase) *Sequence {
	ps := make([]Phase, 0, len(phases))
	for _, p := range phases {
		if p.Ease == nil {
			p.Ease = common.EaseInOutQuad
		}
		if p.Duration < 0 {
			p.Duration = 0
		}
		ps = append(ps, p)
	}
	return &Sequence{phases: ps}
}

// Advance drives the sequence by dt seconds and reports completion. Frame
// overshoot carries into the next phase, so slow frames do not stretch the
// total duration.
func (s *Sequence) Advance(dt float64) bool {
	if s == nil {
		return true
	}
	if dt < 0 {
		dt = 0
	}
	s.elapsed += dt
	for s.index < len(s.phases) {
		p := s.phases[s.index]
		if s.elapsed < p.Duration {
			if p.Update != nil {
				p.Update(p.Ease(common.Clamp(s.elapsed/p.Duration, 0, 1)))
			}
			return false
		}
		// Close the phase exactly at 1 before advancing.
		if p.Update != nil {
			p.Update(1)
		}
		s.elapsed -= p.Duration
		s.index++
	}
	return true
}

func (s *Sequence) Done() bool {
	return s == nil || s.index >= len(s.phases)
}

// Active returns the name of the phase currently running, or "" when done.
func (s *Sequence) Active() string {
	if s == nil || s.index >= len(s.phases) {
		return ""
	}
	return s.phases[s.index].Name
}

// TotalDuration returns the sum of all phase durations.
func (s *Sequence) TotalDuration() float64 {
	if s == nil {
		return 0
	}
	var sum float64
	for _, p := range s.phases {
		sum += p.Duration
	}
	return sum
}
