package asset

// clipEpsilon absorbs float accumulation at the end of a clip: playback is
// considered complete once clipTime >= clipDuration - clipEpsilon.
const clipEpsilon = 1e-3

// ClipPlayer advances a baked clip by frame deltas. Like every animation
// primitive here it owns no timer; the frame tick drives it.
type ClipPlayer struct {
	clip Clip
	time float64
}

func NewClipPlayer(clip Clip) *ClipPlayer {
	return &ClipPlayer{clip: clip}
}

// Advance moves playback forward by dt seconds and reports completion.
func (p *ClipPlayer) Advance(dt float64) bool {
	if p == nil {
		return true
	}
	if dt > 0 {
		p.time += dt
	}
	return p.Done()
}

func (p *ClipPlayer) Done() bool {
	return p == nil || p.time >= p.clip.Duration-clipEpsilon
}

// Time returns the current playback position in seconds.
func (p *ClipPlayer) Time() float64 {
	if p == nil {
		return 0
	}
	return p.time
}

func (p *ClipPlayer) Clip() Clip {
	if p == nil {
		return Clip{}
	}
	return p.clip
}
