package interactor

import (
	"math"

	"github.com/adiwidya/kariesar/asset"
	"github.com/adiwidya/kariesar/common"
	"github.com/adiwidya/kariesar/scene"
	"github.com/adiwidya/kariesar/tween"
)

// AnimationStrategy is one way of animating an interactor prop to
// completion. The playback polls it once per frame.
type AnimationStrategy interface {
	// Advance moves the animation forward by dt seconds and reports
	// whether it has finished.
	Advance(dt float64) bool
}

// clipStrategy plays a baked animation clip to completion. Keyframe
// evaluation is the renderer's job; the core only tracks playback time.
type clipStrategy struct {
	player *asset.ClipPlayer
}

func newClipStrategy(clip asset.Clip) *clipStrategy {
	return &clipStrategy{player: asset.NewClipPlayer(clip)}
}

func (s *clipStrategy) Advance(dt float64) bool {
	return s.player.Advance(dt)
}

// newOrbitStrategy builds the procedural brush fallback: approach, orbit
// with contact dip and scale pulse, retreat to the start pose. The handoff
// from approach to orbit intentionally snaps to the orbit's entry point.
func newOrbitStrategy(wrapper *scene.Node, start Pose, p OrbitParams) AnimationStrategy {
	base := start.Position
	baseScale := start.Scale
	approached := base.Add(common.V3(0, 0, -p.ApproachOffset))
	// Integer-ish revolutions end the orbit near its entry point.
	orbitEnd := approached.Add(common.V3(p.Radius*math.Cos(2*math.Pi*p.Revolutions), 0, p.Radius*math.Sin(2*math.Pi*p.Revolutions)))

	seq := tween.NewSequence(
		tween.Phase{
			Name:     "approach",
			Duration: p.Approach,
			Update: func(t float64) {
				wrapper.Position = common.Lerp3(base, approached, t)
			},
		},
		tween.Phase{
			Name:     "orbit",
			Duration: p.Orbit,
			Ease:     common.EaseLinear,
			Update: func(t float64) {
				angle := 2 * math.Pi * p.Revolutions * t
				wrapper.Position = common.V3(
					approached.X+p.Radius*math.Cos(angle),
					approached.Y-p.DipAmplitude*math.Abs(math.Sin(2*angle)),
					approached.Z+p.Radius*math.Sin(angle),
				)
				pulse := 1 + p.PulseAmplitude*math.Sin(4*angle)
				wrapper.Scale = baseScale.Scale(pulse)
			},
		},
		tween.Phase{
			Name:     "retreat",
			Duration: p.Retreat,
			Update: func(t float64) {
				wrapper.Position = common.Lerp3(orbitEnd, base, t)
				wrapper.Scale = baseScale
			},
		},
	)
	return &sequenceStrategy{seq: seq}
}

// newDropStrategy builds the food motion: gravity-like fall, a bouncy
// settle, then a simultaneous fade, shrink, and upward drift.
func newDropStrategy(wrapper *scene.Node, start Pose, p DropParams) AnimationStrategy {
	rest := start.Position
	baseScale := start.Scale
	from := rest.Add(common.V3(0, p.DropHeight, -p.DropDepth))

	seq := tween.NewSequence(
		tween.Phase{
			Name:     "fall",
			Duration: p.Fall,
			Ease:     common.EaseInQuad,
			Update: func(t float64) {
				wrapper.Position = common.Lerp3(from, rest, t)
			},
		},
		tween.Phase{
			Name:     "settle",
			Duration: p.Settle,
			Ease:     common.EaseLinear,
			Update: func(t float64) {
				pulse := 1 + p.BounceAmplitude*math.Abs(math.Sin(math.Pi*p.Bounces*t))*(1-t)
				wrapper.Scale = baseScale.Scale(pulse)
			},
		},
		tween.Phase{
			Name:     "fade",
			Duration: p.Fade,
			Update: func(t float64) {
				wrapper.Position = rest.Add(common.V3(0, p.DriftHeight*t, 0))
				wrapper.Scale = common.Lerp3(baseScale, common.Splat(p.FadeScale), t)
				setOpacity(wrapper, 1-t)
			},
		},
	)
	return &sequenceStrategy{seq: seq}
}

type sequenceStrategy struct {
	seq *tween.Sequence
}

func (s *sequenceStrategy) Advance(dt float64) bool {
	return s.seq.Advance(dt)
}

func setOpacity(n *scene.Node, opacity float64) {
	n.Traverse(func(node *scene.Node) {
		if node.Mesh != nil && node.Mesh.Material != nil {
			node.Mesh.Material.Opacity = common.Clamp(opacity, 0, 1)
		}
	})
}
