package interactor

import (
	"github.com/adiwidya/kariesar/common"
	"github.com/adiwidya/kariesar/progress"
)

// Pose is the local start transform of an interactor prop relative to the
// placed tooth. Chosen per action so the prop originates near or above it.
type Pose struct {
	Position common.Vec3
	Rotation common.Vec3
	Scale    common.Vec3
}

// OrbitParams tunes the procedural brush motion used when the brush asset
// carries no baked clip.
type OrbitParams struct {
	Approach       float64 // seconds
	Orbit          float64 // seconds
	Retreat        float64 // seconds
	Revolutions    float64
	Radius         float64
	ApproachOffset float64 // z offset eased in during approach
	DipAmplitude   float64 // sinusoidal vertical contact dip
	PulseAmplitude float64 // sinusoidal scale pulse
}

// DropParams tunes the fall / settle / fade shape used for food props.
type DropParams struct {
	Fall            float64 // seconds
	Settle          float64 // seconds
	Fade            float64 // seconds
	DropHeight      float64 // fall start height above the rest pose
	DropDepth       float64 // fall start depth behind the rest pose
	BounceAmplitude float64 // sinusoidal scale modulation during settle
	Bounces         float64
	DriftHeight     float64 // upward drift while fading out
	FadeScale       float64 // scale the prop shrinks toward while fading
}

// Preset bundles everything the animator needs for one action kind.
type Preset struct {
	AssetID string
	Start   Pose
	Orbit   OrbitParams
	Drop    DropParams
}

// DefaultPresets returns the built-in per-action presets. The prefab spec
// can override any field; sweet and healthy share the drop shape with
// slightly different timing and offsets so they feel distinct.
func DefaultPresets() map[progress.Action]Preset {
	return map[progress.Action]Preset{
		progress.ActionBrush: {
			AssetID: "brush",
			Start: Pose{
				Position: common.V3(0, 0.6, 0),
				Rotation: common.V3(0, 0, 0.4),
				Scale:    common.Splat(0.5),
			},
			Orbit: OrbitParams{
				Approach:       0.35,
				Orbit:          1.8,
				Retreat:        0.35,
				Revolutions:    3,
				Radius:         0.45,
				ApproachOffset: 0.15,
				DipAmplitude:   0.06,
				PulseAmplitude: 0.08,
			},
		},
		progress.ActionSweet: {
			AssetID: "candy",
			Start: Pose{
				Position: common.V3(0.1, 0.9, 0),
				Scale:    common.Splat(0.4),
			},
			Drop: DropParams{
				Fall:            0.5,
				Settle:          0.4,
				Fade:            0.6,
				DropHeight:      0.8,
				DropDepth:       0.2,
				BounceAmplitude: 0.15,
				Bounces:         2,
				DriftHeight:     0.25,
				FadeScale:       0.05,
			},
		},
		progress.ActionHealthy: {
			AssetID: "broccoli",
			Start: Pose{
				Position: common.V3(-0.1, 0.8, 0.05),
				Scale:    common.Splat(0.45),
			},
			Drop: DropParams{
				Fall:            0.45,
				Settle:          0.5,
				Fade:            0.5,
				DropHeight:      0.7,
				DropDepth:       0.15,
				BounceAmplitude: 0.12,
				Bounces:         3,
				DriftHeight:     0.3,
				FadeScale:       0.05,
			},
		},
	}
}
