package common

import "math"

// EaseFunc maps linear progress t in [0,1] to eased progress in [0,1].
// Every easing here satisfies f(0)=0 and f(1)=1.
type EaseFunc func(t float64) float64

func EaseLinear(t float64) float64 {
	return t
}

func EaseInQuad(t float64) float64 {
	return t * t
}

func EaseOutQuad(t float64) float64 {
	return 1 - (1-t)*(1-t)
}

// EaseInOutQuad is the symmetric quadratic ease used by every authored
// animation in this project: 2t^2 below the midpoint, mirrored above it.
// The first derivative is continuous at t=0.5 (both halves reach slope 2).
func EaseInOutQuad(t float64) float64 {
	if t < 0.5 {
		return 2 * t * t
	}
	u := 1 - t
	return 1 - 2*u*u
}

func EaseOutCubic(t float64) float64 {
	return 1 - math.Pow(1-t, 3)
}
