// Package camera animates the scene viewpoint between poses.
package camera

import "time"

// EaseInOutCubic maps linear progress t in [0,1] onto the cubic
// ease-in-out curve
func EaseInOutCubic(t float64) float64 {
	if t < 0.5 {
		return 4 * t * t * t
	}
	u := -2*t + 2
	return 1 - u*u*u/2
}

// Progress returns elapsed/duration clamped to [0,1]. A non-positive
// duration is already complete.
func Progress(elapsed, duration time.Duration) float64 {
	if duration <= 0 {
		return 1
	}
	t := float64(elapsed) / float64(duration)
	switch {
	case t < 0:
		return 0
	case t > 1:
		return 1
	default:
		return t
	}
}
