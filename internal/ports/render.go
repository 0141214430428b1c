package ports

import (
	"time"

	"archeologist/internal/domain"
)

// Camera is the renderer's viewpoint
type Camera interface {
	Position() domain.Vec3
	SetPosition(p domain.Vec3)

	// Target is the orbit target the camera looks toward
	Target() domain.Vec3
	SetTarget(t domain.Vec3)

	// LookAt orients the camera toward p
	LookAt(p domain.Vec3)
}

// FrameScheduler runs callbacks on the next display refresh
type FrameScheduler interface {
	RequestFrame(fn func(now time.Time))
}

// CameraAnimator moves the camera smoothly to a new pose
type CameraAnimator interface {
	AnimateTo(position, lookAt domain.Vec3, duration time.Duration)
}

// LayoutParams are the force simulation constants, supplied once
type LayoutParams struct {
	LinkDistance  float64 `toml:"link_distance" validate:"gt=0"`
	LinkStrength  float64 `toml:"link_strength" validate:"gte=0,lte=1"`
	Charge        float64 `toml:"charge"`
	CenterForce   float64 `toml:"center_force" validate:"gte=0,lte=1"`
	WarmupTicks   int     `toml:"warmup_ticks" validate:"gte=0"`
	CooldownTicks int     `toml:"cooldown_ticks" validate:"gte=0"`
	Seed          int64   `toml:"seed"`
}

// LayoutEngine assigns and updates node positions
type LayoutEngine interface {
	// Step advances the simulation one tick and reports whether
	// positions changed
	Step() bool

	// Settled reports whether the cooldown has elapsed
	Settled() bool
}
