package camera

import (
	"time"

	"go.uber.org/zap"

	"archeologist/internal/domain"
	"archeologist/internal/ports"
)

// Compile-time interface check
var _ ports.CameraAnimator = (*Animator)(nil)

// Animator owns the camera pose and moves it with eased transitions.
// Only the most recent transition writes to the camera; frames of a
// superseded transition return without effect.
type Animator struct {
	camera ports.Camera
	frames ports.FrameScheduler
	now    func() time.Time
	logger *zap.Logger

	generation uint64
	animating  bool
}

// Option configures an Animator
type Option func(*Animator)

// WithClock replaces time.Now as the source of transition start times
func WithClock(now func() time.Time) Option {
	return func(a *Animator) {
		a.now = now
	}
}

// WithLogger sets the logger used for rejected transitions
func WithLogger(logger *zap.Logger) Option {
	return func(a *Animator) {
		a.logger = logger
	}
}

// NewAnimator creates an animator driving cam on frames from the scheduler
func NewAnimator(cam ports.Camera, frames ports.FrameScheduler, opts ...Option) *Animator {
	a := &Animator{
		camera: cam,
		frames: frames,
		now:    time.Now,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// AnimateTo starts a transition from the current pose to position, looking
// at lookAt. Any running transition is abandoned where it stands.
func (a *Animator) AnimateTo(position, lookAt domain.Vec3, duration time.Duration) {
	if !position.IsFinite() || !lookAt.IsFinite() {
		a.logger.Debug("ignoring non-finite camera target",
			zap.Any("position", position),
			zap.Any("look_at", lookAt))
		return
	}

	a.generation++
	gen := a.generation
	a.animating = true

	fromPos := a.camera.Position()
	fromTarget := a.camera.Target()
	start := a.now()

	var frame func(now time.Time)
	frame = func(now time.Time) {
		if gen != a.generation {
			return
		}

		t := Progress(now.Sub(start), duration)
		e := EaseInOutCubic(t)

		target := domain.Lerp(fromTarget, lookAt, e)
		a.camera.SetPosition(domain.Lerp(fromPos, position, e))
		a.camera.SetTarget(target)
		a.camera.LookAt(target)

		if t < 1 {
			a.frames.RequestFrame(frame)
			return
		}
		a.animating = false
	}
	a.frames.RequestFrame(frame)
}

// Animating reports whether a transition is in flight
func (a *Animator) Animating() bool {
	return a.animating
}
