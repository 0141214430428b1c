package camera

import (
	"math"
	"testing"
	"time"

	"archeologist/internal/domain"
)

// queueScheduler collects frame requests until flushed
type queueScheduler struct {
	pending []func(time.Time)
}

func (q *queueScheduler) RequestFrame(fn func(time.Time)) {
	q.pending = append(q.pending, fn)
}

// flush runs the frames queued so far; frames they request wait for the
// next flush
func (q *queueScheduler) flush(now time.Time) {
	batch := q.pending
	q.pending = nil
	for _, fn := range batch {
		fn(now)
	}
}

type recordingCamera struct {
	position domain.Vec3
	target   domain.Vec3
	lookAts  []domain.Vec3
}

func (c *recordingCamera) Position() domain.Vec3     { return c.position }
func (c *recordingCamera) SetPosition(p domain.Vec3) { c.position = p }
func (c *recordingCamera) Target() domain.Vec3       { return c.target }
func (c *recordingCamera) SetTarget(t domain.Vec3)   { c.target = t }
func (c *recordingCamera) LookAt(p domain.Vec3)      { c.lookAts = append(c.lookAts, p) }

type fixture struct {
	camera *recordingCamera
	frames *queueScheduler
	clock  time.Time
	anim   *Animator
}

func newFixture() *fixture {
	f := &fixture{
		camera: &recordingCamera{position: domain.Vec3{Z: 220}},
		frames: &queueScheduler{},
		clock:  time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	f.anim = NewAnimator(f.camera, f.frames, WithClock(func() time.Time { return f.clock }))
	return f
}

func assertVec(t *testing.T, want, got domain.Vec3) {
	t.Helper()
	const eps = 1e-9
	if math.Abs(want.X-got.X) > eps || math.Abs(want.Y-got.Y) > eps || math.Abs(want.Z-got.Z) > eps {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func assertIdle(t *testing.T, f *fixture) {
	t.Helper()
	if len(f.frames.pending) != 0 {
		t.Errorf("expected no pending frames, got %d", len(f.frames.pending))
	}
	if f.anim.Animating() {
		t.Error("expected animation to be finished")
	}
}

func TestAnimateTo_ReachesTarget(t *testing.T) {
	f := newFixture()
	target := domain.Vec3{X: 10}
	lookAt := domain.Vec3{X: 1, Y: 1, Z: 1}

	f.anim.AnimateTo(target, lookAt, 100*time.Millisecond)
	if !f.anim.Animating() || len(f.frames.pending) != 1 {
		t.Fatalf("expected one pending frame, got %d", len(f.frames.pending))
	}

	f.frames.flush(f.clock.Add(50 * time.Millisecond))
	assertVec(t, domain.Vec3{X: 5, Z: 110}, f.camera.position)
	assertVec(t, domain.Vec3{X: 0.5, Y: 0.5, Z: 0.5}, f.camera.target)
	if len(f.frames.pending) != 1 {
		t.Fatalf("mid-flight frame should request another, got %d", len(f.frames.pending))
	}

	f.frames.flush(f.clock.Add(100 * time.Millisecond))
	assertVec(t, target, f.camera.position)
	assertVec(t, lookAt, f.camera.target)
	assertIdle(t, f)
	if last := f.camera.lookAts[len(f.camera.lookAts)-1]; last != f.camera.target {
		t.Errorf("expected final look-at %v, got %v", f.camera.target, last)
	}
}

func TestAnimateTo_SupersedesRunningTransition(t *testing.T) {
	f := newFixture()
	start := f.clock

	f.anim.AnimateTo(domain.Vec3{X: 10}, domain.Origin, 100*time.Millisecond)
	f.frames.flush(start.Add(50 * time.Millisecond))
	midway := f.camera.position

	f.clock = start.Add(50 * time.Millisecond)
	second := domain.Vec3{Y: 40}
	f.anim.AnimateTo(second, domain.Origin, 100*time.Millisecond)

	// The first transition's rescheduled frame runs alongside the new one
	// and must leave the camera alone.
	f.frames.flush(start.Add(50 * time.Millisecond))
	assertVec(t, midway, f.camera.position)

	f.frames.flush(start.Add(100 * time.Millisecond))
	assertVec(t, domain.Lerp(midway, second, 0.5), f.camera.position)

	f.frames.flush(start.Add(150 * time.Millisecond))
	assertVec(t, second, f.camera.position)
	assertIdle(t, f)
}

func TestAnimateTo_NonFiniteTargetIsIgnored(t *testing.T) {
	tests := []struct {
		name     string
		position domain.Vec3
		lookAt   domain.Vec3
	}{
		{"NaN position", domain.Vec3{X: math.NaN()}, domain.Origin},
		{"infinite position", domain.Vec3{Z: math.Inf(-1)}, domain.Origin},
		{"NaN look-at", domain.Vec3{X: 1}, domain.Vec3{Y: math.NaN()}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			before := f.camera.position

			f.anim.AnimateTo(tt.position, tt.lookAt, time.Second)

			assertIdle(t, f)
			if f.camera.position != before {
				t.Errorf("camera moved to %v", f.camera.position)
			}
		})
	}
}

func TestAnimateTo_NonFiniteTargetKeepsRunningTransition(t *testing.T) {
	f := newFixture()
	f.anim.AnimateTo(domain.Vec3{X: 10}, domain.Origin, 100*time.Millisecond)
	f.anim.AnimateTo(domain.Vec3{X: math.NaN()}, domain.Origin, 100*time.Millisecond)

	f.frames.flush(f.clock.Add(100 * time.Millisecond))
	assertVec(t, domain.Vec3{X: 10}, f.camera.position)
}

func TestAnimateTo_ZeroDurationSnaps(t *testing.T) {
	f := newFixture()
	f.anim.AnimateTo(domain.Vec3{X: 3, Y: 4}, domain.Vec3{X: 1}, 0)

	f.frames.flush(f.clock)
	assertVec(t, domain.Vec3{X: 3, Y: 4}, f.camera.position)
	if len(f.frames.pending) != 0 {
		t.Errorf("expected no pending frames, got %d", len(f.frames.pending))
	}
}

func TestAnimateTo_StartsFromCurrentPose(t *testing.T) {
	f := newFixture()
	f.camera.position = domain.Vec3{X: -20, Y: 5}
	f.camera.target = domain.Vec3{Y: 5}

	f.anim.AnimateTo(domain.Vec3{X: 20, Y: 5}, domain.Vec3{Y: 5}, time.Second)
	f.frames.flush(f.clock)

	assertVec(t, domain.Vec3{X: -20, Y: 5}, f.camera.position)
}
