package camera

import (
	"math"
	"testing"

	"archeologist/internal/domain"
)

func TestPerspective_ProjectCenter(t *testing.T) {
	cam := NewPerspective(domain.Vec3{Z: 220}, domain.Origin)

	p, ok := cam.Project(domain.Origin, 81, 41)
	if !ok {
		t.Fatal("expected origin to project")
	}
	if p.Col != 40 || p.Row != 20 {
		t.Errorf("expected cell (40,20), got (%d,%d)", p.Col, p.Row)
	}
	if math.Abs(p.Depth-220) > 1e-9 {
		t.Errorf("expected depth 220, got %v", p.Depth)
	}
}

func TestPerspective_ProjectOrientation(t *testing.T) {
	cam := NewPerspective(domain.Vec3{Z: 100}, domain.Origin)
	center, ok := cam.Project(domain.Origin, 80, 40)
	if !ok {
		t.Fatal("expected origin to project")
	}

	right, ok := cam.Project(domain.Vec3{X: 10}, 80, 40)
	if !ok || right.Col <= center.Col {
		t.Errorf("+x should land right of center: %+v vs %+v", right, center)
	}

	up, ok := cam.Project(domain.Vec3{Y: 10}, 80, 40)
	if !ok || up.Row >= center.Row {
		t.Errorf("+y should land above center: %+v vs %+v", up, center)
	}
}

func TestPerspective_ProjectBehindCamera(t *testing.T) {
	cam := NewPerspective(domain.Vec3{Z: 100}, domain.Origin)

	if _, ok := cam.Project(domain.Vec3{Z: 150}, 80, 40); ok {
		t.Error("point behind the camera should not project")
	}
	if _, ok := cam.Project(domain.Origin, 0, 40); ok {
		t.Error("empty grid should not project")
	}
}

func TestPerspective_LookAtOwnPositionKeepsOrientation(t *testing.T) {
	cam := NewPerspective(domain.Vec3{Z: 10}, domain.Origin)
	before := cam.Forward()

	cam.LookAt(domain.Vec3{Z: 10})
	if got := cam.Forward(); got != before {
		t.Errorf("expected forward %v, got %v", before, got)
	}
}

func TestPerspective_OrbitKeepsRadius(t *testing.T) {
	cam := NewPerspective(domain.Vec3{Z: 50}, domain.Origin)

	cam.Orbit(math.Pi/2, 0)
	if r := cam.Position().Len(); math.Abs(r-50) > 1e-9 {
		t.Errorf("expected radius 50, got %v", r)
	}
	if x := cam.Position().X; math.Abs(x-50) > 1e-9 {
		t.Errorf("expected x 50 after quarter yaw, got %v", x)
	}

	// pitch stops short of the pole
	cam.Orbit(0, math.Pi)
	if r := cam.Position().Len(); math.Abs(r-50) > 1e-9 {
		t.Errorf("expected radius 50, got %v", r)
	}
	if y := cam.Position().Y; y >= 50 {
		t.Errorf("expected y below 50, got %v", y)
	}
}

func TestPerspective_Dolly(t *testing.T) {
	cam := NewPerspective(domain.Vec3{Z: 100}, domain.Origin)

	cam.Dolly(0.5)
	assertVec(t, domain.Vec3{Z: 50}, cam.Position())

	cam.Dolly(0.001)
	assertVec(t, domain.Vec3{Z: 50}, cam.Position())
}
