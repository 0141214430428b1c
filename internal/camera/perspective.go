package camera

import (
	"math"

	"archeologist/internal/domain"
	"archeologist/internal/ports"
)

// Compile-time interface check
var _ ports.Camera = (*Perspective)(nil)

const (
	defaultFOV  = 75 * math.Pi / 180
	defaultNear = 0.1
	// Terminal cells are roughly twice as tall as they are wide
	defaultCellAspect = 0.5
)

var worldUp = domain.Vec3{Y: 1}

// Perspective is a pinhole camera that projects scene points onto a grid
// of terminal cells
type Perspective struct {
	position domain.Vec3
	target   domain.Vec3
	forward  domain.Vec3

	fov        float64
	near       float64
	cellAspect float64
}

// NewPerspective creates a camera at position looking at target
func NewPerspective(position, target domain.Vec3) *Perspective {
	c := &Perspective{
		position:   position,
		target:     target,
		forward:    domain.Vec3{Z: -1},
		fov:        defaultFOV,
		near:       defaultNear,
		cellAspect: defaultCellAspect,
	}
	c.LookAt(target)
	return c
}

func (c *Perspective) Position() domain.Vec3     { return c.position }
func (c *Perspective) SetPosition(p domain.Vec3) { c.position = p }
func (c *Perspective) Target() domain.Vec3       { return c.target }
func (c *Perspective) SetTarget(t domain.Vec3)   { c.target = t }

// LookAt orients the camera toward p. Looking at the camera's own
// position keeps the previous orientation.
func (c *Perspective) LookAt(p domain.Vec3) {
	dir := p.Sub(c.position)
	if dir.Len() == 0 || !dir.IsFinite() {
		return
	}
	c.forward = dir.Normalize()
}

// Forward returns the unit view direction
func (c *Perspective) Forward() domain.Vec3 {
	return c.forward
}

// basis returns the camera's right and up vectors
func (c *Perspective) basis() (right, up domain.Vec3) {
	right = c.forward.Cross(worldUp)
	if right.Len() < 1e-9 {
		// Looking straight up or down
		right = domain.Vec3{X: 1}
	}
	right = right.Normalize()
	up = right.Cross(c.forward).Normalize()
	return right, up
}

// Projection is a scene point mapped onto the cell grid
type Projection struct {
	Col, Row int
	Depth    float64
}

// Project maps p onto a width×height cell grid. ok is false for points
// behind the near plane or outside the grid.
func (c *Perspective) Project(p domain.Vec3, width, height int) (Projection, bool) {
	if width <= 0 || height <= 0 {
		return Projection{}, false
	}
	right, up := c.basis()

	rel := p.Sub(c.position)
	depth := rel.Dot(c.forward)
	if depth <= c.near {
		return Projection{}, false
	}

	f := 1 / math.Tan(c.fov/2)
	aspect := float64(width) * c.cellAspect / float64(height)
	ndcX := rel.Dot(right) * f / (depth * aspect)
	ndcY := rel.Dot(up) * f / depth

	col := int(math.Floor((ndcX + 1) / 2 * float64(width)))
	row := int(math.Floor((1 - ndcY) / 2 * float64(height)))
	if col < 0 || col >= width || row < 0 || row >= height {
		return Projection{}, false
	}
	return Projection{Col: col, Row: row, Depth: depth}, true
}

// Orbit rotates the camera around its target by yaw (about the world up
// axis) and pitch, in radians. Pitch stops short of the poles.
func (c *Perspective) Orbit(yaw, pitch float64) {
	offset := c.position.Sub(c.target)
	radius := offset.Len()
	if radius == 0 {
		return
	}

	theta := math.Atan2(offset.X, offset.Z) + yaw
	phi := math.Acos(clamp(offset.Y/radius, -1, 1)) - pitch
	phi = clamp(phi, 0.05, math.Pi-0.05)

	c.position = c.target.Add(domain.Vec3{
		X: radius * math.Sin(phi) * math.Sin(theta),
		Y: radius * math.Cos(phi),
		Z: radius * math.Sin(phi) * math.Cos(theta),
	})
	c.LookAt(c.target)
}

// Dolly moves the camera toward the target, scaling its distance by factor
func (c *Perspective) Dolly(factor float64) {
	if factor <= 0 {
		return
	}
	offset := c.position.Sub(c.target).Scale(factor)
	if offset.Len() < 1 {
		return
	}
	c.position = c.target.Add(offset)
	c.LookAt(c.target)
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
