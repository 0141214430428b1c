// Package forcelayout places graph nodes in 3D with a velocity-Verlet force
// simulation: spring links, many-body charge and a centering pull.
package forcelayout

import (
	"math"
	"math/rand"

	"archeologist/internal/domain"
	"archeologist/internal/ports"
)

// Compile-time interface check
var _ ports.LayoutEngine = (*Simulation)(nil)

const (
	velocityDecay = 0.4
	alphaMin      = 0.001
	initialRadius = 10.0
	minDistance2  = 1.0
)

// alphaDecay cools the simulation from 1 to alphaMin in about 300 ticks
var alphaDecay = 1 - math.Pow(alphaMin, 1.0/300)

type body struct {
	node *domain.Node
	pos  domain.Vec3
	vel  domain.Vec3
}

type spring struct {
	source, target int
	bias           float64
}

// Simulation is a force layout over one graph. Warmup ticks run at
// construction; Step then advances through the cooldown.
type Simulation struct {
	params ports.LayoutParams
	rng    *rand.Rand

	bodies  []*body
	springs []spring

	alpha float64
	ticks int
}

// New creates a simulation over g, seeds unplaced nodes and runs the
// warmup ticks
func New(g *domain.Graph, params ports.LayoutParams) *Simulation {
	s := &Simulation{
		params: params,
		rng:    rand.New(rand.NewSource(params.Seed)),
		alpha:  1,
	}
	if g == nil {
		return s
	}

	index := make(map[string]int, len(g.Nodes))
	for i, n := range g.Nodes {
		index[n.ID] = i
		b := &body{node: n}
		if p, ok := n.Position(); ok {
			b.pos = p
		} else {
			b.pos = s.seedPosition(i)
		}
		s.bodies = append(s.bodies, b)
	}

	degree := make([]int, len(s.bodies))
	for _, l := range g.Links {
		src, okS := index[l.Source]
		dst, okT := index[l.Target]
		if !okS || !okT || src == dst {
			continue
		}
		degree[src]++
		degree[dst]++
		s.springs = append(s.springs, spring{source: src, target: dst})
	}
	for i := range s.springs {
		sp := &s.springs[i]
		sp.bias = float64(degree[sp.source]) / float64(degree[sp.source]+degree[sp.target])
	}

	for i := 0; i < params.WarmupTicks; i++ {
		s.tick()
	}
	s.publish()
	return s
}

// seedPosition spreads initial positions over a ball that grows with the
// node index so early ticks do not start from a single point
func (s *Simulation) seedPosition(i int) domain.Vec3 {
	r := initialRadius * math.Cbrt(float64(i+1))
	for {
		v := domain.Vec3{
			X: s.rng.Float64()*2 - 1,
			Y: s.rng.Float64()*2 - 1,
			Z: s.rng.Float64()*2 - 1,
		}
		if l := v.Len(); l > 0 && l <= 1 {
			return v.Scale(r)
		}
	}
}

// Step advances one tick and writes positions back to the nodes. It
// reports false once the simulation has settled.
func (s *Simulation) Step() bool {
	if s.Settled() {
		return false
	}
	s.tick()
	s.publish()
	return true
}

// Settled reports whether the cooldown has elapsed or the simulation has
// cooled below its minimum energy
func (s *Simulation) Settled() bool {
	if len(s.bodies) == 0 {
		return true
	}
	return s.ticks >= s.params.WarmupTicks+s.params.CooldownTicks || s.alpha < alphaMin
}

// Alpha returns the current simulation energy
func (s *Simulation) Alpha() float64 {
	return s.alpha
}

func (s *Simulation) tick() {
	s.ticks++
	s.alpha += (0 - s.alpha) * alphaDecay

	s.applyLinks()
	s.applyCharge()

	for _, b := range s.bodies {
		b.vel = b.vel.Scale(1 - velocityDecay)
		b.pos = b.pos.Add(b.vel)
	}
	s.applyCenter()
}

func (s *Simulation) applyLinks() {
	for _, sp := range s.springs {
		src, dst := s.bodies[sp.source], s.bodies[sp.target]
		d := dst.pos.Add(dst.vel).Sub(src.pos).Sub(src.vel)
		l := d.Len()
		if l == 0 {
			d = s.jiggle()
			l = d.Len()
		}
		k := (l - s.params.LinkDistance) / l * s.alpha * s.params.LinkStrength
		dv := d.Scale(k)
		dst.vel = dst.vel.Sub(dv.Scale(sp.bias))
		src.vel = src.vel.Add(dv.Scale(1 - sp.bias))
	}
}

// applyCharge is the exact pairwise many-body force. Negative charge repels.
func (s *Simulation) applyCharge() {
	if s.params.Charge == 0 {
		return
	}
	for i, a := range s.bodies {
		for j, b := range s.bodies {
			if i == j {
				continue
			}
			d := b.pos.Sub(a.pos)
			l2 := d.Dot(d)
			if l2 == 0 {
				d = s.jiggle()
				l2 = d.Dot(d)
			}
			// Soften close encounters below unit distance
			if l2 < minDistance2 {
				l2 = math.Sqrt(minDistance2 * l2)
			}
			a.vel = a.vel.Add(d.Scale(s.params.Charge * s.alpha / l2))
		}
	}
}

func (s *Simulation) applyCenter() {
	if s.params.CenterForce == 0 || len(s.bodies) == 0 {
		return
	}
	var mean domain.Vec3
	for _, b := range s.bodies {
		mean = mean.Add(b.pos)
	}
	shift := mean.Scale(s.params.CenterForce / float64(len(s.bodies)))
	for _, b := range s.bodies {
		b.pos = b.pos.Sub(shift)
	}
}

func (s *Simulation) jiggle() domain.Vec3 {
	return domain.Vec3{
		X: (s.rng.Float64() - 0.5) * 1e-3,
		Y: (s.rng.Float64() - 0.5) * 1e-3,
		Z: (s.rng.Float64() - 0.5) * 1e-3,
	}
}

func (s *Simulation) publish() {
	for _, b := range s.bodies {
		b.node.SetPosition(b.pos)
	}
}
