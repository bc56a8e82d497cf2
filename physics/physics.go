// Package physics integrates simple rigid bodies and resolves AABB contacts.
package physics

import (
	"errors"
	"fmt"
	"sort"

	"juliette/entity"
	"juliette/math"
)

// ErrTooManyComponents is returned when a scene is at its component limit.
var ErrTooManyComponents = errors.New("physics component limit reached")

// Component is a body whose transform lives in the entity arena. A static
// component is never moved by the simulation.
type Component struct {
	Slot         entity.Slot
	Velocity     math.Vec3
	ColliderSize math.Vec3
	Mass         float32
	IsStatic     bool
}

type Scene struct {
	Name       string
	Entities   *entity.Arena
	Components []Component
	// Drag is the fraction of velocity removed per second.
	Drag       float32
	Gravity    math.Vec3
	Elasticity float32

	order []int
	boxes []box
}

func NewScene(name string, entities *entity.Arena, maxComponents int, drag float32, gravity math.Vec3, elasticity float32) *Scene {
	return &Scene{
		Name:       name,
		Entities:   entities,
		Components: make([]Component, 0, maxComponents),
		Drag:       drag,
		Gravity:    gravity,
		Elasticity: elasticity,
		order:      make([]int, 0, maxComponents),
		boxes:      make([]box, 0, maxComponents),
	}
}

// CreateComponent adds a body for slot. A mass of zero makes it static.
func (s *Scene) CreateComponent(slot entity.Slot, colliderSize math.Vec3, mass float32, isStatic bool) (*Component, error) {
	if len(s.Components) == cap(s.Components) {
		return nil, fmt.Errorf("physics scene %q: %w", s.Name, ErrTooManyComponents)
	}
	s.Components = append(s.Components, Component{
		Slot:         slot,
		ColliderSize: colliderSize,
		Mass:         mass,
		IsStatic:     isStatic || mass == 0,
	})
	return &s.Components[len(s.Components)-1], nil
}

// UpdateComponents applies gravity and drag, then integrates positions.
func (s *Scene) UpdateComponents(dt float32) {
	damping := 1 - s.Drag*dt
	if damping < 0 {
		damping = 0
	}
	for i := range s.Components {
		c := &s.Components[i]
		if c.IsStatic {
			continue
		}
		c.Velocity = c.Velocity.Add(s.Gravity.Mul(dt)).Mul(damping)
		e := s.Entities.Get(c.Slot)
		e.Position = e.Position.Add(c.Velocity.Mul(dt))
	}
}

type box struct {
	min, max math.Vec3
}

func (s *Scene) bounds(c *Component) box {
	e := s.Entities.Get(c.Slot)
	half := c.ColliderSize.MulVec(e.Scale.Abs()).Mul(0.5)
	return box{min: e.Position.Sub(half), max: e.Position.Add(half)}
}

func overlapping(a, b box) bool {
	return a.min.X < b.max.X && a.max.X > b.min.X &&
		a.min.Y < b.max.Y && a.max.Y > b.min.Y &&
		a.min.Z < b.max.Z && a.max.Z > b.min.Z
}

// ResolveCollisions separates every overlapping pair along its axis of least
// penetration and reflects the approaching velocity scaled by Elasticity.
func (s *Scene) ResolveCollisions() {
	s.eachPair(func(i, j int) {
		s.resolve(&s.Components[i], &s.Components[j])
	})
}

// eachPair sweeps components sorted by their min X and calls fn for every
// pair whose boxes overlapped at the start of the sweep.
func (s *Scene) eachPair(fn func(i, j int)) {
	s.order = s.order[:0]
	s.boxes = s.boxes[:0]
	for i := range s.Components {
		s.order = append(s.order, i)
		s.boxes = append(s.boxes, s.bounds(&s.Components[i]))
	}
	sort.Slice(s.order, func(a, b int) bool {
		return s.boxes[s.order[a]].min.X < s.boxes[s.order[b]].min.X
	})

	for oi, i := range s.order {
		for _, j := range s.order[oi+1:] {
			if s.boxes[j].min.X >= s.boxes[i].max.X {
				break
			}
			if s.Components[i].IsStatic && s.Components[j].IsStatic {
				continue
			}
			if overlapping(s.boxes[i], s.boxes[j]) {
				fn(i, j)
			}
		}
	}
}

func (s *Scene) resolve(a, b *Component) {
	ba, bb := s.bounds(a), s.bounds(b)
	if !overlapping(ba, bb) {
		return
	}

	ea, eb := s.Entities.Get(a.Slot), s.Entities.Get(b.Slot)

	// Penetration depth per axis and the direction from a to b.
	depth := [3]float32{
		minf(ba.max.X, bb.max.X) - maxf(ba.min.X, bb.min.X),
		minf(ba.max.Y, bb.max.Y) - maxf(ba.min.Y, bb.min.Y),
		minf(ba.max.Z, bb.max.Z) - maxf(ba.min.Z, bb.min.Z),
	}
	delta := eb.Position.Sub(ea.Position)
	dir := [3]float32{delta.X, delta.Y, delta.Z}

	axis := 0
	for k := 1; k < 3; k++ {
		if depth[k] < depth[axis] {
			axis = k
		}
	}
	var normal math.Vec3
	sign := float32(1)
	if dir[axis] < 0 {
		sign = -1
	}
	switch axis {
	case 0:
		normal.X = sign
	case 1:
		normal.Y = sign
	case 2:
		normal.Z = sign
	}

	push := normal.Mul(depth[axis])
	switch {
	case a.IsStatic:
		eb.Position = eb.Position.Add(push)
	case b.IsStatic:
		ea.Position = ea.Position.Sub(push)
	default:
		ea.Position = ea.Position.Sub(push.Mul(0.5))
		eb.Position = eb.Position.Add(push.Mul(0.5))
	}

	if !a.IsStatic {
		a.Velocity = s.reflect(a.Velocity, normal)
	}
	if !b.IsStatic {
		b.Velocity = s.reflect(b.Velocity, normal.Negate())
	}
}

// reflect bounces v off a surface when it moves along n into the contact.
func (s *Scene) reflect(v, n math.Vec3) math.Vec3 {
	into := v.Dot(n)
	if into <= 0 {
		return v
	}
	return v.Sub(n.Mul(into * (1 + s.Elasticity)))
}

// Overlaps returns the slots of every collider intersecting the one
// attached to slot.
func (s *Scene) Overlaps(slot entity.Slot) []entity.Slot {
	var self *Component
	for i := range s.Components {
		if s.Components[i].Slot == slot {
			self = &s.Components[i]
			break
		}
	}
	if self == nil {
		return nil
	}

	target := s.bounds(self)
	var hits []entity.Slot
	for i := range s.Components {
		c := &s.Components[i]
		if c == self {
			continue
		}
		if overlapping(target, s.bounds(c)) {
			hits = append(hits, c.Slot)
		}
	}
	return hits
}

// Bounds returns the world-space center and full size of a component's collider.
func (s *Scene) Bounds(c *Component) (center, size math.Vec3) {
	b := s.bounds(c)
	return b.min.Add(b.max).Mul(0.5), b.max.Sub(b.min)
}

func minf(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}

func maxf(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}
