package physics

import (
	"errors"

	"github.com/jakecoffman/cp/v2"
	"github.com/oliverbestmann/play/gm"
)

// TrackedCollisionType is assigned to every shape that carries an identity tag.
// A single handler for pairs of this type observes all contacts between
// tracked shapes, regardless of how many pairs are of interest.
const TrackedCollisionType cp.CollisionType = 1

var ErrHooksInstalled = errors.New("contact hooks already installed")

// BeginHook is invoked when two shapes start touching. Returning false would
// reject the contact, the hooks installed by the actor world always return true.
type BeginHook func(a, b *cp.Shape) bool

// SeparateHook is invoked when two shapes stop touching.
type SeparateHook func(a, b *cp.Shape)

// Space wraps a cp.Space with the handful of operations the actor world needs.
type Space struct {
	space   *cp.Space
	gravity gm.Vec
	steps   int

	hooksInstalled bool
}

func NewSpace(gravity gm.Vec, steps int) *Space {
	space := cp.NewSpace()
	space.SetGravity(cpVecOf(gravity))

	return &Space{
		space:   space,
		gravity: gravity,
		steps:   max(steps, 1),
	}
}

// Raw returns the underlying cp.Space, used for debug rendering.
func (s *Space) Raw() *cp.Space {
	return s.space
}

func (s *Space) Gravity() gm.Vec {
	return s.gravity
}

func (s *Space) SetGravity(gravity gm.Vec) {
	s.gravity = gravity
	s.space.SetGravity(cpVecOf(gravity))
}

func (s *Space) SetSteps(steps int) {
	s.steps = max(steps, 1)
}

// Add adds a body and its shape to the simulation. Adding a body or shape
// a second time is ignored.
func (s *Space) Add(body *cp.Body, shape *cp.Shape) {
	if body != nil && !s.space.ContainsBody(body) {
		s.space.AddBody(body)
	}

	if shape != nil && !s.space.ContainsShape(shape) {
		s.space.AddShape(shape)
	}
}

// Remove removes the shape and its body from the simulation. Removing
// a shape fires the separate hook for all contacts the shape is part of.
func (s *Space) Remove(body *cp.Body, shape *cp.Shape) {
	if shape != nil && s.space.ContainsShape(shape) {
		s.space.RemoveShape(shape)
	}

	if body != nil && s.space.ContainsBody(body) {
		s.space.RemoveBody(body)
	}
}

func (s *Space) Contains(shape *cp.Shape) bool {
	return shape != nil && s.space.ContainsShape(shape)
}

// InstallContactHooks installs exactly one begin and one separate hook for all
// pairs of tracked shapes. Each contact is reported once, the order of the
// shapes is not defined. Fan out to individual pairs happens inside the hooks.
func (s *Space) InstallContactHooks(begin BeginHook, separate SeparateHook) error {
	if s.hooksInstalled {
		return ErrHooksInstalled
	}

	handler := s.space.NewCollisionHandler(TrackedCollisionType, TrackedCollisionType)

	handler.BeginFunc = func(arb *cp.Arbiter, space *cp.Space, userData interface{}) bool {
		a, b := arb.Shapes()
		return begin(a, b)
	}

	handler.SeparateFunc = func(arb *cp.Arbiter, space *cp.Space, userData interface{}) {
		a, b := arb.Shapes()
		separate(a, b)
	}

	s.hooksInstalled = true

	return nil
}

// Track marks the shape so the installed contact hooks observe it.
func (s *Space) Track(shape *cp.Shape) {
	shape.SetCollisionType(TrackedCollisionType)
}

// Step advances the simulation by dt seconds, split into the configured
// number of sub steps.
func (s *Space) Step(dt float64) {
	stepDt := dt / float64(s.steps)
	for range s.steps {
		s.space.Step(stepDt)
	}
}

// Reindex updates the spatial index after a body was moved by hand.
// This is required for static bodies, the simulation never moves them.
func (s *Space) Reindex(body *cp.Body) {
	if body == nil || body.GetType() != cp.BODY_STATIC {
		return
	}

	for _, shape := range bodyShapes(body) {
		if s.space.ContainsShape(shape) {
			s.space.ReindexShape(shape)
		}
	}
}

// ShapesOverlap reports whether both shapes currently overlap. This works for
// shapes that are not part of the simulation too, so actors without physics
// can still be tested against each other.
func (s *Space) ShapesOverlap(a, b *cp.Shape) bool {
	if a == nil || b == nil || a == b {
		return false
	}

	// shapes that are not simulated have stale cached geometry
	a.CacheBB()
	b.CacheBB()

	if !a.BB().Intersects(b.BB()) {
		return false
	}

	contacts := cp.ShapesCollide(a, b)
	return contacts.Count > 0
}

// PointInShape reports whether the given point is inside or on the shape.
func (s *Space) PointInShape(shape *cp.Shape, point gm.Vec) bool {
	if shape == nil {
		return false
	}

	shape.CacheBB()

	info := shape.PointQuery(cpVecOf(point))
	return info.Distance <= 0
}

func bodyShapes(body *cp.Body) []*cp.Shape {
	var shapes []*cp.Shape
	body.EachShape(func(shape *cp.Shape) {
		shapes = append(shapes, shape)
	})

	return shapes
}

func cpVecOf(vec gm.Vec) cp.Vector {
	return cp.Vector{X: vec.X, Y: vec.Y}
}

func toVec(v cp.Vector) gm.Vec {
	return gm.Vec{X: v.X, Y: v.Y}
}
