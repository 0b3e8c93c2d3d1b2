package physics

import (
	"fmt"
	"math"

	"github.com/jakecoffman/cp/v2"
	"github.com/oliverbestmann/play/gm"
)

type ShapeKind uint8

const (
	ShapeBox ShapeKind = iota
	ShapeCircle
)

// Geometry describes the effective, already scaled, collision shape of an actor.
type Geometry struct {
	Kind   ShapeKind
	Width  float64
	Height float64
	Radius float64
}

func (g Geometry) validate() {
	switch g.Kind {
	case ShapeBox:
		if g.Width < 0 || g.Height < 0 || math.IsNaN(g.Width) || math.IsNaN(g.Height) {
			panic(fmt.Sprintf("invalid box geometry %vx%v", g.Width, g.Height))
		}

	case ShapeCircle:
		if g.Radius < 0 || math.IsNaN(g.Radius) {
			panic(fmt.Sprintf("invalid circle radius %v", g.Radius))
		}

	default:
		panic(fmt.Sprintf("unknown shape kind %d", g.Kind))
	}
}

// Material holds the simulation properties of an actor with physics.
//
// Examples of objects with different parameters:
//
//	Blocks that can be knocked over: CanMove, !Stable, ObeysGravity
//	Jumping platformer character:    CanMove, Stable, ObeysGravity
//	Moving platform:                 CanMove, Stable, !ObeysGravity
//	Stationary platform:             !CanMove
type Material struct {
	CanMove      bool
	Stable       bool
	ObeysGravity bool
	Velocity     gm.Vec
	Bounciness   float64
	Mass         float64
	Friction     float64
}

type BodyType uint8

const (
	BodyDynamic BodyType = iota
	BodyKinematic
	BodyStatic
)

// BodyTypeFor decides the cp body type for the given material.
func BodyTypeFor(mat Material, gravity gm.Vec) BodyType {
	if !mat.CanMove {
		return BodyStatic
	}

	// moving platforms that do not obey gravity in a world with gravity
	if mat.Stable && !mat.ObeysGravity && gravity != gm.VecZero {
		return BodyKinematic
	}

	return BodyDynamic
}

// Placement is the position and rotation a new body starts with.
type Placement struct {
	Position gm.Vec
	Angle    gm.Rad
}

// NewDetached builds a body and shape that are never added to the simulation.
// Actors without physics use them for overlap and point queries.
func NewDetached(geom Geometry, place Placement) (*cp.Body, *cp.Shape) {
	geom.validate()

	body := cp.NewKinematicBody()
	body.SetPosition(cpVecOf(place.Position))
	body.SetAngle(place.Angle.Radians())

	shape := newShape(body, geom)
	return body, shape
}

// NewBody builds a simulated body and shape for the given material.
func NewBody(geom Geometry, mat Material, place Placement, gravity gm.Vec) (*cp.Body, *cp.Shape) {
	geom.validate()

	var body *cp.Body

	switch BodyTypeFor(mat, gravity) {
	case BodyStatic:
		body = cp.NewStaticBody()

	case BodyKinematic:
		body = cp.NewKinematicBody()

	default:
		body = cp.NewBody(mat.Mass, momentOf(geom, mat))
	}

	body.SetPosition(cpVecOf(place.Position))
	body.SetAngle(place.Angle.Radians())

	if mat.CanMove {
		body.SetVelocityVector(cpVecOf(mat.Velocity))
	}

	ApplyGravity(body, mat.ObeysGravity)

	shape := newShape(body, geom)
	shape.SetElasticity(ClampBounciness(mat.Bounciness))
	shape.SetFriction(mat.Friction)

	return body, shape
}

// ApplyGravity switches gravity integration of a body on or off.
func ApplyGravity(body *cp.Body, obeysGravity bool) {
	if obeysGravity {
		body.SetVelocityUpdateFunc(cp.BodyUpdateVelocity)
		return
	}

	body.SetVelocityUpdateFunc(func(body *cp.Body, gravity cp.Vector, damping float64, dt float64) {})
}

// ClampBounciness keeps the elasticity below one, otherwise the simulation
// gains energy with every bounce.
func ClampBounciness(bounciness float64) float64 {
	return min(max(bounciness, 0), 0.9999)
}

func momentOf(geom Geometry, mat Material) float64 {
	if mat.Stable {
		return cp.INFINITY
	}

	if geom.Kind == ShapeCircle {
		return cp.MomentForCircle(mat.Mass, 0, geom.Radius, cp.Vector{})
	}

	return cp.MomentForBox(mat.Mass, geom.Width, geom.Height)
}

func newShape(body *cp.Body, geom Geometry) *cp.Shape {
	if geom.Kind == ShapeCircle {
		return cp.NewCircle(body, geom.Radius, cp.Vector{})
	}

	return cp.NewBox(body, geom.Width, geom.Height, 0)
}

// Position returns the current position of the body
func Position(body *cp.Body) gm.Vec {
	return toVec(body.Position())
}

func SetPosition(body *cp.Body, pos gm.Vec) {
	body.SetPosition(cpVecOf(pos))
}

func Velocity(body *cp.Body) gm.Vec {
	return toVec(body.Velocity())
}

func SetVelocity(body *cp.Body, velocity gm.Vec) {
	body.SetVelocityVector(cpVecOf(velocity))
}

func Angle(body *cp.Body) gm.Rad {
	return gm.Rad(body.Angle())
}

func SetAngle(body *cp.Body, angle gm.Rad) {
	body.SetAngle(angle.Radians())
}
