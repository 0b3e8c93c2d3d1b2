package play

import (
	"log/slog"
	"math"

	"github.com/oliverbestmann/play/gm"
	"github.com/oliverbestmann/play/physics"
)

// BodyMode is the physics state of an actor.
type BodyMode uint8

const (
	NoPhysics BodyMode = iota
	Dynamic
	Kinematic
	Static
)

func (m BodyMode) String() string {
	switch m {
	case Dynamic:
		return "dynamic"
	case Kinematic:
		return "kinematic"
	case Static:
		return "static"
	default:
		return "none"
	}
}

func bodyModeOf(ty physics.BodyType) BodyMode {
	switch ty {
	case physics.BodyStatic:
		return Static
	case physics.BodyKinematic:
		return Kinematic
	default:
		return Dynamic
	}
}

// PhysicsOptions configure the simulation of an actor.
type PhysicsOptions struct {
	CanMove      bool
	Stable       bool
	ObeysGravity bool
	XSpeed       float64
	YSpeed       float64
	Bounciness   float64
	Mass         float64
	Friction     float64
}

func DefaultPhysics() PhysicsOptions {
	return PhysicsOptions{
		CanMove:      true,
		ObeysGravity: true,
		Bounciness:   1.0,
		Mass:         10,
	}
}

func (opts PhysicsOptions) material() physics.Material {
	return physics.Material{
		CanMove:      opts.CanMove,
		Stable:       opts.Stable,
		ObeysGravity: opts.ObeysGravity,
		Velocity:     gm.Vec{X: opts.XSpeed, Y: opts.YSpeed},
		Bounciness:   opts.Bounciness,
		Mass:         opts.Mass,
		Friction:     opts.Friction,
	}
}

func (a *Actor) BodyMode() BodyMode {
	return a.mode
}

func (a *Actor) HasPhysics() bool {
	return a.mode != NoPhysics
}

// StartPhysics puts the actor into the simulation. Starting the physics of an
// actor that already has physics restarts it, which fails while collision
// callbacks reference the actor.
func (a *Actor) StartPhysics(opts PhysicsOptions) error {
	if !a.alive {
		return ErrActorRemoved
	}

	w := a.world

	if a.HasPhysics() {
		if err := w.checkStale(a); err != nil {
			return err
		}
	}

	a.material = opts.material()
	a.mode = bodyModeOf(physics.BodyTypeFor(a.material, w.space.Gravity()))

	w.rebuildShape(a)

	return nil
}

// StopPhysics removes the actor from the simulation. Contacts of the actor
// are polled every frame afterwards.
func (a *Actor) StopPhysics() error {
	if !a.alive {
		return ErrActorRemoved
	}

	if !a.HasPhysics() {
		return nil
	}

	w := a.world

	if err := w.checkStale(a); err != nil {
		return err
	}

	a.material.Velocity = a.Velocity()
	a.mode = NoPhysics
	w.rebuildShape(a)

	return nil
}

// Physics returns the current physics options of the actor.
func (a *Actor) Physics() PhysicsOptions {
	velocity := a.Velocity()

	return PhysicsOptions{
		CanMove:      a.material.CanMove,
		Stable:       a.material.Stable,
		ObeysGravity: a.material.ObeysGravity,
		XSpeed:       velocity.X,
		YSpeed:       velocity.Y,
		Bounciness:   a.material.Bounciness,
		Mass:         a.material.Mass,
		Friction:     a.material.Friction,
	}
}

// SetCanMove changes between a static and a moving body. The shape is rebuilt,
// collision callbacks are carried over.
func (a *Actor) SetCanMove(canMove bool) error {
	return a.changeMaterial(func(mat *physics.Material) {
		mat.CanMove = canMove
	})
}

// SetStable changes whether the actor can rotate. The shape is rebuilt,
// collision callbacks are carried over.
func (a *Actor) SetStable(stable bool) error {
	return a.changeMaterial(func(mat *physics.Material) {
		mat.Stable = stable
	})
}

func (a *Actor) changeMaterial(change func(mat *physics.Material)) error {
	if !a.alive {
		return ErrActorRemoved
	}

	// the new body continues with the current speed
	a.material.Velocity = a.Velocity()

	change(&a.material)

	if !a.HasPhysics() {
		return nil
	}

	a.mode = bodyModeOf(physics.BodyTypeFor(a.material, a.world.space.Gravity()))
	a.world.rebuildShape(a)

	return nil
}

func (a *Actor) Velocity() gm.Vec {
	if !a.HasPhysics() {
		return a.material.Velocity
	}

	return physics.Velocity(a.body)
}

func (a *Actor) SetVelocity(velocity gm.Vec) {
	a.material.Velocity = velocity

	if a.HasPhysics() && a.material.CanMove {
		physics.SetVelocity(a.body, velocity)
	}
}

func (a *Actor) SetBounciness(bounciness float64) {
	a.material.Bounciness = bounciness

	if a.HasPhysics() {
		a.shape.SetElasticity(physics.ClampBounciness(bounciness))
	}
}

func (a *Actor) SetFriction(friction float64) {
	a.material.Friction = friction

	if a.HasPhysics() {
		a.shape.SetFriction(friction)
	}
}

func (a *Actor) SetMass(mass float64) {
	a.material.Mass = mass

	if a.mode == Dynamic {
		a.body.SetMass(mass)
	}
}

func (a *Actor) SetObeysGravity(obeysGravity bool) {
	a.material.ObeysGravity = obeysGravity

	if a.HasPhysics() {
		physics.ApplyGravity(a.body, obeysGravity)
	}
}

// buildBody creates body and shape for the current state of the actor.
// The shape is added to the simulation if the actor has physics and is visible.
func (w *World) buildBody(a *Actor) {
	place := physics.Placement{Position: a.position, Angle: a.angle}

	if a.mode == NoPhysics {
		a.body, a.shape = physics.NewDetached(a.Geometry(), place)
		return
	}

	a.body, a.shape = physics.NewBody(a.Geometry(), a.material, place, w.space.Gravity())

	if !a.hidden {
		w.space.Add(a.body, a.shape)
	}
}

func (w *World) destroyBody(a *Actor) {
	w.space.Remove(a.body, a.shape)
}

// syncBodies copies the simulation results back into the actors.
func (w *World) syncBodies() {
	for a := range w.Actors() {
		if a.mode != Dynamic && a.mode != Kinematic {
			continue
		}

		pos := physics.Position(a.body)
		if pos.IsNaN() {
			// can happen right after switching the body type
			w.logger.Warn("Ignoring invalid body position", slog.Any("actor", a.id))
			continue
		}

		a.position = pos

		angle := physics.Angle(a.body)
		if !math.IsNaN(float64(angle)) {
			a.angle = angle
		}
	}
}
