package play

import (
	"image/color"
	"log/slog"

	"github.com/jakecoffman/cp/v2"
	"github.com/oliverbestmann/play/gm"
	"github.com/oliverbestmann/play/physics"
)

// Actor is a visual entity with a collision shape and a contact ledger.
// Positions are centers, the y axis points upwards.
type Actor struct {
	id    ActorId
	world *World
	alive bool

	// unscaled geometry, see size
	geom physics.Geometry

	// size in percent of geom
	size float64

	position gm.Vec
	angle    gm.Rad
	hidden   bool
	color    color.RGBA

	mode     BodyMode
	material physics.Material

	// actors without physics own a detached body that is never simulated
	body  *cp.Body
	shape *cp.Shape

	events Ledger
}

func (a *Actor) Id() ActorId {
	return a.id
}

func (a *Actor) World() *World {
	return a.world
}

// IsAlive reports whether the actor was not removed yet.
func (a *Actor) IsAlive() bool {
	return a.alive
}

// Shape returns the current collision shape. The shape is replaced whenever
// the actor is resized or its physics changes.
func (a *Actor) Shape() *cp.Shape {
	return a.shape
}

// Tag returns the identity tag of the actors shape, if it was ever tagged.
func (a *Actor) Tag() (Tag, bool) {
	return tagOf(a.shape)
}

// Events gives read access to the contact ledger of the actor.
func (a *Actor) Events() *Ledger {
	return &a.events
}

func (a *Actor) Position() gm.Vec {
	return a.position
}

func (a *Actor) X() float64 {
	return a.position.X
}

func (a *Actor) Y() float64 {
	return a.position.Y
}

func (a *Actor) SetPosition(pos gm.Vec) {
	a.position = pos

	physics.SetPosition(a.body, pos)
	a.world.space.Reindex(a.body)
}

func (a *Actor) SetX(x float64) {
	a.SetPosition(gm.Vec{X: x, Y: a.position.Y})
}

func (a *Actor) SetY(y float64) {
	a.SetPosition(gm.Vec{X: a.position.X, Y: y})
}

// Move moves the actor by the given offset.
func (a *Actor) Move(offset gm.Vec) {
	a.SetPosition(a.position.Add(offset))
}

// Angle returns the rotation of the actor in degrees.
func (a *Actor) Angle() float64 {
	return a.angle.Degrees()
}

func (a *Actor) SetAngle(degrees float64) {
	a.angle = gm.DegToRad(degrees)

	physics.SetAngle(a.body, a.angle)
	a.world.space.Reindex(a.body)
}

func (a *Actor) Color() color.RGBA {
	return a.color
}

func (a *Actor) SetColor(c color.RGBA) {
	a.color = c
}

// Size returns the scale of the actor in percent.
func (a *Actor) Size() float64 {
	return a.size
}

// SetSize scales the actor. This rebuilds the collision shape, registered
// collision callbacks keep working.
func (a *Actor) SetSize(percent float64) error {
	if !a.alive {
		return ErrActorRemoved
	}

	if percent == a.size {
		return nil
	}

	a.size = percent
	a.material.Velocity = a.Velocity()
	a.world.rebuildShape(a)

	return nil
}

// Geometry returns the effective, scaled geometry of the actor.
func (a *Actor) Geometry() physics.Geometry {
	factor := a.size / 100

	geom := a.geom
	geom.Width *= factor
	geom.Height *= factor
	geom.Radius *= factor

	return geom
}

func (a *Actor) Width() float64 {
	geom := a.Geometry()
	if geom.Kind == physics.ShapeCircle {
		return 2 * geom.Radius
	}

	return geom.Width
}

func (a *Actor) Height() float64 {
	geom := a.Geometry()
	if geom.Kind == physics.ShapeCircle {
		return 2 * geom.Radius
	}

	return geom.Height
}

// Bounds returns the axis aligned bounds of the unrotated actor.
func (a *Actor) Bounds() gm.Rect {
	return gm.RectWithCenterAndSize(a.position, gm.Vec{X: a.Width(), Y: a.Height()})
}

func (a *Actor) Left() float64 {
	return a.position.X - a.Width()/2
}

func (a *Actor) Right() float64 {
	return a.position.X + a.Width()/2
}

func (a *Actor) Top() float64 {
	return a.position.Y + a.Height()/2
}

func (a *Actor) Bottom() float64 {
	return a.position.Y - a.Height()/2
}

func (a *Actor) DistanceTo(other *Actor) float64 {
	return a.position.DistanceTo(other.position)
}

func (a *Actor) IsHidden() bool {
	return a.hidden
}

// Hide hides the actor and pauses its physics. Hidden actors neither dispatch
// nor take part in polled contacts.
func (a *Actor) Hide() {
	if a.hidden {
		return
	}

	a.hidden = true

	if a.mode != NoPhysics {
		a.world.space.Remove(a.body, a.shape)
	}
}

func (a *Actor) Show() {
	if !a.hidden {
		return
	}

	a.hidden = false

	if a.mode != NoPhysics {
		a.world.space.Add(a.body, a.shape)
	}
}

// IsClicked reports whether the actor was clicked in the current frame.
func (a *Actor) IsClicked() bool {
	return a.events.clicked
}

// IsTouching reports whether the shapes of both actors currently overlap.
func (a *Actor) IsTouching(other *Actor) bool {
	if !a.alive || !other.alive {
		return false
	}

	return a.world.space.ShapesOverlap(a.shape, other.shape)
}

// IsTouchingPoint reports whether the point lies within the actors shape.
func (a *Actor) IsTouchingPoint(point gm.Vec) bool {
	return a.alive && a.world.space.PointInShape(a.shape, point)
}

// TouchingWalls returns the walls the actor currently overlaps.
func (a *Actor) TouchingWalls() []WallSide {
	var touching []WallSide

	for _, side := range AllWalls {
		if a.world.space.ShapesOverlap(a.shape, a.world.wallShape(side)) {
			touching = append(touching, side)
		}
	}

	return touching
}

func (a *Actor) IsTouchingWall() bool {
	return len(a.TouchingWalls()) > 0
}

// Remove removes the actor from the world. Callbacks registered on the actor
// are dropped, callbacks of other actors naming it never fire again.
func (a *Actor) Remove() {
	if !a.alive {
		return
	}

	w := a.world

	for _, kind := range []Kind{WhenTouching, WhenStoppedTouching, WhenTouchingWall, WhenStoppedTouchingWall, WhenClicked, WhenClickReleased} {
		w.registry.RemoveAll(kind, a.id)
	}

	// callbacks of other actors naming this one
	for _, dep := range w.liveDependents(a.id) {
		for _, kind := range []Kind{WhenTouching, WhenStoppedTouching} {
			for _, cb := range w.registry.Lookup(dep.id, kind) {
				if cb.Other == a.id {
					w.registry.Remove(kind, dep.id, cb)
					w.bridge.unregister(cb)
				}
			}
		}
	}

	// forget the tag first, so removing the shape does not dispatch anything
	if tag, ok := tagOf(a.shape); ok {
		w.bridge.forget(tag)
	}

	w.space.Remove(a.body, a.shape)

	key := ContactKey{Actor: a.id}
	for other := range w.Actors() {
		other.events.Forget(key)
	}

	a.events.reset()

	delete(w.actors, a.id)
	delete(w.dependents, a.id)
	w.order.Remove(a.id)

	if w.clickedActor == a.id {
		w.clickedActor = NoActor
	}

	a.alive = false

	w.logger.Debug("Removed actor", slog.Any("actor", a.id))
}
