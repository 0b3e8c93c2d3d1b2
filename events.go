package play

import (
	"errors"
	"fmt"
)

var errTouchSelf = errors.New("an actor can not touch itself")

// WhenTouching runs the handler once every time the actor starts touching
// any of the given actors. Only one touching callback is allowed per pair.
func (a *Actor) WhenTouching(handler Handler, others ...*Actor) error {
	return a.registerPair(WhenTouching, handler, others)
}

// WhenStoppedTouching runs the handler once every time the actor stops
// touching any of the given actors. Only one such callback is allowed per pair.
func (a *Actor) WhenStoppedTouching(handler Handler, others ...*Actor) error {
	return a.registerPair(WhenStoppedTouching, handler, others)
}

// WhenTouchingWall runs the handler when the actor starts touching one of the
// given walls, all walls if none are given.
func (a *Actor) WhenTouchingWall(handler Handler, sides ...WallSide) error {
	return a.registerWall(WhenTouchingWall, handler, sides)
}

// WhenStoppedTouchingWall runs the handler when the actor stops touching one of
// the given walls, all walls if none are given.
func (a *Actor) WhenStoppedTouchingWall(handler Handler, sides ...WallSide) error {
	return a.registerWall(WhenStoppedTouchingWall, handler, sides)
}

// WhenClicked runs the handler when the mouse is clicked on the actor.
func (a *Actor) WhenClicked(handler Handler) error {
	return a.register(WhenClicked, handler)
}

// WhenClickReleased runs the handler when the mouse is released on the actor
// after it was clicked.
func (a *Actor) WhenClickReleased(handler Handler) error {
	return a.register(WhenClickReleased, handler)
}

// RemoveCollisionCallbacks removes all touching and wall callbacks the actor
// registered and forgets its recorded contacts.
func (a *Actor) RemoveCollisionCallbacks() {
	w := a.world

	for _, kind := range collisionKinds {
		for _, cb := range w.registry.RemoveAll(kind, a.id) {
			w.bridge.unregister(cb)
		}
	}

	a.events.clearContacts()
}

func (a *Actor) register(kind Kind, handler Handler) error {
	if !a.alive {
		return ErrActorRemoved
	}

	return a.world.issue(&Callback{Kind: kind, Handler: handler, Owner: a.id})
}

func (a *Actor) registerPair(kind Kind, handler Handler, others []*Actor) error {
	if !a.alive {
		return ErrActorRemoved
	}

	w := a.world

	// validate all targets first, nothing is registered on failure
	seen := map[ActorId]bool{}
	for _, other := range others {
		if other == nil || !other.alive {
			return fmt.Errorf("register %s callback: %w", kind, ErrActorRemoved)
		}

		if other == a {
			return fmt.Errorf("register %s callback: %w", kind, errTouchSelf)
		}

		candidate := &Callback{Kind: kind, Owner: a.id, Other: other.id}
		if err := w.bridge.checkPair(candidate, a.shape, other.shape); err != nil {
			return fmt.Errorf("register %s callback: %w", kind, err)
		}

		if seen[other.id] {
			err := &DuplicateRegistrationError{Kind: kind, Actor: a.id, Other: other.id}
			return fmt.Errorf("register %s callback: %w", kind, err)
		}

		seen[other.id] = true
	}

	for _, other := range others {
		cb := &Callback{Kind: kind, Handler: handler, Owner: a.id, Other: other.id}
		if err := w.issue(cb); err != nil {
			return fmt.Errorf("register %s callback: %w", kind, err)
		}
	}

	return nil
}

func (a *Actor) registerWall(kind Kind, handler Handler, sides []WallSide) error {
	if !a.alive {
		return ErrActorRemoved
	}

	if len(sides) == 0 {
		sides = AllWalls
	}

	for _, side := range sides {
		if side == WallNone || a.world.wallShape(side) == nil {
			return fmt.Errorf("register %s callback: unknown wall %d", kind, side)
		}
	}

	for _, side := range sides {
		cb := &Callback{Kind: kind, Handler: handler, Owner: a.id, Wall: side}
		if err := a.world.issue(cb); err != nil {
			return err
		}
	}

	return nil
}

// WhenMouseClicked runs the handler whenever the mouse is clicked anywhere.
func (w *World) WhenMouseClicked(handler Handler) {
	_ = w.issue(&Callback{Kind: WhenMouseClicked, Handler: handler, Owner: NoActor})
}

// WhenMouseReleased runs the handler whenever the mouse is released anywhere.
func (w *World) WhenMouseReleased(handler Handler) {
	_ = w.issue(&Callback{Kind: WhenMouseReleased, Handler: handler, Owner: NoActor})
}

// RepeatForever runs the handler once per frame. A handler still running from
// a previous frame is not started again.
func (w *World) RepeatForever(handler Handler) {
	_ = w.issue(&Callback{Kind: RepeatForever, Handler: handler, Owner: NoActor})
}

// issue adds a callback to the registry and, for collision callbacks,
// to the collision bridge.
func (w *World) issue(cb *Callback) error {
	switch cb.Kind {
	case WhenTouching, WhenStoppedTouching:
		owner, ok1 := w.actors[cb.Owner]
		other, ok2 := w.actors[cb.Other]
		if !ok1 || !ok2 {
			return ErrActorRemoved
		}

		if err := w.bridge.registerPair(cb, owner.shape, other.shape); err != nil {
			return err
		}

		w.registry.Register(cb.Kind, cb.Owner, cb)
		w.addDependent(other.id, owner.id)

		w.seedContact(owner, other, cb)

	case WhenTouchingWall, WhenStoppedTouchingWall:
		owner, ok := w.actors[cb.Owner]
		if !ok {
			return ErrActorRemoved
		}

		w.bridge.registerWall(cb, owner.shape, w.wallShape(cb.Wall))
		w.registry.Register(cb.Kind, cb.Owner, cb)

		w.seedWallContact(owner, cb)

	default:
		w.registry.Register(cb.Kind, cb.Owner, cb)
	}

	return nil
}

// seedWallContact records a wall contact of a physics actor that is already
// in progress when the callback is registered.
func (w *World) seedWallContact(owner *Actor, cb *Callback) {
	if !owner.HasPhysics() || owner.hidden {
		return
	}

	if !w.space.ShapesOverlap(owner.shape, w.wallShape(cb.Wall)) {
		return
	}

	if cb.Kind == WhenTouchingWall {
		owner.events.Touch(cb.contactKey(), cb)
	} else {
		owner.events.Touch(cb.contactKey(), nil)
	}
}

// seedContact records a contact between two physics actors that already
// overlap when the callback is registered, the contact hooks only report
// contacts that begin afterwards.
func (w *World) seedContact(owner, other *Actor, cb *Callback) {
	if !owner.HasPhysics() || !other.HasPhysics() || owner.hidden || other.hidden {
		return
	}

	if !w.space.ShapesOverlap(owner.shape, other.shape) {
		return
	}

	if cb.Kind == WhenTouching {
		owner.events.Touch(cb.contactKey(), cb)
	} else {
		owner.events.Touch(cb.contactKey(), nil)
	}
}
