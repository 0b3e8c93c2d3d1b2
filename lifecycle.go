package play

import (
	"log/slog"
	"slices"

	"github.com/jakecoffman/cp/v2"
)

// rebuildShape replaces body and shape of the actor after a change of its
// size or physics. Collision callbacks of the actor and of all actors naming
// it are moved over to the new shape.
func (w *World) rebuildShape(a *Actor) {
	var snapshot []*Callback
	for _, kind := range collisionKinds {
		snapshot = append(snapshot, w.registry.RemoveAll(kind, a.id)...)
	}

	for _, cb := range snapshot {
		w.bridge.unregister(cb)
	}

	// forget the tag before the shape leaves the space, the separate hooks
	// fired by the removal then resolve to nothing.
	tag, tagged := tagOf(a.shape)
	if tagged {
		w.bridge.forget(tag)
	}

	w.destroyBody(a)
	w.buildBody(a)

	if tagged {
		w.bridge.restoreTag(a.shape, tag, a.id)
	}

	for _, cb := range snapshot {
		w.reissue(cb)
	}

	w.repairDependents(a)
	w.revalidateContacts(a)

	w.logger.Debug(
		"Rebuilt shape",
		slog.Any("actor", a.id),
		slog.String("mode", a.mode.String()),
		slog.Int("callbacks", len(snapshot)),
	)
}

// repairDependents registers the callbacks of other actors naming a again,
// this time against the new shape of a.
func (w *World) repairDependents(a *Actor) {
	for _, dep := range w.liveDependents(a.id) {
		if dep == a {
			continue
		}

		for _, kind := range []Kind{WhenTouching, WhenStoppedTouching} {
			for _, cb := range w.registry.Lookup(dep.id, kind) {
				if cb.Other != a.id {
					continue
				}

				w.registry.Remove(kind, dep.id, cb)
				w.bridge.unregister(cb)
				w.reissue(cb)
			}
		}
	}
}

// reissue registers a callback that was registered before and is known to be valid.
func (w *World) reissue(cb *Callback) {
	if err := w.issue(cb); err != nil {
		w.logger.Warn(
			"Dropping collision callback",
			slog.String("kind", cb.Kind.String()),
			slog.Any("actor", cb.Owner),
			slog.Any("error", err),
		)
	}
}

// revalidateContacts ends recorded contacts between physics actors, or with
// walls, that do not overlap anymore with the new shape. The contact hooks will
// never report the separation of the old shape.
func (w *World) revalidateContacts(a *Actor) {
	if !a.HasPhysics() {
		return
	}

	for _, key := range a.events.Touching() {
		var shape *cp.Shape

		if key.Wall != WallNone {
			shape = w.wallShape(key.Wall)
		} else if other, ok := w.actors[key.Actor]; ok && other.HasPhysics() {
			shape = other.shape
		}

		if shape == nil {
			continue
		}

		if !w.space.ShapesOverlap(a.shape, shape) {
			a.events.Separate(key, w.stoppedCallback(a.id, key))
		}
	}

	key := ContactKey{Actor: a.id}
	for _, dep := range w.liveDependents(a.id) {
		if !dep.HasPhysics() || !dep.events.IsTouching(key) {
			continue
		}

		if !w.space.ShapesOverlap(a.shape, dep.shape) {
			dep.events.Separate(key, w.stoppedCallback(dep.id, key))
		}
	}
}

func (w *World) stoppedCallback(owner ActorId, key ContactKey) *Callback {
	kind := WhenStoppedTouching
	if key.Wall != WallNone {
		kind = WhenStoppedTouchingWall
	}

	for _, cb := range w.registry.Lookup(owner, kind) {
		if cb.contactKey() == key {
			return cb
		}
	}

	return nil
}

// collisionOwners returns the actors holding a touching callback that
// involves a, a itself included.
func (w *World) collisionOwners(a *Actor) []ActorId {
	var owners []ActorId

	if len(w.registry.Lookup(a.id, WhenTouching, WhenStoppedTouching)) > 0 {
		owners = append(owners, a.id)
	}

	for _, dep := range w.liveDependents(a.id) {
		if slices.Contains(owners, dep.id) {
			continue
		}

		for _, cb := range w.registry.Lookup(dep.id, WhenTouching, WhenStoppedTouching) {
			if cb.Other == a.id {
				owners = append(owners, dep.id)
				break
			}
		}
	}

	return owners
}

func (w *World) checkStale(a *Actor) error {
	owners := w.collisionOwners(a)
	if len(owners) == 0 {
		return nil
	}

	return &StaleCallbackError{Actor: a.id, Owners: owners}
}
