package play

import (
	"github.com/oliverbestmann/play/internal/set"
)

type pairCallbacks struct {
	touching *Callback
	stopped  *Callback
}

// reconcileAll polls the contacts the contact hooks can not observe, those
// of actors without physics.
func (w *World) reconcileAll() {
	for a := range w.Actors() {
		if a.hidden {
			continue
		}

		w.reconcilePairs(a)
		w.reconcileWalls(a)
	}
}

func (w *World) reconcilePairs(a *Actor) {
	var order set.Set[ActorId]
	byOther := map[ActorId]*pairCallbacks{}

	group := func(cb *Callback) *pairCallbacks {
		entry, ok := byOther[cb.Other]
		if !ok {
			entry = &pairCallbacks{}
			byOther[cb.Other] = entry
			order.Insert(cb.Other)
		}

		return entry
	}

	for _, cb := range w.registry.Lookup(a.id, WhenTouching) {
		group(cb).touching = cb
	}

	for _, cb := range w.registry.Lookup(a.id, WhenStoppedTouching) {
		group(cb).stopped = cb
	}

	for id := range order.Values() {
		other, ok := w.actors[id]
		if !ok || other.hidden {
			continue
		}

		// reported by the contact hooks
		if a.HasPhysics() && other.HasPhysics() {
			continue
		}

		callbacks := byOther[id]
		overlapping := w.space.ShapesOverlap(a.shape, other.shape)
		a.events.Observe(ContactKey{Actor: id}, overlapping, callbacks.touching, callbacks.stopped)
	}
}

func (w *World) reconcileWalls(a *Actor) {
	// reported by the contact hooks
	if a.HasPhysics() {
		return
	}

	for _, side := range AllWalls {
		var callbacks pairCallbacks

		for _, cb := range w.registry.Lookup(a.id, WhenTouchingWall) {
			if cb.Wall == side && callbacks.touching == nil {
				callbacks.touching = cb
			}
		}

		for _, cb := range w.registry.Lookup(a.id, WhenStoppedTouchingWall) {
			if cb.Wall == side && callbacks.stopped == nil {
				callbacks.stopped = cb
			}
		}

		if callbacks.touching == nil && callbacks.stopped == nil {
			continue
		}

		overlapping := w.space.ShapesOverlap(a.shape, w.wallShape(side))
		a.events.Observe(ContactKey{Wall: side}, overlapping, callbacks.touching, callbacks.stopped)
	}
}
