package play

import (
	"errors"
	"fmt"

	"github.com/oliverbestmann/play/gm"
)

// Input is the snapshot of the mouse for a single frame.
type Input struct {
	// cursor position in world coordinates
	Cursor gm.Vec

	// the button went down in this frame
	ClickHappened bool

	// the button went up in this frame
	ClickReleaseHappened bool

	// the button is currently held down
	Pressed bool
}

// Mouse returns the input of the current frame.
func (w *World) Mouse() Input {
	return w.input
}

// Tick advances the world by one frame. Errors returned by handlers are
// collected and returned together. Tick must not be called from a handler.
func (w *World) Tick(input Input) error {
	if w.ticking {
		return ErrTickInProgress
	}

	w.ticking = true
	defer func() { w.ticking = false }()

	w.frame += 1
	w.input = input

	frameTime := w.config.FrameTime()
	w.scheduler.time.advance(frameTime)

	var errs []error

	// suspended handlers continue where they left off
	if err := w.scheduler.ResumeAll(); err != nil {
		errs = append(errs, err)
	}

	w.space.Step(frameTime)
	w.syncBodies()

	for a := range w.Actors() {
		a.events.clicked = false
	}

	w.reconcileAll()

	errs = append(errs, w.dispatchTouching()...)
	errs = append(errs, w.dispatchStopped()...)
	errs = append(errs, w.dispatchClicks(input)...)

	if input.ClickHappened {
		errs = append(errs, w.runAll(w.registry.Lookup(NoActor, WhenMouseClicked), Event{Kind: WhenMouseClicked})...)
	}

	if input.ClickReleaseHappened {
		errs = append(errs, w.runAll(w.registry.Lookup(NoActor, WhenMouseReleased), Event{Kind: WhenMouseReleased})...)
	}

	errs = append(errs, w.runAll(w.registry.Lookup(NoActor, RepeatForever), Event{Kind: RepeatForever})...)

	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("frame %d: %w", w.frame, err)
	}

	return nil
}

func (w *World) dispatchTouching() []error {
	var errs []error

	for a := range w.Actors() {
		if a.hidden {
			continue
		}

		for _, cb := range a.events.DrainTouching() {
			errs = append(errs, w.dispatchContact(a, cb)...)
		}
	}

	return errs
}

func (w *World) dispatchStopped() []error {
	var errs []error

	for a := range w.Actors() {
		if a.hidden {
			continue
		}

		for _, cb := range a.events.DrainStopped() {
			errs = append(errs, w.dispatchContact(a, cb)...)
		}
	}

	return errs
}

// dispatchContact runs a callback taken from the ledger of a. Wall callbacks
// fan out to every callback registered for the same wall and kind.
func (w *World) dispatchContact(a *Actor, cb *Callback) []error {
	if cb == nil || !a.alive {
		return nil
	}

	ev := Event{Kind: cb.Kind, Actor: a, Wall: cb.Wall}

	if cb.Wall == WallNone {
		other, ok := w.actors[cb.Other]
		if !ok {
			return nil
		}

		ev.Other = other
		return w.runAll([]*Callback{cb}, ev)
	}

	var callbacks []*Callback
	for _, candidate := range w.registry.Lookup(a.id, cb.Kind) {
		if candidate.Wall == cb.Wall {
			callbacks = append(callbacks, candidate)
		}
	}

	return w.runAll(callbacks, ev)
}

func (w *World) dispatchClicks(input Input) []error {
	if !input.ClickHappened && !input.ClickReleaseHappened {
		return nil
	}

	var errs []error

	for a := range w.Actors() {
		if a.hidden || !a.IsTouchingPoint(input.Cursor) {
			continue
		}

		if input.ClickHappened {
			a.events.clicked = true
			w.clickedActor = a.id

			ev := Event{Kind: WhenClicked, Actor: a}
			errs = append(errs, w.runAll(w.registry.Lookup(a.id, WhenClicked), ev)...)
		}

		if input.ClickReleaseHappened && w.clickedActor == a.id {
			ev := Event{Kind: WhenClickReleased, Actor: a}
			errs = append(errs, w.runAll(w.registry.Lookup(a.id, WhenClickReleased), ev)...)
		}
	}

	if input.ClickReleaseHappened {
		w.clickedActor = NoActor
	}

	return errs
}

func (w *World) runAll(callbacks []*Callback, ev Event) []error {
	var errs []error

	for _, cb := range callbacks {
		if err := w.scheduler.Run(cb, ev); err != nil {
			errs = append(errs, err)
		}
	}

	return errs
}
