package play

import (
	"context"
	"slices"
)

// Kind identifies the event a callback is registered for.
type Kind uint8

const (
	WhenTouching Kind = iota + 1
	WhenStoppedTouching
	WhenTouchingWall
	WhenStoppedTouchingWall
	WhenClicked
	WhenClickReleased
	WhenMouseClicked
	WhenMouseReleased
	RepeatForever
)

var collisionKinds = []Kind{
	WhenTouching,
	WhenStoppedTouching,
	WhenTouchingWall,
	WhenStoppedTouchingWall,
}

func (k Kind) String() string {
	switch k {
	case WhenTouching:
		return "when_touching"
	case WhenStoppedTouching:
		return "when_stopped_touching"
	case WhenTouchingWall:
		return "when_touching_wall"
	case WhenStoppedTouchingWall:
		return "when_stopped_touching_wall"
	case WhenClicked:
		return "when_clicked"
	case WhenClickReleased:
		return "when_click_released"
	case WhenMouseClicked:
		return "when_mouse_clicked"
	case WhenMouseReleased:
		return "when_mouse_released"
	case RepeatForever:
		return "repeat_forever"
	default:
		return "unknown"
	}
}

// Handler is the user code run for an event. A handler can span multiple
// frames by calling NextFrame or Sleep with the context it was given.
type Handler func(ctx context.Context) error

// Do adapts a plain function to a Handler.
func Do(fn func()) Handler {
	return func(context.Context) error {
		fn()
		return nil
	}
}

// Callback is a registered handler. Collision callbacks also record
// the other side they are interested in.
type Callback struct {
	Kind    Kind
	Handler Handler

	// Owner is the actor the callback was registered on, NoActor for global callbacks.
	Owner ActorId

	// Other is the actor on the other side of a touching callback.
	Other ActorId

	// Wall is the wall side of a wall callback.
	Wall WallSide

	// set while a task of this callback is in flight
	running bool
}

// Running reports whether a previous invocation has not finished yet.
func (cb *Callback) Running() bool {
	return cb.running
}

func (cb *Callback) contactKey() ContactKey {
	if cb.Wall != WallNone {
		return ContactKey{Wall: cb.Wall}
	}

	return ContactKey{Actor: cb.Other}
}

type registryKey struct {
	Kind          Kind
	Discriminator ActorId
}

// Registry maps (kind, discriminator) to an ordered list of callbacks.
// It does not deduplicate, registering the same event twice is legitimate for
// most kinds. Collision pairs are checked one layer up by the bridge.
type Registry struct {
	callbacks map[registryKey][]*Callback
}

func NewRegistry() *Registry {
	return &Registry{callbacks: map[registryKey][]*Callback{}}
}

func (r *Registry) Register(kind Kind, discriminator ActorId, cb *Callback) {
	key := registryKey{Kind: kind, Discriminator: discriminator}
	r.callbacks[key] = append(r.callbacks[key], cb)
}

// Lookup returns the callbacks for all given kinds, ordered by the kinds
// first and registration order second. Missing keys yield an empty result.
func (r *Registry) Lookup(discriminator ActorId, kinds ...Kind) []*Callback {
	var result []*Callback
	for _, kind := range kinds {
		result = append(result, r.callbacks[registryKey{Kind: kind, Discriminator: discriminator}]...)
	}

	return result
}

// RemoveAll clears all callbacks of the given key and returns them.
func (r *Registry) RemoveAll(kind Kind, discriminator ActorId) []*Callback {
	key := registryKey{Kind: kind, Discriminator: discriminator}

	removed := r.callbacks[key]
	delete(r.callbacks, key)

	return removed
}

// Remove removes a single callback.
func (r *Registry) Remove(kind Kind, discriminator ActorId, cb *Callback) bool {
	key := registryKey{Kind: kind, Discriminator: discriminator}

	callbacks := r.callbacks[key]

	idx := slices.Index(callbacks, cb)
	if idx < 0 {
		return false
	}

	callbacks = slices.Delete(callbacks, idx, idx+1)
	if len(callbacks) == 0 {
		delete(r.callbacks, key)
	} else {
		r.callbacks[key] = callbacks
	}

	return true
}
