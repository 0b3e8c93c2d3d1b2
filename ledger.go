package play

import (
	"fmt"

	"github.com/oliverbestmann/play/internal/set"
)

// WallSide names one of the four screen edges.
type WallSide uint8

const (
	WallNone WallSide = iota
	WallTop
	WallBottom
	WallLeft
	WallRight
)

var AllWalls = []WallSide{WallTop, WallBottom, WallLeft, WallRight}

func (w WallSide) String() string {
	switch w {
	case WallTop:
		return "top"
	case WallBottom:
		return "bottom"
	case WallLeft:
		return "left"
	case WallRight:
		return "right"
	default:
		return "none"
	}
}

// ContactKey identifies the other side of a contact, either another actor
// or a wall.
type ContactKey struct {
	Actor ActorId
	Wall  WallSide
}

func (k ContactKey) String() string {
	if k.Wall != WallNone {
		return fmt.Sprintf("wall(%s)", k.Wall)
	}

	return fmt.Sprintf("actor(%s)", k.Actor)
}

type touchEntry struct {
	// nil if only a stopped callback is registered, the entry is then
	// only used to track presence.
	callback *Callback
	fired    bool
}

type stopEntry struct {
	// nil if the pair has no stopped callback
	callback *Callback

	// touch of the same transition that was not dispatched yet
	touch *touchEntry
}

// Ledger records per actor which other sides are currently touching and
// which stopped touching since the last dispatch.
// A key is never in both sets at the same time.
type Ledger struct {
	touching     map[ContactKey]*touchEntry
	touchingKeys set.Set[ContactKey]

	stopped     map[ContactKey]*stopEntry
	stoppedKeys set.Set[ContactKey]

	clicked bool
}

func (l *Ledger) init() {
	if l.touching == nil {
		l.touching = map[ContactKey]*touchEntry{}
		l.stopped = map[ContactKey]*stopEntry{}
	}
}

// IsTouching reports whether the key is currently recorded as touching.
func (l *Ledger) IsTouching(key ContactKey) bool {
	_, ok := l.touching[key]
	return ok
}

// IsStopped reports whether a stopped transition is pending for the key.
func (l *Ledger) IsStopped(key ContactKey) bool {
	_, ok := l.stopped[key]
	return ok
}

// Touch records that the key started touching. The callback is dispatched
// on the next touching dispatch, a nil callback only tracks presence.
// Recording an already touching key is a no-op.
func (l *Ledger) Touch(key ContactKey, callback *Callback) bool {
	l.init()

	if _, ok := l.touching[key]; ok {
		return false
	}

	if stop, ok := l.stopped[key]; ok {
		// touching again before the stop was dispatched: the contact never
		// ended as far as the callbacks are concerned.
		l.forgetStopped(key)

		entry := stop.touch
		if entry == nil {
			entry = &touchEntry{callback: callback, fired: true}
		}

		l.touching[key] = entry
		l.touchingKeys.Insert(key)
		return false
	}

	l.touching[key] = &touchEntry{callback: callback, fired: callback == nil}
	l.touchingKeys.Insert(key)

	return true
}

// Separate records that the key stopped touching. If the callback is not nil
// it is dispatched once on the next stopped dispatch. Separating a key that is
// not touching is a no-op.
func (l *Ledger) Separate(key ContactKey, callback *Callback) bool {
	entry, ok := l.touching[key]
	if !ok {
		return false
	}

	delete(l.touching, key)
	l.touchingKeys.Remove(key)

	var pendingTouch *touchEntry
	if !entry.fired {
		pendingTouch = entry
	}

	if callback == nil && pendingTouch == nil {
		return false
	}

	l.stopped[key] = &stopEntry{callback: callback, touch: pendingTouch}
	l.stoppedKeys.Insert(key)

	return callback != nil
}

// Observe applies the current overlap state of the key, this is the
// polling counterpart to Touch and Separate.
func (l *Ledger) Observe(key ContactKey, overlapping bool, touching, stopped *Callback) {
	switch {
	case overlapping:
		l.Touch(key, touching)

	case l.IsTouching(key):
		l.Separate(key, stopped)
	}
}

// DrainTouching returns all touching callbacks not yet dispatched and marks
// them as dispatched. This includes touches of pairs that already separated
// again within the same frame.
func (l *Ledger) DrainTouching() []*Callback {
	var result []*Callback

	for key := range l.touchingKeys.Values() {
		entry := l.touching[key]
		if entry.fired {
			continue
		}

		entry.fired = true
		result = append(result, entry.callback)
	}

	for key := range l.stoppedKeys.Values() {
		stop := l.stopped[key]
		if stop.touch == nil {
			continue
		}

		stop.touch.fired = true
		result = append(result, stop.touch.callback)
		stop.touch = nil
	}

	return result
}

// DrainStopped returns all pending stopped callbacks and clears them.
func (l *Ledger) DrainStopped() []*Callback {
	var result []*Callback

	for key := range l.stoppedKeys.Values() {
		stop := l.stopped[key]
		l.forgetStopped(key)

		if stop.touch != nil {
			// must have been drained by DrainTouching first
			stop.touch.fired = true
			result = append(result, stop.touch.callback)
		}

		if stop.callback != nil {
			result = append(result, stop.callback)
		}
	}

	return result
}

// Forget removes every trace of the key.
func (l *Ledger) Forget(key ContactKey) {
	delete(l.touching, key)
	l.touchingKeys.Remove(key)
	l.forgetStopped(key)
}

// Touching returns the keys currently touching in the order they started.
func (l *Ledger) Touching() []ContactKey {
	return l.touchingKeys.Slice()
}

func (l *Ledger) forgetStopped(key ContactKey) {
	delete(l.stopped, key)
	l.stoppedKeys.Remove(key)
}

func (l *Ledger) reset() {
	clear(l.touching)
	clear(l.stopped)
	l.touchingKeys.Clear()
	l.stoppedKeys.Clear()
	l.clicked = false
}

// clearContacts drops all touching and stopped entries but keeps the
// click state of the frame.
func (l *Ledger) clearContacts() {
	clicked := l.clicked
	l.reset()
	l.clicked = clicked
}
