package play

import (
	"context"
	"testing"

	"github.com/oliverbestmann/play/gm"
	"github.com/stretchr/testify/require"
)

func newTestWorld(t *testing.T) *World {
	t.Helper()

	config := DefaultConfig()
	config.Gravity = GravityConfig{}

	w, err := NewWorld(WithConfig(config))
	require.NoError(t, err)

	t.Cleanup(w.Close)

	return w
}

func tick(t *testing.T, w *World, frames int) {
	t.Helper()

	for range frames {
		require.NoError(t, w.Tick(Input{}))
	}
}

// counter returns a handler that counts its invocations.
func counter(count *int) Handler {
	return Do(func() { *count += 1 })
}

func TestNewWorldRejectsInvalidConfig(t *testing.T) {
	config := DefaultConfig()
	config.FrameRate = 0

	_, err := NewWorld(WithConfig(config))
	require.Error(t, err)
}

func TestActorIdsIncrease(t *testing.T) {
	w := newTestWorld(t)

	a := w.NewBox(gm.VecZero, 10, 10)
	b := w.NewCircle(gm.VecZero, 5)

	require.Less(t, a.Id(), b.Id())
	require.NotEqual(t, NoActor, a.Id())

	var actors []*Actor
	for actor := range w.Actors() {
		actors = append(actors, actor)
	}

	require.Equal(t, []*Actor{a, b}, actors)
}

func TestPhysicsActorHitsStaticActor(t *testing.T) {
	w := newTestWorld(t)

	ball := w.NewBox(gm.VecOf(-100, 0), 20, 20)
	wall := w.NewBox(gm.VecZero, 20, 20)

	opts := DefaultPhysics()
	opts.XSpeed = 200
	require.NoError(t, ball.StartPhysics(opts))

	require.NoError(t, wall.StartPhysics(PhysicsOptions{CanMove: false, Bounciness: 1}))
	require.Equal(t, Static, wall.BodyMode())

	var touches, stops int
	require.NoError(t, ball.WhenTouching(counter(&touches), wall))
	require.NoError(t, ball.WhenStoppedTouching(counter(&stops), wall))

	tick(t, w, 60)

	require.Equal(t, 1, touches)
	require.Equal(t, 1, stops)

	// bounced back
	require.Less(t, ball.X(), -20.0)
}

func TestOverlapAtCreationWithoutPhysics(t *testing.T) {
	w := newTestWorld(t)

	a := w.NewBox(gm.VecZero, 20, 20)
	b := w.NewBox(gm.VecOf(10, 0), 20, 20)

	var touches, stops int
	require.NoError(t, a.WhenTouching(counter(&touches), b))
	require.NoError(t, a.WhenStoppedTouching(counter(&stops), b))

	tick(t, w, 1)
	require.Equal(t, 1, touches)

	tick(t, w, 5)
	require.Equal(t, 1, touches)
	require.Zero(t, stops)

	b.SetPosition(gm.VecOf(100, 0))
	tick(t, w, 1)
	require.Equal(t, 1, stops)

	b.Move(gm.VecOf(-95, 0))
	tick(t, w, 1)
	require.Equal(t, 2, touches)
}

func TestMixedPhysicsIsPolled(t *testing.T) {
	w := newTestWorld(t)

	mover := w.NewBox(gm.VecOf(-100, 0), 20, 20)
	ghost := w.NewBox(gm.VecZero, 20, 20)

	opts := DefaultPhysics()
	opts.XSpeed = 200
	require.NoError(t, mover.StartPhysics(opts))

	var events []Event
	record := func(ctx context.Context) error {
		ev, _ := EventOf(ctx)
		events = append(events, ev)
		return nil
	}

	require.NoError(t, ghost.WhenTouching(record, mover))
	require.NoError(t, ghost.WhenStoppedTouching(record, mover))

	tick(t, w, 60)

	require.Len(t, events, 2)
	require.Equal(t, WhenTouching, events[0].Kind)
	require.Equal(t, WhenStoppedTouching, events[1].Kind)
	require.Same(t, ghost, events[0].Actor)
	require.Same(t, mover, events[0].Other)

	// the ghost has no body in the simulation, the mover passes through
	require.Greater(t, mover.X(), 20.0)
}

func TestTouchThenSeparateInOneFrame(t *testing.T) {
	w := newTestWorld(t)

	a := w.NewBox(gm.VecOf(-100, 0), 10, 10)
	b := w.NewBox(gm.VecOf(100, 0), 10, 10)

	require.NoError(t, a.StartPhysics(PhysicsOptions{CanMove: false}))
	require.NoError(t, b.StartPhysics(PhysicsOptions{CanMove: false}))

	var order []Kind
	record := func(ctx context.Context) error {
		ev, _ := EventOf(ctx)
		order = append(order, ev.Kind)
		return nil
	}

	require.NoError(t, a.WhenStoppedTouching(record, b))
	require.NoError(t, a.WhenTouching(record, b))

	// both hooks within the same frame, in the order the engine reports them
	w.bridge.onBegin(b.Shape(), a.Shape())
	w.bridge.onSeparate(a.Shape(), b.Shape())

	tick(t, w, 2)

	require.Equal(t, []Kind{WhenTouching, WhenStoppedTouching}, order)
}

func TestTagSurvivesSetCanMove(t *testing.T) {
	w := newTestWorld(t)

	a := w.NewBox(gm.VecOf(-100, 0), 10, 10)
	b := w.NewBox(gm.VecOf(100, 0), 10, 10)

	require.NoError(t, a.StartPhysics(DefaultPhysics()))
	require.NoError(t, b.StartPhysics(PhysicsOptions{CanMove: false}))

	var touches int
	require.NoError(t, a.WhenTouching(counter(&touches), b))

	tagBefore, ok := a.Tag()
	require.True(t, ok)

	shapeBefore := a.Shape()

	require.NoError(t, a.SetCanMove(false))
	require.Equal(t, Static, a.BodyMode())
	require.NotSame(t, shapeBefore, a.Shape())

	tagAfter, ok := a.Tag()
	require.True(t, ok)
	require.Equal(t, tagBefore, tagAfter)

	tagB, _ := b.Tag()
	require.NotNil(t, w.bridge.lookup(phaseBegin, tagAfter.Id, tagB.Id))

	w.bridge.onBegin(b.Shape(), a.Shape())
	tick(t, w, 1)
	require.Equal(t, 1, touches)
}

func TestDependentRepairAfterResize(t *testing.T) {
	w := newTestWorld(t)

	a := w.NewBox(gm.VecZero, 20, 20)
	b := w.NewBox(gm.VecOf(100, 0), 20, 20)

	var touches int
	require.NoError(t, a.WhenTouching(counter(&touches), b))

	require.NoError(t, b.SetSize(200))
	require.Equal(t, 40.0, b.Width())

	callbacks := w.registry.Lookup(a.Id(), WhenTouching)
	require.Len(t, callbacks, 1)
	require.Equal(t, b.Id(), callbacks[0].Other)

	// still rejected, the pair survived the rebuild
	err := a.WhenTouching(counter(&touches), b)
	require.ErrorIs(t, err, ErrDuplicateRegistration)

	// a spans 65..85, b spans 80..120
	a.SetPosition(gm.VecOf(75, 0))
	tick(t, w, 1)
	require.Equal(t, 1, touches)
}

func TestRestartWithCallbacksIsRejected(t *testing.T) {
	w := newTestWorld(t)

	a := w.NewBox(gm.VecOf(-100, 0), 10, 10)
	b := w.NewBox(gm.VecOf(100, 0), 10, 10)

	require.NoError(t, a.StartPhysics(DefaultPhysics()))
	require.NoError(t, b.StartPhysics(DefaultPhysics()))

	require.NoError(t, a.WhenTouching(Do(func() {}), b))

	err := b.StartPhysics(DefaultPhysics())
	require.ErrorIs(t, err, ErrStaleCallbacks)

	var staleErr *StaleCallbackError
	require.ErrorAs(t, err, &staleErr)
	require.Equal(t, b.Id(), staleErr.Actor)
	require.Equal(t, []ActorId{a.Id()}, staleErr.Owners)

	require.ErrorIs(t, a.StopPhysics(), ErrStaleCallbacks)

	a.RemoveCollisionCallbacks()

	require.NoError(t, b.StartPhysics(DefaultPhysics()))
	require.NoError(t, a.StopPhysics())
	require.False(t, a.HasPhysics())
}

func TestRemovedActorNeverDispatches(t *testing.T) {
	w := newTestWorld(t)

	a := w.NewBox(gm.VecZero, 20, 20)
	b := w.NewBox(gm.VecOf(10, 0), 20, 20)

	var touches int
	require.NoError(t, a.WhenTouching(counter(&touches), b))

	b.Remove()
	require.False(t, b.IsAlive())

	tick(t, w, 3)
	require.Zero(t, touches)

	_, ok := w.Actor(b.Id())
	require.False(t, ok)

	require.ErrorIs(t, a.WhenTouching(counter(&touches), b), ErrActorRemoved)
	require.ErrorIs(t, b.WhenClicked(Do(func() {})), ErrActorRemoved)
}

func TestHiddenActorIsSkipped(t *testing.T) {
	w := newTestWorld(t)

	a := w.NewBox(gm.VecZero, 20, 20)
	b := w.NewBox(gm.VecOf(10, 0), 20, 20)

	var touches int
	require.NoError(t, a.WhenTouching(counter(&touches), b))

	b.Hide()
	tick(t, w, 2)
	require.Zero(t, touches)

	b.Show()
	tick(t, w, 1)
	require.Equal(t, 1, touches)
}

func TestTouchingWall(t *testing.T) {
	w := newTestWorld(t)

	// the top wall is at y=300
	a := w.NewBox(gm.VecOf(0, 295), 20, 20)

	var walls []WallSide
	record := func(ctx context.Context) error {
		ev, _ := EventOf(ctx)
		walls = append(walls, ev.Wall)
		return nil
	}

	var stops int
	require.NoError(t, a.WhenTouchingWall(record))
	require.NoError(t, a.WhenStoppedTouchingWall(counter(&stops), WallTop))

	tick(t, w, 2)
	require.Equal(t, []WallSide{WallTop}, walls)
	require.Equal(t, []WallSide{WallTop}, a.TouchingWalls())
	require.True(t, a.IsTouchingWall())

	a.SetPosition(gm.VecZero)
	tick(t, w, 1)
	require.Equal(t, 1, stops)
	require.False(t, a.IsTouchingWall())
}

func TestDuplicateRegistration(t *testing.T) {
	w := newTestWorld(t)

	a := w.NewBox(gm.VecZero, 10, 10)
	b := w.NewBox(gm.VecOf(50, 0), 10, 10)
	c := w.NewBox(gm.VecOf(-50, 0), 10, 10)

	require.NoError(t, a.WhenTouching(Do(func() {}), b))

	// the pair is unordered
	err := b.WhenTouching(Do(func() {}), a)
	require.ErrorIs(t, err, ErrDuplicateRegistration)

	var dupErr *DuplicateRegistrationError
	require.ErrorAs(t, err, &dupErr)
	require.Equal(t, b.Id(), dupErr.Actor)
	require.Equal(t, a.Id(), dupErr.Other)

	// nothing is registered if one of the targets is rejected
	require.ErrorIs(t, a.WhenTouching(Do(func() {}), c, b), ErrDuplicateRegistration)
	require.Empty(t, w.registry.Lookup(a.Id(), WhenTouching)[1:])

	// the other phase is still free
	require.NoError(t, b.WhenStoppedTouching(Do(func() {}), a))

	require.Error(t, a.WhenTouching(Do(func() {}), a))
}

func TestClickAndRelease(t *testing.T) {
	w := newTestWorld(t)

	a := w.NewBox(gm.VecZero, 20, 20)
	b := w.NewBox(gm.VecOf(100, 0), 20, 20)

	var clicks, releasesA, releasesB, mouseClicks, mouseReleases int
	require.NoError(t, a.WhenClicked(counter(&clicks)))
	require.NoError(t, a.WhenClickReleased(counter(&releasesA)))
	require.NoError(t, b.WhenClickReleased(counter(&releasesB)))

	w.WhenMouseClicked(counter(&mouseClicks))
	w.WhenMouseReleased(counter(&mouseReleases))

	require.NoError(t, w.Tick(Input{Cursor: gm.VecOf(5, 5), ClickHappened: true, Pressed: true}))
	require.Equal(t, 1, clicks)
	require.Equal(t, 1, mouseClicks)
	require.True(t, a.IsClicked())

	require.NoError(t, w.Tick(Input{Cursor: gm.VecOf(5, 5), ClickReleaseHappened: true}))
	require.Equal(t, 1, releasesA)
	require.Equal(t, 1, mouseReleases)
	require.False(t, a.IsClicked())

	// released on an actor that was not clicked
	require.NoError(t, w.Tick(Input{Cursor: gm.VecOf(5, 5), ClickHappened: true, Pressed: true}))
	require.NoError(t, w.Tick(Input{Cursor: gm.VecOf(100, 0), ClickReleaseHappened: true}))
	require.Zero(t, releasesB)
	require.Equal(t, 1, releasesA)
}

func TestRepeatForever(t *testing.T) {
	w := newTestWorld(t)

	var frames int
	w.RepeatForever(counter(&frames))

	tick(t, w, 5)
	require.Equal(t, 5, frames)
	require.Equal(t, uint64(5), w.Frame())
	require.Equal(t, 5*w.Time().Delta, w.Time().Elapsed)
}

func TestTickIsNotReentrant(t *testing.T) {
	w := newTestWorld(t)

	var nested error
	w.RepeatForever(Do(func() { nested = w.Tick(Input{}) }))

	tick(t, w, 1)
	require.ErrorIs(t, nested, ErrTickInProgress)
}

func TestSetStableKeepsCallbacksForRealContact(t *testing.T) {
	w := newTestWorld(t)

	ball := w.NewBox(gm.VecOf(-100, 0), 20, 20)
	wall := w.NewBox(gm.VecZero, 20, 20)

	opts := DefaultPhysics()
	opts.XSpeed = 200
	require.NoError(t, ball.StartPhysics(opts))
	require.NoError(t, wall.StartPhysics(PhysicsOptions{CanMove: false, Bounciness: 1}))

	var touches, stops int
	require.NoError(t, ball.WhenTouching(counter(&touches), wall))
	require.NoError(t, ball.WhenStoppedTouching(counter(&stops), wall))

	// rebuilds the shape of the ball before the contact
	require.NoError(t, ball.SetStable(true))
	require.Equal(t, 200.0, ball.Velocity().X)

	tick(t, w, 60)

	require.Equal(t, 1, touches)
	require.Equal(t, 1, stops)
}

func TestResizeOfPhysicsTargetKeepsCallbacks(t *testing.T) {
	w := newTestWorld(t)

	ball := w.NewBox(gm.VecOf(-100, 0), 20, 20)
	wall := w.NewBox(gm.VecZero, 20, 20)

	opts := DefaultPhysics()
	opts.XSpeed = 200
	require.NoError(t, ball.StartPhysics(opts))
	require.NoError(t, wall.StartPhysics(PhysicsOptions{CanMove: false, Bounciness: 1}))

	var touches, stops int
	require.NoError(t, ball.WhenTouching(counter(&touches), wall))
	require.NoError(t, ball.WhenStoppedTouching(counter(&stops), wall))

	// the wall is a dependent target, its new shape must still be reported
	require.NoError(t, wall.SetSize(150))
	require.Equal(t, 30.0, wall.Width())

	tick(t, w, 60)

	require.Equal(t, 1, touches)
	require.Equal(t, 1, stops)
}

func TestPhysicsActorBouncesOffWalls(t *testing.T) {
	w := newTestWorld(t)

	ball := w.NewCircle(gm.VecZero, 10)

	opts := DefaultPhysics()
	opts.XSpeed = 400
	opts.ObeysGravity = false
	require.NoError(t, ball.StartPhysics(opts))

	var walls []WallSide
	record := func(ctx context.Context) error {
		ev, _ := EventOf(ctx)
		walls = append(walls, ev.Wall)
		return nil
	}

	var stops int
	require.NoError(t, ball.WhenTouchingWall(record))
	require.NoError(t, ball.WhenStoppedTouchingWall(counter(&stops)))

	// right wall after about one second, left wall after about three
	tick(t, w, 240)

	require.Equal(t, []WallSide{WallRight, WallLeft}, walls)
	require.Equal(t, 2, stops)
}

func TestPhysicsActorWallStopOnly(t *testing.T) {
	w := newTestWorld(t)

	ball := w.NewCircle(gm.VecOf(300, 0), 10)

	opts := DefaultPhysics()
	opts.XSpeed = 400
	require.NoError(t, ball.StartPhysics(opts))

	var stops int
	require.NoError(t, ball.WhenStoppedTouchingWall(counter(&stops), WallRight))

	tick(t, w, 30)

	require.Equal(t, 1, stops)
	require.Less(t, ball.X(), 300.0)
}
