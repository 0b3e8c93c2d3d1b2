package play

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/oliverbestmann/play/gm"
	"github.com/stretchr/testify/require"
)

func TestRunningHandlerIsSkipped(t *testing.T) {
	w := newTestWorld(t)

	var starts int
	w.RepeatForever(func(ctx context.Context) error {
		starts += 1

		for range 3 {
			if err := NextFrame(ctx); err != nil {
				return err
			}
		}

		return nil
	})

	tick(t, w, 3)
	require.Equal(t, 1, starts)
	require.Equal(t, 1, w.scheduler.Pending())

	// the fourth frame finishes the first run and starts the next one
	tick(t, w, 1)
	require.Equal(t, 2, starts)
}

func TestSleepUsesWorldTime(t *testing.T) {
	config := DefaultConfig()
	config.FrameRate = 10

	w, err := NewWorld(WithConfig(config))
	require.NoError(t, err)
	t.Cleanup(w.Close)

	var done bool
	w.WhenMouseClicked(func(ctx context.Context) error {
		if err := Sleep(ctx, 500*time.Millisecond); err != nil {
			return err
		}

		done = true
		return nil
	})

	require.NoError(t, w.Tick(Input{ClickHappened: true}))

	tick(t, w, 4)
	require.False(t, done)

	tick(t, w, 1)
	require.True(t, done)
}

func TestHandlerErrorIsReturned(t *testing.T) {
	w := newTestWorld(t)

	errBoom := errors.New("boom")
	w.WhenMouseClicked(func(ctx context.Context) error {
		return errBoom
	})

	err := w.Tick(Input{ClickHappened: true})
	require.ErrorIs(t, err, errBoom)
	require.ErrorContains(t, err, "when_mouse_clicked callback")

	// the next frame runs fine
	require.NoError(t, w.Tick(Input{}))
}

func TestHandlerErrorAfterSuspend(t *testing.T) {
	w := newTestWorld(t)

	errLater := errors.New("later")
	w.WhenMouseClicked(func(ctx context.Context) error {
		if err := NextFrame(ctx); err != nil {
			return err
		}

		return errLater
	})

	require.NoError(t, w.Tick(Input{ClickHappened: true}))
	require.ErrorIs(t, w.Tick(Input{}), errLater)
}

func TestHandlerPanicIsReraised(t *testing.T) {
	w := newTestWorld(t)

	w.WhenMouseClicked(Do(func() { panic("oops") }))

	require.PanicsWithValue(t, "oops", func() {
		_ = w.Tick(Input{ClickHappened: true})
	})
}

func TestNextFrameOutsideHandler(t *testing.T) {
	require.ErrorIs(t, NextFrame(context.Background()), ErrNotInHandler)
	require.ErrorIs(t, Sleep(context.Background(), time.Second), ErrNotInHandler)
}

func TestCloseCancelsSuspendedHandlers(t *testing.T) {
	w := newTestWorld(t)

	var result error
	w.WhenMouseClicked(func(ctx context.Context) error {
		result = Sleep(ctx, time.Hour)
		return result
	})

	require.NoError(t, w.Tick(Input{ClickHappened: true}))
	require.Equal(t, 1, w.scheduler.Pending())

	w.Close()
	require.ErrorIs(t, result, context.Canceled)
	require.Zero(t, w.scheduler.Pending())
}

func TestEventOf(t *testing.T) {
	w := newTestWorld(t)

	a := w.NewBox(gm.VecZero, 10, 10)

	var observed Event
	require.NoError(t, a.WhenClicked(func(ctx context.Context) error {
		observed, _ = EventOf(ctx)
		return nil
	}))

	require.NoError(t, w.Tick(Input{ClickHappened: true}))
	require.Equal(t, WhenClicked, observed.Kind)
	require.Same(t, a, observed.Actor)
}
