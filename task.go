package play

import (
	"context"
	"errors"
	"fmt"
	"time"
)

type taskContextKey struct{}

type eventContextKey struct{}

// Event describes what triggered a handler.
type Event struct {
	Kind  Kind
	Actor *Actor

	// the other actor of a touching event
	Other *Actor

	// the wall of a wall event
	Wall WallSide
}

// EventOf returns the event that triggered the currently running handler.
func EventOf(ctx context.Context) (Event, bool) {
	ev, ok := ctx.Value(eventContextKey{}).(Event)
	return ev, ok
}

type taskResult struct {
	err      error
	panicked bool
	panicVal any
}

// task is a handler invocation running on its own goroutine. Control is handed
// back and forth with the frame driver, so that only one of them runs at a time.
type task struct {
	callback  *Callback
	scheduler *scheduler

	resume chan struct{}
	yield  chan struct{}
	done   chan taskResult
}

type scheduler struct {
	ctx    context.Context
	cancel context.CancelFunc

	// advanced by the frame driver
	time VirtualTime

	suspended []*task
}

func newScheduler() *scheduler {
	ctx, cancel := context.WithCancel(context.Background())
	return &scheduler{ctx: ctx, cancel: cancel}
}

// Run invokes the callback. If the callback is still running from an earlier
// invocation, the trigger is skipped. Run returns once the handler finished or
// suspended itself.
func (s *scheduler) Run(cb *Callback, ev Event) error {
	if cb == nil || cb.running {
		return nil
	}

	if s.ctx.Err() != nil {
		return nil
	}

	t := &task{
		callback:  cb,
		scheduler: s,
		resume:    make(chan struct{}),
		yield:     make(chan struct{}),
		done:      make(chan taskResult, 1),
	}

	ctx := context.WithValue(s.ctx, taskContextKey{}, t)
	ctx = context.WithValue(ctx, eventContextKey{}, ev)

	cb.running = true

	go t.run(ctx)

	return s.await(t)
}

// ResumeAll continues every suspended task for one frame.
func (s *scheduler) ResumeAll() error {
	tasks := s.suspended
	s.suspended = nil

	var errs []error
	for _, t := range tasks {
		t.resume <- struct{}{}

		if err := s.await(t); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

// Pending returns the number of suspended tasks.
func (s *scheduler) Pending() int {
	return len(s.suspended)
}

// Close cancels all suspended tasks and waits for them to return.
func (s *scheduler) Close() {
	s.cancel()

	tasks := s.suspended
	s.suspended = nil

	for _, t := range tasks {
		// wakes up in NextFrame with a cancelled context
		close(t.resume)

		res := <-t.done
		t.callback.running = false

		if res.panicked {
			panic(res.panicVal)
		}
	}
}

func (s *scheduler) await(t *task) error {
	select {
	case <-t.yield:
		s.suspended = append(s.suspended, t)
		return nil

	case res := <-t.done:
		t.callback.running = false

		if res.panicked {
			// re-raise on the driver goroutine
			panic(res.panicVal)
		}

		if res.err != nil {
			return fmt.Errorf("%s callback: %w", t.callback.Kind, res.err)
		}

		return nil
	}
}

func (t *task) run(ctx context.Context) {
	var res taskResult

	defer func() {
		if r := recover(); r != nil {
			res = taskResult{panicked: true, panicVal: r}
		}

		t.done <- res
	}()

	res.err = t.callback.Handler(ctx)
}

func taskOf(ctx context.Context) *task {
	t, _ := ctx.Value(taskContextKey{}).(*task)
	return t
}

// NextFrame suspends the calling handler until the next tick of the world.
// It must be called with the context passed to the handler.
func NextFrame(ctx context.Context) error {
	t := taskOf(ctx)
	if t == nil {
		return ErrNotInHandler
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	// hand control back to the driver and wait for the next frame
	t.yield <- struct{}{}
	<-t.resume

	return ctx.Err()
}

// Sleep suspends the calling handler for at least the given duration of
// world time. The handler continues in the first tick after the time elapsed.
func Sleep(ctx context.Context, duration time.Duration) error {
	t := taskOf(ctx)
	if t == nil {
		return ErrNotInHandler
	}

	deadline := t.scheduler.time.Elapsed + duration

	for t.scheduler.time.Elapsed < deadline {
		if err := NextFrame(ctx); err != nil {
			return err
		}
	}

	return nil
}
