// Package loop schedules repeating simulation ticks.
//
// Task drives a tick function from its own goroutine at a fixed interval.
// Clock provides the same start/stop contract for message-driven runtimes
// such as Bubble Tea, where ticks arrive as messages that may outlive the
// session that scheduled them.
package loop

import (
	"errors"
	"sync"
	"sync/atomic"
	"time"
)

// ErrAlreadyStarted is returned when Start is called twice on the same Task.
var ErrAlreadyStarted = errors.New("loop: task already started")

// TickFunc advances one tick. Returning false ends the task; the function
// will not be invoked again.
type TickFunc func(now time.Time) bool

// Task is a cancellable repeating task. Ticks never overlap and each runs to
// completion before the next one is scheduled. A Task runs at most once;
// create a new Task for a new session.
type Task struct {
	interval time.Duration
	ticks    <-chan time.Time
	stopTick func()

	// mu is held for the whole duration of a tick so Stop can wait it out.
	mu      sync.Mutex
	stopped atomic.Bool

	started  atomic.Bool
	count    atomic.Uint64
	stopCh   chan struct{}
	stopOnce sync.Once
	done     chan struct{}
	doneOnce sync.Once
}

// Option configures a Task.
type Option func(*Task)

// WithTicks replaces the wall-clock ticker with the given channel.
// Used by tests and by callers that already own a clock.
func WithTicks(c <-chan time.Time) Option {
	return func(t *Task) {
		t.ticks = c
	}
}

// NewTask creates a task that ticks every interval once started.
func NewTask(interval time.Duration, opts ...Option) *Task {
	t := &Task{
		interval: interval,
		stopCh:   make(chan struct{}),
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Start begins ticking fn on a new goroutine.
func (t *Task) Start(fn TickFunc) error {
	if !t.started.CompareAndSwap(false, true) {
		return ErrAlreadyStarted
	}

	if t.ticks == nil {
		ticker := time.NewTicker(t.interval)
		t.ticks = ticker.C
		t.stopTick = ticker.Stop
	}

	go t.run(fn)
	return nil
}

func (t *Task) run(fn TickFunc) {
	defer t.finish()

	for {
		select {
		case <-t.stopCh:
			return
		case now, ok := <-t.ticks:
			if !ok || !t.tick(now, fn) {
				return
			}
		}
	}
}

// tick runs fn under mu unless the task was stopped while the tick was pending.
func (t *Task) tick(now time.Time, fn TickFunc) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.stopped.Load() {
		return false
	}
	t.count.Add(1)
	if !fn(now) {
		t.stopped.Store(true)
		return false
	}
	return true
}

func (t *Task) finish() {
	if t.stopTick != nil {
		t.stopTick()
	}
	t.doneOnce.Do(func() { close(t.done) })
}

// Stop cancels the task. When Stop returns no tick is running and no further
// tick will run. Stop is idempotent. It must not be called from inside the
// tick function; return false from the tick instead.
func (t *Task) Stop() {
	t.stopOnce.Do(func() {
		// Flag first so a tick racing for mu bails out, then wait out the
		// one that may hold it.
		t.stopped.Store(true)
		t.mu.Lock()
		t.mu.Unlock()
		close(t.stopCh)
	})

	if !t.started.Load() {
		t.doneOnce.Do(func() { close(t.done) })
		return
	}
	<-t.done
}

// Done is closed once the task has ended, either stopped or finished.
func (t *Task) Done() <-chan struct{} {
	return t.done
}

// Ticks returns how many ticks have run.
func (t *Task) Ticks() uint64 {
	return t.count.Load()
}
