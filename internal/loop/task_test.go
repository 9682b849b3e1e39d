package loop

import (
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

func TestTaskEndsWhenTickReturnsFalse(t *testing.T) {
	ticks := make(chan time.Time, 10)
	for i := 0; i < 5; i++ {
		ticks <- time.Unix(int64(i), 0)
	}

	task := NewTask(time.Millisecond, WithTicks(ticks))
	calls := 0
	err := task.Start(func(time.Time) bool {
		calls++
		return calls < 3
	})
	if err != nil {
		t.Fatalf("Start() failed: %v", err)
	}

	select {
	case <-task.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("task did not finish")
	}

	if task.Ticks() != 3 {
		t.Errorf("Ticks() = %d, expected 3", task.Ticks())
	}
}

func TestTaskStopWaitsForInFlightTick(t *testing.T) {
	ticks := make(chan time.Time, 4)
	entered := make(chan struct{})
	release := make(chan struct{})

	task := NewTask(time.Millisecond, WithTicks(ticks))
	if err := task.Start(func(time.Time) bool {
		if task.Ticks() == 1 {
			close(entered)
			<-release
		}
		return true
	}); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}

	ticks <- time.Now()
	<-entered

	stopped := make(chan struct{})
	go func() {
		task.Stop()
		close(stopped)
	}()

	select {
	case <-stopped:
		t.Fatal("Stop returned while a tick was still running")
	case <-time.After(50 * time.Millisecond):
	}

	// A tick queued before teardown must never run against the torn-down state.
	ticks <- time.Now()
	close(release)

	select {
	case <-stopped:
	case <-time.After(2 * time.Second):
		t.Fatal("Stop did not return after the tick finished")
	}

	if task.Ticks() != 1 {
		t.Errorf("Ticks() = %d after Stop, expected 1", task.Ticks())
	}
}

func TestTaskTicksNeverOverlap(t *testing.T) {
	task := NewTask(time.Millisecond)

	var active, overlaps atomic.Int32
	if err := task.Start(func(time.Time) bool {
		if active.Add(1) > 1 {
			overlaps.Add(1)
		}
		time.Sleep(2 * time.Millisecond)
		active.Add(-1)
		return true
	}); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}

	time.Sleep(30 * time.Millisecond)
	task.Stop()

	if overlaps.Load() != 0 {
		t.Errorf("detected %d overlapping ticks", overlaps.Load())
	}
	if task.Ticks() == 0 {
		t.Error("expected at least one tick to run")
	}
}

func TestTaskStartTwice(t *testing.T) {
	task := NewTask(time.Hour)
	defer task.Stop()

	if err := task.Start(func(time.Time) bool { return true }); err != nil {
		t.Fatalf("first Start() failed: %v", err)
	}
	err := task.Start(func(time.Time) bool { return true })
	if !errors.Is(err, ErrAlreadyStarted) {
		t.Errorf("second Start() error = %v, expected ErrAlreadyStarted", err)
	}
}

func TestTaskStopBeforeStart(t *testing.T) {
	task := NewTask(time.Millisecond)
	task.Stop()
	task.Stop() // idempotent

	select {
	case <-task.Done():
	default:
		t.Error("Done should be closed after Stop on an unstarted task")
	}
}

func TestClockRejectsStaleGenerations(t *testing.T) {
	c := NewClock(RateInterval(60))

	if c.Accept(Tick{Gen: 0}) {
		t.Error("stopped clock should reject ticks")
	}

	first := c.Start()
	if !c.Accept(Tick{Gen: first}) {
		t.Error("running clock should accept its own generation")
	}

	c.Stop()
	if c.Accept(Tick{Gen: first}) {
		t.Error("tick scheduled before Stop should be rejected")
	}

	second := c.Start()
	if second == first {
		t.Fatal("restart should produce a new generation")
	}
	if c.Accept(Tick{Gen: first}) {
		t.Error("stale tick from the previous session should be rejected after restart")
	}
	if !c.Accept(Tick{Gen: second}) {
		t.Error("tick of the new session should be accepted")
	}
}

func TestRateInterval(t *testing.T) {
	if RateInterval(0) != time.Second/60 {
		t.Errorf("RateInterval(0) = %v, expected 60 Hz", RateInterval(0))
	}
	if RateInterval(10) != 100*time.Millisecond {
		t.Errorf("RateInterval(10) = %v, expected 100ms", RateInterval(10))
	}
}
