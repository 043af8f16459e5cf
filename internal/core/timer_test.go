package core

import (
	"testing"
	"time"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time { return c.t }

func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func TestFixedStepFirstTickImmediate(t *testing.T) {
	clock := &fakeClock{t: time.Unix(100, 0)}
	fs := newFixedStep(10, clock.now)

	if !fs.ShouldStep() {
		t.Fatal("first call should report a due tick")
	}
	if fs.ShouldStep() {
		t.Fatal("no time elapsed, no further tick expected")
	}

	clock.advance(50 * time.Millisecond)
	if fs.ShouldStep() {
		t.Fatal("half an interval should not produce a tick")
	}
	clock.advance(50 * time.Millisecond)
	if !fs.ShouldStep() {
		t.Fatal("a full interval should produce a tick")
	}
}

func TestFixedStepDueCatchUp(t *testing.T) {
	clock := &fakeClock{t: time.Unix(100, 0)}
	fs := newFixedStep(100, clock.now)
	if got := fs.Due(); got != 1 {
		t.Fatalf("expected the primed tick, got %d", got)
	}

	clock.advance(35 * time.Millisecond)
	if got := fs.Due(); got != 3 {
		t.Fatalf("expected 3 ticks after 35ms at 100tps, got %d", got)
	}

	clock.advance(5 * time.Millisecond)
	if got := fs.Due(); got != 1 {
		t.Fatalf("remainder should carry over, got %d ticks", got)
	}

	clock.advance(10 * time.Second)
	if got := fs.Due(); got != maxCatchUp {
		t.Fatalf("stall should cap at %d ticks, got %d", maxCatchUp, got)
	}
	if got := fs.Due(); got != 0 {
		t.Fatalf("backlog should be dropped after a stall, got %d", got)
	}
}

func TestFixedStepDefaultsInvalidRate(t *testing.T) {
	fs := NewFixedStep(0)
	if fs.Interval() != time.Second/60 {
		t.Fatalf("expected 60tps fallback, got interval %v", fs.Interval())
	}
}
