package main

import (
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"

	"forest-sim/internal/sims/forest"
)

func newTestViewer(t *testing.T) (*viewer, tcell.SimulationScreen) {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("init: %v", err)
	}
	t.Cleanup(screen.Fini)
	screen.SetSize(80, 6)

	w, h := fitGrid(screen, 0, 0)
	if w != 80 || h != 10 {
		t.Fatalf("fitGrid = %dx%d, want 80x10", w, h)
	}
	cfg := forest.DefaultConfig().WithSeed(4)
	cfg.Width, cfg.Height = w, h
	f, err := forest.NewWithConfig(cfg)
	if err != nil {
		t.Fatal(err)
	}
	return newViewer(screen, f, 30), screen
}

func key(r rune) *tcell.EventKey {
	return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)
}

func statusLine(screen tcell.SimulationScreen) string {
	w, _ := screen.Size()
	var sb strings.Builder
	for x := 0; x < w; x++ {
		r, _, _, _ := screen.GetContent(x, 0)
		sb.WriteRune(r)
	}
	return sb.String()
}

func TestViewerKeys(t *testing.T) {
	v, _ := newTestViewer(t)

	if !v.handleInput(key('n')) || v.forest.Generation() != 1 {
		t.Fatalf("n should step once, generation=%d", v.forest.Generation())
	}

	v.handleInput(key(' '))
	if !v.paused {
		t.Fatal("space should pause")
	}

	v.handleInput(key('+'))
	if v.tps != 60 {
		t.Fatalf("+ should double the rate, got %d", v.tps)
	}
	for i := 0; i < 12; i++ {
		v.handleInput(key('-'))
	}
	if v.tps != minTPS {
		t.Fatalf("- should bottom out at %d, got %d", minTPS, v.tps)
	}

	v.handleInput(key('i'))
	if v.forest.Current().At(40, 5) != forest.Ignite {
		t.Fatal("i should ignite the centre")
	}
	v.handleInput(key('c'))
	if v.forest.Census().Count(forest.Empty) != 800 {
		t.Fatal("c should clear the grid")
	}

	v.handleInput(key('r'))
	if v.forest.Generation() != 0 {
		t.Fatal("r should reset the generation counter")
	}

	if v.handleInput(key('q')) {
		t.Fatal("q should quit")
	}
	if v.handleInput(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone)) {
		t.Fatal("escape should quit")
	}
}

func TestViewerMouseIgnites(t *testing.T) {
	v, _ := newTestViewer(t)
	v.handleInput(tcell.NewEventMouse(7, 3, tcell.Button1, tcell.ModNone))
	// Terminal row 3 is grid row (3-1)*2 = 4.
	if v.forest.Current().At(7, 4) != forest.Ignite {
		t.Fatal("click should ignite the upper cell of the row")
	}
	v.handleInput(tcell.NewEventMouse(7, 0, tcell.Button1, tcell.ModNone))
	if v.forest.Census().Burning() != 1 {
		t.Fatal("clicks on the status row should be ignored")
	}
}

func TestViewerPausedDoesNotAdvance(t *testing.T) {
	v, _ := newTestViewer(t)
	v.paused = true
	v.advance()
	if v.forest.Generation() != 0 {
		t.Fatal("paused viewer should not advance")
	}

	v, _ = newTestViewer(t)
	v.advance()
	if v.forest.Generation() != 1 {
		t.Fatalf("first advance should run the immediate tick, generation=%d", v.forest.Generation())
	}
}

func TestViewerDrawsStatus(t *testing.T) {
	v, screen := newTestViewer(t)
	v.paused = true
	v.draw()
	status := statusLine(screen)
	if !strings.Contains(status, "gen 0") || !strings.Contains(status, "[paused]") {
		t.Fatalf("unexpected status line %q", status)
	}
}
