package main

import (
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"

	"forest-sim/internal/core"
	"forest-sim/internal/render"
	"forest-sim/internal/sims/forest"
)

const (
	minTPS = 1
	maxTPS = 480
)

var statusStyle = tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorDarkSlateGray)

// viewer owns the forest and draws it into a terminal screen. All methods run
// on the event loop goroutine.
type viewer struct {
	screen  tcell.Screen
	forest  *forest.Forest
	painter *render.TermPainter
	clock   *core.FixedStep
	tps     int
	paused  bool
}

func newViewer(screen tcell.Screen, f *forest.Forest, tps int) *viewer {
	painter := render.NewTermPainter()
	painter.Top = 1
	return &viewer{
		screen:  screen,
		forest:  f,
		painter: painter,
		clock:   core.NewFixedStep(tps),
		tps:     max(tps, minTPS),
	}
}

// run polls events and advances the forest until the user quits.
func (v *viewer) run() {
	ticker := time.NewTicker(16 * time.Millisecond)
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := v.screen.PollEvent()
			if ev == nil {
				close(eventChan)
				return
			}
			eventChan <- ev
		}
	}()

	v.draw()
	for {
		select {
		case ev, ok := <-eventChan:
			if !ok || !v.handleInput(ev) {
				return
			}
			v.draw()
		case <-ticker.C:
			v.advance()
			v.draw()
		}
	}
}

// advance runs the external ticks that are due.
func (v *viewer) advance() {
	n := v.clock.Due()
	if v.paused {
		return
	}
	for ; n > 0; n-- {
		v.forest.Tick()
	}
}

// handleInput applies one event. It returns false when the viewer should exit.
func (v *viewer) handleInput(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
			return false
		}
		if ev.Key() != tcell.KeyRune {
			return true
		}
		switch ev.Rune() {
		case 'q':
			return false
		case ' ':
			v.paused = !v.paused
		case 'n':
			v.forest.Step()
		case 'c':
			v.forest.Clear()
		case 'r':
			v.forest.Reset(0)
		case '+', '=':
			v.setTPS(v.tps * 2)
		case '-':
			v.setTPS(v.tps / 2)
		case 'i':
			size := v.forest.Size()
			v.forest.Ignite(size.W/2, size.H/2)
		}
	case *tcell.EventMouse:
		if ev.Buttons()&tcell.Button1 != 0 {
			x, y := ev.Position()
			row := y - v.painter.Top
			if row >= 0 {
				v.forest.Ignite(x, row*2)
			}
		}
	case *tcell.EventResize:
		v.screen.Sync()
	}
	return true
}

func (v *viewer) setTPS(tps int) {
	v.tps = min(max(tps, minTPS), maxTPS)
	v.clock.SetTPS(v.tps)
}

func (v *viewer) draw() {
	v.screen.Clear()
	size := v.forest.Size()
	v.painter.Draw(v.screen, v.forest.Cells(), size.W, size.H, v.forest.Palette())
	v.drawStatus()
	v.screen.Show()
}

func (v *viewer) drawStatus() {
	census := v.forest.Census()
	status := fmt.Sprintf(" gen %d  trees %.1f%%  burning %d  tps %d  spread %.2f",
		census.Generation, 100*census.TreeCover(), census.Burning(), v.tps, v.forest.SpreadChance())
	if v.paused {
		status += "  [paused]"
	}
	w, _ := v.screen.Size()
	col := 0
	for _, r := range status {
		if col >= w {
			break
		}
		v.screen.SetContent(col, 0, r, nil, statusStyle)
		col++
	}
	for ; col < w; col++ {
		v.screen.SetContent(col, 0, ' ', nil, statusStyle)
	}
}
