//go:build ebiten

package app

import (
	"image/color"

	"forest-sim/internal/core"
	"forest-sim/internal/render"
	"forest-sim/internal/ui"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// fallbackPalette is used for simulations that do not provide colours.
var fallbackPalette = []color.RGBA{
	{A: 0},
	{R: 255, G: 255, B: 255, A: 255},
}

// Game adapts a core simulation to the ebiten.Game interface.
type Game struct {
	sim     core.Sim
	painter *render.GridPainter
	overlay *ui.Overlay
	hud     *ui.HUD

	palette    []color.RGBA
	background color.Color

	scale    int
	hudWidth int
	paused   bool
	tickOnce bool
	seed     int64
}

// New constructs a Game for the provided simulation.
func New(sim core.Sim, cfg *Config) *Game {
	size := sim.Size()
	scale := cfg.Scale
	if scale <= 0 {
		scale = 1
	}
	palette := fallbackPalette
	if p, ok := sim.(core.Paletted); ok {
		palette = p.Palette()
	}
	return &Game{
		sim:        sim,
		painter:    render.NewGridPainter(size.W, size.H),
		overlay:    ui.NewOverlay(sim, scale),
		hud:        ui.NewHUD(sim, cfg.HUDWidth),
		palette:    palette,
		background: color.Black,
		scale:      scale,
		hudWidth:   max(cfg.HUDWidth, 0),
		seed:       cfg.Seed,
	}
}

// Reset reinitializes the simulation state with the provided seed.
func (g *Game) Reset(seed int64) {
	g.seed = seed
	g.sim.Reset(seed)
	g.tickOnce = false
}

// Update handles per-frame logic and advances the simulation by one external
// tick.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		g.tickOnce = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		if c, ok := g.sim.(core.Clearer); ok {
			c.Clear()
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.Reset(g.seed)
	}

	g.overlay.Update()
	gridWidth := g.sim.Size().W * g.scale
	consumed := g.hud.Update(gridWidth)
	if !consumed && ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		g.ignite(ebiten.CursorPosition())
	}

	switch {
	case g.tickOnce:
		g.sim.Step()
		g.tickOnce = false
	case g.paused:
	default:
		if t, ok := g.sim.(core.Ticker); ok {
			t.Tick()
		} else {
			g.sim.Step()
		}
	}
	return nil
}

func (g *Game) ignite(mx, my int) {
	igniter, ok := g.sim.(core.Igniter)
	if !ok || mx < 0 || my < 0 {
		return
	}
	igniter.Ignite(mx/g.scale, my/g.scale)
}

// Draw renders the current simulation state.
func (g *Game) Draw(screen *ebiten.Image) {
	g.painter.Blit(screen, g.sim.Cells(), g.palette, g.background, g.scale)
	g.overlay.Draw(screen)
	g.hud.Draw(screen, g.sim.Size().W*g.scale, g.scale)
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return WindowSize(g.sim.Size(), g.scale, g.hudWidth)
}
