package render

import (
	"image/color"

	"github.com/gdamore/tcell/v2"
)

// upperHalf packs two grid rows into one terminal row: the foreground paints
// the upper cell and the background the lower one.
const upperHalf = '▀'

// TermPainter draws palette-indexed cells into a tcell screen.
type TermPainter struct {
	// Top is the first terminal row used for the grid.
	Top int
	// Background replaces fully transparent palette entries.
	Background tcell.Color
}

// NewTermPainter returns a painter that starts at the top row on black.
func NewTermPainter() *TermPainter {
	return &TermPainter{Background: tcell.ColorBlack}
}

// Rows returns the number of terminal rows a grid of height h occupies.
func (p *TermPainter) Rows(h int) int { return (h + 1) / 2 }

// Draw paints the w*h grid, clipped to the screen. It does not call Show.
func (p *TermPainter) Draw(screen tcell.Screen, cells []uint8, w, h int, palette []color.RGBA) {
	if len(cells) != w*h {
		return
	}
	sw, sh := screen.Size()
	cols := min(w, sw)
	rows := min(p.Rows(h), sh-p.Top)
	for row := 0; row < rows; row++ {
		upperY := row * 2
		lowerY := upperY + 1
		for x := 0; x < cols; x++ {
			fg := p.termColor(paletteColor(palette, cells[upperY*w+x]))
			bg := p.Background
			if lowerY < h {
				bg = p.termColor(paletteColor(palette, cells[lowerY*w+x]))
			}
			style := tcell.StyleDefault.Foreground(fg).Background(bg)
			screen.SetContent(x, p.Top+row, upperHalf, nil, style)
		}
	}
}

func (p *TermPainter) termColor(c color.RGBA) tcell.Color {
	if c.A == 0 {
		return p.Background
	}
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}
