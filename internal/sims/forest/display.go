package forest

import "image/color"

var forestPalette = buildForestPalette()

// Palette exposes the color palette indexed by State for rendering.
func (f *Forest) Palette() []color.RGBA {
	return forestPalette
}

// PaletteColor returns the display color of s.
func PaletteColor(s State) color.RGBA {
	if !s.Valid() {
		return color.RGBA{}
	}
	return forestPalette[s]
}

func buildForestPalette() []color.RGBA {
	green := color.RGBA{R: 0, G: 255, B: 0, A: 255}
	red := color.RGBA{R: 255, G: 0, B: 0, A: 255}

	palette := make([]color.RGBA, stateCount)
	palette[Empty] = color.RGBA{}
	palette[Sapling] = dim(green, 0.25)
	palette[YoungTree] = dim(green, 0.5)
	palette[MatureTree] = green
	palette[Ignite] = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	palette[Flame2] = color.RGBA{R: 255, G: 255, B: 0, A: 255}
	palette[Flame3] = color.RGBA{R: 255, G: 165, B: 0, A: 255}
	palette[Flame4] = red
	palette[Ember1] = dim(red, 0.5)
	palette[Ember2] = dim(red, 0.25)
	palette[Ash] = color.RGBA{R: 160, G: 160, B: 160, A: 255}
	palette[Char] = color.RGBA{R: 0, G: 0, B: 0, A: 255}
	return palette
}

// dim scales every channel, alpha included, so dimmer states also fade
// towards the background.
func dim(c color.RGBA, factor float64) color.RGBA {
	scale := func(v uint8) uint8 { return uint8(float64(v)*factor + 0.5) }
	return color.RGBA{R: scale(c.R), G: scale(c.G), B: scale(c.B), A: scale(c.A)}
}
