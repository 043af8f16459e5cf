package render

import "image/color"

// fillPaletteRGBA converts cell values into RGBA pixels using a palette. When
// the palette is empty the buffer is cleared to transparent black. Values past
// the end of the palette take its last color.
func fillPaletteRGBA(buf []byte, cells []uint8, palette []color.RGBA) {
	if len(palette) == 0 {
		clear(buf[:4*len(cells)])
		return
	}

	last := len(palette) - 1
	for i, c := range cells {
		idx := int(c)
		if idx > last {
			idx = last
		}
		base := i * 4
		col := palette[idx]
		buf[base+0] = col.R
		buf[base+1] = col.G
		buf[base+2] = col.B
		buf[base+3] = col.A
	}
}

// paletteColor looks up value in palette with the same fallback rules as
// fillPaletteRGBA.
func paletteColor(palette []color.RGBA, value uint8) color.RGBA {
	if len(palette) == 0 {
		return color.RGBA{}
	}
	idx := int(value)
	if idx >= len(palette) {
		idx = len(palette) - 1
	}
	return palette[idx]
}
