package render

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
)

// Image converts a w*h row-major cell buffer into an RGBA image.
func Image(cells []uint8, w, h int, palette []color.RGBA) (*image.RGBA, error) {
	if w <= 0 || h <= 0 || len(cells) != w*h {
		return nil, fmt.Errorf("render: %d cells do not fill a %dx%d grid", len(cells), w, h)
	}
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	fillPaletteRGBA(img.Pix, cells, palette)
	return img, nil
}

// WritePNG renders the cells and writes them to path as a PNG.
func WritePNG(path string, cells []uint8, w, h int, palette []color.RGBA) error {
	img, err := Image(cells, w, h, palette)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	return f.Close()
}
