package app

import (
	"forest-sim/internal/core"
	"forest-sim/internal/ui"
)

// WindowSize returns the logical window size for a grid drawn at scale with a
// parameter panel hudWidth pixels wide to its right.
func WindowSize(size core.Size, scale, hudWidth int) (int, int) {
	if scale <= 0 {
		scale = 1
	}
	w := size.W * scale
	h := size.H * scale
	if hudWidth > 0 {
		w += hudWidth
		h = max(h, ui.MinPanelHeight)
	}
	return w, h
}
