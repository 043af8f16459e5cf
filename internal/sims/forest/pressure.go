package forest

// Pressure returns the ignition pressure at (x, y): the strongest fire
// intensity among the up to eight neighbours on the grid. Diagonal neighbours
// are attenuated by 1/sqrt(2). Neighbours off the grid do not exist, and a
// coordinate off the grid has no pressure.
func Pressure(v View, x, y int) float64 {
	g := v.grid()
	if !g.InBounds(x, y) {
		return 0
	}
	w, h := g.W, g.H
	cells := g.Cells()
	center := y*w + x

	best := 0.0
	take := func(idx int, weight float64) {
		if p := cells[idx].Intensity() * weight; p > best {
			best = p
		}
	}

	if x > 0 {
		take(center-1, 1)
	}
	if x+1 < w {
		take(center+1, 1)
	}
	if y > 0 {
		up := center - w
		take(up, 1)
		if x > 0 {
			take(up-1, diagonalWeight)
		}
		if x+1 < w {
			take(up+1, diagonalWeight)
		}
	}
	if y+1 < h {
		down := center + w
		take(down, 1)
		if x > 0 {
			take(down-1, diagonalWeight)
		}
		if x+1 < w {
			take(down+1, diagonalWeight)
		}
	}
	return best
}
