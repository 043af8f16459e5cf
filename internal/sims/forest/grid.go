package forest

import "forest-sim/internal/core"

// View is a read-only window onto the current generation. It resolves the
// active buffer on every access, so it never exposes a stale generation or
// the write target of a pass.
type View struct {
	b *buffers
}

func (v View) grid() *core.Grid[State] { return v.b.current() }

// Width returns the number of columns.
func (v View) Width() int { return v.grid().W }

// Height returns the number of rows.
func (v View) Height() int { return v.grid().H }

// InBounds reports whether (x, y) lies on the grid.
func (v View) InBounds(x, y int) bool { return v.grid().InBounds(x, y) }

// At returns the state at (x, y), or Empty outside the grid.
func (v View) At(x, y int) State {
	g := v.grid()
	if !g.InBounds(x, y) {
		return Empty
	}
	return g.At(x, y)
}

// Snapshot copies the grid in row-major order.
func (v View) Snapshot() []State {
	return append([]State(nil), v.grid().Cells()...)
}

// buffers is the ping-pong pair behind the grid store. The buffer at active
// is the current generation; the other one is the write target of a pass.
type buffers struct {
	grids  [2]*core.Grid[State]
	active int
}

func newBuffers(w, h int) buffers {
	return buffers{grids: [2]*core.Grid[State]{
		core.NewGrid[State](w, h),
		core.NewGrid[State](w, h),
	}}
}

func (b *buffers) current() *core.Grid[State] { return b.grids[b.active] }

func (b *buffers) next() *core.Grid[State] { return b.grids[1-b.active] }

func (b *buffers) view() View { return View{b: b} }

func (b *buffers) swap() { b.active = 1 - b.active }

func (b *buffers) clear() { b.current().Fill(Empty) }
