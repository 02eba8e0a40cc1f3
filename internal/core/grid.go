package core

// ByteGrid stores an unpacked 2D grid of byte-sized cell values in row-major
// order. Kernels never step it directly; it backs the reference kernel and
// verification against the packed layout.
type ByteGrid struct {
	W, H int
	data []uint8
}

// NewByteGrid allocates a grid with the given dimensions.
func NewByteGrid(w, h int) *ByteGrid {
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}
	return &ByteGrid{W: w, H: h, data: make([]uint8, w*h)}
}

// Cells exposes the backing slice so callers can read/write values directly.
func (g *ByteGrid) Cells() []uint8 { return g.data }

// Alive reports whether the cell at column x and row y is non-zero.
func (g *ByteGrid) Alive(x, y int) bool { return g.data[y*g.W+x] != 0 }
