package core

import (
	"fmt"
	"math/bits"
	"strings"
)

const (
	// WordBits is the number of cells packed into one storage word.
	WordBits = 32
	// MaxCells bounds the cell count of a single grid. Below it, allocation
	// is left to the runtime, which aborts rather than failing when the host
	// runs out of memory.
	MaxCells = 1 << 34
)

// BitGrid stores a 2D boolean grid packed 32 cells per word, row-major. Bit b
// of word (row, col) is the cell at absolute column col*32+b.
type BitGrid struct {
	width, height int
	gridWidth     int
	words         []uint32
}

// NewBitGrid allocates a cleared grid. The width must be a positive multiple of
// WordBits.
func NewBitGrid(width, height int) (*BitGrid, error) {
	if width <= 0 || height <= 0 || width%WordBits != 0 {
		return nil, fmt.Errorf("%dx%d: %w", width, height, ErrInvalidDimensions)
	}
	if uint64(width)*uint64(height) > MaxCells {
		return nil, fmt.Errorf("%dx%d exceeds %d cells: %w", width, height, uint64(MaxCells), ErrAllocation)
	}
	gw := width / WordBits
	return &BitGrid{width: width, height: height, gridWidth: gw, words: make([]uint32, gw*height)}, nil
}

// Width returns the number of columns.
func (g *BitGrid) Width() int { return g.width }

// Height returns the number of rows.
func (g *BitGrid) Height() int { return g.height }

// GridWidth returns the number of words per row.
func (g *BitGrid) GridWidth() int { return g.gridWidth }

// Size reports the cell dimensions.
func (g *BitGrid) Size() Size { return Size{W: g.width, H: g.height} }

// Words exposes the packed backing slice. Renderers read it; kernels write it.
func (g *BitGrid) Words() []uint32 { return g.words }

// Index returns the linear word index for (row, wordIndex).
func (g *BitGrid) Index(row, wordIndex int) int { return row*g.gridWidth + wordIndex }

// InBounds reports whether (row, col) addresses a cell of the grid.
func (g *BitGrid) InBounds(row, col int) bool {
	return row >= 0 && row < g.height && col >= 0 && col < g.width
}

// Interior reports whether (row, col) lies in a word a kernel updates.
func (g *BitGrid) Interior(row, col int) bool {
	w := col / WordBits
	return row >= 1 && row < g.height-1 && col >= 0 && w >= 1 && w < g.gridWidth-1
}

// Get returns the state of a cell. It panics with a *BoundsError outside the grid.
func (g *BitGrid) Get(row, col int) bool {
	g.check(row, col)
	return g.words[row*g.gridWidth+col/WordBits]>>(uint(col)%WordBits)&1 == 1
}

// Set changes a single cell and leaves every other bit untouched.
func (g *BitGrid) Set(row, col int, alive bool) {
	g.check(row, col)
	i := row*g.gridWidth + col/WordBits
	mask := uint32(1) << (uint(col) % WordBits)
	if alive {
		g.words[i] |= mask
	} else {
		g.words[i] &^= mask
	}
}

// WordAt returns the raw packed word at (row, wordIndex).
func (g *BitGrid) WordAt(row, wordIndex int) uint32 {
	if row < 0 || row >= g.height || wordIndex < 0 || wordIndex >= g.gridWidth {
		panic(&BoundsError{Row: row, Col: wordIndex, Rows: g.height, Cols: g.gridWidth, Word: true})
	}
	return g.words[row*g.gridWidth+wordIndex]
}

func (g *BitGrid) check(row, col int) {
	if !g.InBounds(row, col) {
		panic(&BoundsError{Row: row, Col: col, Rows: g.height, Cols: g.width})
	}
}

// Clear zeroes every word.
func (g *BitGrid) Clear() {
	clear(g.words)
}

// Randomize fills words with pseudorandom bits. With excludeBorder the border
// rows and word columns are left at zero.
func (g *BitGrid) Randomize(rng *RNG, excludeBorder bool) {
	if !excludeBorder {
		for i := range g.words {
			g.words[i] = rng.Uint32()
		}
		return
	}
	g.Clear()
	for y := 1; y < g.height-1; y++ {
		row := g.words[y*g.gridWidth : (y+1)*g.gridWidth]
		for x := 1; x < g.gridWidth-1; x++ {
			row[x] = rng.Uint32()
		}
	}
}

// SameSize reports whether both grids share dimensions.
func (g *BitGrid) SameSize(o *BitGrid) bool {
	return g.width == o.width && g.height == o.height
}

// CopyFrom overwrites g with the contents of src.
func (g *BitGrid) CopyFrom(src *BitGrid) error {
	if !g.SameSize(src) {
		return fmt.Errorf("copy %dx%d into %dx%d: %w", src.width, src.height, g.width, g.height, ErrDimensionMismatch)
	}
	copy(g.words, src.words)
	return nil
}

// Population counts live cells.
func (g *BitGrid) Population() int {
	n := 0
	for _, w := range g.words {
		n += bits.OnesCount32(w)
	}
	return n
}

// Unpack expands the grid into one byte per cell.
func (g *BitGrid) Unpack(dst *ByteGrid) error {
	if dst.W != g.width || dst.H != g.height {
		return fmt.Errorf("unpack %dx%d into %dx%d: %w", g.width, g.height, dst.W, dst.H, ErrDimensionMismatch)
	}
	cells := dst.Cells()
	for i, w := range g.words {
		base := i * WordBits
		for b := 0; b < WordBits; b++ {
			cells[base+b] = uint8(w >> uint(b) & 1)
		}
	}
	return nil
}

// Pack replaces the grid contents with the non-zero cells of src.
func (g *BitGrid) Pack(src *ByteGrid) error {
	if src.W != g.width || src.H != g.height {
		return fmt.Errorf("pack %dx%d into %dx%d: %w", src.W, src.H, g.width, g.height, ErrDimensionMismatch)
	}
	cells := src.Cells()
	for i := range g.words {
		base := i * WordBits
		var w uint32
		for b := 0; b < WordBits; b++ {
			if cells[base+b] != 0 {
				w |= 1 << uint(b)
			}
		}
		g.words[i] = w
	}
	return nil
}

// String dumps the grid one row per line, leftmost cell first.
func (g *BitGrid) String() string {
	var sb strings.Builder
	sb.Grow((g.width + 1) * g.height)
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			if g.Get(y, x) {
				sb.WriteByte('O')
			} else {
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
