// Package life implements Conway's Game of Life over bit-packed grids: the
// per-cell rule, several interchangeable kernels and the double buffer that
// drives them.
package life

import "bitlife/internal/core"

// Next applies Conway's rule to one cell: a live cell with two or three live
// neighbours survives, a dead cell with exactly three is born.
func Next(alive bool, neighbors int) bool {
	return (alive && neighbors == 2) || neighbors == 3
}

// CPU steps the grid word by word on the calling goroutine, evaluating all 32
// cells of a word at once.
type CPU struct{}

// NewCPU returns the serial CPU kernel.
func NewCPU() *CPU { return &CPU{} }

// Name identifies the kernel.
func (CPU) Name() string { return "cpu" }

// Step writes the next generation of every interior word of src into dst.
func (CPU) Step(src, dst *core.BitGrid) error {
	if err := core.CheckStep(src, dst); err != nil {
		return err
	}
	stepRows(src, dst, 1, src.Height()-1)
	return nil
}

// stepRows updates interior words of rows [y0, y1). It reads only src and
// writes only those rows of dst.
func stepRows(src, dst *core.BitGrid, y0, y1 int) {
	gw := src.GridWidth()
	if gw < 3 {
		return
	}
	in := src.Words()
	out := dst.Words()
	for y := y0; y < y1; y++ {
		top := in[(y-1)*gw : y*gw]
		mid := in[y*gw : (y+1)*gw]
		bot := in[(y+1)*gw : (y+2)*gw]
		row := out[y*gw : (y+1)*gw]
		for x := 1; x < gw-1; x++ {
			row[x] = stepWord(
				top[x-1], top[x], top[x+1],
				mid[x-1], mid[x], mid[x+1],
				bot[x-1], bot[x], bot[x+1],
			)
		}
	}
}

// stepWord computes the next state of center from its 3x3 word neighbourhood.
// Bit 0 takes its west neighbours from bit 31 of the words to the left and bit
// 31 takes its east neighbours from bit 0 of the words to the right.
func stepWord(topLeft, top, topRight, left, center, right, bottomLeft, bottom, bottomRight uint32) uint32 {
	var s0, s1, s2 uint32
	s0, s1, s2 = accumulate(s0, s1, s2, west(top, topLeft))
	s0, s1, s2 = accumulate(s0, s1, s2, top)
	s0, s1, s2 = accumulate(s0, s1, s2, east(top, topRight))
	s0, s1, s2 = accumulate(s0, s1, s2, west(center, left))
	s0, s1, s2 = accumulate(s0, s1, s2, east(center, right))
	s0, s1, s2 = accumulate(s0, s1, s2, west(bottom, bottomLeft))
	s0, s1, s2 = accumulate(s0, s1, s2, bottom)
	s0, s1, s2 = accumulate(s0, s1, s2, east(bottom, bottomRight))
	// count is 2 or 3 when s1 is set and s2 is clear; s0 separates them.
	return s1 &^ s2 & (s0 | center)
}

// west aligns each cell's left neighbour onto the cell's own bit.
func west(w, left uint32) uint32 { return w<<1 | left>>31 }

// east aligns each cell's right neighbour onto the cell's own bit.
func east(w, right uint32) uint32 { return w>>1 | right<<31 }

// accumulate adds the one-bit lanes of m to a per-lane counter. s0 and s1 hold
// the count modulo 4; s2 latches once any lane reaches four.
func accumulate(s0, s1, s2, m uint32) (uint32, uint32, uint32) {
	c0 := s0 & m
	s0 ^= m
	c1 := s1 & c0
	s1 ^= c0
	s2 |= c1
	return s0, s1, s2
}

func init() {
	core.RegisterKernel("cpu", func(map[string]string) core.Kernel { return NewCPU() })
}
