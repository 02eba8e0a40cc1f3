package life

import (
	"fmt"

	"bitlife/internal/core"
)

// Buffer owns the two grids of a simulation. One is current and readable, the
// other receives the next generation; Advance flips their roles instead of
// copying.
type Buffer struct {
	grids      [2]*core.BitGrid
	swapped    bool
	kernel     core.Kernel
	generation uint64
}

// NewBuffer allocates a cleared pair of width x height grids stepped by kernel.
func NewBuffer(width, height int, kernel core.Kernel) (*Buffer, error) {
	front, back, err := allocPair(width, height)
	if err != nil {
		return nil, err
	}
	return &Buffer{grids: [2]*core.BitGrid{front, back}, kernel: kernel}, nil
}

func allocPair(width, height int) (*core.BitGrid, *core.BitGrid, error) {
	front, err := core.NewBitGrid(width, height)
	if err != nil {
		return nil, nil, err
	}
	back, err := core.NewBitGrid(width, height)
	if err != nil {
		return nil, nil, err
	}
	return front, back, nil
}

// Current returns the authoritative generation. Callers must not write to it
// except through Paint.
func (b *Buffer) Current() *core.BitGrid {
	if b.swapped {
		return b.grids[1]
	}
	return b.grids[0]
}

// Back returns the grid the next Advance writes into.
func (b *Buffer) Back() *core.BitGrid {
	if b.swapped {
		return b.grids[0]
	}
	return b.grids[1]
}

// Kernel returns the kernel used by Advance.
func (b *Buffer) Kernel() core.Kernel { return b.kernel }

// SetKernel swaps the kernel used by subsequent Advance calls.
func (b *Buffer) SetKernel(k core.Kernel) { b.kernel = k }

// Generation counts Advance calls since the last reseed or clear.
func (b *Buffer) Generation() uint64 { return b.generation }

// Size reports the grid dimensions.
func (b *Buffer) Size() core.Size { return b.grids[0].Size() }

// Advance applies exactly one generation. On error the current grid is
// unchanged and the roles do not flip.
func (b *Buffer) Advance() error {
	if err := b.kernel.Step(b.Current(), b.Back()); err != nil {
		return fmt.Errorf("advance with %s: %w", b.kernel.Name(), err)
	}
	b.swapped = !b.swapped
	b.generation++
	return nil
}

// Paint sets a cell of the current generation. Addresses outside the grid
// return a *core.BoundsError; border cells are fixed dead, so edits there are
// dropped.
func (b *Buffer) Paint(row, col int, alive bool) error {
	cur := b.Current()
	if !cur.InBounds(row, col) {
		s := cur.Size()
		return &core.BoundsError{Row: row, Col: col, Rows: s.H, Cols: s.W}
	}
	if !cur.Interior(row, col) {
		return nil
	}
	cur.Set(row, col, alive)
	return nil
}

// Resize replaces both grids with a reseeded width x height pair. It is all
// or nothing: if allocation fails the previous grids remain in place.
func (b *Buffer) Resize(width, height int, seed int64) error {
	front, back, err := allocPair(width, height)
	if err != nil {
		return fmt.Errorf("resize to %dx%d: %w", width, height, err)
	}
	front.Randomize(core.NewRNG(seed), true)
	b.grids = [2]*core.BitGrid{front, back}
	b.swapped = false
	b.generation = 0
	return nil
}

// Reseed fills the current generation with fresh random interior cells.
func (b *Buffer) Reseed(seed int64) {
	b.Current().Randomize(core.NewRNG(seed), true)
	b.Back().Clear()
	b.generation = 0
}

// Clear kills every cell in both grids.
func (b *Buffer) Clear() {
	b.grids[0].Clear()
	b.grids[1].Clear()
	b.generation = 0
}
