package life

import (
	"fmt"

	"bitlife/internal/core"
)

// ReferenceStep advances an unpacked grid one generation by counting the eight
// neighbours of every cell directly. It updates the same interior region as
// the packed kernels: rows 1..H-2 and the columns of word 1..W/32-2. Cells
// outside that region are left unchanged in dst.
func ReferenceStep(src, dst *core.ByteGrid) {
	w, h := src.W, src.H
	cur := src.Cells()
	nxt := dst.Cells()
	first := core.WordBits
	last := (w/core.WordBits - 1) * core.WordBits
	for y := 1; y < h-1; y++ {
		for x := first; x < last; x++ {
			neighbors := 0
			for dy := -1; dy <= 1; dy++ {
				for dx := -1; dx <= 1; dx++ {
					if dx == 0 && dy == 0 {
						continue
					}
					if cur[(y+dy)*w+x+dx] != 0 {
						neighbors++
					}
				}
			}
			idx := y*w + x
			nxt[idx] = 0
			if Next(cur[idx] != 0, neighbors) {
				nxt[idx] = 1
			}
		}
	}
}

// Reference adapts ReferenceStep to the kernel contract. It is slow and
// exists to verify the packed kernels.
type Reference struct {
	in, out *core.ByteGrid
}

// NewReference returns the brute-force kernel.
func NewReference() *Reference { return &Reference{} }

// Name identifies the kernel.
func (r *Reference) Name() string { return "reference" }

// Step unpacks both grids, steps the unpacked copy and packs it back into dst.
func (r *Reference) Step(src, dst *core.BitGrid) error {
	if err := core.CheckStep(src, dst); err != nil {
		return err
	}
	w, h := src.Width(), src.Height()
	if r.in == nil || r.in.W != w || r.in.H != h {
		r.in = core.NewByteGrid(w, h)
		r.out = core.NewByteGrid(w, h)
	}
	if err := src.Unpack(r.in); err != nil {
		return fmt.Errorf("reference: %w", err)
	}
	if err := dst.Unpack(r.out); err != nil {
		return fmt.Errorf("reference: %w", err)
	}
	ReferenceStep(r.in, r.out)
	return dst.Pack(r.out)
}

func init() {
	core.RegisterKernel("reference", func(map[string]string) core.Kernel { return NewReference() })
}
