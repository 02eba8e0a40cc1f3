package life

import (
	"errors"
	"slices"
	"testing"

	"bitlife/internal/core"
)

func newBuffer(t *testing.T, w, h int) *Buffer {
	t.Helper()
	buf, err := NewBuffer(w, h, NewCPU())
	if err != nil {
		t.Fatalf("NewBuffer(%d, %d): %v", w, h, err)
	}
	return buf
}

func TestAdvanceSwapsRoles(t *testing.T) {
	buf := newBuffer(t, 96, 8)
	buf.Reseed(4)
	first, second := buf.Current(), buf.Back()

	want := newGrid(t, 96, 8)
	if err := NewCPU().Step(first, want); err != nil {
		t.Fatalf("step: %v", err)
	}
	if err := buf.Advance(); err != nil {
		t.Fatalf("advance: %v", err)
	}
	if buf.Current() != second || buf.Back() != first {
		t.Fatalf("Advance did not flip the grids")
	}
	if !slices.Equal(buf.Current().Words(), want.Words()) {
		t.Fatalf("current generation differs from a direct step")
	}
	if buf.Generation() != 1 {
		t.Fatalf("generation = %d, expected 1", buf.Generation())
	}
}

type failingKernel struct{}

func (failingKernel) Name() string                      { return "failing" }
func (failingKernel) Step(src, dst *core.BitGrid) error { return core.ErrAllocation }

func TestAdvanceErrorKeepsCurrent(t *testing.T) {
	buf := newBuffer(t, 64, 4)
	cur := buf.Current()
	buf.SetKernel(failingKernel{})
	err := buf.Advance()
	if !errors.Is(err, core.ErrAllocation) {
		t.Fatalf("advance err = %v", err)
	}
	if buf.Current() != cur || buf.Generation() != 0 {
		t.Fatalf("failed advance changed the buffer state")
	}
}

func TestPaint(t *testing.T) {
	buf := newBuffer(t, 96, 8)
	for i := 0; i < 2; i++ {
		if err := buf.Paint(3, 40, true); err != nil {
			t.Fatalf("paint: %v", err)
		}
	}
	if !buf.Current().Get(3, 40) || buf.Current().Population() != 1 {
		t.Fatalf("painting twice is not idempotent")
	}
	if err := buf.Paint(3, 40, false); err != nil {
		t.Fatalf("erase: %v", err)
	}
	if buf.Current().Population() != 0 {
		t.Fatalf("erase left live cells")
	}

	// Border cells are dropped silently.
	for _, c := range [][2]int{{0, 40}, {7, 40}, {3, 5}, {3, 70}} {
		if err := buf.Paint(c[0], c[1], true); err != nil {
			t.Fatalf("paint border %v: %v", c, err)
		}
	}
	if buf.Current().Population() != 0 {
		t.Fatalf("border paint changed the grid:\n%s", buf.Current())
	}

	var be *core.BoundsError
	if err := buf.Paint(8, 0, true); !errors.As(err, &be) || !errors.Is(err, core.ErrOutOfBounds) {
		t.Fatalf("out of range paint err = %v", err)
	}
}

func TestResize(t *testing.T) {
	buf := newBuffer(t, 64, 4)
	if err := buf.Advance(); err != nil {
		t.Fatalf("advance: %v", err)
	}
	if err := buf.Resize(160, 20, 3); err != nil {
		t.Fatalf("resize: %v", err)
	}
	if got := buf.Size(); got != (core.Size{W: 160, H: 20}) {
		t.Fatalf("size = %+v after resize", got)
	}
	if buf.Generation() != 0 || buf.Back().Population() != 0 {
		t.Fatalf("resize kept old state")
	}
	if buf.Current().Population() == 0 {
		t.Fatalf("resized grid was not reseeded")
	}

	before := buf.Current()
	if err := buf.Resize(33, 20, 3); !errors.Is(err, core.ErrInvalidDimensions) {
		t.Fatalf("invalid resize err = %v", err)
	}
	if err := buf.Resize(1<<20, 1<<15, 3); !errors.Is(err, core.ErrAllocation) {
		t.Fatalf("oversized resize err = %v", err)
	}
	if buf.Current() != before || buf.Size() != (core.Size{W: 160, H: 20}) {
		t.Fatalf("failed resize replaced the grids")
	}
}

func TestClearAndReseed(t *testing.T) {
	buf := newBuffer(t, 96, 8)
	buf.Reseed(1)
	a := slices.Clone(buf.Current().Words())
	if err := buf.Advance(); err != nil {
		t.Fatalf("advance: %v", err)
	}
	buf.Clear()
	if buf.Current().Population() != 0 || buf.Back().Population() != 0 || buf.Generation() != 0 {
		t.Fatalf("clear left state behind")
	}
	buf.Reseed(1)
	if !slices.Equal(buf.Current().Words(), a) {
		t.Fatalf("reseeding with the same seed differs")
	}
}
