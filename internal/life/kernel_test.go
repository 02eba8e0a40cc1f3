package life

import (
	"errors"
	"fmt"
	"slices"
	"testing"

	"bitlife/internal/core"
)

func newGrid(t testing.TB, w, h int) *core.BitGrid {
	t.Helper()
	g, err := core.NewBitGrid(w, h)
	if err != nil {
		t.Fatalf("NewBitGrid(%d, %d): %v", w, h, err)
	}
	return g
}

func testKernels() []core.Kernel {
	return []core.Kernel{NewCPU(), NewParallel(3), NewFFT()}
}

func liveCells(g *core.BitGrid) [][2]int {
	var cells [][2]int
	for y := 0; y < g.Height(); y++ {
		for x := 0; x < g.Width(); x++ {
			if g.Get(y, x) {
				cells = append(cells, [2]int{y, x})
			}
		}
	}
	return cells
}

func shifted(p Pattern, row, col int) [][2]int {
	cells := make([][2]int, 0, len(p.Cells()))
	for _, c := range p.Cells() {
		cells = append(cells, [2]int{row + c[0], col + c[1]})
	}
	slices.SortFunc(cells, func(a, b [2]int) int {
		if a[0] != b[0] {
			return a[0] - b[0]
		}
		return a[1] - b[1]
	})
	return cells
}

func TestNextRule(t *testing.T) {
	for n := 0; n <= 8; n++ {
		if got := Next(true, n); got != (n == 2 || n == 3) {
			t.Fatalf("Next(alive, %d) = %v", n, got)
		}
		if got := Next(false, n); got != (n == 3) {
			t.Fatalf("Next(dead, %d) = %v", n, got)
		}
	}
}

func TestKernelsMatchReference(t *testing.T) {
	for _, seed := range []int64{1, 2, 3} {
		src := newGrid(t, 128, 64)
		// Live border cells still count as neighbours of the interior.
		src.Randomize(core.NewRNG(seed), false)

		want := newGrid(t, 128, 64)
		if err := NewReference().Step(src, want); err != nil {
			t.Fatalf("reference step: %v", err)
		}
		for _, k := range testKernels() {
			t.Run(fmt.Sprintf("%s/seed%d", k.Name(), seed), func(t *testing.T) {
				got := newGrid(t, 128, 64)
				if err := k.Step(src, got); err != nil {
					t.Fatalf("step: %v", err)
				}
				if !slices.Equal(got.Words(), want.Words()) {
					t.Fatalf("%s diverges from the reference:\n%s\nexpected\n%s", k.Name(), got, want)
				}
			})
		}
	}
}

func TestKernelsLeaveBorderUntouched(t *testing.T) {
	for _, k := range testKernels() {
		t.Run(k.Name(), func(t *testing.T) {
			src := newGrid(t, 96, 8)
			src.Randomize(core.NewRNG(11), false)
			dst := newGrid(t, 96, 8)
			dst.Randomize(core.NewRNG(12), false)
			before := slices.Clone(dst.Words())

			if err := k.Step(src, dst); err != nil {
				t.Fatalf("step: %v", err)
			}
			gw := dst.GridWidth()
			for y := 0; y < dst.Height(); y++ {
				for x := 0; x < gw; x++ {
					if y != 0 && y != dst.Height()-1 && x != 0 && x != gw-1 {
						continue
					}
					if i := dst.Index(y, x); dst.Words()[i] != before[i] {
						t.Fatalf("border word (%d,%d) changed from %#x to %#x", y, x, before[i], dst.Words()[i])
					}
				}
			}
		})
	}
}

func TestBorderStaysDeadOverManyGenerations(t *testing.T) {
	sizes := [][2]int{{96, 3}, {96, 16}, {128, 64}, {160, 33}, {256, 8}}
	for _, k := range testKernels() {
		for _, size := range sizes {
			t.Run(fmt.Sprintf("%s/%dx%d", k.Name(), size[0], size[1]), func(t *testing.T) {
				buf, err := NewBuffer(size[0], size[1], k)
				if err != nil {
					t.Fatalf("NewBuffer: %v", err)
				}
				buf.Reseed(int64(size[0] * size[1]))
				for gen := 1; gen <= 300; gen++ {
					if err := buf.Advance(); err != nil {
						t.Fatalf("advance %d: %v", gen, err)
					}
					g := buf.Current()
					last := g.Width() - 1
					for y := 0; y < g.Height(); y++ {
						if g.Get(y, 0) || g.Get(y, last) {
							t.Fatalf("generation %d: edge column cell in row %d is alive", gen, y)
						}
					}
					for x := 0; x < g.Width(); x++ {
						if g.Get(0, x) || g.Get(g.Height()-1, x) {
							t.Fatalf("generation %d: edge row cell in column %d is alive", gen, x)
						}
					}
				}
			})
		}
	}
}

func TestGliderCrossesWordBoundary(t *testing.T) {
	for _, k := range testKernels() {
		t.Run(k.Name(), func(t *testing.T) {
			buf, err := NewBuffer(128, 16, k)
			if err != nil {
				t.Fatalf("NewBuffer: %v", err)
			}
			// Columns 62..64 straddle words 1 and 2.
			if err := Stamp(buf.Current(), Glider, 5, 62); err != nil {
				t.Fatalf("stamp: %v", err)
			}
			for i := 0; i < 4; i++ {
				if err := buf.Advance(); err != nil {
					t.Fatalf("advance %d: %v", i, err)
				}
			}
			got := liveCells(buf.Current())
			want := shifted(Glider, 6, 63)
			if !slices.Equal(got, want) {
				t.Fatalf("glider after 4 generations = %v, expected %v", got, want)
			}
		})
	}
}

func TestStillLifeAndOscillator(t *testing.T) {
	for _, k := range testKernels() {
		t.Run(k.Name(), func(t *testing.T) {
			buf, err := NewBuffer(128, 12, k)
			if err != nil {
				t.Fatalf("NewBuffer: %v", err)
			}
			if err := Stamp(buf.Current(), Block, 3, 40); err != nil {
				t.Fatalf("stamp block: %v", err)
			}
			if err := Stamp(buf.Current(), Blinker, 7, 62); err != nil {
				t.Fatalf("stamp blinker: %v", err)
			}
			start := buf.Current().String()

			if err := buf.Advance(); err != nil {
				t.Fatalf("advance: %v", err)
			}
			mid := buf.Current()
			if !mid.Get(6, 63) || !mid.Get(7, 63) || !mid.Get(8, 63) || mid.Get(7, 62) || mid.Get(7, 64) {
				t.Fatalf("blinker not vertical after one generation:\n%s", mid)
			}
			for _, c := range shifted(Block, 3, 40) {
				if !mid.Get(c[0], c[1]) {
					t.Fatalf("block cell %v died", c)
				}
			}

			if err := buf.Advance(); err != nil {
				t.Fatalf("advance: %v", err)
			}
			if got := buf.Current().String(); got != start {
				t.Fatalf("grid after two generations:\n%s\nexpected\n%s", got, start)
			}
		})
	}
}

func TestKernelsDeterministic(t *testing.T) {
	src := newGrid(t, 64*3, 32)
	src.Randomize(core.NewRNG(5), true)
	for _, k := range testKernels() {
		a := newGrid(t, 64*3, 32)
		b := newGrid(t, 64*3, 32)
		if err := k.Step(src, a); err != nil {
			t.Fatalf("%s: %v", k.Name(), err)
		}
		if err := k.Step(src, b); err != nil {
			t.Fatalf("%s: %v", k.Name(), err)
		}
		if !slices.Equal(a.Words(), b.Words()) {
			t.Fatalf("%s produced different results for the same input", k.Name())
		}
	}
}

func TestKernelsRejectBadPairs(t *testing.T) {
	for _, k := range append(testKernels(), NewReference()) {
		src := newGrid(t, 64, 8)
		if err := k.Step(src, newGrid(t, 96, 8)); !errors.Is(err, core.ErrDimensionMismatch) {
			t.Fatalf("%s: mismatched dst err = %v", k.Name(), err)
		}
		if err := k.Step(src, src); !errors.Is(err, core.ErrSameGrid) {
			t.Fatalf("%s: same grid err = %v", k.Name(), err)
		}
	}
}

func TestRegisteredKernels(t *testing.T) {
	for _, name := range []string{"cpu", "parallel", "fft", "reference"} {
		k, err := core.NewKernel(name, map[string]string{"workers": "2"})
		if err != nil {
			t.Fatalf("NewKernel(%q): %v", name, err)
		}
		if k.Name() != name {
			t.Fatalf("kernel %q reports name %q", name, k.Name())
		}
	}
	k, _ := core.NewKernel("parallel", map[string]string{"workers": "2"})
	if got := k.(*Parallel).Workers(); got != 2 {
		t.Fatalf("parallel workers = %d, expected 2", got)
	}
}

func TestParallelMoreWorkersThanRows(t *testing.T) {
	src := newGrid(t, 96, 5)
	src.Randomize(core.NewRNG(9), false)
	want := newGrid(t, 96, 5)
	got := newGrid(t, 96, 5)
	if err := NewCPU().Step(src, want); err != nil {
		t.Fatalf("cpu: %v", err)
	}
	if err := NewParallel(64).Step(src, got); err != nil {
		t.Fatalf("parallel: %v", err)
	}
	if !slices.Equal(got.Words(), want.Words()) {
		t.Fatalf("parallel with idle workers diverges from cpu")
	}
}

func BenchmarkKernels(b *testing.B) {
	for _, k := range testKernels() {
		b.Run(k.Name(), func(b *testing.B) {
			src := newGrid(b, 1024, 512)
			src.Randomize(core.NewRNG(1), true)
			dst := newGrid(b, 1024, 512)
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if err := k.Step(src, dst); err != nil {
					b.Fatal(err)
				}
				src, dst = dst, src
			}
		})
	}
}
