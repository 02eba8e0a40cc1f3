package life

import (
	"golang.org/x/sync/errgroup"

	"bitlife/internal/core"
)

// Parallel fans the CPU word loop out over bands of rows. Each worker reads
// only src and writes a disjoint band of dst; Step returns after every band is
// done, so dst is never observed half written.
type Parallel struct {
	workers int
}

// NewParallel returns a parallel kernel using the given worker count.
func NewParallel(workers int) *Parallel {
	if workers <= 0 {
		workers = DefaultConfig().Workers
	}
	return &Parallel{workers: workers}
}

// Name identifies the kernel.
func (p *Parallel) Name() string { return "parallel" }

// Workers reports the configured fan-out.
func (p *Parallel) Workers() int { return p.workers }

// Step writes the next generation of every interior word of src into dst.
func (p *Parallel) Step(src, dst *core.BitGrid) error {
	if err := core.CheckStep(src, dst); err != nil {
		return err
	}
	rows := src.Height() - 2
	if rows <= 0 {
		return nil
	}
	bands := min(p.workers, rows)
	perBand := (rows + bands - 1) / bands

	var eg errgroup.Group
	for start := 1; start <= rows; start += perBand {
		end := min(start+perBand, rows+1)
		eg.Go(func() error {
			stepRows(src, dst, start, end)
			return nil
		})
	}
	return eg.Wait()
}

func init() {
	core.RegisterKernel("parallel", func(cfg map[string]string) core.Kernel {
		return NewParallel(FromMap(cfg).Workers)
	})
}
