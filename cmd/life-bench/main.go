package main

import (
	"cmp"
	"flag"
	"fmt"
	"log"
	"runtime"
	"slices"
	"strconv"
	"strings"
	"time"

	"bitlife/internal/core"
	"bitlife/internal/life"
	"bitlife/internal/sim"
)

type runResult struct {
	kernel     string
	elapsed    time.Duration
	population int
	mismatch   int
}

func (r runResult) perGeneration(steps int) time.Duration {
	if steps <= 0 {
		return 0
	}
	return r.elapsed / time.Duration(steps)
}

func main() {
	steps := flag.Int("steps", 200, "generations to run per kernel")
	resolution := flag.Int("resolution", 512, "grid height in cells; width follows -aspect")
	aspect := flag.Float64("aspect", 16.0/9.0, "grid aspect ratio")
	width := flag.Int("width", 0, "explicit grid width (overrides -resolution and -aspect)")
	height := flag.Int("height", 0, "explicit grid height (used with -width)")
	kernels := flag.String("kernels", "cpu,parallel,fft", "comma-separated kernels to run")
	workers := flag.Int("workers", runtime.NumCPU(), "goroutines for the parallel kernel")
	seed := flag.Int64("seed", 42, "seed for the initial generation")
	verify := flag.Bool("verify", true, "check every generation against the reference kernel")
	flag.Parse()

	w, h := *width, *height
	if w <= 0 || h <= 0 {
		w, h = sim.Dimensions(*resolution, *aspect)
	}
	names := splitList(*kernels)
	if len(names) == 0 {
		log.Fatal("no kernels selected")
	}
	cfg := map[string]string{"workers": strconv.Itoa(*workers)}

	fmt.Printf("Running %d generations on %dx%d (%s cells), kernels %s\n",
		*steps, w, h, sim.FormatCount(uint64(w)*uint64(h)), strings.Join(names, ","))

	var results []runResult
	for _, name := range names {
		res, err := run(name, cfg, w, h, *seed, *steps, *verify)
		if err != nil {
			log.Fatalf("%s: %v", name, err)
		}
		results = append(results, res)
		fmt.Printf("%-10s %10s total %10s/gen population=%d", res.kernel,
			res.elapsed.Round(time.Microsecond), res.perGeneration(*steps).Round(time.Microsecond), res.population)
		if *verify {
			fmt.Printf(" mismatched=%d", res.mismatch)
		}
		fmt.Println()
	}

	slices.SortFunc(results, func(a, b runResult) int { return cmp.Compare(a.elapsed, b.elapsed) })
	best := results[0]
	fmt.Printf("\nFastest: %s at %s/gen\n", best.kernel, best.perGeneration(*steps).Round(time.Microsecond))

	failed := false
	for _, res := range results {
		if res.mismatch > 0 {
			failed = true
			log.Printf("%s diverged from the reference in %d generations", res.kernel, res.mismatch)
		}
	}
	if failed {
		log.Fatal("verification failed")
	}
}

// run steps one kernel from a seeded grid. With verify set a reference buffer
// advances in lockstep and each generation is compared word for word; the
// comparison is excluded from the timing.
func run(name string, cfg map[string]string, w, h int, seed int64, steps int, verify bool) (runResult, error) {
	kernel, err := core.NewKernel(name, cfg)
	if err != nil {
		return runResult{}, err
	}
	buf, err := life.NewBuffer(w, h, kernel)
	if err != nil {
		return runResult{}, err
	}
	buf.Reseed(seed)

	var ref *life.Buffer
	if verify {
		ref, err = life.NewBuffer(w, h, life.NewReference())
		if err != nil {
			return runResult{}, err
		}
		ref.Reseed(seed)
	}

	res := runResult{kernel: kernel.Name()}
	for i := 0; i < steps; i++ {
		start := time.Now()
		if err := buf.Advance(); err != nil {
			return res, fmt.Errorf("generation %d: %w", i+1, err)
		}
		res.elapsed += time.Since(start)
		if ref == nil {
			continue
		}
		if err := ref.Advance(); err != nil {
			return res, fmt.Errorf("reference generation %d: %w", i+1, err)
		}
		if !slices.Equal(buf.Current().Words(), ref.Current().Words()) {
			res.mismatch++
		}
	}
	res.population = buf.Current().Population()
	return res, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
