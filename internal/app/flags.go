package app

import (
	"flag"
	"strconv"

	"bitlife/internal/sim"
)

// Config represents the command-line parameters for the application.
type Config struct {
	Resolution    int
	Aspect        float64
	MaxResolution int
	Kernel        string
	Workers       int
	Rate          int
	Turbo         bool
	Paused        bool
	Seed          int64

	WindowW, WindowH int
	HUDWidth         int
}

// NewConfig returns a Config populated with sensible defaults.
func NewConfig() *Config {
	return &Config{
		Resolution:    512,
		MaxResolution: 4096,
		Kernel:        "parallel",
		Rate:          10,
		Seed:          42,
		WindowW:       1280,
		WindowH:       720,
		HUDWidth:      220,
	}
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.IntVar(&c.Resolution, "resolution", c.Resolution, "grid height in cells; width follows the aspect ratio")
	fs.Float64Var(&c.Aspect, "aspect", c.Aspect, "grid aspect ratio (0 uses the grid view's aspect)")
	fs.IntVar(&c.MaxResolution, "max-resolution", c.MaxResolution, "upper bound for the resolution control")
	fs.StringVar(&c.Kernel, "kernel", c.Kernel, "generation kernel: cpu, parallel, fft, shader, reference")
	fs.IntVar(&c.Workers, "workers", c.Workers, "goroutines for the parallel kernel (0 = NumCPU)")
	fs.IntVar(&c.Rate, "rate", c.Rate, "generations per second in fixed-rate mode (1-60)")
	fs.BoolVar(&c.Turbo, "turbo", c.Turbo, "advance every frame with vsync disabled")
	fs.BoolVar(&c.Paused, "paused", c.Paused, "start paused")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "seed for the initial generation")
	fs.IntVar(&c.WindowW, "window-w", c.WindowW, "window width in pixels")
	fs.IntVar(&c.WindowH, "window-h", c.WindowH, "window height in pixels")
	fs.IntVar(&c.HUDWidth, "hud", c.HUDWidth, "control panel width in pixels (0 hides it)")
}

// SimConfig derives the controller configuration. A zero aspect takes the
// shape of the grid view.
func (c *Config) SimConfig() sim.Config {
	aspect := c.Aspect
	if aspect <= 0 {
		viewW := c.WindowW - c.HUDWidth
		if viewW > 0 && c.WindowH > 0 {
			aspect = float64(viewW) / float64(c.WindowH)
		}
	}
	var kernelCfg map[string]string
	if c.Workers > 0 {
		kernelCfg = map[string]string{"workers": strconv.Itoa(c.Workers)}
	}
	return sim.Config{
		Resolution:    c.Resolution,
		Aspect:        aspect,
		MaxResolution: c.MaxResolution,
		Rate:          c.Rate,
		MaxSpeed:      c.Turbo,
		Paused:        c.Paused,
		Kernel:        c.Kernel,
		KernelConfig:  kernelCfg,
		Seed:          c.Seed,
	}
}
