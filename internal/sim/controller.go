// Package sim drives a Life buffer from a frame loop: it owns pacing, the
// paused/running state, editing and backend selection.
package sim

import (
	"fmt"
	"strconv"
	"time"

	"bitlife/internal/core"
	"bitlife/internal/life"
)

const minResolution = 64

// Controller owns one simulation. It is not safe for concurrent use; callers
// drive it from a single loop.
type Controller struct {
	cfg    Config
	buf    *life.Buffer
	pacer  *core.Pacer
	paused bool
	seeds  *core.RNG

	resolution int
}

// Stats summarises the current simulation for status displays.
type Stats struct {
	Width, Height int
	GridWidth     int
	Cells         uint64
	Generation    uint64
	Population    int
	Kernel        string
	Rate          int
	MaxSpeed      bool
	Paused        bool
}

// New builds a controller and seeds its first generation.
func New(cfg Config) (*Controller, error) {
	if cfg.Aspect <= 0 {
		cfg.Aspect = DefaultConfig().Aspect
	}
	kernel, err := core.NewKernel(cfg.Kernel, cfg.KernelConfig)
	if err != nil {
		return nil, err
	}
	w, h := Dimensions(cfg.Resolution, cfg.Aspect)
	buf, err := life.NewBuffer(w, h, kernel)
	if err != nil {
		return nil, fmt.Errorf("resolution %d: %w", cfg.Resolution, err)
	}
	pacer := core.NewPacer(cfg.Rate)
	pacer.SetMaxSpeed(cfg.MaxSpeed)
	c := &Controller{
		cfg:        cfg,
		buf:        buf,
		pacer:      pacer,
		paused:     cfg.Paused,
		seeds:      core.NewRNG(cfg.Seed),
		resolution: h,
	}
	buf.Reseed(cfg.Seed)
	return c, nil
}

// Current exposes the renderable generation.
func (c *Controller) Current() *core.BitGrid { return c.buf.Current() }

// Size reports the grid dimensions.
func (c *Controller) Size() core.Size { return c.buf.Size() }

// Tick accounts for dt and advances at most once, unless paused. It reports
// whether a generation was applied.
func (c *Controller) Tick(dt time.Duration) (bool, error) {
	if c.paused || !c.pacer.Tick(dt) {
		return false, nil
	}
	if err := c.buf.Advance(); err != nil {
		return false, err
	}
	return true, nil
}

// Update is Tick driven by the wall clock.
func (c *Controller) Update() (bool, error) {
	if c.paused || !c.pacer.ShouldStep() {
		return false, nil
	}
	if err := c.buf.Advance(); err != nil {
		return false, err
	}
	return true, nil
}

// Step advances exactly one generation regardless of pacing or pause state.
func (c *Controller) Step() error { return c.buf.Advance() }

// Paused reports whether ticks are ignored.
func (c *Controller) Paused() bool { return c.paused }

// SetPaused switches between the paused and running states.
func (c *Controller) SetPaused(paused bool) {
	if paused {
		c.pacer.Pause()
	}
	c.paused = paused
}

// TogglePaused flips the paused state.
func (c *Controller) TogglePaused() { c.SetPaused(!c.paused) }

// Rate returns the fixed-rate target in steps per second.
func (c *Controller) Rate() int { return c.pacer.Rate() }

// SetRate changes the fixed-rate target, clamped to [core.MinRate, core.MaxRate].
func (c *Controller) SetRate(stepsPerSecond int) { c.pacer.SetRate(stepsPerSecond) }

// MaxSpeed reports whether every tick advances.
func (c *Controller) MaxSpeed() bool { return c.pacer.MaxSpeed() }

// SetMaxSpeed toggles as-fast-as-possible pacing.
func (c *Controller) SetMaxSpeed(on bool) { c.pacer.SetMaxSpeed(on) }

// Mode names the active kernel.
func (c *Controller) Mode() string { return c.buf.Kernel().Name() }

// SetMode switches to the named kernel. The grids are kept.
func (c *Controller) SetMode(name string) error {
	if name == c.Mode() {
		return nil
	}
	k, err := core.NewKernel(name, c.cfg.KernelConfig)
	if err != nil {
		return err
	}
	c.buf.SetKernel(k)
	return nil
}

// Paint brings a cell of the current generation to life.
func (c *Controller) Paint(row, col int) error { return c.buf.Paint(row, col, true) }

// Erase kills a cell of the current generation.
func (c *Controller) Erase(row, col int) error { return c.buf.Paint(row, col, false) }

// Stamp places a pattern into the current generation.
func (c *Controller) Stamp(p life.Pattern, row, col int) error {
	return life.Stamp(c.buf.Current(), p, row, col)
}

// Resize reallocates both grids and reseeds them. On failure the simulation
// keeps its previous grids.
func (c *Controller) Resize(width, height int) error {
	if err := c.buf.Resize(width, height, c.seeds.Int64()); err != nil {
		return err
	}
	c.resolution = height
	return nil
}

// Resolution returns the grid height.
func (c *Controller) Resolution() int { return c.resolution }

// SetResolution resizes to the aspect-derived dimensions for resolution.
func (c *Controller) SetResolution(resolution int) error {
	return c.Resize(Dimensions(resolution, c.cfg.Aspect))
}

// Clear pauses the simulation and kills every cell.
func (c *Controller) Clear() {
	c.SetPaused(true)
	c.buf.Clear()
}

// Restart reseeds the current grid size with a fresh random generation.
func (c *Controller) Restart() {
	c.buf.Reseed(c.seeds.Int64())
}

// Stats reports the current simulation state.
func (c *Controller) Stats() Stats {
	g := c.buf.Current()
	return Stats{
		Width:      g.Width(),
		Height:     g.Height(),
		GridWidth:  g.GridWidth(),
		Cells:      uint64(g.Width()) * uint64(g.Height()),
		Generation: c.buf.Generation(),
		Population: g.Population(),
		Kernel:     c.Mode(),
		Rate:       c.Rate(),
		MaxSpeed:   c.MaxSpeed(),
		Paused:     c.paused,
	}
}

func (c *Controller) maxResolution() int {
	limit := c.cfg.MaxResolution
	if limit <= 0 {
		limit = DefaultMaxResolution
	}
	return min(limit, MaxResolution(c.cfg.Aspect))
}

// ParameterControls lists the HUD-adjustable values.
func (c *Controller) ParameterControls() []core.ParameterControl {
	return []core.ParameterControl{
		{Key: "update_speed", Label: "Updates/s", Step: 1, Min: core.MinRate, Max: core.MaxRate, HasMin: true, HasMax: true},
		{Key: "resolution", Label: "Resolution", Step: 64, Min: minResolution, Max: c.maxResolution(), HasMin: true, HasMax: true},
	}
}

// Parameters snapshots the values shown on the HUD.
func (c *Controller) Parameters() core.ParameterSnapshot {
	s := c.Stats()
	state := "running"
	if s.Paused {
		state = "paused"
	}
	return core.ParameterSnapshot{Groups: []core.ParameterGroup{
		{Name: "Controls", Params: []core.Parameter{
			{Key: "update_speed", Label: "Updates/s", Type: core.ParamTypeInt, Value: strconv.Itoa(s.Rate)},
			{Key: "resolution", Label: "Resolution", Type: core.ParamTypeInt, Value: strconv.Itoa(c.resolution)},
			{Key: "max_speed", Label: "Turbo", Type: core.ParamTypeBool, Value: strconv.FormatBool(s.MaxSpeed)},
		}},
		{Name: "Simulation", Params: []core.Parameter{
			{Key: "state", Label: "State", Type: core.ParamTypeText, Value: state},
			{Key: "kernel", Label: "Kernel", Type: core.ParamTypeText, Value: s.Kernel},
			{Key: "cells", Label: "Cells", Type: core.ParamTypeText, Value: FormatCount(s.Cells)},
			{Key: "size", Label: "Grid", Type: core.ParamTypeText, Value: fmt.Sprintf("%dx%d", s.Width, s.Height)},
			{Key: "generation", Label: "Generation", Type: core.ParamTypeText, Value: FormatCount(s.Generation)},
			{Key: "population", Label: "Alive", Type: core.ParamTypeText, Value: FormatCount(uint64(s.Population))},
		}},
	}}
}

// SetIntParameter applies a HUD adjustment.
func (c *Controller) SetIntParameter(key string, value int) bool {
	for _, ctrl := range c.ParameterControls() {
		if ctrl.Key != key {
			continue
		}
		value = ctrl.Clamp(value)
		switch key {
		case "update_speed":
			c.SetRate(value)
			return true
		case "resolution":
			return c.SetResolution(value) == nil
		}
	}
	return false
}

// FormatCount renders n with comma thousands separators.
func FormatCount(n uint64) string {
	s := strconv.FormatUint(n, 10)
	if len(s) <= 3 {
		return s
	}
	out := make([]byte, 0, len(s)+len(s)/3)
	lead := len(s) % 3
	if lead == 0 {
		lead = 3
	}
	out = append(out, s[:lead]...)
	for i := lead; i < len(s); i += 3 {
		out = append(out, ',')
		out = append(out, s[i:i+3]...)
	}
	return string(out)
}
