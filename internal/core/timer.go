package core

import "time"

const (
	// MinRate and MaxRate bound the fixed-rate pacing in steps per second.
	MinRate = 1
	MaxRate = 60
)

// Pacer decides on each frame tick whether the simulation advances. In max
// speed mode every tick advances; otherwise a step happens once the
// accumulated time reaches 1/rate, after which the accumulator restarts.
type Pacer struct {
	step        time.Duration
	rate        int
	accumulator time.Duration
	last        time.Time
	maxSpeed    bool
}

// NewPacer constructs a Pacer targeting rate steps per second. The first tick
// always advances.
func NewPacer(rate int) *Pacer {
	p := &Pacer{}
	p.SetRate(rate)
	p.accumulator = p.step
	return p
}

// SetRate changes the step rate, clamped to [MinRate, MaxRate].
func (p *Pacer) SetRate(rate int) {
	if rate < MinRate {
		rate = MinRate
	}
	if rate > MaxRate {
		rate = MaxRate
	}
	p.rate = rate
	p.step = time.Second / time.Duration(rate)
}

// Rate returns the fixed-rate target in steps per second.
func (p *Pacer) Rate() int { return p.rate }

// SetMaxSpeed toggles advancing on every tick.
func (p *Pacer) SetMaxSpeed(on bool) { p.maxSpeed = on }

// MaxSpeed reports whether every tick advances.
func (p *Pacer) MaxSpeed() bool { return p.maxSpeed }

// Tick accounts for dt elapsed time and reports whether to advance once.
func (p *Pacer) Tick(dt time.Duration) bool {
	if p.maxSpeed {
		return true
	}
	if dt > 0 {
		p.accumulator += dt
	}
	if p.accumulator >= p.step {
		p.accumulator = 0
		return true
	}
	return false
}

// ShouldStep is Tick driven by the wall clock. It is safe to call from the main loop.
func (p *Pacer) ShouldStep() bool {
	now := time.Now()
	if p.last.IsZero() {
		p.last = now
	}
	delta := now.Sub(p.last)
	p.last = now
	return p.Tick(delta)
}

// Pause forgets wall-clock history so a long pause does not count as elapsed time.
func (p *Pacer) Pause() {
	p.last = time.Time{}
}
