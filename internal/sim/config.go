package sim

import (
	"math"

	"bitlife/internal/core"
)

// Config controls the initial state of a Controller.
type Config struct {
	// Resolution is the grid height in cells; the width follows from Aspect.
	Resolution int
	Aspect     float64
	// MaxResolution caps SetResolution below the MaxCells-derived bound. Zero
	// means DefaultMaxResolution.
	MaxResolution int

	Rate     int
	MaxSpeed bool
	Paused   bool

	Kernel       string
	KernelConfig map[string]string

	Seed int64
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{
		Resolution: 128,
		Aspect:     16.0 / 9.0,
		Rate:       1,
		Kernel:     "cpu",
		Seed:       42,
	}
}

// Dimensions derives grid dimensions from a resolution and aspect ratio: the
// height is rounded down to even and the width down to a whole number of words.
func Dimensions(resolution int, aspect float64) (width, height int) {
	height = resolution - resolution%2
	width = int(float64(height) * aspect)
	width -= width % core.WordBits
	if width < core.WordBits {
		width = core.WordBits
	}
	return width, height
}

// DefaultMaxResolution caps the resolution control when Config.MaxResolution
// is unset. A grid pair at MaxCells needs about 4 GiB, which most hosts
// cannot allocate without the runtime aborting.
const DefaultMaxResolution = 8192

// MaxResolution is the largest resolution whose grid stays within MaxCells.
func MaxResolution(aspect float64) int {
	if aspect <= 0 {
		aspect = 1
	}
	return int(math.Floor(math.Sqrt(float64(core.MaxCells) / aspect)))
}
