package core

import "math/rand/v2"

// RNG is a thin convenience wrapper around math/rand/v2 for deterministic seeding.
type RNG struct {
	r *rand.Rand
}

// NewRNG creates a deterministic RNG using the provided seed.
func NewRNG(seed int64) *RNG {
	return &RNG{r: rand.New(rand.NewPCG(uint64(seed), 0))}
}

// Uint32 returns 32 random bits, one packed word of cells.
func (r *RNG) Uint32() uint32 {
	return r.r.Uint32()
}

// Int64 returns a non-negative random int64, used to derive follow-up seeds.
func (r *RNG) Int64() int64 {
	return r.r.Int64()
}

// FillBinary fills the buffer with 0/1 values.
func (r *RNG) FillBinary(buf []uint8) {
	for i := range buf {
		buf[i] = uint8(r.r.IntN(2))
	}
}
