package core

import (
	"errors"
	"fmt"
)

var (
	// ErrOutOfBounds reports addressing outside the grid extents.
	ErrOutOfBounds = errors.New("out of bounds")
	// ErrDimensionMismatch reports source and destination grids of unequal size.
	ErrDimensionMismatch = errors.New("grid dimensions differ")
	// ErrSameGrid reports a kernel asked to step a grid into itself.
	ErrSameGrid = errors.New("source and destination are the same grid")
	// ErrInvalidDimensions reports non-positive sizes or a width that is not a
	// multiple of WordBits.
	ErrInvalidDimensions = errors.New("invalid grid dimensions")
	// ErrAllocation reports a grid too large to allocate.
	ErrAllocation = errors.New("grid allocation failed")
	// ErrUnknownKernel reports a kernel name missing from the registry.
	ErrUnknownKernel = errors.New("unknown kernel")
)

// BoundsError describes an out-of-range cell or word address.
type BoundsError struct {
	Row, Col   int
	Rows, Cols int
	Word       bool
}

func (e *BoundsError) Error() string {
	unit := "cell"
	if e.Word {
		unit = "word"
	}
	return fmt.Sprintf("%s (%d,%d) outside %dx%d: %v", unit, e.Row, e.Col, e.Rows, e.Cols, ErrOutOfBounds)
}

// Unwrap lets errors.Is match ErrOutOfBounds.
func (e *BoundsError) Unwrap() error { return ErrOutOfBounds }
