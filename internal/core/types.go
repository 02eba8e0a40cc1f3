package core

import (
	"fmt"
	"sort"
)

// Size describes the dimensions of a simulation grid.
type Size struct {
	W int
	H int
}

// Kernel advances one generation. Step reads src and writes every interior
// word of dst; border words of dst are left as they are. Implementations must
// reproduce the CPU kernel bit for bit.
type Kernel interface {
	Name() string
	Step(src, dst *BitGrid) error
}

// KernelFactory constructs a Kernel using an optional configuration map.
type KernelFactory func(cfg map[string]string) Kernel

var kernels = map[string]KernelFactory{}

// RegisterKernel adds a kernel factory under the provided name.
func RegisterKernel(name string, f KernelFactory) {
	if name == "" || f == nil {
		return
	}
	kernels[name] = f
}

// KernelNames lists registered kernels in sorted order.
func KernelNames() []string {
	names := make([]string, 0, len(kernels))
	for name := range kernels {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NewKernel builds the named kernel.
func NewKernel(name string, cfg map[string]string) (Kernel, error) {
	f, ok := kernels[name]
	if !ok {
		return nil, fmt.Errorf("%q (have %v): %w", name, KernelNames(), ErrUnknownKernel)
	}
	return f(cfg), nil
}

// CheckStep validates a src/dst pair before a kernel touches them.
func CheckStep(src, dst *BitGrid) error {
	if src == dst {
		return ErrSameGrid
	}
	if !src.SameSize(dst) {
		return fmt.Errorf("step %dx%d into %dx%d: %w", src.width, src.height, dst.width, dst.height, ErrDimensionMismatch)
	}
	return nil
}
