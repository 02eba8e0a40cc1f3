//go:build ebiten

package render

import (
	"fmt"
	"image/color"

	"bitlife/internal/core"

	"github.com/hajimehoshi/ebiten/v2"
)

// maxShaderSide bounds the images the shader kernel allocates.
const maxShaderSide = 8192

var lifeShaderSrc = []byte(`//kage:unit pixels

package main

func Fragment(dstPos vec4, srcPos vec2, color vec4) vec4 {
	self := imageSrc0At(srcPos).a
	sum := 0.0
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			sum += imageSrc0At(srcPos + vec2(float(dx), float(dy))).a
		}
	}
	n := sum - self
	if n > 2.5 && n < 3.5 {
		return vec4(1)
	}
	if self > 0.5 && n > 1.5 && n < 2.5 {
		return vec4(1)
	}
	return vec4(0)
}
`)

// NewGridShader compiles the Life fragment shader.
func NewGridShader() (*ebiten.Shader, error) {
	return ebiten.NewShader(lifeShaderSrc)
}

// ShaderKernel runs one generation as a single GPU draw over the unpacked
// grid. The draw completes before the read-back, so every output cell comes
// from a fully uploaded generation. Only interior words are packed into dst.
//
// Step needs a running ebiten game loop.
type ShaderKernel struct {
	shader   *ebiten.Shader
	src, dst *ebiten.Image
	pix      []byte
	w, h     int
}

// NewShaderKernel returns a kernel that compiles its shader on first use.
func NewShaderKernel() *ShaderKernel { return &ShaderKernel{} }

// Name identifies the kernel.
func (k *ShaderKernel) Name() string { return "shader" }

// Step writes the next generation of every interior word of src into dst.
func (k *ShaderKernel) Step(src, dst *core.BitGrid) error {
	if err := core.CheckStep(src, dst); err != nil {
		return err
	}
	if err := k.prepare(src.Width(), src.Height()); err != nil {
		return err
	}
	fillPackedRGBA(k.pix, src.Words(), color.White, color.Transparent)
	k.src.WritePixels(k.pix)

	op := &ebiten.DrawRectShaderOptions{}
	op.Images[0] = k.src
	op.Blend = ebiten.BlendCopy
	k.dst.DrawRectShader(k.w, k.h, k.shader, op)

	k.dst.ReadPixels(k.pix)
	packInterior(dst, k.pix)
	return nil
}

func (k *ShaderKernel) prepare(w, h int) error {
	if k.shader == nil {
		s, err := NewGridShader()
		if err != nil {
			return fmt.Errorf("compile life shader: %w", err)
		}
		k.shader = s
	}
	if k.w == w && k.h == h && k.src != nil {
		return nil
	}
	if w > maxShaderSide || h > maxShaderSide {
		return fmt.Errorf("shader kernel supports up to %dx%d, got %dx%d: %w", maxShaderSide, maxShaderSide, w, h, core.ErrAllocation)
	}
	if k.src != nil {
		k.src.Dispose()
		k.dst.Dispose()
	}
	k.w, k.h = w, h
	k.src = ebiten.NewImage(w, h)
	k.dst = ebiten.NewImage(w, h)
	k.pix = make([]byte, 4*w*h)
	return nil
}

func init() {
	core.RegisterKernel("shader", func(map[string]string) core.Kernel { return NewShaderKernel() })
}
