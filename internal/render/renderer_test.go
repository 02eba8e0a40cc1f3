//go:build ebiten

package render

import (
	"image/color"
	"testing"

	"bitlife/internal/core"

	"github.com/hajimehoshi/ebiten/v2"
)

func TestGridPainterFollowsGridSize(t *testing.T) {
	gp := NewGridPainter(64, 4)
	dst := ebiten.NewImage(256, 32)
	defer dst.Dispose()

	for _, dims := range [][2]int{{64, 4}, {128, 16}, {32, 8}} {
		g, err := core.NewBitGrid(dims[0], dims[1])
		if err != nil {
			t.Fatalf("NewBitGrid: %v", err)
		}
		gp.Blit(dst, g, color.White, color.Black, ebiten.GeoM{})
		if gp.w != dims[0] || gp.h != dims[1] || len(gp.buf) != 4*dims[0]*dims[1] {
			t.Fatalf("painter is %dx%d with %d bytes after a %dx%d blit", gp.w, gp.h, len(gp.buf), dims[0], dims[1])
		}
		if b := gp.img.Bounds(); b.Dx() != dims[0] || b.Dy() != dims[1] {
			t.Fatalf("painter image is %v after a %dx%d blit", b, dims[0], dims[1])
		}
	}
}
