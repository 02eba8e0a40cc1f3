//go:build ebiten

package render

import (
	"image/color"

	"bitlife/internal/core"

	"github.com/hajimehoshi/ebiten/v2"
)

// GridPainter uploads a packed grid into a single RGBA image.
type GridPainter struct {
	w, h int
	img  *ebiten.Image
	buf  []byte
}

// NewGridPainter allocates a painter for a grid of size w*h.
func NewGridPainter(w, h int) *GridPainter {
	gp := &GridPainter{}
	gp.resize(w, h)
	return gp
}

func (gp *GridPainter) resize(w, h int) {
	if gp.img != nil {
		gp.img.Dispose()
	}
	gp.w, gp.h = w, h
	gp.buf = make([]byte, 4*w*h)
	gp.img = ebiten.NewImage(w, h)
}

// Blit uploads the grid into the painter image and draws it with geom. The
// image follows the grid when its dimensions change.
func (gp *GridPainter) Blit(dst *ebiten.Image, grid *core.BitGrid, on, off color.Color, geom ebiten.GeoM) {
	if grid.Width() != gp.w || grid.Height() != gp.h {
		gp.resize(grid.Width(), grid.Height())
	}
	fillPackedRGBA(gp.buf, grid.Words(), on, off)
	gp.img.WritePixels(gp.buf)

	op := &ebiten.DrawImageOptions{}
	op.GeoM = geom
	dst.DrawImage(gp.img, op)
}
