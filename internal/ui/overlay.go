//go:build ebiten

package ui

import (
	"image/color"

	"bitlife/internal/core"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Overlay draws optional guides on top of the grid: cell lines when zoomed in,
// word boundaries and the fixed border region.
type Overlay struct {
	showCells  bool
	showWords  bool
	showBorder bool
	pixel      *ebiten.Image
}

// cellLineZoom is the zoom from which individual cell lines are drawn.
const cellLineZoom = 8

// NewOverlay constructs a new overlay instance.
func NewOverlay() *Overlay {
	o := &Overlay{showCells: true}
	o.pixel = ebiten.NewImage(1, 1)
	o.pixel.Fill(color.White)
	return o
}

// Update toggles guides from the number keys.
func (o *Overlay) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit1) {
		o.showCells = !o.showCells
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit2) {
		o.showWords = !o.showWords
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit3) {
		o.showBorder = !o.showBorder
	}
}

// Draw renders the enabled guides for a grid of the given size.
func (o *Overlay) Draw(screen *ebiten.Image, view View, size core.Size) {
	if size.W <= 0 || size.H <= 0 || view.Zoom <= 0 {
		return
	}
	if o.showBorder {
		o.drawBorder(screen, view, size)
	}
	if o.showCells && view.Zoom >= cellLineZoom {
		o.drawLines(screen, view, size, 1, color.RGBA{R: 40, G: 40, B: 48, A: 160})
	}
	if o.showWords {
		o.drawLines(screen, view, size, core.WordBits, color.RGBA{R: 90, G: 130, B: 170, A: 200})
	}
}

// drawLines draws vertical lines every `every` columns and, for cell lines,
// horizontal lines every row, limited to the visible part of the grid.
func (o *Overlay) drawLines(screen *ebiten.Image, view View, size core.Size, every int, col color.RGBA) {
	minRow, minCol := view.CellAt(0, 0)
	maxRow, maxCol := view.CellAt(view.W, view.H)
	minCol = clampInt(minCol, 0, size.W)
	maxCol = clampInt(maxCol+1, 0, size.W)
	minRow = clampInt(minRow, 0, size.H)
	maxRow = clampInt(maxRow+1, 0, size.H)
	if float64(every)*view.Zoom < 4 {
		return
	}

	top := float64(minRow)*view.Zoom + view.OffsetY
	bottom := float64(maxRow)*view.Zoom + view.OffsetY
	for c := minCol - minCol%every; c <= maxCol; c += every {
		x := float64(c)*view.Zoom + view.OffsetX
		o.drawRect(screen, x, top, 1, bottom-top, col)
	}
	if every != 1 {
		return
	}
	left := float64(minCol)*view.Zoom + view.OffsetX
	right := float64(maxCol)*view.Zoom + view.OffsetX
	for r := minRow; r <= maxRow; r++ {
		y := float64(r)*view.Zoom + view.OffsetY
		o.drawRect(screen, left, y, right-left, 1, col)
	}
}

// drawBorder shades the rows and word columns kernels never update.
func (o *Overlay) drawBorder(screen *ebiten.Image, view View, size core.Size) {
	tint := color.RGBA{R: 120, G: 30, B: 30, A: 90}
	z := view.Zoom
	w := float64(size.W) * z
	h := float64(size.H) * z
	word := float64(core.WordBits) * z
	x0, y0 := view.OffsetX, view.OffsetY
	o.drawRect(screen, x0, y0, w, z, tint)
	o.drawRect(screen, x0, y0+h-z, w, z, tint)
	o.drawRect(screen, x0, y0+z, word, h-2*z, tint)
	o.drawRect(screen, x0+w-word, y0+z, word, h-2*z, tint)
}

func (o *Overlay) drawRect(screen *ebiten.Image, x, y, w, h float64, col color.RGBA) {
	if w <= 0 || h <= 0 {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(w, h)
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(col)
	screen.DrawImage(o.pixel, op)
}

func clampInt(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
