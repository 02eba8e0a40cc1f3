package ui

import "math"

// View maps grid cells to screen pixels: screen = cell*Zoom + Offset. W and H
// are the screen area covered by the grid view.
type View struct {
	Zoom             float64
	OffsetX, OffsetY float64
	W, H             int
}

// CellAt converts a screen position to (row, col). The result may lie outside
// the grid.
func (v View) CellAt(x, y int) (row, col int) {
	col = int(math.Floor((float64(x) - v.OffsetX) / v.Zoom))
	row = int(math.Floor((float64(y) - v.OffsetY) / v.Zoom))
	return row, col
}
