package render

import (
	"image/color"

	"bitlife/internal/core"
)

// fillPackedRGBA expands packed cell words into RGBA pixels in buf, 32 pixels
// per word, bit 0 leftmost.
func fillPackedRGBA(buf []byte, words []uint32, on, off color.Color) {
	onPx := rgba8(on)
	offPx := rgba8(off)
	for i, w := range words {
		base := i * core.WordBits * 4
		for b := 0; b < core.WordBits; b++ {
			px := offPx
			if w>>uint(b)&1 == 1 {
				px = onPx
			}
			copy(buf[base+b*4:base+b*4+4], px[:])
		}
	}
}

// packInterior reads the alpha channel of RGBA pixels back into the interior
// words of g. Border words of g are left untouched.
func packInterior(g *core.BitGrid, pix []byte) {
	w, h, gw := g.Width(), g.Height(), g.GridWidth()
	words := g.Words()
	for y := 1; y < h-1; y++ {
		for x := 1; x < gw-1; x++ {
			var word uint32
			base := (y*w + x*core.WordBits) * 4
			for b := 0; b < core.WordBits; b++ {
				if pix[base+b*4+3] > 127 {
					word |= 1 << uint(b)
				}
			}
			words[y*gw+x] = word
		}
	}
}

func rgba8(c color.Color) [4]byte {
	r, g, b, a := c.RGBA()
	return [4]byte{uint8(r >> 8), uint8(g >> 8), uint8(b >> 8), uint8(a >> 8)}
}
