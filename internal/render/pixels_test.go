package render

import (
	"image/color"
	"slices"
	"testing"

	"bitlife/internal/core"
)

func TestFillPackedRGBA(t *testing.T) {
	words := []uint32{1 | 1<<31}
	buf := make([]byte, 4*core.WordBits)
	fillPackedRGBA(buf, words, color.White, color.Black)
	if !slices.Equal(buf[0:4], []byte{255, 255, 255, 255}) {
		t.Fatalf("bit 0 pixel = %v", buf[0:4])
	}
	if !slices.Equal(buf[4:8], []byte{0, 0, 0, 255}) {
		t.Fatalf("bit 1 pixel = %v", buf[4:8])
	}
	if !slices.Equal(buf[31*4:32*4], []byte{255, 255, 255, 255}) {
		t.Fatalf("bit 31 pixel = %v", buf[31*4:32*4])
	}
}

func TestPackInteriorRoundTrip(t *testing.T) {
	src, _ := core.NewBitGrid(128, 8)
	src.Randomize(core.NewRNG(21), false)
	pix := make([]byte, 4*128*8)
	fillPackedRGBA(pix, src.Words(), color.White, color.Transparent)

	dst, _ := core.NewBitGrid(128, 8)
	packInterior(dst, pix)
	gw := dst.GridWidth()
	for y := 0; y < dst.Height(); y++ {
		for x := 0; x < gw; x++ {
			interior := y > 0 && y < dst.Height()-1 && x > 0 && x < gw-1
			want := uint32(0)
			if interior {
				want = src.WordAt(y, x)
			}
			if got := dst.WordAt(y, x); got != want {
				t.Fatalf("word (%d,%d) = %#x, expected %#x", y, x, got, want)
			}
		}
	}
}
