package life

import (
	"math"

	"gonum.org/v1/gonum/dsp/fourier"

	"bitlife/internal/core"
)

// FFT counts neighbours by 2D circular convolution in the frequency domain.
// The kernel weighs each neighbour 2 and the cell itself 1, so the convolved
// value is 2*neighbours+alive. Interior cells never see the wraparound, which
// keeps the result identical to the CPU kernel.
//
// An FFT keeps per-size scratch buffers and is not safe for concurrent use.
type FFT struct {
	w, h  int
	halfW int

	rowFFT *fourier.FFT
	colFFT *fourier.CmplxFFT

	kernelFreq []complex128 // h rows x halfW
	freq       []complex128 // h rows x halfW
	col        []complex128 // length h
	row        []float64    // length w
	norm       float64
}

// NewFFT returns an FFT kernel. Transforms are planned on first use.
func NewFFT() *FFT { return &FFT{} }

// Name identifies the kernel.
func (f *FFT) Name() string { return "fft" }

// Step writes the next generation of every interior word of src into dst.
func (f *FFT) Step(src, dst *core.BitGrid) error {
	if err := core.CheckStep(src, dst); err != nil {
		return err
	}
	w, h, gw := src.Width(), src.Height(), src.GridWidth()
	if h < 3 || gw < 3 {
		return nil
	}
	f.plan(w, h)

	in := src.Words()
	for y := 0; y < h; y++ {
		words := in[y*gw : (y+1)*gw]
		for x, word := range words {
			base := x * core.WordBits
			for b := 0; b < core.WordBits; b++ {
				f.row[base+b] = float64(word >> uint(b) & 1)
			}
		}
		f.rowFFT.Coefficients(f.freq[y*f.halfW:(y+1)*f.halfW], f.row)
	}
	f.columns(f.freq, false)

	for i := range f.freq {
		f.freq[i] *= f.kernelFreq[i]
	}

	f.columns(f.freq, true)
	out := dst.Words()
	for y := 1; y < h-1; y++ {
		f.rowFFT.Sequence(f.row, f.freq[y*f.halfW:(y+1)*f.halfW])
		for x := 1; x < gw-1; x++ {
			var word uint32
			base := x * core.WordBits
			for b := 0; b < core.WordBits; b++ {
				v := int(math.Round(f.row[base+b] * f.norm))
				if Next(v&1 == 1, v>>1) {
					word |= 1 << uint(b)
				}
			}
			out[y*gw+x] = word
		}
	}
	return nil
}

// columns runs the complex transform down every column of buf.
func (f *FFT) columns(buf []complex128, inverse bool) {
	for x := 0; x < f.halfW; x++ {
		for y := 0; y < f.h; y++ {
			f.col[y] = buf[y*f.halfW+x]
		}
		if inverse {
			f.colFFT.Sequence(f.col, f.col)
		} else {
			f.colFFT.Coefficients(f.col, f.col)
		}
		for y := 0; y < f.h; y++ {
			buf[y*f.halfW+x] = f.col[y]
		}
	}
}

// plan prepares transforms and the transformed convolution kernel for w x h.
func (f *FFT) plan(w, h int) {
	if f.w == w && f.h == h && f.rowFFT != nil {
		return
	}
	f.w, f.h = w, h
	f.halfW = w/2 + 1
	f.rowFFT = fourier.NewFFT(w)
	f.colFFT = fourier.NewCmplxFFT(h)
	f.norm = 1 / float64(w*h)
	f.freq = make([]complex128, h*f.halfW)
	f.kernelFreq = make([]complex128, h*f.halfW)
	f.col = make([]complex128, h)
	f.row = make([]float64, w)

	spatial := make([]float64, w*h)
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			weight := 2.0
			if dx == 0 && dy == 0 {
				weight = 1
			}
			spatial[((dy+h)%h)*w+(dx+w)%w] = weight
		}
	}
	for y := 0; y < h; y++ {
		f.rowFFT.Coefficients(f.kernelFreq[y*f.halfW:(y+1)*f.halfW], spatial[y*w:(y+1)*w])
	}
	f.columns(f.kernelFreq, false)
}

func init() {
	core.RegisterKernel("fft", func(map[string]string) core.Kernel { return NewFFT() })
}
