package spectral

import (
	"math/cmplx"

	"gonum.org/v1/gonum/dsp/fourier"
)

// fft2 computes the 2D DFT of a square grid by running the complex FFT
// over every row, then over every column of the row results.
func fft2(grid [][]float64) [][]complex128 {
	n := len(grid)
	fft := fourier.NewCmplxFFT(n)

	out := make([][]complex128, n)
	row := make([]complex128, n)
	for y := range grid {
		for x, v := range grid[y] {
			row[x] = complex(v, 0)
		}
		out[y] = fft.Coefficients(nil, row)
	}

	col := make([]complex128, n)
	for x := 0; x < n; x++ {
		for y := 0; y < n; y++ {
			col[y] = out[y][x]
		}
		res := fft.Coefficients(nil, col)
		for y := 0; y < n; y++ {
			out[y][x] = res[y]
		}
	}

	return out
}

// shiftMagnitude applies the standard DFT-shift (zero frequency moved to
// the center) and takes magnitudes in one pass.
func shiftMagnitude(freq [][]complex128) [][]float64 {
	n := len(freq)
	half := n / 2

	mag := make([][]float64, n)
	for y := 0; y < n; y++ {
		mag[y] = make([]float64, n)
		for x := 0; x < n; x++ {
			mag[y][x] = cmplx.Abs(freq[(y+half)%n][(x+half)%n])
		}
	}
	return mag
}
