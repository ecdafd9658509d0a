// Package spectral renders the log-magnitude 2D Fourier spectrum of an
// image and derives a short heuristic description from it. Periodic
// upsampling artifacts left by generative models show up as bright
// off-center spots and grid lines in the spectrum.
package spectral

import (
	"encoding/base64"
	"fmt"
	"math"

	"github.com/disintegration/imaging"

	"github.com/imagesleuth/imagesleuth/internal/imageio"
	"github.com/imagesleuth/imagesleuth/internal/models"
)

// DefaultSize is the side length of the grid the input is resized to
// before the transform. The rendered spectrum always has this size,
// regardless of the input dimensions.
const DefaultSize = 512

// Analyzer computes spectrum reports. It holds no mutable state; one
// Analyzer serves concurrent requests.
type Analyzer struct {
	size int
}

// New returns an Analyzer rendering size x size spectra. Sizes below 2
// fall back to DefaultSize.
func New(size int) *Analyzer {
	if size < 2 {
		size = DefaultSize
	}
	// Keep the grid even so the DFT-shift lands DC on a single pixel.
	if size%2 != 0 {
		size++
	}
	return &Analyzer{size: size}
}

// Analyze decodes the image, computes the centered log-magnitude DFT,
// renders it through the colormap, and attaches the heuristic summary.
// The result is byte-deterministic for identical input.
func (a *Analyzer) Analyze(imageBytes []byte) (*models.SpectrumReport, error) {
	img, _, err := imageio.Decode(imageBytes)
	if err != nil {
		return nil, err
	}

	gray := imaging.Resize(imaging.Grayscale(img), a.size, a.size, imaging.Lanczos)

	grid := make([][]float64, a.size)
	for y := 0; y < a.size; y++ {
		grid[y] = make([]float64, a.size)
		for x := 0; x < a.size; x++ {
			// Grayscale output has equal channels; the red one suffices.
			grid[y][x] = float64(gray.Pix[y*gray.Stride+x*4])
		}
	}

	mag := shiftMagnitude(fft2(grid))

	logMag := make([][]float64, a.size)
	maxLog := 0.0
	for y := range mag {
		logMag[y] = make([]float64, a.size)
		for x, v := range mag[y] {
			lv := math.Log1p(v)
			logMag[y][x] = lv
			if lv > maxLog {
				maxLog = lv
			}
		}
	}

	stats := computeStats(mag, logMag, maxLog)

	pngBytes, err := render(logMag, maxLog)
	if err != nil {
		return nil, fmt.Errorf("failed to render spectrum: %w", err)
	}

	return &models.SpectrumReport{
		PNG:     pngBytes,
		DataURI: "data:image/png;base64," + base64.StdEncoding.EncodeToString(pngBytes),
		Size:    a.size,
		Stats:   stats,
		Summary: summarize(stats),
	}, nil
}
