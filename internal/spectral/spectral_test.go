package spectral

import (
	"bytes"
	"errors"
	"image"
	"image/png"
	"math"
	"math/cmplx"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imagesleuth/imagesleuth/internal/models"
)

// gradientPNG builds a small photograph-like test image: a smooth
// gradient with a little structure.
func gradientPNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewGray(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Pix[y*img.Stride+x] = uint8((x*3 + y*2) % 256)
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestAnalyzeFixedOutputSize(t *testing.T) {
	analyzer := New(DefaultSize)

	for _, dims := range []struct{ w, h int }{{100, 60}, {1, 1}, {640, 480}} {
		data := gradientPNG(t, dims.w, dims.h)

		report, err := analyzer.Analyze(data)
		require.NoError(t, err, "input %dx%d", dims.w, dims.h)

		assert.Equal(t, DefaultSize, report.Size)

		rendered, err := png.Decode(bytes.NewReader(report.PNG))
		require.NoError(t, err)
		assert.Equal(t, DefaultSize, rendered.Bounds().Dx())
		assert.Equal(t, DefaultSize, rendered.Bounds().Dy())
	}
}

func TestAnalyzeDeterministic(t *testing.T) {
	analyzer := New(128)
	data := gradientPNG(t, 200, 150)

	first, err := analyzer.Analyze(data)
	require.NoError(t, err)
	second, err := analyzer.Analyze(data)
	require.NoError(t, err)

	assert.Equal(t, first.PNG, second.PNG, "identical input must render identical bytes")
	assert.Equal(t, first.Stats, second.Stats)
	assert.Equal(t, first.Summary, second.Summary)
}

func TestAnalyzeInvalidImage(t *testing.T) {
	analyzer := New(DefaultSize)

	for _, input := range [][]byte{
		nil,
		{},
		[]byte("this is not an image despite the extension"),
	} {
		_, err := analyzer.Analyze(input)
		assert.True(t, errors.Is(err, models.ErrInvalidImage), "input %q", input)
	}
}

func TestAnalyzeDataURI(t *testing.T) {
	analyzer := New(64)
	report, err := analyzer.Analyze(gradientPNG(t, 64, 64))
	require.NoError(t, err)

	assert.Contains(t, report.DataURI, "data:image/png;base64,")
	assert.NotEmpty(t, report.Summary)
}

func TestDCIsMaximumAfterShift(t *testing.T) {
	n := 64
	grid := make([][]float64, n)
	for y := range grid {
		grid[y] = make([]float64, n)
		for x := range grid[y] {
			grid[y][x] = float64((x*5 + y*7) % 251)
		}
	}

	mag := shiftMagnitude(fft2(grid))

	center := mag[n/2][n/2]
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			assert.LessOrEqual(t, mag[y][x], center+1e-6,
				"DC must dominate for non-negative input, exceeded at (%d,%d)", x, y)
		}
	}
}

func TestFFT2Impulse(t *testing.T) {
	// A single impulse has a flat magnitude spectrum.
	n := 16
	grid := make([][]float64, n)
	for y := range grid {
		grid[y] = make([]float64, n)
	}
	grid[0][0] = 1

	freq := fft2(grid)
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			assert.InDelta(t, 1.0, cmplx.Abs(freq[y][x]), 1e-9)
		}
	}
}

func TestRotationalSymmetry(t *testing.T) {
	n := 32

	uniform := make([][]float64, n)
	for y := range uniform {
		uniform[y] = make([]float64, n)
		for x := range uniform[y] {
			uniform[y][x] = 3.5
		}
	}
	assert.InDelta(t, 1.0, rotationalSymmetry(uniform), 1e-9)

	lopsided := make([][]float64, n)
	for y := range lopsided {
		lopsided[y] = make([]float64, n)
	}
	for y := 0; y < n; y++ {
		lopsided[y][0] = 100
	}
	assert.Less(t, rotationalSymmetry(lopsided), 0.5)
}

func TestSummarize(t *testing.T) {
	tests := []struct {
		name     string
		stats    models.SpectrumStats
		contains string
	}{
		{
			name:     "natural falloff",
			stats:    models.SpectrumStats{AnomalyCount: 12},
			contains: "appears natural",
		},
		{
			name:     "boundary stays natural",
			stats:    models.SpectrumStats{AnomalyCount: anomalyCountCutoff},
			contains: "appears natural",
		},
		{
			name:     "generative artifacts",
			stats:    models.SpectrumStats{AnomalyCount: 480},
			contains: "GAN and diffusion",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Contains(t, summarize(tt.stats), tt.contains)
		})
	}
}

func TestMagmaColormapEndpoints(t *testing.T) {
	low := magma(0)
	assert.Equal(t, magmaStops[0][0], low.R)
	assert.Equal(t, magmaStops[0][2], low.B)

	high := magma(1)
	last := magmaStops[len(magmaStops)-1]
	assert.Equal(t, last[0], high.R)
	assert.Equal(t, last[1], high.G)

	mid := magma(0.5)
	assert.Equal(t, uint8(255), mid.A)
}

func TestNewOddSizeRoundsUp(t *testing.T) {
	assert.Equal(t, 130, New(129).size)
	assert.Equal(t, DefaultSize, New(0).size)
	assert.Equal(t, DefaultSize, New(-4).size)
}

func TestComputeStatsExcludesDC(t *testing.T) {
	n := 64
	mag := make([][]float64, n)
	logMag := make([][]float64, n)
	for y := range mag {
		mag[y] = make([]float64, n)
		logMag[y] = make([]float64, n)
		for x := range mag[y] {
			mag[y][x] = 1
			logMag[y][x] = math.Log1p(1)
		}
	}
	// A huge DC spike inside the exclusion disk must not skew the stats.
	mag[n/2][n/2] = 1e12

	stats := computeStats(mag, logMag, math.Log1p(1))
	assert.InDelta(t, 1.0, stats.Mean, 1e-9)
	assert.InDelta(t, 0.0, stats.StdDev, 1e-9)
	assert.Equal(t, 0, stats.AnomalyCount)
}
