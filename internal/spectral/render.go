package spectral

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
)

// magmaStops are evenly spaced anchors of the magma colormap; values in
// between are linearly interpolated.
var magmaStops = [][3]uint8{
	{0, 0, 4},
	{40, 11, 84},
	{101, 21, 110},
	{159, 42, 99},
	{212, 72, 66},
	{245, 125, 21},
	{250, 193, 39},
	{252, 253, 191},
}

func magma(v float64) color.NRGBA {
	if v <= 0 {
		s := magmaStops[0]
		return color.NRGBA{s[0], s[1], s[2], 255}
	}
	if v >= 1 {
		s := magmaStops[len(magmaStops)-1]
		return color.NRGBA{s[0], s[1], s[2], 255}
	}

	pos := v * float64(len(magmaStops)-1)
	i := int(pos)
	frac := pos - float64(i)
	lo, hi := magmaStops[i], magmaStops[i+1]

	lerp := func(a, b uint8) uint8 {
		return uint8(float64(a) + frac*(float64(b)-float64(a)))
	}
	return color.NRGBA{lerp(lo[0], hi[0]), lerp(lo[1], hi[1]), lerp(lo[2], hi[2]), 255}
}

// render normalizes the log-magnitude grid by its maximum and rasterizes
// it through the colormap into a PNG.
func render(logMag [][]float64, maxLog float64) ([]byte, error) {
	n := len(logMag)
	img := image.NewNRGBA(image.Rect(0, 0, n, n))

	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			v := 0.0
			if maxLog > 0 {
				v = logMag[y][x] / maxLog
			}
			c := magma(v)
			off := y*img.Stride + x*4
			img.Pix[off] = c.R
			img.Pix[off+1] = c.G
			img.Pix[off+2] = c.B
			img.Pix[off+3] = c.A
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
