package detector

import (
	"bytes"
	"image"
	"image/png"
)

// probeImage returns a small synthetic PNG used to touch the model
// during warm-up without shipping a fixture.
func probeImage() []byte {
	img := image.NewGray(image.Rect(0, 0, 16, 16))
	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			img.Pix[y*img.Stride+x] = uint8((x + y) * 8)
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		// Encoding an in-memory gray image cannot fail.
		panic(err)
	}
	return buf.Bytes()
}
