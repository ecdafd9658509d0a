package imageio

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/webp"

	"github.com/imagesleuth/imagesleuth/internal/models"
)

// Decode decodes JPEG, PNG, GIF, or WEBP bytes. It returns the decoded
// image and the sniffed MIME type, or ErrInvalidImage when the bytes are
// not a supported image.
func Decode(data []byte) (image.Image, string, error) {
	if len(data) == 0 {
		return nil, "", fmt.Errorf("%w: empty input", models.ErrInvalidImage)
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", models.ErrInvalidImage, err)
	}

	mime := "image/" + format
	if format == "jpg" {
		mime = "image/jpeg"
	}
	return img, mime, nil
}

// Dimensions reads just the image header and returns width and height.
func Dimensions(data []byte) (int, int, error) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %v", models.ErrInvalidImage, err)
	}
	return cfg.Width, cfg.Height, nil
}
