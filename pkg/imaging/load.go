package imaging

import (
	"fmt"
	"image"
	_ "image/jpeg"
	"image/png"
	"os"
)

// Load decodes the image file at path into an RGB buffer. PNG and JPEG are
// supported; anything undecodable is a load error.
func Load(path string) (*RGB, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open image %s: %w", path, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode image %s: %w", path, err)
	}
	return FromImage(img), nil
}

// SavePNG writes an image to path as PNG, creating the file if needed.
func SavePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return nil
}
