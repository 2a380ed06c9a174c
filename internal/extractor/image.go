package extractor

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/disintegration/imaging"
)

// binaryThreshold separates ink from paper after grayscale conversion.
// Scanned Arabic text keeps its diacritics above this cutoff.
const binaryThreshold = 128

func loadImageFile(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image %q: %w", path, err)
	}
	return img, nil
}

// LoadImage decodes an image file in any of the supported formats.
func LoadImage(path string) (image.Image, error) {
	return loadImageFile(path)
}

// PreprocessForOCR converts an image to grayscale and binarizes it, which
// sharpens glyph edges for the recognition passes.
func PreprocessForOCR(img image.Image) image.Image {
	gray := imaging.Grayscale(img)

	bounds := gray.Bounds()
	binary := image.NewGray(bounds)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			c := color.GrayModel.Convert(gray.At(x, y)).(color.Gray)
			if c.Y > binaryThreshold {
				binary.SetGray(x, y, color.Gray{Y: 255})
			} else {
				binary.SetGray(x, y, color.Gray{Y: 0})
			}
		}
	}
	return binary
}

// EncodePNG renders an image as PNG bytes for handing to the OCR engine.
func EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}
	return buf.Bytes(), nil
}
