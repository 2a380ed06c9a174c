package testutil

import (
	"archive/zip"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"strings"
)

// WritePNGFixture writes a grayscale PNG with a dark band across the middle,
// enough structure for preprocessing and upload tests.
func WritePNGFixture(path string, width, height int) error {
	img := image.NewGray(image.Rect(0, 0, width, height))
	for y := range height {
		v := uint8(230)
		if y > height/3 && y < 2*height/3 {
			v = 20
		}
		for x := range width {
			img.SetGray(x, y, color.Gray{Y: v})
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()
	return png.Encode(f, img)
}

// WriteDOCXFixture writes a minimal Word document containing the given
// paragraphs.
func WriteDOCXFixture(path string, paragraphs []string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	var body strings.Builder
	for _, p := range paragraphs {
		fmt.Fprintf(&body, "<w:p><w:r><w:t>%s</w:t></w:r></w:p>", p)
	}

	document := `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` +
		`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">` +
		`<w:body>` + body.String() + `</w:body></w:document>`

	zw := zip.NewWriter(f)
	entry, err := zw.Create("word/document.xml")
	if err != nil {
		return err
	}
	if _, err := entry.Write([]byte(document)); err != nil {
		return err
	}
	return zw.Close()
}
