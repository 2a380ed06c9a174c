// Package translator is the translation boundary of the pipeline. The core
// correction and chunking logic never calls it directly; the pipeline feeds
// corrected chunks or page images in and collects translations.
package translator

import "context"

// Translator turns source-language text or page images into target-language
// text.
type Translator interface {
	// TranslateText translates a single chunk of text. Empty input
	// translates to the empty string without a backend call.
	TranslateText(ctx context.Context, text string) (string, error)

	// TranslateImage translates the text visible in a PNG page image.
	TranslateImage(ctx context.Context, pngData []byte) (string, error)

	// Close releases backend resources.
	Close() error
}
