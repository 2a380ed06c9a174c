// Package ocr defines the optical character recognition boundary of the
// pipeline. Recognition runs several passes with different engine settings
// over the same page image; each pass yields one candidate transcription and
// the caller picks the best one.
package ocr

import "context"

// Pass describes one recognition configuration.
type Pass struct {
	Name      string
	Languages []string
	Variables map[string]string
}

// DefaultPasses covers the two configurations used for scanned Arabic books:
// a bilingual pass for mixed Arabic and Latin text, and an Arabic-only pass
// tuned for fully vocalized Quranic typesetting.
func DefaultPasses() []Pass {
	return []Pass{
		{
			Name:      "arabic-mixed",
			Languages: []string{"ara", "ita"},
			Variables: map[string]string{
				"preserve_interword_spaces": "1",
				"textord_heavy_nr":          "1",
			},
		},
		{
			Name:      "arabic-vocalized",
			Languages: []string{"ara"},
			Variables: map[string]string{
				"preserve_interword_spaces": "1",
				"textord_heavy_nr":          "1",
				"textord_min_linesize":      "1",
			},
		},
	}
}

// Engine produces candidate transcriptions of a page image, one per
// configured pass. A pass that fails is skipped rather than failing the
// whole recognition; an error is returned only when no pass succeeds.
type Engine interface {
	Name() string
	Recognize(ctx context.Context, imageData []byte) ([]string, error)
}
