package ocr

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/otiai10/gosseract/v2"
)

// TesseractEngine implements Engine on top of the gosseract client.
type TesseractEngine struct {
	passes        []Pass
	clientFactory func() *gosseract.Client
}

// NewTesseractEngine constructs a Tesseract-backed engine running the
// default passes.
func NewTesseractEngine() *TesseractEngine {
	return NewTesseractEngineWithPasses(DefaultPasses())
}

// NewTesseractEngineWithPasses constructs an engine with a custom pass list.
func NewTesseractEngineWithPasses(passes []Pass) *TesseractEngine {
	return &TesseractEngine{
		passes:        passes,
		clientFactory: gosseract.NewClient,
	}
}

func (e *TesseractEngine) Name() string { return "tesseract" }

// Recognize runs every configured pass over the image and returns the
// surviving candidate transcriptions in pass order.
func (e *TesseractEngine) Recognize(ctx context.Context, imageData []byte) ([]string, error) {
	var candidates []string
	var lastErr error

	for _, pass := range e.passes {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		text, err := e.runPass(pass, imageData)
		if err != nil {
			slog.Warn("OCR pass failed",
				"pass", pass.Name, "languages", strings.Join(pass.Languages, "+"), "error", err)
			lastErr = err
			continue
		}
		candidates = append(candidates, text)
	}

	if len(candidates) == 0 {
		if lastErr != nil {
			return nil, fmt.Errorf("all OCR passes failed: %w", lastErr)
		}
		return nil, fmt.Errorf("no OCR passes configured")
	}
	return candidates, nil
}

func (e *TesseractEngine) runPass(pass Pass, imageData []byte) (string, error) {
	c := e.clientFactory()
	defer func() { _ = c.Close() }()

	if err := c.SetImageFromBytes(imageData); err != nil {
		return "", fmt.Errorf("set image: %w", err)
	}
	if len(pass.Languages) > 0 {
		if err := c.SetLanguage(pass.Languages...); err != nil {
			return "", fmt.Errorf("set languages: %w", err)
		}
	}
	if err := c.SetPageSegMode(gosseract.PSM_SINGLE_BLOCK); err != nil {
		return "", fmt.Errorf("set page segmentation mode: %w", err)
	}
	for k, v := range pass.Variables {
		if err := c.SetVariable(gosseract.SettableVariable(k), v); err != nil {
			return "", fmt.Errorf("set variable %s: %w", k, err)
		}
	}

	text, err := c.Text()
	if err != nil {
		return "", fmt.Errorf("recognize text: %w", err)
	}
	return strings.TrimSpace(text), nil
}
