package translator

import (
	"context"
	"strings"
)

// MockTranslator echoes input with a prefix, for tests and dry runs.
type MockTranslator struct {
	Prefix     string
	Err        error
	TextCalls  int
	ImageCalls int
}

func (m *MockTranslator) TranslateText(ctx context.Context, text string) (string, error) {
	m.TextCalls++
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if m.Err != nil {
		return "", m.Err
	}
	if strings.TrimSpace(text) == "" {
		return "", nil
	}
	return m.Prefix + text, nil
}

func (m *MockTranslator) TranslateImage(ctx context.Context, pngData []byte) (string, error) {
	m.ImageCalls++
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if m.Err != nil {
		return "", m.Err
	}
	return m.Prefix + "[image]", nil
}

func (m *MockTranslator) Close() error { return nil }
