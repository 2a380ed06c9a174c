package translator

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTextPrompt_ArabicSpecialization(t *testing.T) {
	arabic := textPrompt("Arabic", "Italian")
	assert.Contains(t, arabic, "Islamic texts")
	assert.Contains(t, arabic, "Arabic to Italian")

	// Case-insensitive match on the source language.
	lower := textPrompt("arabic", "English")
	assert.Contains(t, lower, "Islamic texts")

	generic := textPrompt("French", "English")
	assert.NotContains(t, generic, "Islamic texts")
	assert.Contains(t, generic, "French to English")
}

func TestImagePrompt(t *testing.T) {
	p := imagePrompt("Arabic", "Italian")
	assert.Contains(t, p, "from Arabic to Italian")
	assert.Contains(t, p, "ONLY the Italian translation")
}

func TestNewGeminiTranslator_RequiresAPIKey(t *testing.T) {
	_, err := NewGeminiTranslator(context.Background(), "", GeminiOptions{})
	assert.Error(t, err)
}

func TestMockTranslator(t *testing.T) {
	m := &MockTranslator{Prefix: "it: "}

	out, err := m.TranslateText(context.Background(), "مرحبا")
	require.NoError(t, err)
	assert.Equal(t, "it: مرحبا", out)
	assert.Equal(t, 1, m.TextCalls)

	// Whitespace-only input skips the backend.
	out, err = m.TranslateText(context.Background(), "   ")
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestMockTranslator_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	m := &MockTranslator{}
	_, err := m.TranslateText(ctx, "text")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestDefaultModels_FallbackOrder(t *testing.T) {
	require.NotEmpty(t, DefaultModels)
	// The experimental model leads, the stable model backs it up.
	assert.True(t, strings.HasSuffix(DefaultModels[len(DefaultModels)-1], "flash"))
	assert.Contains(t, DefaultModels[0], "2.0")
}
