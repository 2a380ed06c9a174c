package translator

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// DefaultModels is the fallback chain tried in order for every request. The
// experimental flash model recognizes Arabic diacritics noticeably better;
// the stable model is the safety net.
var DefaultModels = []string{"gemini-2.0-flash-exp", "gemini-1.5-flash"}

// GeminiOptions configures a GeminiTranslator.
type GeminiOptions struct {
	SourceLang  string
	TargetLang  string
	Models      []string
	Temperature float32
}

// GeminiTranslator implements Translator against the Gemini API.
type GeminiTranslator struct {
	client     *genai.Client
	models     []string
	sourceLang string
	targetLang string
	temp       float32
}

// NewGeminiTranslator dials the Gemini API. The API key is required; model
// list and languages fall back to defaults when empty.
func NewGeminiTranslator(ctx context.Context, apiKey string, opts GeminiOptions) (*GeminiTranslator, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	models := opts.Models
	if len(models) == 0 {
		models = DefaultModels
	}
	sourceLang := opts.SourceLang
	if sourceLang == "" {
		sourceLang = "Arabic"
	}
	targetLang := opts.TargetLang
	if targetLang == "" {
		targetLang = "Italian"
	}

	return &GeminiTranslator{
		client:     client,
		models:     models,
		sourceLang: sourceLang,
		targetLang: targetLang,
		temp:       opts.Temperature,
	}, nil
}

// TranslateText translates one chunk, falling through the model chain until
// a model answers.
func (t *GeminiTranslator) TranslateText(ctx context.Context, text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", nil
	}

	prompt := textPrompt(t.sourceLang, t.targetLang) + "\n\nText to translate:\n" + text
	return t.generate(ctx, genai.Text(prompt))
}

// TranslateImage translates a page image through the vision-capable models
// in the chain.
func (t *GeminiTranslator) TranslateImage(ctx context.Context, pngData []byte) (string, error) {
	if len(pngData) == 0 {
		return "", fmt.Errorf("empty image data")
	}

	prompt := imagePrompt(t.sourceLang, t.targetLang)
	return t.generate(ctx, genai.Text(prompt), genai.ImageData("png", pngData))
}

func (t *GeminiTranslator) Close() error {
	if t.client != nil {
		return t.client.Close()
	}
	return nil
}

func (t *GeminiTranslator) generate(ctx context.Context, parts ...genai.Part) (string, error) {
	var lastErr error
	for _, name := range t.models {
		model := t.client.GenerativeModel(name)
		model.SetTemperature(t.temp)

		resp, err := model.GenerateContent(ctx, parts...)
		if err != nil {
			slog.Warn("Translation model failed, trying next", "model", name, "error", err)
			lastErr = err
			continue
		}

		text, err := extractText(resp)
		if err != nil {
			lastErr = err
			continue
		}
		return strings.TrimSpace(text), nil
	}
	return "", fmt.Errorf("all translation models failed: %w", lastErr)
}

func extractText(resp *genai.GenerateContentResponse) (string, error) {
	if len(resp.Candidates) == 0 {
		return "", fmt.Errorf("no candidates in response")
	}
	content := resp.Candidates[0].Content
	if content == nil || len(content.Parts) == 0 {
		return "", fmt.Errorf("no content in response")
	}

	var parts []string
	for _, part := range content.Parts {
		if text, ok := part.(genai.Text); ok {
			parts = append(parts, string(text))
		}
	}
	if len(parts) == 0 {
		return "", fmt.Errorf("no text parts in response")
	}
	return strings.Join(parts, ""), nil
}
