package cmd

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/katelkum/translater/internal/config"
	"github.com/katelkum/translater/internal/ocr"
	"github.com/katelkum/translater/internal/pipeline"
	"github.com/katelkum/translater/internal/translator"
)

// newTranslator builds the Gemini backend from the configuration. The API
// key comes from the environment only.
func newTranslator(ctx context.Context, cfg *config.Config) (translator.Translator, error) {
	apiKey := config.APIKey()
	if apiKey == "" {
		return nil, fmt.Errorf("%s environment variable is not set", config.APIKeyEnv)
	}

	return translator.NewGeminiTranslator(ctx, apiKey, translator.GeminiOptions{
		SourceLang:  cfg.Translator.SourceLang,
		TargetLang:  cfg.Translator.TargetLang,
		Models:      cfg.Translator.Models,
		Temperature: cfg.Translator.Temperature,
	})
}

// ocrPasses adapts the default recognition passes to the configured language
// list and DPI. The first pass covers all configured languages, the second
// only the primary one.
func ocrPasses(languages []string, dpi int) []ocr.Pass {
	passes := ocr.DefaultPasses()
	if len(languages) > 0 {
		passes[0].Languages = languages
		passes[1].Languages = languages[:1]
	}
	if dpi > 0 {
		for i := range passes {
			passes[i].Variables["user_defined_dpi"] = strconv.Itoa(dpi)
		}
	}
	return passes
}

// newPipelineBuilder assembles a pipeline builder from the configuration.
// Commands may refine it (page selection, progress reporting) before Build.
func newPipelineBuilder(ctx context.Context, cfg *config.Config) (*pipeline.Builder, error) {
	tr, err := newTranslator(ctx, cfg)
	if err != nil {
		return nil, err
	}

	b := pipeline.NewBuilder().
		WithMaxChunkSize(cfg.Chunker.MaxChunkSize).
		WithMaxWorkers(cfg.Parallel.MaxWorkers).
		WithOCREnabled(cfg.OCR.Enabled).
		WithTranslator(tr)

	if cfg.OCR.Enabled {
		b = b.WithOCREngine(ocr.NewTesseractEngineWithPasses(ocrPasses(cfg.OCR.Languages, cfg.OCR.DPI)))
	}

	return b, nil
}

// writeResult renders a document result in the configured format and writes
// it to the output file or stdout.
func writeResult(cmd *cobra.Command, cfg *config.Config, result *pipeline.DocumentResult) error {
	out, err := result.Format(cfg.Output.Format)
	if err != nil {
		return err
	}
	return writeOutput(cmd, cfg.Output.File, out)
}

func writeOutput(cmd *cobra.Command, file, out string) error {
	if file != "" {
		if err := os.WriteFile(file, []byte(out), 0o600); err != nil {
			return fmt.Errorf("failed to write output file: %w", err)
		}
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Output written to %s\n", file)
		return nil
	}
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), out)
	return nil
}
