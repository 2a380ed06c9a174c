package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/katelkum/translater/internal/config"
	"github.com/katelkum/translater/internal/extractor"
	"github.com/katelkum/translater/internal/pipeline"
)

// pdfCmd represents the pdf command.
var pdfCmd = &cobra.Command{
	Use:   "pdf <file>",
	Short: "Translate a PDF document",
	Long: `Translate a PDF document.

Pages with an embedded text layer are read directly. Scanned pages are
rendered and recognized with Tesseract unless OCR is disabled.

Examples:
  translater pdf book.pdf
  translater pdf book.pdf --pages 1-10,15
  translater pdf locked.pdf --password secret
  translater pdf book.pdf --format json --output book.json`,
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()
		applyProcessingFlags(cmd, cfg)

		input := args[0]
		if _, err := os.Stat(input); err != nil {
			return fmt.Errorf("cannot read input file: %w", err)
		}

		var pages []int
		if sel, _ := cmd.Flags().GetString("pages"); sel != "" {
			var err error
			pages, err = extractor.ParsePageSelection(sel)
			if err != nil {
				return fmt.Errorf("invalid page selection: %w", err)
			}
		}

		// Encrypted PDFs are decrypted into a temp file first.
		if password, _ := cmd.Flags().GetString("password"); password != "" {
			decrypted, err := os.CreateTemp("", "translater-decrypted-*.pdf")
			if err != nil {
				return fmt.Errorf("failed to create temp file: %w", err)
			}
			tempPath := decrypted.Name()
			_ = decrypted.Close()
			defer func() { _ = os.Remove(tempPath) }()

			if err := extractor.DecryptPDF(input, tempPath, password); err != nil {
				return fmt.Errorf("failed to decrypt PDF: %w", err)
			}
			input = tempPath
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		builder, err := newPipelineBuilder(ctx, cfg)
		if err != nil {
			return err
		}
		pl, err := builder.
			WithPages(pages).
			WithProgressCallback(commandProgress(cmd)).
			Build()
		if err != nil {
			return err
		}
		defer func() { _ = pl.Close() }()

		result, err := pl.ProcessPDF(ctx, input)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return errors.New("translation interrupted")
			}
			return fmt.Errorf("failed to translate PDF: %w", err)
		}

		return writeResult(cmd, cfg, result)
	},
}

func init() {
	rootCmd.AddCommand(pdfCmd)
	pdfCmd.Flags().String("pages", "", "page selection, e.g. \"3\", \"1-5\", \"1,3,7-9\" (default all)")
	pdfCmd.Flags().String("password", "", "password for encrypted PDFs")
	addProcessingFlags(pdfCmd)
}

// addProcessingFlags registers the flags shared by the document commands.
func addProcessingFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("ocr", true, "recognize scanned pages with Tesseract")
	cmd.Flags().Int("max-chunk-size", 4000, "maximum translation chunk size in characters")
	cmd.Flags().Int("workers", 0, "number of parallel translation workers (default number of CPUs)")
	cmd.Flags().BoolP("quiet", "q", false, "suppress the progress bar")
}

// applyProcessingFlags folds explicit flag values into the configuration.
func applyProcessingFlags(cmd *cobra.Command, cfg *config.Config) {
	if cmd.Flags().Changed("ocr") {
		cfg.OCR.Enabled, _ = cmd.Flags().GetBool("ocr")
	}
	if cmd.Flags().Changed("max-chunk-size") {
		cfg.Chunker.MaxChunkSize, _ = cmd.Flags().GetInt("max-chunk-size")
	}
	if cmd.Flags().Changed("workers") {
		cfg.Parallel.MaxWorkers, _ = cmd.Flags().GetInt("workers")
	}
}

// commandProgress returns a progress bar on stderr, or a silent callback
// when --quiet is set.
func commandProgress(cmd *cobra.Command) pipeline.ProgressCallback {
	if quiet, _ := cmd.Flags().GetBool("quiet"); quiet {
		return pipeline.NoOpProgressCallback{}
	}
	return pipeline.NewConsoleProgressCallback(cmd.ErrOrStderr(), "Translating")
}
