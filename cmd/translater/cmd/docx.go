package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

// docxCmd represents the docx command.
var docxCmd = &cobra.Command{
	Use:   "docx <file>",
	Short: "Translate a Word document",
	Long: `Translate a Word document.

Paragraph text is extracted from the document, corrected, chunked, and
translated. No OCR is involved.

Examples:
  translater docx notes.docx
  translater docx notes.docx --format yaml --output notes.yaml`,
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()
		applyProcessingFlags(cmd, cfg)

		input := args[0]
		if _, err := os.Stat(input); err != nil {
			return fmt.Errorf("cannot read input file: %w", err)
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		builder, err := newPipelineBuilder(ctx, cfg)
		if err != nil {
			return err
		}
		pl, err := builder.WithProgressCallback(commandProgress(cmd)).Build()
		if err != nil {
			return err
		}
		defer func() { _ = pl.Close() }()

		result, err := pl.ProcessDOCX(ctx, input)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return errors.New("translation interrupted")
			}
			return fmt.Errorf("failed to translate document: %w", err)
		}

		return writeResult(cmd, cfg, result)
	},
}

func init() {
	rootCmd.AddCommand(docxCmd)
	addProcessingFlags(docxCmd)
}
