package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
)

// imageCmd represents the image command.
var imageCmd = &cobra.Command{
	Use:   "image <file>...",
	Short: "Translate scanned page images",
	Long: `Translate one or more scanned page images.

Each image is recognized with Tesseract and the best candidate is corrected
and translated. With OCR disabled the image is sent to the translation model
directly.

Supported formats: PNG, JPEG, BMP, TIFF, GIF, WebP

Examples:
  translater image page.png
  translater image scan1.jpg scan2.jpg --format json
  translater image photo.png --ocr=false`,
	Args:         cobra.MinimumNArgs(1),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()
		applyProcessingFlags(cmd, cfg)

		for _, path := range args {
			if _, err := os.Stat(path); err != nil {
				return fmt.Errorf("cannot read input file: %w", err)
			}
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

		outputs := make([]string, 0, len(args))
		for _, path := range args {
			result, err := pl.ProcessImage(ctx, path)
			if err != nil {
				if errors.Is(err, context.Canceled) {
					return errors.New("translation interrupted")
				}
				return fmt.Errorf("failed to translate %s: %w", path, err)
			}

			out, err := result.Format(cfg.Output.Format)
			if err != nil {
				return err
			}
			if len(args) > 1 && cfg.Output.Format == "text" {
				out = fmt.Sprintf("== %s ==\n%s", path, out)
			}
			outputs = append(outputs, out)
		}

		return writeOutput(cmd, cfg.Output.File, strings.Join(outputs, "\n\n"))
	},
}

func init() {
	rootCmd.AddCommand(imageCmd)
	addProcessingFlags(imageCmd)
}
