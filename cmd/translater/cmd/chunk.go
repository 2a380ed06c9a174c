package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/katelkum/translater/internal/arabic"
	"github.com/katelkum/translater/internal/chunker"
)

// chunkCmd represents the chunk command.
var chunkCmd = &cobra.Command{
	Use:   "chunk [file]",
	Short: "Correct and chunk text without translating",
	Long: `Repair common OCR errors in Arabic text and split it into
paragraph-aligned chunks, without calling the translation API.

Reads from the given file, or from stdin when no file is given.

Examples:
  translater chunk draft.txt
  cat draft.txt | translater chunk --max-chunk-size 2000
  translater chunk draft.txt --format json`,
	Args:         cobra.MaximumNArgs(1),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()
		if cmd.Flags().Changed("max-chunk-size") {
			cfg.Chunker.MaxChunkSize, _ = cmd.Flags().GetInt("max-chunk-size")
		}

		var data []byte
		var err error
		if len(args) == 1 {
			data, err = os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("cannot read input file: %w", err)
			}
		} else {
			data, err = io.ReadAll(cmd.InOrStdin())
			if err != nil {
				return fmt.Errorf("cannot read stdin: %w", err)
			}
		}

		text := string(data)
		if correct, _ := cmd.Flags().GetBool("correct"); correct {
			text = arabic.FixOCRErrors(text)
		}

		chunks, err := chunker.Split(text, cfg.Chunker.MaxChunkSize)
		if err != nil {
			return err
		}

		var out string
		switch cfg.Output.Format {
		case "json":
			data, err := json.MarshalIndent(chunks, "", "  ")
			if err != nil {
				return err
			}
			out = string(data)
		case "yaml":
			data, err := yaml.Marshal(chunks)
			if err != nil {
				return err
			}
			out = string(data)
		default:
			var sb strings.Builder
			for i, chunk := range chunks {
				fmt.Fprintf(&sb, "--- chunk %d/%d (%d chars) ---\n%s\n",
					i+1, len(chunks), utf8.RuneCountInString(chunk), chunk)
			}
			out = strings.TrimRight(sb.String(), "\n")
		}

		return writeOutput(cmd, cfg.Output.File, out)
	},
}

func init() {
	rootCmd.AddCommand(chunkCmd)
	chunkCmd.Flags().Int("max-chunk-size", 4000, "maximum chunk size in characters")
	chunkCmd.Flags().Bool("correct", true, "repair common OCR errors before chunking")
}
