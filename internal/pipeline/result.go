package pipeline

import (
	"encoding/json"
	"fmt"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/katelkum/translater/internal/extractor"
)

// ChunkResult pairs a source chunk with its translation.
type ChunkResult struct {
	Index      int    `json:"index" yaml:"index"`
	SourceText string `json:"source_text" yaml:"source_text"`
	Translated string `json:"translated" yaml:"translated"`
}

// DocumentResult is the outcome of processing one document.
type DocumentResult struct {
	Source      string                  `json:"source,omitempty" yaml:"source,omitempty"`
	Info        *extractor.DocumentInfo `json:"info,omitempty" yaml:"info,omitempty"`
	SourceText  string                  `json:"source_text,omitempty" yaml:"source_text,omitempty"`
	Chunks      []ChunkResult           `json:"chunks" yaml:"chunks"`
	Translation string                  `json:"translation" yaml:"translation"`
	Duration    time.Duration           `json:"duration_ns" yaml:"duration_ns"`
}

// Format renders the result in the requested output format: "text", "json",
// or "yaml".
func (r *DocumentResult) Format(format string) (string, error) {
	switch format {
	case "", "text":
		return r.Translation, nil
	case "json":
		data, err := json.MarshalIndent(r, "", "  ")
		if err != nil {
			return "", fmt.Errorf("failed to marshal result: %w", err)
		}
		return string(data), nil
	case "yaml":
		data, err := yaml.Marshal(r)
		if err != nil {
			return "", fmt.Errorf("failed to marshal result: %w", err)
		}
		return string(data), nil
	default:
		return "", fmt.Errorf("unsupported output format: %s", format)
	}
}
