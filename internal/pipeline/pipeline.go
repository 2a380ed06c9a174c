// Package pipeline orchestrates document translation: extraction, OCR
// candidate selection, text correction, chunking, and translation.
package pipeline

import (
	"errors"
	"runtime"

	"github.com/katelkum/translater/internal/chunker"
	"github.com/katelkum/translater/internal/ocr"
	"github.com/katelkum/translater/internal/translator"
)

// Config holds pipeline settings.
type Config struct {
	MaxChunkSize int
	OCREnabled   bool
	MaxWorkers   int
	Pages        []int // page selection for PDFs, nil means all
}

// DefaultConfig returns the default pipeline configuration.
func DefaultConfig() Config {
	return Config{
		MaxChunkSize: chunker.DefaultMaxChunkSize,
		OCREnabled:   true,
		MaxWorkers:   runtime.NumCPU(),
	}
}

// Builder assembles a Pipeline using a fluent interface.
type Builder struct {
	cfg        Config
	engine     ocr.Engine
	translator translator.Translator
	progress   ProgressCallback
}

// NewBuilder creates a pipeline builder with default configuration.
func NewBuilder() *Builder { return &Builder{cfg: DefaultConfig()} }

// WithMaxChunkSize sets the chunk size bound in runes.
func (b *Builder) WithMaxChunkSize(size int) *Builder {
	b.cfg.MaxChunkSize = size
	return b
}

// WithOCREnabled toggles the OCR fallback for pages without embedded text.
func (b *Builder) WithOCREnabled(enabled bool) *Builder {
	b.cfg.OCREnabled = enabled
	return b
}

// WithMaxWorkers sets the chunk translation worker count.
func (b *Builder) WithMaxWorkers(workers int) *Builder {
	if workers > 0 {
		b.cfg.MaxWorkers = workers
	}
	return b
}

// WithPages restricts PDF processing to a page selection.
func (b *Builder) WithPages(pages []int) *Builder {
	b.cfg.Pages = pages
	return b
}

// WithOCREngine sets the recognition engine.
func (b *Builder) WithOCREngine(engine ocr.Engine) *Builder {
	b.engine = engine
	return b
}

// WithTranslator sets the translation backend.
func (b *Builder) WithTranslator(t translator.Translator) *Builder {
	b.translator = t
	return b
}

// WithProgressCallback sets the progress reporter.
func (b *Builder) WithProgressCallback(cb ProgressCallback) *Builder {
	b.progress = cb
	return b
}

// Config returns the current builder configuration.
func (b *Builder) Config() Config { return b.cfg }

// Build validates the configuration and constructs the pipeline.
func (b *Builder) Build() (*Pipeline, error) {
	if b.cfg.MaxChunkSize <= 0 {
		return nil, errors.New("max chunk size must be positive")
	}
	if b.translator == nil {
		return nil, errors.New("a translator is required")
	}
	if b.cfg.OCREnabled && b.engine == nil {
		return nil, errors.New("OCR is enabled but no engine is configured")
	}

	progress := b.progress
	if progress == nil {
		progress = NoOpProgressCallback{}
	}

	return &Pipeline{
		cfg:        b.cfg,
		engine:     b.engine,
		translator: b.translator,
		progress:   progress,
	}, nil
}

// Pipeline runs documents through extraction, correction, chunking, and
// translation.
type Pipeline struct {
	cfg        Config
	engine     ocr.Engine
	translator translator.Translator
	progress   ProgressCallback
}

// Config returns the pipeline configuration.
func (p *Pipeline) Config() Config { return p.cfg }

// WithProgress returns a copy of the pipeline reporting to cb. The server
// uses this to attach a per-connection progress stream.
func (p *Pipeline) WithProgress(cb ProgressCallback) *Pipeline {
	if cb == nil {
		cb = NoOpProgressCallback{}
	}
	clone := *p
	clone.progress = cb
	return &clone
}

// Close releases the translation backend.
func (p *Pipeline) Close() error {
	if p.translator != nil {
		return p.translator.Close()
	}
	return nil
}
