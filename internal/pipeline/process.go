package pipeline

import (
	"context"
	"fmt"
	"image"
	"sort"
	"strings"
	"time"

	"github.com/katelkum/translater/internal/arabic"
	"github.com/katelkum/translater/internal/chunker"
	"github.com/katelkum/translater/internal/extractor"
)

// ProcessText corrects, chunks, and translates raw text.
func (p *Pipeline) ProcessText(ctx context.Context, text string) (*DocumentResult, error) {
	start := time.Now()

	corrected := arabic.FixOCRErrors(text)
	result, err := p.translateCorrected(ctx, corrected)
	if err != nil {
		return nil, err
	}

	result.Duration = time.Since(start)
	return result, nil
}

// ProcessPDF translates a PDF document. Pages with an embedded text layer
// are read directly; scanned pages fall back to OCR when it is enabled.
func (p *Pipeline) ProcessPDF(ctx context.Context, path string) (*DocumentResult, error) {
	start := time.Now()

	info, err := extractor.Probe(path)
	if err != nil {
		return nil, err
	}

	pageTexts, err := extractor.ExtractEmbeddedText(path, p.cfg.Pages)
	if err != nil {
		return nil, err
	}

	var missing []int
	for page, text := range pageTexts {
		if strings.TrimSpace(text) == "" {
			missing = append(missing, page)
		}
	}

	if len(missing) > 0 && p.cfg.OCREnabled {
		sort.Ints(missing)
		recognized, err := p.recognizePages(ctx, path, missing)
		if err != nil {
			return nil, err
		}
		for page, text := range recognized {
			pageTexts[page] = text
		}
	}

	pages := make([]int, 0, len(pageTexts))
	for page := range pageTexts {
		pages = append(pages, page)
	}
	sort.Ints(pages)

	var sb strings.Builder
	for _, page := range pages {
		sb.WriteString(pageTexts[page])
		sb.WriteString("\n\n")
	}

	corrected := arabic.FixOCRErrors(sb.String())
	result, err := p.translateCorrected(ctx, corrected)
	if err != nil {
		return nil, err
	}

	result.Source = path
	result.Info = info
	result.Duration = time.Since(start)
	return result, nil
}

// ProcessImage translates a single page image via OCR. When OCR is disabled
// the raw image goes straight to the vision translation path.
func (p *Pipeline) ProcessImage(ctx context.Context, path string) (*DocumentResult, error) {
	start := time.Now()

	info, err := extractor.Probe(path)
	if err != nil {
		return nil, err
	}

	img, err := extractor.LoadImage(path)
	if err != nil {
		return nil, err
	}

	if !p.cfg.OCREnabled {
		result, err := p.translateImageDirect(ctx, img)
		if err != nil {
			return nil, err
		}
		result.Source = path
		result.Info = info
		result.Duration = time.Since(start)
		return result, nil
	}

	text, err := p.recognizeImage(ctx, img)
	if err != nil {
		return nil, err
	}

	result, err := p.translateCorrected(ctx, text)
	if err != nil {
		return nil, err
	}

	result.Source = path
	result.Info = info
	result.Duration = time.Since(start)
	return result, nil
}

// ProcessDOCX translates a Word document.
func (p *Pipeline) ProcessDOCX(ctx context.Context, path string) (*DocumentResult, error) {
	start := time.Now()

	info, err := extractor.Probe(path)
	if err != nil {
		return nil, err
	}

	text, err := extractor.ExtractDOCXText(path)
	if err != nil {
		return nil, err
	}

	corrected := arabic.FixOCRErrors(text)
	result, err := p.translateCorrected(ctx, corrected)
	if err != nil {
		return nil, err
	}

	result.Source = path
	result.Info = info
	result.Duration = time.Since(start)
	return result, nil
}

// recognizePages runs OCR over the embedded images of the given pages and
// keeps the best candidate per page.
func (p *Pipeline) recognizePages(ctx context.Context, path string, pages []int) (map[int]string, error) {
	pageImages, err := extractor.ExtractPageImages(path, pages)
	if err != nil {
		return nil, err
	}

	result := make(map[int]string, len(pageImages))
	for page, images := range pageImages {
		var pageParts []string
		for _, img := range images {
			text, err := p.recognizeImage(ctx, img)
			if err != nil {
				return nil, fmt.Errorf("page %d: %w", page, err)
			}
			if text != "" {
				pageParts = append(pageParts, text)
			}
		}
		result[page] = strings.Join(pageParts, "\n")
	}
	return result, nil
}

// recognizeImage preprocesses an image, collects OCR candidates, and returns
// the corrected best candidate.
func (p *Pipeline) recognizeImage(ctx context.Context, img image.Image) (string, error) {
	prepared := extractor.PreprocessForOCR(img)
	data, err := extractor.EncodePNG(prepared)
	if err != nil {
		return "", err
	}

	candidates, err := p.engine.Recognize(ctx, data)
	if err != nil {
		return "", fmt.Errorf("recognition failed: %w", err)
	}
	return arabic.SelectBestCandidate(candidates), nil
}

// translateCorrected chunks already-corrected text and translates the chunks
// in parallel.
func (p *Pipeline) translateCorrected(ctx context.Context, corrected string) (*DocumentResult, error) {
	chunks, err := chunker.Split(corrected, p.cfg.MaxChunkSize)
	if err != nil {
		return nil, err
	}

	translated, err := p.translateChunks(ctx, chunks)
	if err != nil {
		return nil, err
	}

	results := make([]ChunkResult, len(chunks))
	for i := range chunks {
		results[i] = ChunkResult{
			Index:      i,
			SourceText: chunks[i],
			Translated: translated[i],
		}
	}

	return &DocumentResult{
		SourceText:  corrected,
		Chunks:      results,
		Translation: strings.Join(translated, "\n\n"),
	}, nil
}

// translateImageDirect hands a page image to the vision translation path.
func (p *Pipeline) translateImageDirect(ctx context.Context, img image.Image) (*DocumentResult, error) {
	data, err := extractor.EncodePNG(img)
	if err != nil {
		return nil, err
	}

	p.progress.OnStart(1)
	translated, err := p.translator.TranslateImage(ctx, data)
	if err != nil {
		p.progress.OnError(1, err)
		return nil, err
	}
	p.progress.OnProgress(1, 1)
	p.progress.OnComplete()

	return &DocumentResult{
		Chunks:      []ChunkResult{{Index: 0, Translated: translated}},
		Translation: translated,
	}, nil
}
