package pipeline

import (
	"context"
	"fmt"
	"sync"
)

type chunkJob struct {
	index int
	text  string
}

type chunkResult struct {
	index int
	text  string
	err   error
}

// translateChunks translates chunks through a worker pool and returns the
// translations in input order. The first chunk error aborts the run.
func (p *Pipeline) translateChunks(ctx context.Context, chunks []string) ([]string, error) {
	if len(chunks) == 0 {
		return nil, nil
	}

	workers := p.cfg.MaxWorkers
	if workers < 1 {
		workers = 1
	}
	if workers > len(chunks) {
		workers = len(chunks)
	}

	p.progress.OnStart(len(chunks))
	defer p.progress.OnComplete()

	if workers == 1 {
		return p.translateChunksSequential(ctx, chunks)
	}

	jobs := make(chan chunkJob, len(chunks))
	results := make(chan chunkResult, len(chunks))

	var wg sync.WaitGroup
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case job, ok := <-jobs:
					if !ok {
						return
					}
					text, err := p.translator.TranslateText(ctx, job.text)
					select {
					case results <- chunkResult{index: job.index, text: text, err: err}:
					case <-ctx.Done():
						return
					}
				case <-ctx.Done():
					return
				}
			}
		}()
	}

	go func() {
		defer close(jobs)
		for i, chunk := range chunks {
			select {
			case jobs <- chunkJob{index: i, text: chunk}:
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	translated := make([]string, len(chunks))
	errs := make(map[int]error)
	done := 0
	for res := range results {
		translated[res.index] = res.text
		if res.err != nil {
			errs[res.index] = res.err
			p.progress.OnError(res.index+1, res.err)
		}
		done++
		p.progress.OnProgress(done, len(chunks))
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	for i := range chunks {
		if err := errs[i]; err != nil {
			return nil, fmt.Errorf("chunk %d: %w", i+1, err)
		}
	}
	return translated, nil
}

func (p *Pipeline) translateChunksSequential(ctx context.Context, chunks []string) ([]string, error) {
	translated := make([]string, len(chunks))
	for i, chunk := range chunks {
		text, err := p.translator.TranslateText(ctx, chunk)
		if err != nil {
			p.progress.OnError(i+1, err)
			return nil, fmt.Errorf("chunk %d: %w", i+1, err)
		}
		translated[i] = text
		p.progress.OnProgress(i+1, len(chunks))
	}
	return translated, nil
}
