package runner

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"

	"github.com/yaklabco/linewidth/internal/logging"
)

// Runner annotates files with a pool of workers.
type Runner struct {
	process func(ctx context.Context, path string, opts Options) (*FileResult, error)
}

// New creates a Runner that processes files with ProcessFile.
func New() *Runner {
	return &Runner{process: ProcessFile}
}

// Run discovers files under opts.Paths and annotates them concurrently.
// Results are ordered by path regardless of completion order.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	if opts.Config == nil {
		return nil, errors.New("runner: no configuration")
	}
	if opts.Logger == nil {
		opts.Logger = logging.FromContext(ctx)
	}

	files, err := Discover(ctx, opts)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Files: make([]FileOutcome, 0, len(files)),
		Stats: newStats(),
	}
	result.Stats.FilesDiscovered = len(files)

	if len(files) == 0 {
		return result, nil
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	jobs = min(jobs, len(files))

	// Workers fill their own slot, so outcomes keep discovery order.
	outcomes := make([]*FileOutcome, len(files))
	work := make(chan int)

	var wg sync.WaitGroup
	for range jobs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range work {
				outcomes[i] = r.processOne(ctx, files[i], opts)
			}
		}()
	}

feed:
	for i := range files {
		select {
		case <-ctx.Done():
			break feed
		case work <- i:
		}
	}
	close(work)
	wg.Wait()

	for _, outcome := range outcomes {
		if outcome != nil {
			result.accumulate(*outcome)
		}
	}

	if err := ctx.Err(); err != nil {
		return result, fmt.Errorf("run cancelled: %w", err)
	}
	return result, nil
}

func (r *Runner) processOne(ctx context.Context, path string, opts Options) *FileOutcome {
	if ctx.Err() != nil {
		return nil
	}
	res, err := r.process(ctx, path, opts)
	if err != nil {
		opts.Logger.Debug("file failed", logging.FieldPath, path, logging.FieldError, err)
		return &FileOutcome{Path: path, Error: err}
	}
	return &FileOutcome{Path: path, Result: res}
}
