package filter

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// EvaluatorOption configures an evaluator
type EvaluatorOption func(*ConcurrentEvaluator)

// WithWorkers sets the number of worker goroutines
func WithWorkers(workers int) EvaluatorOption {
	return func(e *ConcurrentEvaluator) {
		if workers > 0 {
			e.workerCount = workers
		}
	}
}

// WithBatchSize sets the row count below which evaluation stays sequential
func WithBatchSize(size int) EvaluatorOption {
	return func(e *ConcurrentEvaluator) {
		if size > 0 {
			e.batchSize = size
		}
	}
}

// ConcurrentEvaluator evaluates a filter over chunks of rows in parallel
type ConcurrentEvaluator struct {
	workerCount int
	batchSize   int
}

// NewConcurrentEvaluator creates a new concurrent evaluator
func NewConcurrentEvaluator(opts ...EvaluatorOption) *ConcurrentEvaluator {
	e := &ConcurrentEvaluator{
		workerCount: runtime.GOMAXPROCS(0),
		batchSize:   100,
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Evaluate returns the rows matching filter, in input order
func (e *ConcurrentEvaluator) Evaluate(ctx context.Context, filter CompiledFilter, rows []Row) ([]Row, error) {
	if len(rows) == 0 {
		return []Row{}, nil
	}

	if len(rows) < e.batchSize {
		return evaluateSequential(filter, rows), nil
	}

	return e.evaluateConcurrent(ctx, filter, rows)
}

func evaluateSequential(filter CompiledFilter, rows []Row) []Row {
	matches := make([]Row, 0, len(rows)/4)
	for _, row := range rows {
		if filter.Evaluate(row) {
			matches = append(matches, row)
		}
	}
	return matches
}

func (e *ConcurrentEvaluator) evaluateConcurrent(ctx context.Context, filter CompiledFilter, rows []Row) ([]Row, error) {
	chunkSize := max(len(rows)/e.workerCount, e.batchSize)
	chunks := (len(rows) + chunkSize - 1) / chunkSize
	results := make([][]Row, chunks)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workerCount)

	for i := 0; i < chunks; i++ {
		i := i
		start := i * chunkSize
		end := min(start+chunkSize, len(rows))

		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			// Each goroutine owns its slot, so no locking is needed.
			results[i] = evaluateSequential(filter, rows[start:end])
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	total := 0
	for _, r := range results {
		total += len(r)
	}
	matches := make([]Row, 0, total)
	for _, r := range results {
		matches = append(matches, r...)
	}
	return matches, nil
}
