package extract

import (
	"context"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/omerbh/quotex/internal/common"
	"github.com/omerbh/quotex/internal/entity"
)

// ExtractAll runs independent documents concurrently with at most workers
// in flight. Results are positionally aligned with docs; a failing document
// yields its own failure envelope and never aborts the batch. The pipeline
// shares only read-only configuration, so this is safe without locking.
func (o *Orchestrator) ExtractAll(ctx context.Context, docs []entity.RawDocument, workers int) []entity.ExtractionResult {
	if workers <= 0 {
		workers = 4
	}

	results := make([]entity.ExtractionResult, len(docs))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, doc := range docs {
		i, doc := i, doc
		g.Go(func() error {
			reqCtx := common.WithRequestID(ctx, uuid.New().String())
			results[i] = o.Extract(reqCtx, doc)
			return nil
		})
	}
	// workers never return errors; Wait only fences completion
	_ = g.Wait()
	return results
}
