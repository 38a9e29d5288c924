package extract

import (
	"context"

	"github.com/omerbh/quotex/internal/entity"
)

// Strategy is one extraction path: tabular, freeform text, or the external
// vision service. The orchestrator picks a strategy from the classifier's
// route and turns any returned error into a failure envelope; strategies
// themselves return errors carrying a common.AppError code.
//
// A nil error with zero candidates is a valid outcome (empty sheet, text
// with no recognizable structure).
type Strategy interface {
	Name() string
	Extract(ctx context.Context, doc entity.RawDocument) (entity.ExtractionResult, error)
}
