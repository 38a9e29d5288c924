package extract

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/omerbh/quotex/constants"
	"github.com/omerbh/quotex/internal/common"
	"github.com/omerbh/quotex/internal/entity"
	"github.com/omerbh/quotex/internal/normalize"
)

// Orchestrator runs one document through classify → extract → normalize and
// returns the result envelope. It holds only read-only configuration, so a
// single instance serves concurrent extractions of independent documents.
//
// Parser failures are deterministic for a given input and are not retried
// here; transient vision-service failures carry CodeExternalService and the
// retry decision belongs to the caller.
type Orchestrator struct {
	normalizer *normalize.Normalizer
	strategies map[constants.DocumentType]Strategy
	logger     *slog.Logger
}

func NewOrchestrator(n *normalize.Normalizer, spreadsheet, pdf, image Strategy, logger *slog.Logger) *Orchestrator {
	if logger == nil {
		logger = slog.Default()
	}
	if n == nil {
		n = normalize.NewNormalizer(normalize.DefaultRates(), nil)
	}
	return &Orchestrator{
		normalizer: n,
		strategies: map[constants.DocumentType]Strategy{
			constants.Tabular:      spreadsheet,
			constants.DocumentText: pdf,
			constants.Image:        image,
		},
		logger: logger,
	}
}

// Extract processes a single document. All failure modes come back as data
// in the envelope; Extract never panics on malformed input.
func (o *Orchestrator) Extract(ctx context.Context, doc entity.RawDocument) entity.ExtractionResult {
	reqID := common.RequestIDFromContext(ctx)
	if reqID == "" {
		reqID = uuid.New().String()
	}
	start := time.Now()

	o.logger.Info("extract.start",
		"req_id", reqID,
		"stage", constants.StageClassifying,
		"filename", doc.Filename,
		"mime_type", doc.MIMEType,
		"bytes", len(doc.Data),
	)

	route := Classify(doc.MIMEType, doc.Filename)
	if route == constants.Unsupported {
		o.logger.Warn("extract.unsupported",
			"req_id", reqID, "filename", doc.Filename, "mime_type", doc.MIMEType)
		return failureResult("", constants.SupportedFormatsMessage())
	}

	strategy := o.strategies[route]
	if strategy == nil {
		o.logger.Error("extract.no_strategy", "req_id", reqID, "route", route)
		return failureResult(route, "extraction for "+string(route)+" documents is not configured")
	}

	o.logger.Info("extract.dispatch",
		"req_id", reqID,
		"stage", constants.StageExtracting,
		"route", route,
		"strategy", strategy.Name(),
	)

	res, err := strategy.Extract(ctx, doc)
	if err != nil {
		o.logger.Error("extract.strategy_failed",
			"req_id", reqID,
			"route", route,
			"code", common.CodeOf(err),
			"error", err,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return failureResult(route, common.MessageOf(err))
	}

	o.logger.Debug("extract.normalize", "req_id", reqID, "stage", constants.StageNormalizing)
	o.normalizer.ApplyAll(res.Candidates)
	if res.Candidates == nil {
		res.Candidates = []entity.ComponentCandidate{}
	}
	res.Confidence = meanConfidence(res.Candidates)
	if res.Metadata.DocumentType == "" {
		res.Metadata.DocumentType = route
	}

	o.logger.Info("extract.done",
		"req_id", reqID,
		"stage", constants.StageDone,
		"success", res.Success,
		"candidates", len(res.Candidates),
		"confidence", res.Confidence,
		"method", res.Metadata.ExtractionMethod,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return res
}

// meanConfidence is the arithmetic mean across candidates, 0 when empty.
func meanConfidence(cs []entity.ComponentCandidate) float32 {
	if len(cs) == 0 {
		return 0
	}
	var sum float64
	for _, c := range cs {
		sum += float64(c.Confidence)
	}
	return normalize.ClampConfidence(float32(sum / float64(len(cs))))
}

func failureResult(docType constants.DocumentType, message string) entity.ExtractionResult {
	return entity.ExtractionResult{
		Success:    false,
		Candidates: []entity.ComponentCandidate{},
		Metadata:   entity.ExtractionMetadata{DocumentType: docType},
		Error:      message,
	}
}
