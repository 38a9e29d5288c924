package vision

import (
	"context"
	"log/slog"

	"github.com/omerbh/quotex/constants"
	"github.com/omerbh/quotex/internal/common"
	"github.com/omerbh/quotex/internal/entity"
	"github.com/omerbh/quotex/internal/normalize"
)

// defaultItemConfidence stands in when the service omits a per-item score.
const defaultItemConfidence = 0.75

// Adapter turns the extraction service's item list into the same candidate
// shape the other strategies produce. Everything normalization-shaped
// (category canonicalization, currency derivation) is left to the shared
// Normalizer so the three paths enforce identical rules; the adapter only
// reshapes and surfaces failures as structured errors.
type Adapter struct {
	extractor ItemExtractor
	logger    *slog.Logger
}

func NewAdapter(extractor ItemExtractor, logger *slog.Logger) *Adapter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Adapter{extractor: extractor, logger: logger}
}

func (a *Adapter) Name() string { return "ai-vision" }

func (a *Adapter) Extract(ctx context.Context, doc entity.RawDocument) (entity.ExtractionResult, error) {
	resp, _, err := a.extractor.ExtractItems(ctx, doc)
	if err != nil {
		// timeouts, cancellation, non-2xx, malformed/invalid responses all
		// land here; the caller decides whether a retry is worth it
		return entity.ExtractionResult{}, common.ExternalServiceError(
			"AI extraction service failed; the request may be retried", err)
	}

	candidates := make([]entity.ComponentCandidate, 0, len(resp.Items))
	for _, item := range resp.Items {
		candidates = append(candidates, candidateFromItem(item))
	}

	a.logger.Info("vision.adapt.ok",
		"filename", doc.Filename,
		"items", len(resp.Items),
		"notes", resp.Notes,
	)
	return entity.ExtractionResult{
		Success:    true,
		Candidates: candidates,
		Metadata: entity.ExtractionMetadata{
			DocumentType:     constants.Image,
			RowOrPageCount:   1,
			ExtractionMethod: constants.MethodAI,
		},
	}, nil
}

func candidateFromItem(item Item) entity.ComponentCandidate {
	c := entity.ComponentCandidate{
		Name:         item.Name,
		Description:  item.Description,
		Manufacturer: item.Manufacturer,
		// verbatim hand-off; the identity rule in normalization keeps it so
		ManufacturerPartNumber: normalize.PartNumber(item.PartNumber),
		Category:               item.Category,
		Quantity:               item.Quantity,
		Confidence:             item.Confidence,
	}
	if c.Confidence <= 0 {
		c.Confidence = defaultItemConfidence
	}

	if amount, cur, ok := normalize.ParsePrice(item.Price); ok {
		if cur == "" {
			cur, _ = normalize.CurrencyFromField(item.Currency)
		}
		c.UnitPrice = &entity.Money{Amount: amount, Currency: cur}
	}
	return c
}
