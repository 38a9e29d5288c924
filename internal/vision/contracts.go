package vision

import (
	"context"

	"github.com/omerbh/quotex/internal/entity"
)

// Item is one component-like object as the extraction service reports it.
// Money amounts travel as decimal strings so the service cannot smuggle
// float noise into prices.
type Item struct {
	Name         string  `json:"name"`
	Description  string  `json:"description,omitempty"`
	Manufacturer string  `json:"manufacturer,omitempty"`
	PartNumber   string  `json:"part_number,omitempty"`
	Category     string  `json:"category,omitempty"`
	Price        string  `json:"price,omitempty"`
	Currency     string  `json:"currency,omitempty"` // USD | NIS | EUR
	Quantity     int     `json:"quantity,omitempty"`
	Confidence   float32 `json:"confidence,omitempty"` // 0..1
}

// Response is the service's output contract: the item list plus a short
// free-text metadata note.
type Response struct {
	Items []Item `json:"items"`
	Notes string `json:"notes,omitempty"`
}

// ItemExtractor is the boundary the adapter depends on; the HTTP client
// implements it, tests substitute it.
type ItemExtractor interface {
	ExtractItems(ctx context.Context, doc entity.RawDocument) (Response, []byte /*rawJSON*/, error)
}
