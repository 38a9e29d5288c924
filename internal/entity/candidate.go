package entity

import "github.com/omerbh/quotex/constants"

// Currency is one of the three currencies the pipeline understands.
type Currency string

const (
	USD Currency = "USD"
	NIS Currency = "NIS"
	EUR Currency = "EUR"
)

// Money is an amount in a single currency. When attached to a candidate as
// UnitPrice it is always the source currency, i.e. the one actually read
// from the document.
type Money struct {
	Amount   float64  `json:"amount"`
	Currency Currency `json:"currency"`
}

// ComponentCandidate is one extracted, not-yet-approved component record.
//
// ManufacturerPartNumber carries the string exactly as read from the source,
// character for character. Nothing downstream may reorder or re-case it;
// part numbers embedded in right-to-left text have historically been
// scrambled by extraction layers and the review UI depends on this field
// being verbatim.
type ComponentCandidate struct {
	Name                   string  `json:"name"`
	Description            string  `json:"description,omitempty"`
	Manufacturer           string  `json:"manufacturer,omitempty"`
	ManufacturerPartNumber string  `json:"manufacturer_part_number,omitempty"`
	Category               string  `json:"category"`
	UnitPrice              *Money  `json:"unit_price,omitempty"`
	// ConvertedPrices holds advisory amounts in the non-source currencies,
	// derived from UnitPrice via the exchange-rate table. Recomputable on
	// demand; never a second source of truth.
	ConvertedPrices map[Currency]float64 `json:"converted_prices,omitempty"`
	Quantity        int                  `json:"quantity,omitempty"`
	Confidence      float32              `json:"confidence"`
}

// ExtractionMetadata describes how an extraction ran.
type ExtractionMetadata struct {
	DocumentType      constants.DocumentType     `json:"document_type"`
	RowOrPageCount    int                        `json:"row_or_page_count"`
	RecognizedHeaders []string                   `json:"recognized_headers,omitempty"`
	ExtractionMethod  constants.ExtractionMethod `json:"extraction_method"`
	HasTabularLayout  bool                       `json:"has_tabular_layout"`
	SheetName         string                     `json:"sheet_name,omitempty"`
}

// ExtractionResult is the envelope returned to the caller for one document.
// Failures are data, not panics: Success is false and Error carries a
// human-readable, actionable message. A successful result may still carry an
// advisory Error (e.g. "no structured data found") alongside zero candidates.
type ExtractionResult struct {
	Success    bool                 `json:"success"`
	Candidates []ComponentCandidate `json:"candidates"`
	Metadata   ExtractionMetadata   `json:"metadata"`
	Confidence float32              `json:"confidence"`
	Error      string               `json:"error,omitempty"`
}
