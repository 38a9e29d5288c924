package extract

import (
	"log/slog"
	"strings"

	"github.com/omerbh/quotex/constants"
	"github.com/omerbh/quotex/internal/entity"
	"github.com/omerbh/quotex/internal/normalize"
)

type field string

const (
	fieldName         field = "name"
	fieldManufacturer field = "manufacturer"
	fieldPartNumber   field = "part_number"
	fieldPrice        field = "price"
	fieldCurrency     field = "currency"
	fieldCategory     field = "category"
	fieldQuantity     field = "quantity"
	fieldDescription  field = "description"
)

// expectedFields are the seven fields row confidence is scored against.
// Currency is a modifier on the price, not an expected field of its own.
var expectedFields = []field{
	fieldName,
	fieldManufacturer,
	fieldPartNumber,
	fieldPrice,
	fieldCategory,
	fieldQuantity,
	fieldDescription,
}

const expectedFieldCount = 7

// headerSynonyms is the data-driven header table: canonical field to the
// accepted header strings, English and Hebrew. Entries are stored
// pre-normalized (lowercase, collapsed whitespace, quote marks removed), so
// מק"ט matches regardless of which quote character the source used.
var headerSynonyms = map[field][]string{
	fieldName: {
		"name", "item", "item name", "product", "product name", "component",
		"שם", "שם פריט", "פריט", "שם מוצר", "מוצר",
	},
	fieldManufacturer: {
		"manufacturer", "mfg", "mfr", "brand", "make", "vendor",
		"יצרן", "חברה", "ספק",
	},
	fieldPartNumber: {
		"part number", "part no", "part no.", "p/n", "pn", "part#", "mpn",
		"catalog no", "catalog no.", "catalog number", "cat no", "cat no.", "sku",
		"מקט", "מק ט", "מספר חלק", "מספר קטלוגי",
	},
	fieldPrice: {
		"price", "unit price", "price per unit", "cost", "unit cost", "amount",
		"מחיר", "מחיר יחידה", "מחיר ליחידה", "עלות",
	},
	fieldCurrency: {
		"currency", "cur", "ccy",
		"מטבע",
	},
	fieldCategory: {
		"category", "type", "product type", "group",
		"קטגוריה", "סוג", "קבוצה",
	},
	fieldQuantity: {
		"quantity", "qty", "count", "units",
		"כמות", "יחידות",
	},
	fieldDescription: {
		"description", "details", "notes", "remarks", "spec",
		"תיאור", "תאור", "הערות", "פרטים", "מפרט",
	},
}

// headerLookup is headerSynonyms inverted for O(1) matching.
var headerLookup = func() map[string]field {
	m := make(map[string]field)
	for f, labels := range headerSynonyms {
		for _, l := range labels {
			m[l] = f
		}
	}
	return m
}()

// TabularParser turns a 2-D grid of cell values (first row headers) into
// candidates.
type TabularParser struct {
	logger *slog.Logger
}

func NewTabularParser(logger *slog.Logger) *TabularParser {
	if logger == nil {
		logger = slog.Default()
	}
	return &TabularParser{logger: logger}
}

// matchHeaders maps each recognized canonical field to its column index and
// collects the original header strings that matched. The first matching
// column per field wins.
func matchHeaders(headers []string) (map[field]int, []string) {
	cols := make(map[field]int, len(headers))
	var recognized []string
	for i, h := range headers {
		key := constants.NormalizeLabel(h)
		if key == "" {
			continue
		}
		f, ok := headerLookup[key]
		if !ok {
			continue
		}
		if _, taken := cols[f]; taken {
			continue
		}
		cols[f] = i
		recognized = append(recognized, strings.TrimSpace(h))
	}
	return cols, recognized
}

// ParseGrid processes the grid in source order. Fully empty rows are skipped;
// a missing name column never aborts a row, the first non-empty cell stands
// in instead.
func (p *TabularParser) ParseGrid(sheetName string, rows [][]string) entity.ExtractionResult {
	meta := entity.ExtractionMetadata{
		DocumentType:     constants.Tabular,
		ExtractionMethod: constants.MethodStructured,
		SheetName:        sheetName,
	}
	if len(rows) == 0 {
		return entity.ExtractionResult{Success: true, Candidates: []entity.ComponentCandidate{}, Metadata: meta}
	}

	cols, recognized := matchHeaders(rows[0])
	meta.RecognizedHeaders = recognized

	candidates := make([]entity.ComponentCandidate, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if rowEmpty(row) {
			continue
		}
		candidates = append(candidates, p.parseRow(row, cols))
	}
	meta.RowOrPageCount = len(candidates)

	p.logger.Debug("tabular.parse_grid",
		"sheet", sheetName,
		"rows", len(rows)-1,
		"candidates", len(candidates),
		"recognized_headers", len(recognized),
	)
	return entity.ExtractionResult{Success: true, Candidates: candidates, Metadata: meta}
}

func (p *TabularParser) parseRow(row []string, cols map[field]int) entity.ComponentCandidate {
	get := func(f field) string {
		i, ok := cols[f]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	var c entity.ComponentCandidate
	populated := 0

	c.Name = get(fieldName)
	if c.Name == "" {
		c.Name = firstNonEmpty(row)
	}
	if c.Name != "" {
		populated++
	}
	if c.Manufacturer = get(fieldManufacturer); c.Manufacturer != "" {
		populated++
	}
	// exact cell content, no trimming beyond the cell boundary: the part
	// number's character order and casing are contractual
	if i, ok := cols[fieldPartNumber]; ok && i < len(row) {
		c.ManufacturerPartNumber = strings.TrimSpace(row[i])
	}
	if c.ManufacturerPartNumber != "" {
		populated++
	}
	if c.Description = get(fieldDescription); c.Description != "" {
		populated++
	}
	if c.Category = get(fieldCategory); c.Category != "" {
		populated++
	}
	if qty, ok := normalize.ParseQuantity(get(fieldQuantity)); ok {
		c.Quantity = qty
		populated++
	}
	if amount, cur, ok := normalize.ParsePrice(get(fieldPrice)); ok {
		if cur == "" {
			// no symbol/code next to the number; a dedicated currency
			// column is the next authority, then the USD default
			cur, _ = normalize.CurrencyFromField(get(fieldCurrency))
		}
		c.UnitPrice = &entity.Money{Amount: amount, Currency: cur}
		populated++
	}

	c.Confidence = rowConfidence(len(fieldCols(cols)), populated)
	return c
}

// fieldCols filters the matched columns down to the seven expected fields.
func fieldCols(cols map[field]int) map[field]int {
	out := make(map[field]int, len(cols))
	for _, f := range expectedFields {
		if i, ok := cols[f]; ok {
			out[f] = i
		}
	}
	return out
}

// rowConfidence blends header coverage (how many of the seven expected
// fields the sheet exposes) with row completeness (how many of the exposed
// fields this row populates). Both halves at full strength give 1.0; a
// fully populated row under a six-column header lands above 0.9.
func rowConfidence(recognized, populated int) float32 {
	if populated > recognized {
		// synthesized values (e.g. a stand-in name) count as coverage too
		recognized = populated
	}
	if recognized == 0 {
		return 0
	}
	coverage := float64(recognized) / float64(expectedFieldCount)
	completeness := float64(populated) / float64(recognized)
	return normalize.ClampConfidence(float32(0.5*coverage + 0.5*completeness))
}

func rowEmpty(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

func firstNonEmpty(row []string) string {
	for _, cell := range row {
		if s := strings.TrimSpace(cell); s != "" {
			return s
		}
	}
	return ""
}
