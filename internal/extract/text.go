package extract

import (
	"context"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/omerbh/quotex/constants"
	"github.com/omerbh/quotex/internal/common"
	"github.com/omerbh/quotex/internal/entity"
	"github.com/omerbh/quotex/internal/normalize"
)

// textConfidenceCeiling caps every candidate extracted from freeform text.
// Pattern matching over prose is inherently less reliable than a real grid,
// however complete a single hit looks.
const textConfidenceCeiling = 0.9

var (
	// part-number anchors: "P/N:", "Part Number:", "PN:", "Part#:",
	// "Catalog No:", "מק"ט". The captured value allows single embedded
	// spaces between uppercase/digit tokens ("VSBM25 SI") but stops at
	// lowercase words so trailing prose is not swallowed.
	rePartNumber = regexp.MustCompile(`(?i)\b(?:part\s*(?:number|no\.?|#)|p/n|pn|mpn|cat(?:alog)?\.?\s*(?:no\.?|number)|מק"?ט)\s*[:#\-]?\s*((?-i:[A-Za-z0-9][A-Za-z0-9\-./]*(?: [A-Z0-9][A-Z0-9\-./]*)*))`)

	// prices with an explicit symbol or code, prefixed or suffixed, with or
	// without thousands separators
	rePriceToken = regexp.MustCompile(`(?i)(?:[$₪€]|\b(?:usd|nis|ils|eur)\b)\s*\d[\d,]*(?:\.\d+)?|\d[\d,]*(?:\.\d+)?\s*(?:[$₪€]|\b(?:usd|nis|ils|eur)\b)`)

	// labeled prices with no currency marker at all ("Price: 2500")
	rePriceLabeled = regexp.MustCompile(`(?i)\b(?:unit\s*price|price|מחיר)\s*:?\s*(\d[\d,]*(?:\.\d+)?)`)

	reQuantity = regexp.MustCompile(`(?i)\b(?:qty|quantity|כמות)\b\s*[:#]?\s*(\d[\d,]*)`)

	// label words left behind once their values are stripped
	reBareLabel = regexp.MustCompile(`(?i)\b(?:unit\s*price|price|qty|quantity|מחיר|כמות)\b\s*:?`)

	reMultiGap = regexp.MustCompile(`\s{2,}`)
)

// TextParser handles the document-text route: plain text recovered from a
// PDF (or pasted content) with imperfect structure.
type TextParser struct {
	grid   *TabularParser
	logger *slog.Logger
}

func NewTextParser(grid *TabularParser, logger *slog.Logger) *TextParser {
	if logger == nil {
		logger = slog.Default()
	}
	if grid == nil {
		grid = NewTabularParser(logger)
	}
	return &TextParser{grid: grid, logger: logger}
}

// Parse extracts candidates from plain text. Lines are processed in source
// order so synthesized names and metadata stay deterministic.
func (p *TextParser) Parse(text string, pages int) (entity.ExtractionResult, error) {
	start := time.Now()
	if strings.TrimSpace(text) == "" {
		return entity.ExtractionResult{}, common.EmptyDocumentError(
			"no text content found; the document may be a scanned image, try AI extraction")
	}

	lines := strings.Split(text, "\n")
	layout := hasTabularLayout(lines)

	meta := entity.ExtractionMetadata{
		DocumentType:     constants.DocumentText,
		RowOrPageCount:   pages,
		ExtractionMethod: constants.MethodText,
		HasTabularLayout: layout,
	}

	// Column-aligned text is effectively a grid without grid structure; let
	// the tabular parser's header matching have the first attempt.
	if layout {
		if grid := alignedGrid(lines); len(grid) > 1 {
			res := p.grid.ParseGrid("", grid)
			if len(res.Candidates) > 0 && len(res.Metadata.RecognizedHeaders) > 0 {
				res.Metadata.DocumentType = constants.DocumentText
				res.Metadata.RowOrPageCount = pages
				res.Metadata.HasTabularLayout = true
				capConfidence(res.Candidates)
				p.logger.Info("text.extract.aligned_grid",
					"candidates", len(res.Candidates),
					"recognized_headers", len(res.Metadata.RecognizedHeaders),
					"elapsed_ms", time.Since(start).Milliseconds(),
				)
				return res, nil
			}
		}
	}

	candidates := p.scanPatterns(lines)
	capConfidence(candidates)

	res := entity.ExtractionResult{Success: true, Candidates: candidates, Metadata: meta}
	if len(candidates) == 0 {
		// non-fatal: the document has text but nothing that looks like
		// component data
		res.Error = "no structured component data found in document text; consider AI extraction for scanned or image-based documents"
	}
	p.logger.Info("text.extract.ok",
		"pages", pages,
		"candidates", len(candidates),
		"tabular_layout", layout,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return res, nil
}

// Extract adapts Parse to the Strategy contract for raw text payloads.
func (p *TextParser) Extract(_ context.Context, doc entity.RawDocument) (entity.ExtractionResult, error) {
	return p.Parse(string(doc.Data), 1)
}

func (p *TextParser) Name() string { return "text" }

type lineHit struct {
	pn    string
	price *entity.Money
	qty   int
}

func (p *TextParser) scanPatterns(lines []string) []entity.ComponentCandidate {
	candidates := make([]entity.ComponentCandidate, 0, 4)

	hits := make([]lineHit, len(lines))
	for i, ln := range lines {
		hits[i] = scanLine(ln)
	}

	for i := 0; i < len(lines); i++ {
		h := hits[i]
		if h.pn == "" && h.price == nil {
			continue
		}
		anchor := i

		c := entity.ComponentCandidate{
			ManufacturerPartNumber: h.pn,
			UnitPrice:              h.price,
			Quantity:               h.qty,
		}

		// a part-number line often carries its price on the next line
		if c.UnitPrice == nil && h.pn != "" && i+1 < len(lines) {
			if next := hits[i+1]; next.pn == "" && next.price != nil {
				c.UnitPrice = next.price
				if c.Quantity == 0 {
					c.Quantity = next.qty
				}
				i++
			}
		}

		c.Name = nameForAnchor(lines, anchor)

		populated := 0
		for _, present := range []bool{c.Name != "", c.ManufacturerPartNumber != "", c.UnitPrice != nil, c.Quantity > 0} {
			if present {
				populated++
			}
		}
		c.Confidence = textConfidence(populated)
		candidates = append(candidates, c)
	}
	return candidates
}

func scanLine(ln string) lineHit {
	var h lineHit
	if m := rePartNumber.FindStringSubmatch(ln); m != nil {
		h.pn = strings.TrimRight(m[1], " .")
	}
	if tok := rePriceToken.FindString(ln); tok != "" {
		if amount, cur, ok := normalize.ParsePrice(tok); ok {
			h.price = &entity.Money{Amount: amount, Currency: cur}
		}
	} else if m := rePriceLabeled.FindStringSubmatch(ln); m != nil {
		if amount, cur, ok := normalize.ParsePrice(m[1]); ok {
			h.price = &entity.Money{Amount: amount, Currency: cur}
		}
	}
	if m := reQuantity.FindStringSubmatch(ln); m != nil {
		if qty, ok := normalize.ParseQuantity(m[1]); ok {
			h.qty = qty
		}
	}
	return h
}

// nameForAnchor takes the candidate name from the anchor line itself, with
// matched tokens stripped, or from the nearest preceding non-empty line.
func nameForAnchor(lines []string, i int) string {
	if name := stripAnchors(lines[i]); name != "" {
		return name
	}
	for j := i - 1; j >= 0 && j >= i-3; j-- {
		prev := strings.TrimSpace(lines[j])
		if prev == "" {
			continue
		}
		if h := scanLine(lines[j]); h.pn != "" || h.price != nil {
			break
		}
		return stripAnchors(lines[j])
	}
	return ""
}

func stripAnchors(ln string) string {
	s := rePartNumber.ReplaceAllString(ln, "")
	s = rePriceToken.ReplaceAllString(s, "")
	s = rePriceLabeled.ReplaceAllString(s, "")
	s = reQuantity.ReplaceAllString(s, "")
	s = reBareLabel.ReplaceAllString(s, "")
	s = strings.Trim(s, " \t-—:;,.|")
	return strings.Join(strings.Fields(s), " ")
}

func textConfidence(populated int) float32 {
	c := 0.4 + 0.5*float64(populated)/float64(expectedFieldCount)
	if c > textConfidenceCeiling {
		c = textConfidenceCeiling
	}
	return normalize.ClampConfidence(float32(c))
}

func capConfidence(cs []entity.ComponentCandidate) {
	for i := range cs {
		if cs[i].Confidence > textConfidenceCeiling {
			cs[i].Confidence = textConfidenceCeiling
		}
	}
}

// hasTabularLayout reports whether multiple consecutive lines show repeated
// multi-space gaps, tabs, or pipe delimiters: column alignment without real
// grid structure.
func hasTabularLayout(lines []string) bool {
	consecutive := 0
	for _, ln := range lines {
		trimmed := strings.TrimSpace(ln)
		if trimmed == "" {
			consecutive = 0
			continue
		}
		if lineAligned(trimmed) {
			consecutive++
			if consecutive >= 2 {
				return true
			}
		} else {
			consecutive = 0
		}
	}
	return false
}

func lineAligned(trimmed string) bool {
	if strings.Count(trimmed, "\t") >= 1 {
		return true
	}
	if strings.Count(trimmed, "|") >= 2 {
		return true
	}
	return len(reMultiGap.FindAllString(trimmed, -1)) >= 2
}

// alignedGrid splits the longest run of aligned lines into a grid on the
// delimiter the run actually uses.
func alignedGrid(lines []string) [][]string {
	bestStart, bestLen := -1, 0
	runStart, runLen := -1, 0
	for i, ln := range lines {
		trimmed := strings.TrimSpace(ln)
		if trimmed != "" && lineAligned(trimmed) {
			if runStart < 0 {
				runStart = i
			}
			runLen++
			if runLen > bestLen {
				bestStart, bestLen = runStart, runLen
			}
		} else {
			runStart, runLen = -1, 0
		}
	}
	if bestLen < 2 {
		return nil
	}

	grid := make([][]string, 0, bestLen)
	for _, ln := range lines[bestStart : bestStart+bestLen] {
		grid = append(grid, splitAligned(strings.TrimSpace(ln)))
	}
	return grid
}

func splitAligned(trimmed string) []string {
	var parts []string
	switch {
	case strings.Count(trimmed, "|") >= 2:
		parts = strings.Split(trimmed, "|")
	case strings.Contains(trimmed, "\t"):
		parts = strings.Split(trimmed, "\t")
	default:
		parts = reMultiGap.Split(trimmed, -1)
	}
	cells := make([]string, 0, len(parts))
	for _, p := range parts {
		cells = append(cells, strings.TrimSpace(p))
	}
	// drop empty edge cells produced by leading/trailing pipes
	for len(cells) > 0 && cells[0] == "" {
		cells = cells[1:]
	}
	for len(cells) > 0 && cells[len(cells)-1] == "" {
		cells = cells[:len(cells)-1]
	}
	return cells
}
