package normalize

import (
	"strings"

	"github.com/omerbh/quotex/internal/entity"
)

// Normalizer applies the uniform normalization rules to candidates coming
// out of any of the three extraction paths. It holds only read-only
// configuration and is safe for concurrent use.
type Normalizer struct {
	Rates      Rates
	Categories *CategoryMap
}

func NewNormalizer(rates Rates, categories *CategoryMap) *Normalizer {
	if categories == nil {
		categories = NewCategoryMap(nil)
	}
	return &Normalizer{Rates: rates, Categories: categories}
}

// Apply normalizes a single candidate in place: trims display fields,
// resolves the category to its canonical label, derives the advisory
// cross-currency amounts, and clamps confidence into [0,1].
//
// ManufacturerPartNumber passes through PartNumber, the documented identity
// function; it is the one field Apply must not alter.
func (n *Normalizer) Apply(c *entity.ComponentCandidate) {
	c.Name = strings.TrimSpace(c.Name)
	c.Description = strings.TrimSpace(c.Description)
	c.Manufacturer = strings.TrimSpace(c.Manufacturer)
	c.ManufacturerPartNumber = PartNumber(c.ManufacturerPartNumber)

	c.Category, _ = n.Categories.Resolve(c.Category)

	if c.UnitPrice != nil {
		if c.UnitPrice.Amount <= 0 {
			// "no price listed", not a free item
			c.UnitPrice = nil
			c.ConvertedPrices = nil
		} else {
			if c.UnitPrice.Currency == "" {
				c.UnitPrice.Currency = entity.USD
			}
			c.ConvertedPrices = n.Rates.Derive(*c.UnitPrice)
		}
	}

	if c.Quantity < 0 {
		c.Quantity = 0
	}

	c.Confidence = ClampConfidence(c.Confidence)
}

// ApplyAll normalizes every candidate in the slice.
func (n *Normalizer) ApplyAll(cs []entity.ComponentCandidate) {
	for i := range cs {
		n.Apply(&cs[i])
	}
}

// ClampConfidence bounds a confidence score into [0,1].
func ClampConfidence(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
