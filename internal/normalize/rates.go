package normalize

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/omerbh/quotex/internal/entity"
)

// Rates is the read-only exchange-rate table. It is supplied by the
// surrounding application and safely shared across concurrent extractions.
type Rates struct {
	USDToILS float64 `yaml:"usd_to_ils"`
	EURToILS float64 `yaml:"eur_to_ils"`
	EURToUSD float64 `yaml:"eur_to_usd"`
}

// DefaultRates returns the fallback table used when the application supplies
// nothing.
func DefaultRates() Rates {
	return Rates{USDToILS: 3.7, EURToILS: 4.0}.fill()
}

// NewRates fills in any missing rate that can be derived from the others and
// falls back to defaults for rates that cannot.
func NewRates(usdToILS, eurToILS, eurToUSD float64) Rates {
	r := Rates{USDToILS: usdToILS, EURToILS: eurToILS, EURToUSD: eurToUSD}
	def := DefaultRates()
	if r.USDToILS <= 0 {
		r.USDToILS = def.USDToILS
	}
	if r.EURToILS <= 0 {
		r.EURToILS = def.EURToILS
	}
	return r.fill()
}

func (r Rates) fill() Rates {
	if r.EURToUSD <= 0 && r.USDToILS > 0 {
		r.EURToUSD = r.EURToILS / r.USDToILS
	}
	return r
}

// LoadRatesFile reads a YAML rate table. Missing keys fall back the same way
// NewRates does.
func LoadRatesFile(path string) (Rates, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Rates{}, fmt.Errorf("read rates file: %w", err)
	}
	var r Rates
	if err := yaml.Unmarshal(b, &r); err != nil {
		return Rates{}, fmt.Errorf("parse rates file: %w", err)
	}
	return NewRates(r.USDToILS, r.EURToILS, r.EURToUSD), nil
}

// Derive computes the advisory amounts in the two non-source currencies.
// The source currency is never present in the returned map, so derived
// values can never overwrite the explicitly read price. Derivation is pure:
// calling it again with the same inputs reproduces the same values.
func (r Rates) Derive(m entity.Money) map[entity.Currency]float64 {
	out := make(map[entity.Currency]float64, 2)
	switch m.Currency {
	case entity.USD:
		if r.USDToILS > 0 {
			out[entity.NIS] = m.Amount * r.USDToILS
		}
		if r.EURToUSD > 0 {
			out[entity.EUR] = m.Amount / r.EURToUSD
		}
	case entity.NIS:
		if r.USDToILS > 0 {
			out[entity.USD] = m.Amount / r.USDToILS
		}
		if r.EURToILS > 0 {
			out[entity.EUR] = m.Amount / r.EURToILS
		}
	case entity.EUR:
		if r.EURToILS > 0 {
			out[entity.NIS] = m.Amount * r.EURToILS
		}
		if r.EURToUSD > 0 {
			out[entity.USD] = m.Amount * r.EURToUSD
		}
	}
	return out
}
