package normalize

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/omerbh/quotex/internal/entity"
)

var currencySymbols = map[string]entity.Currency{
	"$": entity.USD,
	"₪": entity.NIS,
	"€": entity.EUR,
}

var currencyCodes = map[string]entity.Currency{
	"USD": entity.USD,
	"NIS": entity.NIS,
	"ILS": entity.NIS,
	"EUR": entity.EUR,
}

var (
	reCurrencyCode = regexp.MustCompile(`(?i)\b(usd|nis|ils|eur)\b`)
	reNumber       = regexp.MustCompile(`-?\d[\d,]*(?:\.\d+)?`)
)

// DetectCurrency finds an explicit currency symbol or code in s. The boolean
// is false when nothing explicit is present; callers then fall back to a
// dedicated currency column or the USD default, in that order.
func DetectCurrency(s string) (entity.Currency, bool) {
	for sym, cur := range currencySymbols {
		if strings.Contains(s, sym) {
			return cur, true
		}
	}
	if m := reCurrencyCode.FindString(s); m != "" {
		return currencyCodes[strings.ToUpper(m)], true
	}
	return "", false
}

// ParsePrice parses a raw price cell or token. It strips currency symbols
// and codes on either side of the numeral, removes thousands separators, and
// parses the remainder as a decimal. Values <= 0 report ok=false: a missing
// or zeroed price means "no price listed", never a free item.
//
// The returned currency is the explicitly detected one and is empty when the
// raw string carried no symbol or code.
func ParsePrice(raw string) (amount float64, cur entity.Currency, ok bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, "", false
	}

	cur, _ = DetectCurrency(s)

	num := reNumber.FindString(s)
	if num == "" {
		return 0, cur, false
	}
	num = strings.ReplaceAll(num, ",", "")

	amount, err := strconv.ParseFloat(num, 64)
	if err != nil || amount <= 0 {
		return 0, cur, false
	}
	return amount, cur, true
}

// CurrencyFromField resolves the value of a dedicated currency column or
// field. Accepts both symbols and codes; the boolean is false for anything
// unrecognized.
func CurrencyFromField(raw string) (entity.Currency, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return "", false
	}
	if cur, ok := currencySymbols[s]; ok {
		return cur, true
	}
	if cur, ok := currencyCodes[strings.ToUpper(s)]; ok {
		return cur, true
	}
	return DetectCurrency(s)
}

// ParseQuantity parses a quantity cell. Only positive integers qualify;
// integral floats like "3.0" are accepted, anything else reports false.
// Absence is left for downstream to default (to 1), not filled in here.
func ParseQuantity(raw string) (int, bool) {
	s := strings.ReplaceAll(strings.TrimSpace(raw), ",", "")
	if s == "" {
		return 0, false
	}
	if n, err := strconv.Atoi(s); err == nil {
		if n > 0 {
			return n, true
		}
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f <= 0 || f != float64(int(f)) {
		return 0, false
	}
	return int(f), true
}
