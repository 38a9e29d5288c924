package vision

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
)

// allowedItemKeys mirrors the schema's item properties
// (additionalProperties is false).
var allowedItemKeys = map[string]struct{}{
	"name": {}, "description": {}, "manufacturer": {}, "part_number": {},
	"category": {}, "price": {}, "currency": {}, "quantity": {}, "confidence": {},
}

// SanitizeItems applies a lenient cleanup pass to a response that failed
// strict validation:
//   - coerces numeric prices to decimal strings
//   - uppercases currency codes
//   - drops null/empty optionals and unknown keys
//   - trims display strings
//
// part_number is never touched beyond type checking: its characters are
// contractual. The caller re-validates the result.
func SanitizeItems(raw []byte, logger *slog.Logger) ([]byte, []string, error) {
	if logger == nil {
		logger = slog.Default()
	}

	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, nil, fmt.Errorf("sanitize: decode: %w", err)
	}

	var dropped []string

	items, _ := m["items"].([]any)
	cleaned := make([]any, 0, len(items))
	for idx, it := range items {
		obj, ok := it.(map[string]any)
		if !ok {
			dropped = append(dropped, fmt.Sprintf("items[%d](type)", idx))
			continue
		}
		sanitizeItem(obj, idx, &dropped)
		if _, hasName := obj["name"]; !hasName {
			dropped = append(dropped, fmt.Sprintf("items[%d](no name)", idx))
			continue
		}
		cleaned = append(cleaned, obj)
	}
	m["items"] = cleaned

	// drop unknown top-level keys
	for k := range m {
		if k != "items" && k != "notes" {
			delete(m, k)
			dropped = append(dropped, k+"(unknown)")
		}
	}

	out, err := json.Marshal(m)
	if err != nil {
		return nil, dropped, fmt.Errorf("sanitize: encode: %w", err)
	}
	if len(dropped) > 0 {
		logger.Warn("vision.extract.sanitize", "dropped", dropped)
	}
	return out, dropped, nil
}

func sanitizeItem(obj map[string]any, idx int, dropped *[]string) {
	drop := func(k, reason string) {
		delete(obj, k)
		*dropped = append(*dropped, fmt.Sprintf("items[%d].%s(%s)", idx, k, reason))
	}

	// price: coerce numbers to decimal strings, drop junk
	if v, ok := obj["price"]; ok {
		switch t := v.(type) {
		case float64:
			obj["price"] = strconv.FormatFloat(t, 'f', -1, 64)
		case string:
			s := strings.TrimSpace(t)
			if s == "" || strings.EqualFold(s, "null") {
				drop("price", "empty")
			} else {
				obj["price"] = s
			}
		case nil:
			drop("price", "null")
		default:
			drop("price", "type")
		}
	}

	if v, ok := obj["currency"].(string); ok {
		cur := strings.ToUpper(strings.TrimSpace(v))
		if cur == "" {
			drop("currency", "empty")
		} else {
			obj["currency"] = cur
		}
	}

	// quantity may arrive as a float; keep it only when integral and positive
	if v, ok := obj["quantity"]; ok {
		if f, isNum := v.(float64); !isNum || f <= 0 || f != float64(int(f)) {
			drop("quantity", "not a positive integer")
		}
	}

	if v, ok := obj["confidence"]; ok {
		if f, isNum := v.(float64); !isNum || f < 0 || f > 1 {
			drop("confidence", "out of range")
		}
	}

	// trim display strings; part_number is excluded on purpose
	for _, k := range []string{"name", "description", "manufacturer", "category"} {
		if v, ok := obj[k].(string); ok {
			s := strings.TrimSpace(v)
			if s == "" {
				drop(k, "empty")
			} else {
				obj[k] = s
			}
		}
	}

	if v, ok := obj["part_number"]; ok {
		if _, isStr := v.(string); !isStr {
			drop("part_number", "type")
		}
	}

	for k := range obj {
		if _, ok := allowedItemKeys[k]; !ok {
			drop(k, "unknown")
		}
	}
}
