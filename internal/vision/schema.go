package vision

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// BuildItemsJSONSchema returns the JSON-Schema (draft 2020-12 subset) the
// extraction service's response must satisfy. It is sent to the service as a
// structured-output constraint and used locally to validate what comes back.
func BuildItemsJSONSchema(allowedCategories []string) map[string]any {
	itemProps := map[string]any{
		"name":         map[string]any{"type": "string", "minLength": 1},
		"description":  map[string]any{"type": "string"},
		"manufacturer": map[string]any{"type": "string"},
		// exact character order as printed; the service is contractually
		// responsible for RTL-safe reading of embedded Latin runs
		"part_number": map[string]any{"type": "string"},
		"category":    map[string]any{"type": "string"},
		"price":       decimalProp(),
		"currency":    map[string]any{"type": "string", "enum": []string{"USD", "NIS", "ILS", "EUR"}},
		"quantity":    map[string]any{"type": "integer", "minimum": 1},
		"confidence":  map[string]any{"type": "number", "minimum": 0.0, "maximum": 1.0},
	}
	if len(allowedCategories) > 0 {
		itemProps["category"] = map[string]any{
			"type": "string",
			"enum": allowedCategories,
		}
	}

	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"items": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type":                 "object",
					"additionalProperties": false,
					"properties":           itemProps,
					"required":             []string{"name"},
				},
			},
			"notes": map[string]any{"type": "string"},
		},
		"required": []string{"items"},
	}
}

func decimalProp() map[string]any {
	return map[string]any{
		"type":    "string",
		"pattern": `^\d+(\.\d{1,4})?$`,
	}
}

// ValidateJSONAgainstSchema validates "data" against "schemaMap".
func ValidateJSONAgainstSchema(schemaMap map[string]any, data []byte) error {
	b, err := json.Marshal(schemaMap)
	if err != nil {
		return fmt.Errorf("marshal schema: %w", err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("schema.json", bytes.NewReader(b)); err != nil {
		return fmt.Errorf("add schema: %w", err)
	}
	schema, err := compiler.Compile("schema.json")
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("unmarshal data: %w", err)
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("json does not match schema: %w", err)
	}
	return nil
}
