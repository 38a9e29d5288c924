package normalize

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/omerbh/quotex/constants"
)

// CategoryMap resolves free-text category labels (English or Hebrew) to one
// canonical category. It is built once per invocation from the built-in
// synonym table plus optional caller overrides, and is read-only afterwards,
// so it is safe to share across concurrent extractions.
type CategoryMap struct {
	synonyms map[string]string
	fallback string
}

// NewCategoryMap builds a category map from the built-in synonyms merged
// with overrides. Overrides are keyed by canonical label with a list of
// additional accepted synonyms; an override may also introduce a new
// canonical label.
func NewCategoryMap(overrides map[string][]string) *CategoryMap {
	syn := make(map[string]string)
	for k, v := range constants.DefaultSynonyms() {
		syn[k] = string(v)
	}
	for _, c := range constants.AsStringSlice() {
		syn[constants.NormalizeLabel(c)] = c
	}
	for canonical, labels := range overrides {
		syn[constants.NormalizeLabel(canonical)] = canonical
		for _, l := range labels {
			if key := constants.NormalizeLabel(l); key != "" {
				syn[key] = canonical
			}
		}
	}
	return &CategoryMap{synonyms: syn, fallback: string(constants.Other)}
}

// LoadCategoryOverridesFile reads a YAML document mapping canonical labels
// to synonym lists.
func LoadCategoryOverridesFile(path string) (map[string][]string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read categories file: %w", err)
	}
	var overrides map[string][]string
	if err := yaml.Unmarshal(b, &overrides); err != nil {
		return nil, fmt.Errorf("parse categories file: %w", err)
	}
	return overrides, nil
}

// Resolve returns the canonical category for raw. Matching is
// case-insensitive and whitespace-trimmed; unmatched input resolves to the
// default category, never to a blank or to the raw synonym.
func (m *CategoryMap) Resolve(raw string) (string, bool) {
	key := constants.NormalizeLabel(raw)
	if key == "" {
		return m.fallback, false
	}
	if canonical, ok := m.synonyms[key]; ok {
		return canonical, true
	}
	return m.fallback, false
}

// Default returns the fallback category label.
func (m *CategoryMap) Default() string {
	return m.fallback
}
