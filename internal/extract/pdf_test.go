package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecodePageContent(t *testing.T) {
	raw := []byte(`BT
/F1 12 Tf
(Industrial Flow Sensor) Tj
0 -14 Td
(P/N: VSBM25 SI) Tj
T*
[(Price: ) (\$95.50)] TJ
ET`)

	got := decodePageContent(raw)
	assert.Contains(t, got, "Industrial Flow Sensor")
	assert.Contains(t, got, "P/N: VSBM25 SI")
	assert.Contains(t, got, "Price: $95.50")
	// line moves become newlines so the text parser sees line structure
	assert.Contains(t, got, "\n")
}

func TestDecodePageContentSkipsHexStrings(t *testing.T) {
	got := decodePageContent([]byte(`<FEFF0041> Tj (plain) Tj`))
	assert.NotContains(t, got, "FEFF")
	assert.Contains(t, got, "plain")
}

func TestUnescapePDFString(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{`plain`, "plain"},
		{`a\(b\)c`, "a(b)c"},
		{`back\\slash`, `back\slash`},
		{`line\nbreak`, "line\nbreak"},
		{`tab\there`, "tab\there"},
		{`octal\101`, "octalA"},
		{`dangling\`, "dangling"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, unescapePDFString(tt.in), "in=%q", tt.in)
	}
}

func TestPageNumberOf(t *testing.T) {
	assert.Equal(t, 2, pageNumberOf("/tmp/x/page_2.txt"))
	assert.Equal(t, 10, pageNumberOf("/tmp/x/page_10.txt"))
	assert.Equal(t, 0, pageNumberOf("/tmp/x/readme.md"))
}
