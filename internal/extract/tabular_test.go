package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omerbh/quotex/constants"
	"github.com/omerbh/quotex/internal/entity"
)

func TestParseGridFullRow(t *testing.T) {
	p := NewTabularParser(nil)

	rows := [][]string{
		{"Name", "Manufacturer", "Part Number", "Unit Price", "Category", "Quantity"},
		{"Siemens PLC", "Siemens", "6ES7512-1DK01-0AB0", "$2,500.00", "PLC", "1"},
	}
	res := p.ParseGrid("Sheet1", rows)

	require.True(t, res.Success)
	require.Len(t, res.Candidates, 1)

	c := res.Candidates[0]
	assert.Equal(t, "Siemens PLC", c.Name)
	assert.Equal(t, "Siemens", c.Manufacturer)
	assert.Equal(t, "6ES7512-1DK01-0AB0", c.ManufacturerPartNumber)
	assert.Equal(t, "PLC", c.Category)
	assert.Equal(t, 1, c.Quantity)
	require.NotNil(t, c.UnitPrice)
	assert.InDelta(t, 2500, c.UnitPrice.Amount, 1e-9)
	assert.Equal(t, entity.USD, c.UnitPrice.Currency)

	// six of the seven expected fields recognized and populated
	assert.Greater(t, c.Confidence, float32(0.9))

	assert.Equal(t, constants.Tabular, res.Metadata.DocumentType)
	assert.Equal(t, constants.MethodStructured, res.Metadata.ExtractionMethod)
	assert.Equal(t, "Sheet1", res.Metadata.SheetName)
	assert.Equal(t, 1, res.Metadata.RowOrPageCount)
	assert.Len(t, res.Metadata.RecognizedHeaders, 6)
}

func TestParseGridHebrewHeaders(t *testing.T) {
	p := NewTabularParser(nil)

	rows := [][]string{
		{"שם", "יצרן", `מק"ט`, "מחיר", "כמות"},
		{"חיישן לחץ", "SICK", "PBS-RB010", "₪450", "2"},
	}
	res := p.ParseGrid("גליון1", rows)

	require.True(t, res.Success)
	require.Len(t, res.Candidates, 1)

	c := res.Candidates[0]
	assert.Equal(t, "חיישן לחץ", c.Name)
	assert.Equal(t, "SICK", c.Manufacturer)
	assert.Equal(t, "PBS-RB010", c.ManufacturerPartNumber)
	assert.Equal(t, 2, c.Quantity)
	require.NotNil(t, c.UnitPrice)
	assert.InDelta(t, 450, c.UnitPrice.Amount, 1e-9)
	assert.Equal(t, entity.NIS, c.UnitPrice.Currency)
	assert.Len(t, res.Metadata.RecognizedHeaders, 5)
}

func TestParseGridEmpty(t *testing.T) {
	p := NewTabularParser(nil)

	for _, rows := range [][][]string{
		nil,
		{},
		{{"Name", "Price"}}, // header only
	} {
		res := p.ParseGrid("Sheet1", rows)
		assert.True(t, res.Success)
		assert.NotNil(t, res.Candidates)
		assert.Empty(t, res.Candidates)
		assert.Equal(t, 0, res.Metadata.RowOrPageCount)
	}
}

func TestParseGridSkipsEmptyRows(t *testing.T) {
	p := NewTabularParser(nil)

	rows := [][]string{
		{"Name", "Price"},
		{"", "  "},
		{"Cable", "$10"},
		{},
		{"Relay", "$25"},
	}
	res := p.ParseGrid("Sheet1", rows)

	require.Len(t, res.Candidates, 2)
	assert.Equal(t, "Cable", res.Candidates[0].Name)
	assert.Equal(t, "Relay", res.Candidates[1].Name)
	assert.Equal(t, 2, res.Metadata.RowOrPageCount)
}

func TestParseGridSynthesizesName(t *testing.T) {
	p := NewTabularParser(nil)

	rows := [][]string{
		{"Col A", "Col B"}, // nothing recognized
		{"", "XPS-AC5121"},
	}
	res := p.ParseGrid("Sheet1", rows)

	require.Len(t, res.Candidates, 1)
	assert.Equal(t, "XPS-AC5121", res.Candidates[0].Name)
	assert.Empty(t, res.Metadata.RecognizedHeaders)
	assert.Greater(t, res.Candidates[0].Confidence, float32(0))
}

func TestParseGridCurrencyColumn(t *testing.T) {
	p := NewTabularParser(nil)

	rows := [][]string{
		{"Item", "Price", "Currency"},
		{"Cable", "100", "EUR"},
		{"Relay", "€25", "USD"}, // explicit symbol beats the column
	}
	res := p.ParseGrid("Sheet1", rows)

	require.Len(t, res.Candidates, 2)
	require.NotNil(t, res.Candidates[0].UnitPrice)
	assert.Equal(t, entity.EUR, res.Candidates[0].UnitPrice.Currency)
	require.NotNil(t, res.Candidates[1].UnitPrice)
	assert.Equal(t, entity.EUR, res.Candidates[1].UnitPrice.Currency)
}

func TestParseGridZeroPriceIsAbsent(t *testing.T) {
	p := NewTabularParser(nil)

	rows := [][]string{
		{"Name", "Price"},
		{"Sample item", "0.00"},
	}
	res := p.ParseGrid("Sheet1", rows)

	require.Len(t, res.Candidates, 1)
	assert.Nil(t, res.Candidates[0].UnitPrice)
}

func TestMatchHeadersFirstColumnWins(t *testing.T) {
	cols, recognized := matchHeaders([]string{"Price", "Unit Price", "Name"})
	assert.Equal(t, 0, cols[fieldPrice])
	assert.Equal(t, 2, cols[fieldName])
	assert.Equal(t, []string{"Price", "Name"}, recognized)
}

func TestRowConfidence(t *testing.T) {
	tests := []struct {
		recognized, populated int
		want                  float32
	}{
		{7, 7, 1.0},
		{6, 6, 0.5*6.0/7.0 + 0.5},
		{6, 3, 0.5*6.0/7.0 + 0.5*0.5},
		{0, 0, 0},
		{0, 2, 0.5*2.0/7.0 + 0.5}, // populated bumps recognized
	}

	for _, tt := range tests {
		assert.InDelta(t, tt.want, rowConfidence(tt.recognized, tt.populated), 1e-6,
			"recognized=%d populated=%d", tt.recognized, tt.populated)
	}
	assert.Greater(t, rowConfidence(6, 6), float32(0.9))
}
