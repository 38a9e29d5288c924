package extract

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/omerbh/quotex/constants"
	"github.com/omerbh/quotex/internal/common"
	"github.com/omerbh/quotex/internal/entity"
)

func TestSpreadsheetExtractCSV(t *testing.T) {
	s := NewSpreadsheetStrategy(nil, nil)

	csvData := "\xEF\xBB\xBF" + // BOM as exported by Excel
		"Name,Manufacturer,Part Number,Unit Price,Category,Quantity\n" +
		"Siemens PLC,Siemens,6ES7512-1DK01-0AB0,\"$2,500.00\",PLC,1\n" +
		"Proximity Sensor,SICK,IME12-04\n" // ragged row

	res, err := s.Extract(context.Background(), entity.RawDocument{
		Filename: "quote.csv",
		MIMEType: "text/csv",
		Data:     []byte(csvData),
	})
	require.NoError(t, err)
	require.True(t, res.Success)
	require.Len(t, res.Candidates, 2)

	c := res.Candidates[0]
	assert.Equal(t, "Siemens PLC", c.Name)
	assert.Equal(t, "6ES7512-1DK01-0AB0", c.ManufacturerPartNumber)
	require.NotNil(t, c.UnitPrice)
	assert.InDelta(t, 2500, c.UnitPrice.Amount, 1e-9)
	assert.Equal(t, entity.USD, c.UnitPrice.Currency)

	assert.Equal(t, "Proximity Sensor", res.Candidates[1].Name)
	assert.Nil(t, res.Candidates[1].UnitPrice)

	assert.Equal(t, constants.Tabular, res.Metadata.DocumentType)
	assert.Equal(t, "quote.csv", res.Metadata.SheetName)
}

func TestSpreadsheetExtractWorkbook(t *testing.T) {
	f := excelize.NewFile()
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]interface{}{"Name", "Part Number", "Price"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A2", &[]interface{}{"Servo Drive", "SGD7S-120A", "$1,200"}))
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	s := NewSpreadsheetStrategy(nil, nil)
	res, err := s.Extract(context.Background(), entity.RawDocument{
		Filename: "quote.xlsx",
		Data:     buf.Bytes(),
	})
	require.NoError(t, err)
	require.True(t, res.Success)
	require.Len(t, res.Candidates, 1)
	assert.Equal(t, "Servo Drive", res.Candidates[0].Name)
	assert.Equal(t, "SGD7S-120A", res.Candidates[0].ManufacturerPartNumber)
	assert.Equal(t, "Sheet1", res.Metadata.SheetName)
}

func TestSpreadsheetExtractCorruptWorkbook(t *testing.T) {
	s := NewSpreadsheetStrategy(nil, nil)

	_, err := s.Extract(context.Background(), entity.RawDocument{
		Filename: "quote.xlsx",
		Data:     []byte("this is not a workbook"),
	})
	require.Error(t, err)
	assert.Equal(t, common.CodeMalformedSource, common.CodeOf(err))
}
