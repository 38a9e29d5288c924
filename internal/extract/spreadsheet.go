package extract

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/omerbh/quotex/constants"
	"github.com/omerbh/quotex/internal/common"
	"github.com/omerbh/quotex/internal/entity"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// SpreadsheetStrategy handles the tabular route: it opens the byte stream as
// a workbook or CSV and hands the resulting grid to the TabularParser.
type SpreadsheetStrategy struct {
	parser *TabularParser
	logger *slog.Logger
}

func NewSpreadsheetStrategy(parser *TabularParser, logger *slog.Logger) *SpreadsheetStrategy {
	if logger == nil {
		logger = slog.Default()
	}
	if parser == nil {
		parser = NewTabularParser(logger)
	}
	return &SpreadsheetStrategy{parser: parser, logger: logger}
}

func (s *SpreadsheetStrategy) Name() string { return "spreadsheet" }

func (s *SpreadsheetStrategy) Extract(_ context.Context, doc entity.RawDocument) (entity.ExtractionResult, error) {
	start := time.Now()

	var (
		sheetName string
		rows      [][]string
		err       error
	)
	if constants.NormalizeExt(filepath.Ext(doc.Filename)) == "csv" {
		sheetName = filepath.Base(doc.Filename)
		rows, err = readCSV(doc.Data)
	} else {
		sheetName, rows, err = readWorkbook(doc.Data)
	}
	if err != nil {
		s.logger.Error("spreadsheet.open_failed", "filename", doc.Filename, "error", err)
		return entity.ExtractionResult{}, common.MalformedSourceError(
			"could not open spreadsheet data; the file may be corrupt or in an unsupported workbook format", err)
	}

	res := s.parser.ParseGrid(sheetName, rows)
	s.logger.Info("spreadsheet.extract.ok",
		"filename", doc.Filename,
		"sheet", sheetName,
		"candidates", len(res.Candidates),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return res, nil
}

func readWorkbook(data []byte) (string, [][]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return "", nil, common.WrapError(err, "open workbook")
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return "", nil, errors.New("workbook has no sheets")
	}
	// first sheet wins; supplier quotes ship single-sheet workbooks
	sheet := sheets[0]
	rows, err := f.GetRows(sheet)
	if err != nil {
		return sheet, nil, common.WrapError(err, "read rows")
	}
	return sheet, rows, nil
}

func readCSV(data []byte) ([][]string, error) {
	data = bytes.TrimPrefix(data, utf8BOM)
	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1 // ragged rows are the norm in supplier exports
	r.LazyQuotes = true
	rows, err := r.ReadAll()
	if err != nil {
		return nil, common.WrapError(err, "read csv")
	}
	return rows, nil
}
