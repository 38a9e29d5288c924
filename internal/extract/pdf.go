package extract

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/omerbh/quotex/internal/common"
	"github.com/omerbh/quotex/internal/entity"
)

// PDFStrategy handles the document-text route for PDFs: it recovers plain
// text from the page content streams and hands it to the TextParser. Scanned
// PDFs carry no text operators and surface as the empty-text failure, which
// points the caller at the AI-vision path.
type PDFStrategy struct {
	text   *TextParser
	logger *slog.Logger
}

func NewPDFStrategy(text *TextParser, logger *slog.Logger) *PDFStrategy {
	if logger == nil {
		logger = slog.Default()
	}
	if text == nil {
		text = NewTextParser(nil, logger)
	}
	return &PDFStrategy{text: text, logger: logger}
}

func (s *PDFStrategy) Name() string { return "pdf" }

func (s *PDFStrategy) Extract(_ context.Context, doc entity.RawDocument) (entity.ExtractionResult, error) {
	start := time.Now()

	text, pages, err := pdfText(doc.Data)
	if err != nil {
		s.logger.Error("pdf.open_failed", "filename", doc.Filename, "error", err)
		return entity.ExtractionResult{}, common.MalformedSourceError(
			"could not read PDF document; the file may be corrupt or password-protected", err)
	}

	s.logger.Debug("pdf.text_recovered",
		"filename", doc.Filename,
		"pages", pages,
		"bytes", len(text),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return s.text.Parse(text, pages)
}

// pdfText recovers plain text and the page count from PDF bytes. pdfcpu's
// content extraction is file-based, so the decoded streams go through a
// temp dir.
func pdfText(data []byte) (string, int, error) {
	rs := bytes.NewReader(data)
	conf := model.NewDefaultConfiguration()

	pages, err := api.PageCount(rs, conf)
	if err != nil {
		return "", 0, common.WrapError(err, "page count")
	}

	tempDir, err := os.MkdirTemp("", "quotex-pdf-*")
	if err != nil {
		return "", 0, common.WrapError(err, "create temp dir")
	}
	defer os.RemoveAll(tempDir)

	if _, err := rs.Seek(0, io.SeekStart); err != nil {
		return "", 0, err
	}
	if err := api.ExtractContent(rs, tempDir, "page", nil, conf); err != nil {
		return "", 0, common.WrapError(err, "extract content")
	}

	files, err := contentFilesInPageOrder(tempDir)
	if err != nil {
		return "", 0, err
	}

	var b strings.Builder
	for _, f := range files {
		raw, err := os.ReadFile(f)
		if err != nil {
			return "", 0, common.WrapError(err, "read page content")
		}
		b.WriteString(decodePageContent(raw))
		b.WriteString("\n")
	}
	return b.String(), pages, nil
}

var rePageNumber = regexp.MustCompile(`(\d+)\.txt$`)

func contentFilesInPageOrder(dir string) ([]string, error) {
	files, err := filepath.Glob(filepath.Join(dir, "*.txt"))
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no page content extracted")
	}
	sort.Slice(files, func(i, j int) bool {
		return pageNumberOf(files[i]) < pageNumberOf(files[j])
	})
	return files, nil
}

func pageNumberOf(path string) int {
	m := rePageNumber.FindStringSubmatch(path)
	if m == nil {
		return 0
	}
	n, _ := strconv.Atoi(m[1])
	return n
}

// reContentOp matches the text-showing and line-moving operators of a
// decoded content stream: (…) Tj, (…) ', […] TJ, and Td/TD/T*/ET.
var reContentOp = regexp.MustCompile(`\(((?:\\.|[^\\()])*)\)\s*(?:Tj|')|\[((?:\\.|[^\]])*)\]\s*TJ|\bT\*|\b(?:Td|TD|ET)\b`)

var reStringLiteral = regexp.MustCompile(`\(((?:\\.|[^\\()])*)\)`)

// decodePageContent pulls the literal strings out of a page's text operators.
// Hex-encoded (CID-mapped) strings are skipped; they are not decodable
// without the font tables, and quotation PDFs overwhelmingly use simple
// encodings for the Latin part numbers and prices this pipeline needs.
func decodePageContent(raw []byte) string {
	var b strings.Builder
	for _, loc := range reContentOp.FindAllSubmatchIndex(raw, -1) {
		switch {
		case loc[2] >= 0: // Tj or '
			b.WriteString(unescapePDFString(string(raw[loc[2]:loc[3]])))
			b.WriteString(" ")
		case loc[4] >= 0: // TJ array
			inner := raw[loc[4]:loc[5]]
			for _, sm := range reStringLiteral.FindAllSubmatchIndex(inner, -1) {
				b.WriteString(unescapePDFString(string(inner[sm[2]:sm[3]])))
			}
			b.WriteString(" ")
		default: // line move
			b.WriteString("\n")
		}
	}
	return b.String()
}

func unescapePDFString(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\\' {
			b.WriteByte(c)
			continue
		}
		i++
		if i >= len(s) {
			break
		}
		switch s[i] {
		case 'n':
			b.WriteByte('\n')
		case 'r':
			b.WriteByte('\r')
		case 't':
			b.WriteByte('\t')
		case 'b', 'f':
			// no useful text meaning here
		case '(', ')', '\\':
			b.WriteByte(s[i])
		case '0', '1', '2', '3', '4', '5', '6', '7':
			j := i
			for j < len(s) && j < i+3 && s[j] >= '0' && s[j] <= '7' {
				j++
			}
			if n, err := strconv.ParseInt(s[i:j], 8, 16); err == nil {
				b.WriteByte(byte(n))
			}
			i = j - 1
		default:
			b.WriteByte(s[i])
		}
	}
	return b.String()
}
