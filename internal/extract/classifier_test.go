package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/omerbh/quotex/constants"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		mimeType string
		filename string
		want     constants.DocumentType
	}{
		{"specific mime wins over extension", "text/csv", "upload.bin", constants.Tabular},
		{"xlsx mime", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", "quote", constants.Tabular},
		{"pdf mime", "application/pdf", "quote", constants.DocumentText},
		{"image mime", "image/png", "photo.bin", constants.Image},
		{"empty mime falls back to extension", "", "quote.xlsx", constants.Tabular},
		{"octet-stream falls back to extension", "application/octet-stream", "quote.pdf", constants.DocumentText},
		{"mislabeled csv still routes by extension", "application/x-unknown", "quote.csv", constants.Tabular},
		{"case-insensitive extension", "", "PHOTO.JPG", constants.Image},
		{"docx is unsupported", "", "quote.docx", constants.Unsupported},
		{"text file is unsupported", "text/plain", "notes.txt", constants.Unsupported},
		{"nothing to go on", "", "quote", constants.Unsupported},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.mimeType, tt.filename))
		})
	}
}
