package constants

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMapExtToType(t *testing.T) {
	tests := []struct {
		ext  string
		want DocumentType
	}{
		{".xlsx", Tabular},
		{"xls", Tabular},
		{".CSV", Tabular},
		{".pdf", DocumentText},
		{".jpg", Image},
		{"PNG", Image},
		{".webp", Image},
		{".docx", Unsupported},
		{".txt", Unsupported},
		{"", Unsupported},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, MapExtToType(tt.ext), "ext=%q", tt.ext)
	}
}

func TestMapMIMEToType(t *testing.T) {
	tests := []struct {
		mime         string
		want         DocumentType
		wantSpecific bool
	}{
		{"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", Tabular, true},
		{"text/csv", Tabular, true},
		{"text/csv; charset=utf-8", Tabular, true},
		{"application/pdf", DocumentText, true},
		{"image/png", Image, true},
		{"image/x-custom", Image, true}, // any image/* routes to the image path
		{"application/msword", Unsupported, true},
		{"application/octet-stream", Unsupported, false},
		{"", Unsupported, false},
	}

	for _, tt := range tests {
		got, specific := MapMIMEToType(tt.mime)
		assert.Equal(t, tt.want, got, "mime=%q", tt.mime)
		assert.Equal(t, tt.wantSpecific, specific, "mime=%q", tt.mime)
	}
}

func TestSupportedExtensions(t *testing.T) {
	exts := SupportedExtensions()
	assert.Contains(t, exts, ".xlsx")
	assert.Contains(t, exts, ".pdf")
	assert.Contains(t, exts, ".png")
	for _, e := range exts {
		assert.True(t, strings.HasPrefix(e, "."), "extension %q should be dotted", e)
	}
	assert.IsIncreasing(t, exts)
}

func TestSupportedFormatsMessage(t *testing.T) {
	msg := SupportedFormatsMessage()
	assert.Contains(t, msg, "unsupported file type")
	assert.Contains(t, msg, ".xlsx")
	assert.Contains(t, msg, ".csv")
	assert.Contains(t, msg, ".pdf")
}
