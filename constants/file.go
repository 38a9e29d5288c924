package constants

import (
	"sort"
	"strings"
)

// DocumentType is the coarse routing decision for an uploaded document.
type DocumentType string

const (
	Tabular      DocumentType = "tabular"
	DocumentText DocumentType = "document-text"
	Image        DocumentType = "image"
	Unsupported  DocumentType = "unsupported"
)

// extToType holds the allowed file extensions and the route each one maps to.
var extToType = map[string]DocumentType{
	"xlsx": Tabular,
	"xls":  Tabular,
	"csv":  Tabular,
	"pdf":  DocumentText,
	"jpg":  Image,
	"jpeg": Image,
	"png":  Image,
	"gif":  Image,
	"webp": Image,
}

// mimeToType maps explicit MIME types to a route. MIME takes precedence over
// the filename extension; generic types fall through to extension matching.
var mimeToType = map[string]DocumentType{
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet": Tabular,
	"application/vnd.ms-excel": Tabular,
	"text/csv":                 Tabular,
	"application/csv":          Tabular,
	"application/pdf":          DocumentText,
	"image/jpeg":               Image,
	"image/jpg":                Image,
	"image/png":                Image,
	"image/gif":                Image,
	"image/webp":               Image,
}

// genericMIMETypes carry no routing information; classification falls back to
// the filename extension for these.
var genericMIMETypes = map[string]struct{}{
	"":                         {},
	"application/octet-stream": {},
	"binary/octet-stream":      {},
	"application/download":     {},
}

// NormalizeExt lowercases and trims the dot from a file extension.
func NormalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

// MapExtToType returns the route for a (dotted or bare) file extension, or
// Unsupported if the extension is not recognized.
func MapExtToType(ext string) DocumentType {
	if t, ok := extToType[NormalizeExt(ext)]; ok {
		return t
	}
	return Unsupported
}

// MapMIMEToType returns the route for a declared MIME type. The boolean is
// false when the MIME type is generic or absent and carries no routing
// information.
func MapMIMEToType(mimeType string) (DocumentType, bool) {
	mt := strings.ToLower(strings.TrimSpace(mimeType))
	// strip parameters like "; charset=utf-8"
	if i := strings.Index(mt, ";"); i >= 0 {
		mt = strings.TrimSpace(mt[:i])
	}
	if _, generic := genericMIMETypes[mt]; generic {
		return Unsupported, false
	}
	if t, ok := mimeToType[mt]; ok {
		return t, true
	}
	if strings.HasPrefix(mt, "image/") {
		return Image, true
	}
	return Unsupported, true
}

// SupportedExtensions returns the accepted extensions, sorted, with dots.
func SupportedExtensions() []string {
	out := make([]string, 0, len(extToType))
	for ext := range extToType {
		out = append(out, "."+ext)
	}
	sort.Strings(out)
	return out
}

// SupportedFormatsMessage is the human-readable message attached to
// unsupported-file failures.
func SupportedFormatsMessage() string {
	return "unsupported file type; supported formats are " + strings.Join(SupportedExtensions(), ", ")
}
