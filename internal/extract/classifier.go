package extract

import (
	"path/filepath"

	"github.com/omerbh/quotex/constants"
)

// Classify routes a document by its declared MIME type and filename. The
// MIME type wins when it is specific; generic or absent MIME types fall back
// to case-insensitive extension matching. Pure function, no side effects.
func Classify(mimeType, filename string) constants.DocumentType {
	if t, specific := constants.MapMIMEToType(mimeType); specific {
		if t != constants.Unsupported {
			return t
		}
		// A specific but unrecognized MIME type still gets an extension
		// chance: browsers routinely mislabel CSV and XLSX uploads.
	}
	return constants.MapExtToType(filepath.Ext(filename))
}
