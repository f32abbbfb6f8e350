package constants

import "strings"

// Format is the canonical document format handled by the pipeline.
type Format string

const (
	PDF   Format = "PDF"
	DOCX  Format = "DOCX"
	IMAGE Format = "IMAGE"
	TEXT  Format = "TEXT"
)

// Formats holds all document formats in their fixed iteration order.
var Formats = []Format{PDF, DOCX, IMAGE, TEXT}

// extToFormat maps normalized extensions to their document format.
var extToFormat = map[string]Format{
	"pdf":  PDF,
	"docx": DOCX,
	"doc":  DOCX,
	"png":  IMAGE,
	"jpg":  IMAGE,
	"jpeg": IMAGE,
	"bmp":  IMAGE,
	"tiff": IMAGE,
	"txt":  TEXT,
}

// NormalizeExt lowercases and trims the dot from a file extension.
func NormalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

// MapExtToFormat resolves a file extension to its document format.
// The boolean is false for unsupported extensions.
func MapExtToFormat(ext string) (Format, bool) {
	f, ok := extToFormat[NormalizeExt(ext)]
	return f, ok
}
