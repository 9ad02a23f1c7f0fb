package constants

import "strings"

// Document formats accepted by the text extraction stage.
const (
	PDF  = "PDF"
	DOCX = "DOCX"
	TXT  = "TXT"
)

// AllowedExtensions maps the file extensions accepted for profile documents
// to their document format.
var AllowedExtensions = map[string]string{
	"pdf":  PDF,
	"docx": DOCX,
	"txt":  TXT,
}

// NormalizeExt lowercases and trims the dot from a file extension.
func NormalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

// MapExtToFormat maps an extension to a document format. Returns "" for
// anything outside the supported set.
func MapExtToFormat(ext string) string {
	return AllowedExtensions[NormalizeExt(ext)]
}
