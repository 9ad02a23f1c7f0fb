package textextract

import (
	"bytes"
	"fmt"
	"html"
	"regexp"

	"github.com/nguyenthenguyen/docx"
)

var (
	reParagraphEnd = regexp.MustCompile(`</w:p>`)
	reXMLTag       = regexp.MustCompile(`<[^>]+>`)
)

// extractDOCX pulls raw text out of a word-processor document. No layout
// heuristics; paragraph ends become newlines and markup is dropped.
func extractDOCX(data []byte) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("parse docx: %w", err)
	}
	defer doc.Close()

	content := doc.Editable().GetContent()
	content = reParagraphEnd.ReplaceAllString(content, "\n")
	content = reXMLTag.ReplaceAllString(content, "")
	return html.UnescapeString(content), nil
}
