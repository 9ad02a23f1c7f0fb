package textextract

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// Layout thresholds in PDF user-space units. A vertical jump past
// lineBreakThreshold starts a new line (paragraph/table-row boundary); a
// horizontal gap past wordGapThreshold separates words on the same line.
const (
	lineBreakThreshold = 2.0
	wordGapThreshold   = 1.0
)

// The pdf library panics on some malformed inputs, so decoding is fenced
// with a recover and surfaced as a plain error.
func extractPDF(data []byte) (text string, numPages int, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("read pdf: %v", rec)
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", 0, fmt.Errorf("read pdf: %w", err)
	}

	var pages []string
	numPages = r.NumPage()
	for i := 1; i <= numPages; i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		pages = append(pages, assembleLines(page.Content().Text))
	}
	return strings.Join(pages, "\n\n"), numPages, nil
}

// assembleLines joins positioned text fragments into lines. PDF Y grows
// upward, so fragments share a line while their vertical offset stays
// within the threshold.
func assembleLines(frags []pdf.Text) string {
	var b strings.Builder
	var prev *pdf.Text
	for i := range frags {
		f := &frags[i]
		if f.S == "" {
			continue
		}
		if prev != nil {
			switch {
			case abs(f.Y-prev.Y) > lineBreakThreshold:
				b.WriteByte('\n')
			case f.X-(prev.X+prev.W) > wordGapThreshold:
				b.WriteByte(' ')
			}
		}
		b.WriteString(f.S)
		prev = f
	}
	return b.String()
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
