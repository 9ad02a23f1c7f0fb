package textextract

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/teamforge/profile-extractor/constants"
	"github.com/teamforge/profile-extractor/internal/common"
)

// Result summarizes one text extraction.
type Result struct {
	Text     string
	Format   string // constants.PDF | constants.DOCX | constants.TXT
	Pages    int
	Duration time.Duration
}

// Extractor converts a binary document into normalized plain text.
// Format is declared by the file-name suffix; no content sniffing.
type Extractor struct {
	logger *slog.Logger
}

func NewExtractor(logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Extractor{logger: logger}
}

// Extract picks a strategy based on the display name's extension. It fails
// with an UNSUPPORTED_FORMAT error before touching the bytes for any suffix
// outside the supported set, and with UNREADABLE_DOCUMENT when the cleaned
// text comes out empty (the scanned/image-only signal).
func (e *Extractor) Extract(ctx context.Context, displayName string, data []byte) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	start := time.Now()
	ext := constants.NormalizeExt(filepath.Ext(displayName))
	format := constants.MapExtToFormat(ext)
	e.logger.Debug("textextract.start", "name", displayName, "ext", ext, "bytes", len(data))

	var (
		text  string
		pages int
		err   error
	)
	switch format {
	case constants.PDF:
		text, pages, err = extractPDF(data)
	case constants.DOCX:
		text, err = extractDOCX(data)
		pages = 1
	case constants.TXT:
		text = string(data)
		pages = 1
	default:
		e.logger.Error("textextract.unsupported_extension", "name", displayName, "ext", ext)
		return Result{}, common.NewPipelineError(common.KindUnsupportedFormat,
			fmt.Sprintf("unsupported extension: %q", ext), nil)
	}
	if err != nil {
		e.logger.Error("textextract.decode_error", "name", displayName, "format", format, "error", err)
		return Result{}, common.NewPipelineError(common.KindUnreadableDocument,
			"failed to decode document", err)
	}

	cleaned := Normalize(text)
	if cleaned == "" {
		e.logger.Error("textextract.empty_text", "name", displayName, "format", format)
		return Result{}, common.NewPipelineError(common.KindUnreadableDocument,
			"no extractable text; document is likely scanned or image-based", nil)
	}

	res := Result{Text: cleaned, Format: format, Pages: pages, Duration: time.Since(start)}
	e.logger.Info("textextract.ok",
		"name", displayName,
		"format", format,
		"pages", pages,
		"text_len", len(cleaned),
		"elapsed_ms", res.Duration.Milliseconds(),
	)
	return res, nil
}
