package extract

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/meditrust/medextract/constants"
	"github.com/meditrust/medextract/internal/common"
)

// DirectExtractor reads embedded text layers: the PDF content stream for
// PDFs, word/document.xml for DOCX. It has no OCR fallback; a PDF with no
// text layer is rejected as empty or image-only.
type DirectExtractor struct {
	logger *slog.Logger
}

func NewDirectExtractor(logger *slog.Logger) *DirectExtractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &DirectExtractor{logger: logger}
}

func (e *DirectExtractor) Extract(_ context.Context, doc RawDocument) (TextExtractionResult, error) {
	start := time.Now()

	var (
		text   string
		pages  int
		method string
		err    error
	)
	switch doc.Format {
	case constants.PDF:
		var hasImages bool
		text, pages, hasImages, err = extractPDFText(doc.Data)
		method = "pdf-text"
		if err == nil && strings.TrimSpace(text) == "" {
			e.logger.Warn("pdf has no text layer", "pages", pages, "has_images", hasImages)
			err = common.ErrEmptyDocument
		}
	case constants.DOCX:
		text, pages, err = extractDocxText(doc.Data)
		method = "docx-text"
		if err == nil && strings.TrimSpace(text) == "" {
			err = common.ErrEmptyDocument
		}
	default:
		return TextExtractionResult{}, fmt.Errorf("%w: %q", common.ErrUnsupportedFormat, doc.Format)
	}

	if err != nil {
		return TextExtractionResult{Method: method}, fmt.Errorf("%w: %w", common.ErrExtraction, err)
	}

	res := TextExtractionResult{
		Text:     text,
		Pages:    pages,
		Method:   method,
		Duration: time.Since(start),
	}
	e.logger.Debug("direct extraction ok", "method", method, "pages", pages, "bytes", len(text))
	return res, nil
}
