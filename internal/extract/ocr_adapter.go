package extract

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/meditrust/medextract/constants"
	"github.com/meditrust/medextract/internal/common"
	"github.com/meditrust/medextract/internal/ocr"
)

// OCRAdapter adapts the ocr package to the TextExtractor contract. Only
// PDFs are rasterized; DOCX files always carry a text layer, so they go
// through direct extraction regardless of strategy.
type OCRAdapter struct {
	e      *ocr.Extractor
	direct *DirectExtractor
	logger *slog.Logger
}

func NewOCRAdapter(e *ocr.Extractor, logger *slog.Logger) *OCRAdapter {
	if logger == nil {
		logger = slog.Default()
	}
	return &OCRAdapter{e: e, direct: NewDirectExtractor(logger), logger: logger}
}

func (a *OCRAdapter) Extract(ctx context.Context, doc RawDocument) (TextExtractionResult, error) {
	switch doc.Format {
	case constants.PDF:
		start := time.Now()
		r, err := a.e.ExtractPDF(ctx, doc.Data)
		if err == nil && strings.TrimSpace(r.Text) == "" {
			a.logger.Warn("ocr recognized no text", "pages", r.Pages, "warnings", len(r.Warnings))
			err = common.ErrEmptyDocument
		}
		if err != nil {
			return TextExtractionResult{Method: "pdf-ocr", Warnings: r.Warnings},
				fmt.Errorf("%w: %w", common.ErrExtraction, err)
		}
		return TextExtractionResult{
			Text:     r.Text,
			Pages:    r.Pages,
			Method:   "pdf-ocr",
			Duration: time.Since(start),
			Warnings: r.Warnings,
		}, nil
	case constants.DOCX:
		return a.direct.Extract(ctx, doc)
	default:
		return TextExtractionResult{}, fmt.Errorf("%w: %q", common.ErrUnsupportedFormat, doc.Format)
	}
}
