package extract

import (
	"context"
	"time"

	"github.com/meditrust/medextract/constants"
)

// RawDocument is an uploaded document held entirely in memory. It is owned
// by the call that produced it and is never persisted past extraction.
type RawDocument struct {
	Data   []byte
	Format constants.Format
}

// TextExtractor is Stage 1: document bytes -> raw text.
//
// Two interchangeable strategies exist: DirectExtractor reads embedded text
// layers, OCRAdapter rasterizes and recognizes. Deployments pick one; both
// honor the same contract.
type TextExtractor interface {
	Extract(ctx context.Context, doc RawDocument) (TextExtractionResult, error)
}

type TextExtractionResult struct {
	Text     string
	Pages    int
	Method   string // "pdf-text" | "docx-text" | "pdf-ocr"
	Duration time.Duration
	Warnings []string
}
