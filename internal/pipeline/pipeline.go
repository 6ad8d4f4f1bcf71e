// Package pipeline sequences extraction, normalization, classification,
// and field extraction into the single operation the HTTP layer calls.
package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/meditrust/medextract/constants"
	"github.com/meditrust/medextract/internal/classify"
	"github.com/meditrust/medextract/internal/extract"
	"github.com/meditrust/medextract/internal/fields"
	"github.com/meditrust/medextract/internal/normalize"
)

// Result is the only externally visible artifact of a run. Immutable once
// constructed; ExtractedData is empty for non-medical documents.
type Result struct {
	Timestamp     time.Time              `json:"timestamp"`
	DocumentType  constants.DocumentType `json:"document_type"`
	ExtractedData map[string]string      `json:"extracted_data"`
}

// Pipeline coordinates text extraction, then classification and field
// extraction. It holds no per-request state.
type Pipeline struct {
	Logger    *slog.Logger
	Extractor extract.TextExtractor
	Fields    *fields.Extractor
}

func New(logger *slog.Logger, extractor extract.TextExtractor, fieldExtractor *fields.Extractor) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{Logger: logger, Extractor: extractor, Fields: fieldExtractor}
}

// Run executes the full pipeline for one document. Extraction failure
// short-circuits everything after it; a non-medical classification skips
// field extraction and returns an empty mapping.
func (p *Pipeline) Run(ctx context.Context, doc extract.RawDocument) (Result, error) {
	res, err := p.Extractor.Extract(ctx, doc)
	if err != nil {
		p.Logger.Error("pipeline.extract.failed", "format", doc.Format, "err", err)
		return Result{}, err
	}
	p.Logger.Info("pipeline.extract.ok",
		"format", doc.Format,
		"method", res.Method,
		"pages", res.Pages,
		"bytes", len(res.Text),
	)

	text := normalize.Normalize(res.Text)
	docType := classify.Classify(text)

	extracted := map[string]string{}
	if docType == constants.MedicalRecord {
		extracted = p.Fields.Extract(text).Map()
		if err := p.validateRecord(extracted); err != nil {
			p.Logger.Error("pipeline.fields.invalid", "err", err)
			return Result{}, err
		}
	}

	p.Logger.Info("pipeline.ok", "document_type", docType, "fields", len(extracted))
	return Result{
		Timestamp:     time.Now().UTC(),
		DocumentType:  docType,
		ExtractedData: extracted,
	}, nil
}

// validateRecord checks the outgoing mapping against the record schema so
// a malformed rule change can never reach a caller unnoticed.
func (p *Pipeline) validateRecord(extracted map[string]string) error {
	raw, err := json.Marshal(extracted)
	if err != nil {
		return fmt.Errorf("marshal record: %w", err)
	}
	return fields.ValidateRecordJSON(raw)
}
