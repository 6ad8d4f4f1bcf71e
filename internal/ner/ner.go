// Package ner wraps named-entity recognition behind a small interface so
// the field extractor can run against a substitute recognizer in tests.
package ner

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/jdkato/prose/v2"
)

// Recognizer locates the first person-name span in text.
type Recognizer interface {
	FirstPerson(text string) (string, bool)
}

// ProseRecognizer runs the prose NER model. The model is loaded once at
// construction and read-only afterwards; prose documents no concurrency
// guarantee for tagging, so a single mutex serializes recognition calls.
type ProseRecognizer struct {
	mu     sync.Mutex
	logger *slog.Logger
}

// NewProseRecognizer constructs the process-wide recognizer and forces the
// model load up front with a short warm-up pass.
func NewProseRecognizer(logger *slog.Logger) (*ProseRecognizer, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if _, err := prose.NewDocument("Dr. Adams examined the patient.", prose.WithSegmentation(false)); err != nil {
		return nil, fmt.Errorf("load ner model: %w", err)
	}
	return &ProseRecognizer{logger: logger}, nil
}

// FirstPerson returns the text span of the first entity tagged PERSON.
func (r *ProseRecognizer) FirstPerson(text string) (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	doc, err := prose.NewDocument(text, prose.WithSegmentation(false))
	if err != nil {
		r.logger.Warn("ner pass failed", "error", err)
		return "", false
	}
	for _, ent := range doc.Entities() {
		if ent.Label == "PERSON" {
			return ent.Text, true
		}
	}
	return "", false
}
