// Package ocr implements the OCR-backed extraction strategy: PDFs are
// rasterized with pdftoppm and each page image is recognized with
// tesseract. Both tools run as external commands through a Runner so
// tests can stub them.
package ocr

import (
	"log/slog"
	"strings"
)

type Config struct {
	Pdftoppm  string // binary name or absolute path; if empty -> "pdftoppm"
	Tesseract string // binary name or absolute path; if empty -> "tesseract"

	TesseractLang string // default "eng"
	DPI           int    // rasterization DPI, default 300
	MaxPages      int    // 0 = no limit
}

type ExtractionResult struct {
	Text     string
	Pages    int
	Language string
	Warnings []string
}

type Extractor struct {
	cfg    Config
	runner Runner
	logger *slog.Logger
}

func NewExtractor(cfg Config, logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Pdftoppm == "" {
		cfg.Pdftoppm = "pdftoppm"
	}
	if cfg.Tesseract == "" {
		cfg.Tesseract = "tesseract"
	}
	if cfg.TesseractLang == "" {
		cfg.TesseractLang = "eng"
	}
	if cfg.DPI <= 0 {
		cfg.DPI = 300
	}
	return &Extractor{cfg: cfg, runner: execRunner{}, logger: logger}
}

// decodePermissive converts recognized bytes to a string, dropping byte
// sequences that do not decode as UTF-8 instead of failing.
func decodePermissive(b []byte) string {
	return strings.ToValidUTF8(string(b), "")
}
