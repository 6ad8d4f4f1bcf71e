// runextract runs the extraction pipeline against a local file and prints
// the result as JSON. Useful for poking at classification and field rules
// without standing up the HTTP server.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/meditrust/medextract/constants"
	"github.com/meditrust/medextract/internal/common"
	"github.com/meditrust/medextract/internal/extract"
	"github.com/meditrust/medextract/internal/fields"
	"github.com/meditrust/medextract/internal/ner"
	"github.com/meditrust/medextract/internal/ocr"
	"github.com/meditrust/medextract/internal/pipeline"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	}))
	slog.SetDefault(logger)

	if len(os.Args) != 2 {
		logger.Error("usage", "cmd", "runextract <file.pdf|file.docx>")
		os.Exit(2)
	}
	path := os.Args[1]

	format, ok := constants.HasSupportedExtension(filepath.Base(path))
	if !ok {
		logger.Error("unsupported file format", "path", path)
		os.Exit(2)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		logger.Error("read file", "path", path, "error", err)
		os.Exit(1)
	}

	recognizer, err := ner.NewProseRecognizer(logger)
	if err != nil {
		logger.Error("init recognizer", "error", err)
		os.Exit(1)
	}

	cfg := common.LoadConfig()
	var textExtractor extract.TextExtractor
	if cfg.Extract.Strategy == common.StrategyOCR {
		ocrx := ocr.NewExtractor(ocr.Config{
			Pdftoppm:      cfg.OCR.Pdftoppm,
			Tesseract:     cfg.OCR.Tesseract,
			TesseractLang: cfg.OCR.TesseractLang,
			DPI:           cfg.OCR.DPI,
			MaxPages:      cfg.OCR.MaxPages,
		}, logger)
		textExtractor = extract.NewOCRAdapter(ocrx, logger)
	} else {
		textExtractor = extract.NewDirectExtractor(logger)
	}

	pipe := pipeline.New(logger, textExtractor, fields.NewExtractor(recognizer, logger))

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	result, err := pipe.Run(ctx, extract.RawDocument{Data: data, Format: format})
	if err != nil {
		logger.Error("pipeline failed", "path", path, "error", err)
		os.Exit(1)
	}

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		logger.Error("marshal result", "error", err)
		os.Exit(1)
	}
	fmt.Println(string(out))
}
