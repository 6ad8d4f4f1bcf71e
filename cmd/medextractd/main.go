package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/meditrust/medextract/internal/common"
	"github.com/meditrust/medextract/internal/extract"
	"github.com/meditrust/medextract/internal/fields"
	"github.com/meditrust/medextract/internal/logger"
	"github.com/meditrust/medextract/internal/ner"
	"github.com/meditrust/medextract/internal/ocr"
	"github.com/meditrust/medextract/internal/pipeline"
	"github.com/meditrust/medextract/internal/server"
)

func main() {
	log := logger.New("medextractd")

	cfg := common.LoadConfig()
	if err := cfg.Validate(); err != nil {
		log.Error("invalid config", slog.Any("err", err))
		os.Exit(1)
	}

	// NER model: loaded once here, read-only afterwards, shared by all
	// requests through the recognizer handle.
	recognizer, err := ner.NewProseRecognizer(log)
	if err != nil {
		log.Error("init recognizer", slog.Any("err", err))
		os.Exit(1)
	}

	var textExtractor extract.TextExtractor
	switch cfg.Extract.Strategy {
	case common.StrategyOCR:
		ocrx := ocr.NewExtractor(ocr.Config{
			Pdftoppm:      cfg.OCR.Pdftoppm,
			Tesseract:     cfg.OCR.Tesseract,
			TesseractLang: cfg.OCR.TesseractLang,
			DPI:           cfg.OCR.DPI,
			MaxPages:      cfg.OCR.MaxPages,
		}, log)
		textExtractor = extract.NewOCRAdapter(ocrx, log)
	default:
		textExtractor = extract.NewDirectExtractor(log)
	}

	pipe := pipeline.New(log, textExtractor, fields.NewExtractor(recognizer, log))
	srv := server.New(log, cfg.Server, pipe)

	httpServer := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           srv.Routes(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	go func() {
		log.Info("server starting", slog.String("addr", cfg.Server.Addr), slog.String("strategy", cfg.Extract.Strategy))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server stopped", slog.Any("err", err))
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	log.Info("shutdown signal received")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("server shutdown", slog.Any("err", err))
	}
}
