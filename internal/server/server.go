// Package server wires the extraction pipeline to its HTTP surface:
// one upload endpoint plus a welcome route, permissive CORS, and temp
// file custody for the uploaded bytes.
package server

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/meditrust/medextract/constants"
	"github.com/meditrust/medextract/internal/common"
	"github.com/meditrust/medextract/internal/extract"
	"github.com/meditrust/medextract/internal/pipeline"
)

type Server struct {
	logger *slog.Logger
	cfg    common.ServerConfig
	pipe   *pipeline.Pipeline
}

func New(logger *slog.Logger, cfg common.ServerConfig, pipe *pipeline.Pipeline) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{logger: logger, cfg: cfg, pipe: pipe}
}

// Routes builds the router. CORS is wide open: the service fronts a
// browser client on an arbitrary origin.
func (s *Server) Routes() *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(permissiveCORS)

	r.Get("/", s.handleRoot)
	r.Post("/extract", s.handleExtract)
	return r
}

func permissiveCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "*")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleRoot(w http.ResponseWriter, _ *http.Request) {
	writeJSON(s.logger, w, http.StatusOK, map[string]string{
		"message": "Welcome to MediTrust Extraction API!",
	})
}

// handleExtract accepts a multipart upload, parks the bytes in a temp file
// for the duration of the request, and runs the pipeline. The temp file is
// removed on every exit path; the pipeline itself never touches disk.
func (s *Server) handleExtract(w http.ResponseWriter, r *http.Request) {
	maxBytes := int64(s.cfg.MaxUploadMB) << 20
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)

	if err := r.ParseMultipartForm(maxBytes); err != nil {
		writeJSON(s.logger, w, http.StatusBadRequest, errorResponse{Error: "file too large or invalid form"})
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeJSON(s.logger, w, http.StatusBadRequest, errorResponse{Error: "file is required"})
		return
	}
	defer file.Close()

	// Extension dispatch happens before the pipeline runs. Matching is
	// case-sensitive: ".PDF" is rejected.
	format, ok := constants.HasSupportedExtension(header.Filename)
	if !ok {
		writeJSON(s.logger, w, http.StatusBadRequest, errorResponse{Error: common.ErrUnsupportedFormat.Error()})
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		s.logger.Error("read upload", "filename", header.Filename, "err", err)
		writeJSON(s.logger, w, http.StatusInternalServerError, errorResponse{Error: "failed to read upload"})
		return
	}

	tmpPath, err := s.spoolUpload(header.Filename, data)
	if err != nil {
		s.logger.Error("spool upload", "filename", header.Filename, "err", err)
		writeJSON(s.logger, w, http.StatusInternalServerError, errorResponse{Error: "failed to store upload"})
		return
	}
	defer func() {
		if rerr := os.Remove(tmpPath); rerr != nil && !os.IsNotExist(rerr) {
			s.logger.Warn("failed to remove temp upload", "path", tmpPath, "err", rerr)
		}
	}()

	result, err := s.pipe.Run(r.Context(), extract.RawDocument{Data: data, Format: format})
	if err != nil {
		status := http.StatusUnprocessableEntity
		if !errors.Is(err, common.ErrExtraction) {
			status = http.StatusInternalServerError
		}
		writeJSON(s.logger, w, status, errorResponse{Error: err.Error()})
		return
	}

	writeJSON(s.logger, w, http.StatusOK, result)
}

// spoolUpload writes the uploaded bytes under the configured temp dir.
// The caller owns removal.
func (s *Server) spoolUpload(filename string, data []byte) (string, error) {
	if err := os.MkdirAll(s.cfg.TempDir, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(s.cfg.TempDir, uuid.NewString()+filepath.Ext(filename))
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return "", err
	}
	return path, nil
}

func writeJSON(logger *slog.Logger, w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("encode response", "err", err)
	}
}
