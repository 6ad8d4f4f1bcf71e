package server_test

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/meditrust/medextract/internal/common"
	"github.com/meditrust/medextract/internal/extract"
	"github.com/meditrust/medextract/internal/fields"
	"github.com/meditrust/medextract/internal/pipeline"
	"github.com/meditrust/medextract/internal/server"
)

type stubRecognizer struct{}

func (stubRecognizer) FirstPerson(string) (string, bool) { return "", false }

func newTestServer(t *testing.T) *server.Server {
	t.Helper()
	cfg := common.ServerConfig{
		MaxUploadMB: 10,
		TempDir:     t.TempDir(),
	}
	pipe := pipeline.New(nil, extract.NewDirectExtractor(nil), fields.NewExtractor(stubRecognizer{}, nil))
	return server.New(nil, cfg, pipe)
}

func buildDocx(t *testing.T, paragraphs ...string) []byte {
	t.Helper()
	var body bytes.Buffer
	body.WriteString(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>`)
	body.WriteString(`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>`)
	for _, p := range paragraphs {
		body.WriteString(`<w:p><w:r><w:t>` + p + `</w:t></w:r></w:p>`)
	}
	body.WriteString(`</w:body></w:document>`)

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	f, err := zw.Create("word/document.xml")
	require.NoError(t, err)
	_, err = f.Write(body.Bytes())
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func multipartUpload(t *testing.T, filename string, data []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = fw.Write(data)
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func TestRootWelcome(t *testing.T) {
	srv := newTestServer(t)
	rec := httptest.NewRecorder()
	srv.Routes().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, "Welcome to MediTrust Extraction API!", resp["message"])
}

func TestExtractMedicalDocx(t *testing.T) {
	srv := newTestServer(t)
	docx := buildDocx(t,
		"Patient admitted, male, 45 years old",
		"Diagnosis: acute bronchitis infection noted",
		"Prescription: Amoxicillin 500mg",
	)
	body, contentType := multipartUpload(t, "record.docx", docx)

	req := httptest.NewRequest(http.MethodPost, "/extract", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	srv.Routes().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		DocumentType  string            `json:"document_type"`
		ExtractedData map[string]string `json:"extracted_data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, "Medical Record", resp.DocumentType)
	require.Equal(t, "45 years old", resp.ExtractedData["Age"])
	require.Equal(t, "acute, bronchitis, infection", resp.ExtractedData["Illness"])
	require.Equal(t, "Not Found", resp.ExtractedData["Name"])
}

func TestExtractXRayDocxSkipsFields(t *testing.T) {
	srv := newTestServer(t)
	docx := buildDocx(t, "chest x-ray findings are clear")
	body, contentType := multipartUpload(t, "report.docx", docx)

	req := httptest.NewRequest(http.MethodPost, "/extract", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	srv.Routes().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		DocumentType  string            `json:"document_type"`
		ExtractedData map[string]string `json:"extracted_data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, "X-Ray Report", resp.DocumentType)
	require.Empty(t, resp.ExtractedData)
}

func TestExtractUnsupportedExtension(t *testing.T) {
	srv := newTestServer(t)
	body, contentType := multipartUpload(t, "notes.txt", []byte("hello"))

	req := httptest.NewRequest(http.MethodPost, "/extract", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	srv.Routes().ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, "unsupported file format", resp["error"])
}

func TestExtractUppercaseExtensionRejected(t *testing.T) {
	srv := newTestServer(t)
	body, contentType := multipartUpload(t, "RECORD.PDF", []byte("%PDF-1.4"))

	req := httptest.NewRequest(http.MethodPost, "/extract", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	srv.Routes().ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestExtractCorruptDocumentReturnsErrorJSON(t *testing.T) {
	srv := newTestServer(t)
	body, contentType := multipartUpload(t, "broken.docx", []byte("not a zip"))

	req := httptest.NewRequest(http.MethodPost, "/extract", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	srv.Routes().ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Contains(t, resp["error"], "extraction failed")
}

func TestExtractRemovesTempFile(t *testing.T) {
	tempDir := t.TempDir()
	cfg := common.ServerConfig{MaxUploadMB: 10, TempDir: tempDir}
	pipe := pipeline.New(nil, extract.NewDirectExtractor(nil), fields.NewExtractor(stubRecognizer{}, nil))
	srv := server.New(nil, cfg, pipe)

	docx := buildDocx(t, "patient notes")
	body, contentType := multipartUpload(t, "record.docx", docx)

	req := httptest.NewRequest(http.MethodPost, "/extract", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	srv.Routes().ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	entries, err := os.ReadDir(tempDir)
	require.NoError(t, err)
	require.Empty(t, entries, "temp upload should be removed after the request")
}

func TestCORSPreflight(t *testing.T) {
	srv := newTestServer(t)
	req := httptest.NewRequest(http.MethodOptions, "/extract", nil)
	rec := httptest.NewRecorder()
	srv.Routes().ServeHTTP(rec, req)

	require.Equal(t, http.StatusNoContent, rec.Code)
	require.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}
