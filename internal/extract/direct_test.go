package extract_test

import (
	"archive/zip"
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/meditrust/medextract/constants"
	"github.com/meditrust/medextract/internal/common"
	"github.com/meditrust/medextract/internal/extract"
)

// buildDocx assembles a minimal .docx archive in memory, one <w:p> per
// paragraph.
func buildDocx(t *testing.T, paragraphs ...string) []byte {
	t.Helper()

	var body bytes.Buffer
	body.WriteString(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>`)
	body.WriteString(`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>`)
	escaper := strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
	for _, p := range paragraphs {
		body.WriteString(`<w:p><w:r><w:t>`)
		body.WriteString(escaper.Replace(p))
		body.WriteString(`</w:t></w:r></w:p>`)
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

func TestDirectExtractDocx(t *testing.T) {
	data := buildDocx(t, "Patient admitted with fever", "Diagnosis: flu", "")

	e := extract.NewDirectExtractor(nil)
	res, err := e.Extract(context.Background(), extract.RawDocument{Data: data, Format: constants.DOCX})
	require.NoError(t, err)
	require.Equal(t, "docx-text", res.Method)
	require.Equal(t, "Patient admitted with fever\nDiagnosis: flu", res.Text)
}

func TestDirectExtractDocxEmpty(t *testing.T) {
	data := buildDocx(t, "", "   ")

	e := extract.NewDirectExtractor(nil)
	_, err := e.Extract(context.Background(), extract.RawDocument{Data: data, Format: constants.DOCX})
	require.ErrorIs(t, err, common.ErrExtraction)
	require.ErrorIs(t, err, common.ErrEmptyDocument)
}

func TestDirectExtractCorruptDocx(t *testing.T) {
	e := extract.NewDirectExtractor(nil)
	_, err := e.Extract(context.Background(), extract.RawDocument{Data: []byte("not a zip"), Format: constants.DOCX})
	require.ErrorIs(t, err, common.ErrExtraction)
}

func TestDirectExtractCorruptPDF(t *testing.T) {
	e := extract.NewDirectExtractor(nil)
	_, err := e.Extract(context.Background(), extract.RawDocument{Data: []byte("%PDF-not-really"), Format: constants.PDF})
	require.ErrorIs(t, err, common.ErrExtraction)
}

func TestDirectExtractUnsupportedFormat(t *testing.T) {
	e := extract.NewDirectExtractor(nil)
	_, err := e.Extract(context.Background(), extract.RawDocument{Data: []byte("x"), Format: constants.Format("ODT")})
	require.ErrorIs(t, err, common.ErrUnsupportedFormat)
}
