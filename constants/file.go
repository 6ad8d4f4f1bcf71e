package constants

import "strings"

// Format identifies a supported document container.
type Format string

const (
	PDF  Format = "PDF"
	DOCX Format = "DOCX"
)

// AllowedExtensions maps the accepted upload extensions (with leading dot)
// to their format. Matching is case-sensitive: ".PDF" is not accepted.
var AllowedExtensions = map[string]Format{
	".pdf":  PDF,
	".docx": DOCX,
}

// MapExtToFormat maps a filename extension to its Format.
// Returns "" for anything that is not an accepted extension.
func MapExtToFormat(ext string) Format {
	return AllowedExtensions[ext]
}

// HasSupportedExtension reports whether the filename ends in an accepted
// extension and returns the matching format.
func HasSupportedExtension(filename string) (Format, bool) {
	for ext, format := range AllowedExtensions {
		if strings.HasSuffix(filename, ext) {
			return format, true
		}
	}
	return "", false
}
