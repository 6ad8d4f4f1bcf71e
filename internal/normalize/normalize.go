// Package normalize canonicalizes extracted document text. The normalized
// form is the only text the classifier and field rules ever see.
package normalize

import (
	"regexp"
	"strings"
)

var (
	// Retained set: ASCII letters, digits, ". , : ; ( ) - /" and whitespace.
	reDisallowed = regexp.MustCompile(`[^a-zA-Z0-9.,:;()\-/\s]`)
	reMultiSpace = regexp.MustCompile(` +`)
)

// Normalize collapses raw extractor output into canonical plain text.
// Order matters: line breaks become spaces first, then characters outside
// the retained set are removed, then space runs collapse, then the result
// is trimmed. Idempotent, and lossy by design.
func Normalize(s string) string {
	s = strings.ReplaceAll(s, "\r\n", " ")
	s = strings.ReplaceAll(s, "\n", " ")
	s = reDisallowed.ReplaceAllString(s, "")
	s = reMultiSpace.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}
