// Package fields populates the patient-record schema from normalized
// medical-record text. Six independent rules run over the same text; a
// rule that finds nothing leaves its field unset and the sentinel is
// applied at the output boundary.
package fields

import (
	"log/slog"
	"regexp"
	"strings"

	"github.com/meditrust/medextract/constants"
	"github.com/meditrust/medextract/internal/ner"
)

// FieldKeys are the response mapping keys, in reporting order.
var FieldKeys = []string{"Name", "Age", "Gender", "Illness", "Doctor Name", "Prescription"}

// PatientRecord holds the six extractable patient fields. A nil field
// means its rule found nothing; Map converts nil to the sentinel.
type PatientRecord struct {
	Name         *string
	Age          *string
	Gender       *string
	Illness      *string
	DoctorName   *string
	Prescription *string
}

// Map renders the record as the caller-facing mapping. Every key is
// always present, unfilled fields as the sentinel.
func (r PatientRecord) Map() map[string]string {
	out := make(map[string]string, len(FieldKeys))
	for key, field := range map[string]*string{
		"Name":         r.Name,
		"Age":          r.Age,
		"Gender":       r.Gender,
		"Illness":      r.Illness,
		"Doctor Name":  r.DoctorName,
		"Prescription": r.Prescription,
	} {
		if field != nil {
			out[key] = *field
		} else {
			out[key] = constants.NotFound
		}
	}
	return out
}

var (
	// "years old" before "years": leftmost-first alternation must take the
	// longest phrase so the whole match carries it.
	reAge = regexp.MustCompile(`(?i)\b\d{1,2}\s?(?:years old|years|yrs|y/o)\b`)

	// Dr optionally followed by up to two words. Case-sensitive.
	reDoctor = regexp.MustCompile(`Dr\.?\s?[A-Za-z]+\s?[A-Za-z]*`)

	rePrescription = regexp.MustCompile(`(?i)prescription\s*:\s*(.*?)(?:\n|$)`)
)

// illnessKeywords are tried in order; the first one that matches wins.
var illnessKeywords = []string{"diagnosis", "condition", "disease", "illness", "symptoms"}

var illnessRes = func() []*regexp.Regexp {
	res := make([]*regexp.Regexp, len(illnessKeywords))
	for i, kw := range illnessKeywords {
		res[i] = regexp.MustCompile(`(?i)` + kw + `\s*:\s*(.*?)(?:\n|$)`)
	}
	return res
}()

type Extractor struct {
	recognizer ner.Recognizer
	logger     *slog.Logger
}

func NewExtractor(recognizer ner.Recognizer, logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Extractor{recognizer: recognizer, logger: logger}
}

// Extract runs all six rules against normalized text. Rules share no
// state, so their order never changes the outcome.
func (e *Extractor) Extract(text string) PatientRecord {
	var rec PatientRecord

	if name, ok := e.recognizer.FirstPerson(text); ok {
		rec.Name = &name
	}
	if age := reAge.FindString(text); age != "" {
		rec.Age = &age
	}
	rec.Gender = extractGender(text)
	rec.Illness = extractIllness(text)
	if doctor := reDoctor.FindString(text); doctor != "" {
		rec.DoctorName = &doctor
	}
	if m := rePrescription.FindStringSubmatch(text); m != nil {
		p := strings.TrimSpace(m[1])
		rec.Prescription = &p
	}

	return rec
}

// extractGender checks "male" before "female". NOTE: "female" contains
// "male" as a substring, so female-only text satisfies the male check
// first and reports Male. Kept as-is; a word-boundary match would change
// reported output.
func extractGender(text string) *string {
	lower := strings.ToLower(text)
	if strings.Contains(lower, "male") {
		g := "Male"
		return &g
	}
	if strings.Contains(lower, "female") {
		g := "Female"
		return &g
	}
	return nil
}

// extractIllness matches "<keyword>: <rest of line>" for each keyword in
// order and keeps at most the first three tokens of the capture.
func extractIllness(text string) *string {
	for _, re := range illnessRes {
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		// First keyword that matches wins, even when the capture is empty;
		// a found-but-empty value is distinct from not-found.
		tokens := strings.Fields(strings.TrimSpace(m[1]))
		if len(tokens) > 3 {
			tokens = tokens[:3]
		}
		illness := strings.Join(tokens, ", ")
		return &illness
	}
	return nil
}
