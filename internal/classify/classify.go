// Package classify assigns a document type from normalized text using
// ordered keyword rules.
package classify

import (
	"strings"

	"github.com/meditrust/medextract/constants"
)

// rule pairs a keyword set with the document type it selects.
type rule struct {
	keywords []string
	result   constants.DocumentType
}

var medicalKeywords = []string{
	"prescription", "diagnosis", "patient", "medical history",
	"treatment", "doctor", "hospital", "disease", "medications",
}

var imagingKeywords = []string{
	"x-ray", "radiology", "chest x-ray", "mri",
	"ct scan", "ultrasound", "scan report", "radiologist",
}

// rules are evaluated top to bottom; the first set with any hit wins.
// Medical before imaging is deliberate: a document carrying both sets of
// terms is always a medical record.
var rules = []rule{
	{keywords: medicalKeywords, result: constants.MedicalRecord},
	{keywords: imagingKeywords, result: constants.XRayReport},
}

// Classify maps normalized text to a document type. Matching is
// case-insensitive substring search; no keyword hit means Unknown.
func Classify(text string) constants.DocumentType {
	lower := strings.ToLower(text)
	for _, r := range rules {
		for _, kw := range r.keywords {
			if strings.Contains(lower, kw) {
				return r.result
			}
		}
	}
	return constants.UnknownDocument
}
