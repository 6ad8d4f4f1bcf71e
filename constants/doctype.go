package constants

// DocumentType is the coarse classification label assigned to a whole
// document. The string values are the exact labels reported to callers.
type DocumentType string

const (
	MedicalRecord   DocumentType = "Medical Record"
	XRayReport      DocumentType = "X-Ray Report"
	UnknownDocument DocumentType = "Unknown Document Type"
)

// NotFound is the sentinel reported for any patient field no rule filled.
// It is a normal outcome, not an error.
const NotFound = "Not Found"
