package domain

import (
	"time"

	"github.com/google/uuid"
)

// FieldMapping maps extracted field names to their values. Text and
// date-range fields hold string values, monetary fields hold float64.
// A field is present only when its pattern matched; absence means unknown.
type FieldMapping map[string]any

// Text returns the string value of a field, or "" if the field is absent
// or not a text field.
func (f FieldMapping) Text(name string) string {
	s, _ := f[name].(string)
	return s
}

// Amount returns the monetary value of a field and whether it is present.
func (f FieldMapping) Amount(name string) (float64, bool) {
	v, ok := f[name].(float64)
	return v, ok
}

// TriageResult is the structured record produced for one claim document.
type TriageResult struct {
	ExtractedFields  FieldMapping `json:"extractedFields"`
	MissingFields    []string     `json:"missingFields"`
	RecommendedRoute Route        `json:"recommendedRoute"`
	Reasoning        string       `json:"reasoning"`
}

// ClaimRecord wraps a TriageResult with bookkeeping for the HTTP and batch
// surfaces. The CLI prints only the embedded TriageResult.
type ClaimRecord struct {
	ID     uuid.UUID `json:"id"`
	Source string    `json:"source,omitempty"`
	TriageResult
	ProcessedAt time.Time `json:"processed_at"`
}

// BatchFailure records a document that could not be processed. Hard failures
// are reported per document; they never abort the rest of the batch.
type BatchFailure struct {
	Source string `json:"source"`
	Error  string `json:"error"`
}

// BatchResult holds the outcome of processing a batch of documents.
type BatchResult struct {
	Records   []ClaimRecord  `json:"records"`
	Failures  []BatchFailure `json:"failures"`
	Processed int            `json:"processed"`
	Failed    int            `json:"failed"`
}
