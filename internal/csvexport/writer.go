package csvexport

import (
	"encoding/csv"
	"io"
	"strconv"
	"strings"

	"fnoltriage/internal/domain"
)

// UTF-8 BOM bytes for Excel compatibility on Windows.
var BOM = []byte{0xEF, 0xBB, 0xBF}

// columns defines the CSV header row.
var columns = []string{
	"Source",
	"Recommended Route",
	"Reasoning",
	"Missing Fields",
	"Policy Number",
	"Policyholder",
	"Incident Date",
	"Incident Location",
	"Claim Type",
	"Estimated Damage",
	"Processed At",
}

// Writer wraps csv.Writer for exporting triaged claims as CSV.
type Writer struct {
	csv *csv.Writer
}

// NewWriter creates a Writer that writes CSV to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{csv: csv.NewWriter(w)}
}

// WriteHeader writes the header row.
func (w *Writer) WriteHeader() error {
	return w.csv.Write(columns)
}

// WriteRecords converts a batch of claim records to CSV rows and writes them.
func (w *Writer) WriteRecords(records []domain.ClaimRecord) error {
	for i := range records {
		if err := w.csv.Write(recordToRow(&records[i])); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes the underlying csv.Writer buffer.
func (w *Writer) Flush() {
	w.csv.Flush()
}

// Error returns any error from the underlying csv.Writer.
func (w *Writer) Error() error {
	return w.csv.Error()
}

// recordToRow converts a single claim record to a string slice. Fields the
// extractor did not find are left as empty cells.
func recordToRow(rec *domain.ClaimRecord) []string {
	row := make([]string, len(columns))
	row[0] = rec.Source
	row[1] = string(rec.RecommendedRoute)
	row[2] = rec.Reasoning
	row[3] = strings.Join(rec.MissingFields, "; ")
	row[4] = rec.ExtractedFields.Text("policy_number")
	row[5] = rec.ExtractedFields.Text("policyholder_name")
	row[6] = rec.ExtractedFields.Text("incident_date")
	row[7] = rec.ExtractedFields.Text("incident_location")
	row[8] = rec.ExtractedFields.Text("claim_type")
	if damage, ok := rec.ExtractedFields.Amount("estimated_damage"); ok {
		row[9] = strconv.FormatFloat(damage, 'f', 2, 64)
	}
	if !rec.ProcessedAt.IsZero() {
		row[10] = rec.ProcessedAt.Format("2006-01-02 15:04:05")
	}
	return row
}
