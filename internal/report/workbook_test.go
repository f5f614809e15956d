package report_test

import (
	"bytes"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"fnoltriage/internal/domain"
	"fnoltriage/internal/report"
)

func batchResult() *domain.BatchResult {
	return &domain.BatchResult{
		Records: []domain.ClaimRecord{
			{
				ID:     uuid.New(),
				Source: "claim_001.txt",
				TriageResult: domain.TriageResult{
					ExtractedFields: domain.FieldMapping{
						"policy_number":    "POL-123",
						"claim_type":       "Auto",
						"estimated_damage": 1200.0,
					},
					MissingFields:    []string{},
					RecommendedRoute: domain.RouteFastTrack,
					Reasoning:        "Estimated damage ($1,200.00) is below $25,000 threshold",
				},
			},
			{
				ID:     uuid.New(),
				Source: "claim_002.txt",
				TriageResult: domain.TriageResult{
					ExtractedFields:  domain.FieldMapping{},
					MissingFields:    []string{"policy_number"},
					RecommendedRoute: domain.RouteManualReview,
					Reasoning:        "Missing mandatory fields: policy_number",
				},
			},
		},
		Failures:  []domain.BatchFailure{{Source: "claim_003.pdf", Error: "unsupported"}},
		Processed: 2,
		Failed:    1,
	}
}

func TestWriteWorkbook_DetailSheet(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, report.WriteWorkbook(&buf, batchResult()))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	header, err := f.GetCellValue("Claims", "A1")
	require.NoError(t, err)
	assert.Equal(t, "Source", header)

	source, _ := f.GetCellValue("Claims", "A2")
	assert.Equal(t, "claim_001.txt", source)
	route, _ := f.GetCellValue("Claims", "B2")
	assert.Equal(t, "Fast-track", route)
	missing, _ := f.GetCellValue("Claims", "D3")
	assert.Equal(t, "policy_number", missing)
}

func TestWriteWorkbook_RouteSummary(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, report.WriteWorkbook(&buf, batchResult()))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows("Route Summary")
	require.NoError(t, err)
	require.Len(t, rows, 6)

	assert.Equal(t, []string{"Route", "Claims"}, rows[0])
	assert.Equal(t, []string{"Manual Review", "1"}, rows[2])
	assert.Equal(t, []string{"Fast-track", "1"}, rows[4])
	assert.Equal(t, []string{"Failed", "1"}, rows[5])
}

func TestWriteWorkbook_EmptyBatch(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, report.WriteWorkbook(&buf, &domain.BatchResult{}))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	header, err := f.GetCellValue("Claims", "A1")
	require.NoError(t, err)
	assert.Equal(t, "Source", header)
}
