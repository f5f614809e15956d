package service_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fnoltriage/internal/domain"
	"fnoltriage/internal/service"
	"fnoltriage/internal/triage"
)

const sampleClaim = `Policy Number: POL-123
Policyholder: Jane Doe
Incident Date: 01/02/2024
Description: Minor fender bender
Claim Type: Auto
Estimated Damage: $1,200.00`

func newService() service.ClaimService {
	return service.NewClaimService(triage.NewEngine(nil, 0))
}

func TestProcessText_FastTrack(t *testing.T) {
	rec, err := newService().ProcessText(context.Background(), "claim.txt", sampleClaim)
	require.NoError(t, err)

	assert.Equal(t, 1200.0, rec.ExtractedFields["estimated_damage"])
	assert.Empty(t, rec.MissingFields)
	assert.Equal(t, domain.RouteFastTrack, rec.RecommendedRoute)
	assert.Equal(t, "claim.txt", rec.Source)
	assert.NotEqual(t, rec.ID.String(), "00000000-0000-0000-0000-000000000000")
}

func TestProcessText_InjuryBeatsLowDamage(t *testing.T) {
	text := `Policy Number: POL-123
Policyholder: Jane Doe
Incident Date: 01/02/2024
Description: Minor fender bender
Claim Type: Injury - whiplash
Estimated Damage: $1,200.00`

	rec, err := newService().ProcessText(context.Background(), "", text)
	require.NoError(t, err)

	assert.Equal(t, domain.RouteSpecialist, rec.RecommendedRoute)
}

func TestProcessText_StagedDescriptionFlagsInvestigation(t *testing.T) {
	text := `Policy Number: POL-123
Policyholder: Jane Doe
Incident Date: 01/02/2024
Description: The claim appears staged by the third party
Claim Type: Auto
Estimated Damage: $900.00`

	rec, err := newService().ProcessText(context.Background(), "", text)
	require.NoError(t, err)

	assert.Equal(t, domain.RouteInvestigation, rec.RecommendedRoute)
}

func TestProcessText_IncompleteNamesEveryMissingField(t *testing.T) {
	rec, err := newService().ProcessText(context.Background(), "", "Location: somewhere")
	require.NoError(t, err)

	assert.Equal(t, domain.RouteManualReview, rec.RecommendedRoute)
	assert.Equal(t, triage.MandatoryFields, rec.MissingFields)
	for _, name := range triage.MandatoryFields {
		assert.Contains(t, rec.Reasoning, name)
	}
}

func TestProcessText_MalformedAmountIsHardFailure(t *testing.T) {
	_, err := newService().ProcessText(context.Background(), "", "Estimated Damage: ,,,")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "estimated_damage")
}

func TestProcessText_ResultJSONShape(t *testing.T) {
	rec, err := newService().ProcessText(context.Background(), "", sampleClaim)
	require.NoError(t, err)

	out, err := json.Marshal(rec.TriageResult)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(out, &decoded))
	assert.Contains(t, decoded, "extractedFields")
	assert.Contains(t, decoded, "recommendedRoute")
	assert.Contains(t, decoded, "reasoning")
	// missingFields serializes as [], never null.
	assert.Equal(t, []any{}, decoded["missingFields"])
	// Monetary fields serialize as numbers.
	extracted := decoded["extractedFields"].(map[string]any)
	assert.Equal(t, 1200.0, extracted["estimated_damage"])
}

func TestProcessFile_TextDocument(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "claim_001.txt")
	require.NoError(t, os.WriteFile(path, []byte(sampleClaim), 0o644))

	rec, err := newService().ProcessFile(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, "claim_001.txt", rec.Source)
	assert.Equal(t, domain.RouteFastTrack, rec.RecommendedRoute)
}

func TestProcessFile_PDFRejectedBeforeExtraction(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "claim.pdf")
	require.NoError(t, os.WriteFile(path, []byte("%PDF-1.4"), 0o644))

	_, err := newService().ProcessFile(context.Background(), path)

	require.ErrorIs(t, err, domain.ErrUnsupportedFormat)
}

func TestProcessFile_BinaryContentRejected(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "claim.dat")
	require.NoError(t, os.WriteFile(path, []byte{'P', 'K', 0x00, 0x01, 0x02}, 0o644))

	_, err := newService().ProcessFile(context.Background(), path)

	require.ErrorIs(t, err, domain.ErrUnsupportedFormat)
}

func TestProcessDir_ContinuesPastFailures(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a_good.txt"), []byte(sampleClaim), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b_bad.pdf"), []byte("%PDF-1.4"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "c_good.txt"), []byte(sampleClaim), 0o644))

	result, err := newService().ProcessDir(context.Background(), dir)
	require.NoError(t, err)

	assert.Equal(t, 2, result.Processed)
	assert.Equal(t, 1, result.Failed)
	require.Len(t, result.Records, 2)
	assert.Equal(t, "a_good.txt", result.Records[0].Source)
	assert.Equal(t, "c_good.txt", result.Records[1].Source)
	require.Len(t, result.Failures, 1)
	assert.Equal(t, "b_bad.pdf", result.Failures[0].Source)
}

func TestProcessDir_MissingDirectory(t *testing.T) {
	_, err := newService().ProcessDir(context.Background(), filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)
}

func TestProcessBatch_NamesAnonymousDocuments(t *testing.T) {
	result := newService().ProcessBatch(context.Background(), []service.BatchDocument{
		{Text: sampleClaim},
		{Name: "intake-42", Text: "Estimated Damage: ,,,"},
	})

	assert.Equal(t, 1, result.Processed)
	assert.Equal(t, 1, result.Failed)
	assert.Equal(t, "document-1", result.Records[0].Source)
	assert.Equal(t, "intake-42", result.Failures[0].Source)
}
