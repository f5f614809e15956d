// Package report renders batch triage results as an Excel workbook for
// operations teams that review queue assignments outside the API.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"fnoltriage/internal/domain"
)

const (
	detailSheet  = "Claims"
	summarySheet = "Route Summary"
)

var detailHeader = []string{
	"Source", "Recommended Route", "Reasoning", "Missing Fields",
	"Policy Number", "Policyholder", "Incident Date", "Claim Type", "Estimated Damage",
}

// WriteWorkbook writes a two-sheet workbook: per-claim detail rows plus a
// per-route count summary including batch failures.
func WriteWorkbook(w io.Writer, result *domain.BatchResult) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	f.SetSheetName("Sheet1", detailSheet)
	if _, err := f.NewSheet(summarySheet); err != nil {
		return fmt.Errorf("creating summary sheet: %w", err)
	}

	for col, title := range detailHeader {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := f.SetCellValue(detailSheet, cell, title); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
	}

	for i := range result.Records {
		rec := &result.Records[i]
		values := []any{
			rec.Source,
			string(rec.RecommendedRoute),
			rec.Reasoning,
			strings.Join(rec.MissingFields, "; "),
			rec.ExtractedFields.Text("policy_number"),
			rec.ExtractedFields.Text("policyholder_name"),
			rec.ExtractedFields.Text("incident_date"),
			rec.ExtractedFields.Text("claim_type"),
		}
		if damage, ok := rec.ExtractedFields.Amount("estimated_damage"); ok {
			values = append(values, damage)
		} else {
			values = append(values, "")
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, i+2)
			if err := f.SetCellValue(detailSheet, cell, v); err != nil {
				return fmt.Errorf("writing row %d: %w", i+1, err)
			}
		}
	}

	if err := writeSummary(f, result); err != nil {
		return err
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

func writeSummary(f *excelize.File, result *domain.BatchResult) error {
	counts := map[domain.Route]int{}
	for i := range result.Records {
		counts[result.Records[i].RecommendedRoute]++
	}

	rows := [][]any{{"Route", "Claims"}}
	// Fixed route order so the summary is stable across runs.
	for _, route := range []domain.Route{
		domain.RouteInvestigation,
		domain.RouteManualReview,
		domain.RouteSpecialist,
		domain.RouteFastTrack,
	} {
		rows = append(rows, []any{string(route), counts[route]})
	}
	rows = append(rows, []any{"Failed", result.Failed})

	for r, row := range rows {
		for col, v := range row {
			cell, _ := excelize.CoordinatesToCellName(col+1, r+1)
			if err := f.SetCellValue(summarySheet, cell, v); err != nil {
				return fmt.Errorf("writing summary: %w", err)
			}
		}
	}
	return nil
}
