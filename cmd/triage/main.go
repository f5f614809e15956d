// Command triage processes FNOL claim documents from the command line.
//
// Single document: triage <path-to-fnol-document>
// prints the triage result record as formatted JSON to standard output.
//
// Batch: triage -dir <claims-directory> [-csv out.csv] [-xlsx out.xlsx]
// processes every file in the directory, continuing past per-document
// failures, and optionally writes CSV/XLSX exports.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"fnoltriage/internal/config"
	"fnoltriage/internal/csvexport"
	"fnoltriage/internal/domain"
	"fnoltriage/internal/report"
	"fnoltriage/internal/service"
	"fnoltriage/internal/triage"
)

func main() {
	dir := flag.String("dir", "", "process every file in this directory")
	csvOut := flag.String("csv", "", "write batch results to this CSV file")
	xlsxOut := flag.String("xlsx", "", "write batch results to this XLSX file")
	flag.Usage = usage
	flag.Parse()

	if *dir == "" && flag.NArg() != 1 {
		usage()
		os.Exit(1)
	}

	if err := run(*dir, *csvOut, *xlsxOut, flag.Arg(0)); err != nil {
		log.Fatal(err)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "Usage: triage <path-to-fnol-document>")
	fmt.Fprintln(os.Stderr, "       triage -dir <claims-directory> [-csv out.csv] [-xlsx out.xlsx]")
}

func run(dir, csvOut, xlsxOut, path string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	engine := triage.NewEngine(cfg.Routing.FraudKeywords, cfg.Routing.FastTrackThreshold)
	svc := service.NewClaimService(engine)
	ctx := context.Background()

	if dir == "" {
		rec, err := svc.ProcessFile(ctx, path)
		if err != nil {
			return err
		}
		return printJSON(rec.TriageResult)
	}

	result, err := svc.ProcessDir(ctx, dir)
	if err != nil {
		return err
	}
	for i := range result.Records {
		rec := &result.Records[i]
		fmt.Printf("%s: %s - %s\n", rec.Source, rec.RecommendedRoute, rec.Reasoning)
	}
	for _, f := range result.Failures {
		fmt.Printf("%s: FAILED - %s\n", f.Source, f.Error)
	}
	log.Printf("batch complete: %d processed, %d failed", result.Processed, result.Failed)

	if csvOut != "" {
		if err := writeCSV(csvOut, result); err != nil {
			return err
		}
	}
	if xlsxOut != "" {
		if err := writeXLSX(xlsxOut, result); err != nil {
			return err
		}
	}
	return nil
}

func printJSON(v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding result: %w", err)
	}
	fmt.Println(string(out))
	return nil
}

func writeCSV(path string, result *domain.BatchResult) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	if _, err := f.Write(csvexport.BOM); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	w := csvexport.NewWriter(f)
	if err := w.WriteHeader(); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := w.WriteRecords(result.Records); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	w.Flush()
	return w.Error()
}

func writeXLSX(path string, result *domain.BatchResult) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()
	return report.WriteWorkbook(f, result)
}
