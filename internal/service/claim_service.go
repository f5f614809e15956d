package service

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"fnoltriage/internal/domain"
	"fnoltriage/internal/extractor"
	"fnoltriage/internal/triage"
)

// ClaimService defines the claim triage contract.
type ClaimService interface {
	ProcessText(ctx context.Context, source, text string) (*domain.ClaimRecord, error)
	ProcessFile(ctx context.Context, path string) (*domain.ClaimRecord, error)
	ProcessDir(ctx context.Context, dir string) (*domain.BatchResult, error)
	ProcessBatch(ctx context.Context, docs []BatchDocument) *domain.BatchResult
}

// BatchDocument is one named document submitted to a batch run.
type BatchDocument struct {
	Name string `json:"name"`
	Text string `json:"text" binding:"required"`
}

type claimService struct {
	engine *triage.Engine
}

// NewClaimService creates a ClaimService routing with the given engine.
func NewClaimService(engine *triage.Engine) ClaimService {
	return &claimService{engine: engine}
}

// ProcessText runs the full pipeline on one document: extraction, the
// completeness check, then routing. Each invocation is pure given its input.
func (s *claimService) ProcessText(_ context.Context, source, text string) (*domain.ClaimRecord, error) {
	fields, err := extractor.Extract(text)
	if err != nil {
		return nil, fmt.Errorf("extracting fields: %w", err)
	}

	missing := triage.MissingFields(fields)
	decision := s.engine.Route(fields, missing)

	return &domain.ClaimRecord{
		ID:     uuid.New(),
		Source: source,
		TriageResult: domain.TriageResult{
			ExtractedFields:  fields,
			MissingFields:    missing,
			RecommendedRoute: decision.Route,
			Reasoning:        decision.Reasoning,
		},
		ProcessedAt: time.Now().UTC(),
	}, nil
}

// ProcessFile loads a document from disk and triages it. Binary formats are
// rejected before any extraction is attempted; converting them to text is an
// upstream concern.
func (s *claimService) ProcessFile(ctx context.Context, path string) (*domain.ClaimRecord, error) {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	if domain.BinaryExtensions[ext] {
		return nil, fmt.Errorf("%s: %w", path, domain.ErrUnsupportedFormat)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	if bytes.IndexByte(data, 0) >= 0 {
		return nil, fmt.Errorf("%s: %w", path, domain.ErrUnsupportedFormat)
	}

	return s.ProcessText(ctx, filepath.Base(path), string(data))
}

// ProcessDir triages every regular file in dir in name order. A hard failure
// on one document is recorded and the run continues with the next.
func (s *claimService) ProcessDir(ctx context.Context, dir string) (*domain.BatchResult, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading directory %s: %w", dir, err)
	}

	var names []string
	for _, e := range entries {
		if !e.IsDir() {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	result := &domain.BatchResult{Records: []domain.ClaimRecord{}, Failures: []domain.BatchFailure{}}
	for _, name := range names {
		rec, err := s.ProcessFile(ctx, filepath.Join(dir, name))
		if err != nil {
			log.Printf("claimService: %s failed: %v", name, err)
			result.Failures = append(result.Failures, domain.BatchFailure{Source: name, Error: err.Error()})
			result.Failed++
			continue
		}
		result.Records = append(result.Records, *rec)
		result.Processed++
	}
	return result, nil
}

// ProcessBatch triages a set of in-memory documents with the same
// continue-on-failure semantics as ProcessDir.
func (s *claimService) ProcessBatch(ctx context.Context, docs []BatchDocument) *domain.BatchResult {
	result := &domain.BatchResult{Records: []domain.ClaimRecord{}, Failures: []domain.BatchFailure{}}
	for i, doc := range docs {
		name := doc.Name
		if name == "" {
			name = fmt.Sprintf("document-%d", i+1)
		}
		rec, err := s.ProcessText(ctx, name, doc.Text)
		if err != nil {
			result.Failures = append(result.Failures, domain.BatchFailure{Source: name, Error: err.Error()})
			result.Failed++
			continue
		}
		result.Records = append(result.Records, *rec)
		result.Processed++
	}
	return result
}
