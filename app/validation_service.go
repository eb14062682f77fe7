package app

import (
	"context"
	"fmt"
	"time"

	"nomen/domain/core"
	"nomen/domain/dataset"
	"nomen/domain/phonetics"
	"nomen/domain/profile"
	domainValidation "nomen/domain/validation"
	"nomen/internal"
	"nomen/internal/validation"
	"nomen/ports"
)

// ValidationService runs the k-fold comparison of the hierarchical model
// against a flat baseline and persists the resulting report.
type ValidationService struct {
	registry *profile.Registry
	terms    ports.TermSetRepository
	reports  ports.ReportRepository
	harness  *validation.Harness
	logger   *internal.Logger
}

// ValidationRequest defines one validation run. TermVersion is required:
// validation certifies a specific published term set, never an implicit
// latest one.
type ValidationRequest struct {
	Domain      core.DomainID       `json:"domain"`
	TermVersion core.TermSetID      `json:"term_version"`
	Entities    []dataset.Entity    `json:"entities"`
	OutcomeType dataset.OutcomeType `json:"outcome_type"`
}

// NewValidationService creates a validation service
func NewValidationService(
	cache *phonetics.VectorCache,
	registry *profile.Registry,
	terms ports.TermSetRepository,
	reports ports.ReportRepository,
	cfg validation.Config,
	logger *internal.Logger,
) *ValidationService {
	return &ValidationService{
		registry: registry,
		terms:    terms,
		reports:  reports,
		harness:  validation.NewHarness(cfg, cache),
		logger:   logger.WithComponent("validation"),
	}
}

// RunValidation loads the pinned term set, runs the harness, and appends
// the report.
func (s *ValidationService) RunValidation(ctx context.Context, req ValidationRequest) (*domainValidation.Report, error) {
	startTime := time.Now()

	prof, err := s.registry.Get(req.Domain)
	if err != nil {
		return nil, err
	}
	if req.TermVersion == "" {
		return nil, core.ErrUnpinnedTermSet
	}
	terms, err := s.terms.Get(ctx, req.TermVersion)
	if err != nil {
		return nil, err
	}
	if terms.Domain != req.Domain {
		return nil, fmt.Errorf("term set %s belongs to domain %s, not %s: %w",
			terms.Version, terms.Domain, req.Domain, core.ErrTermSetDomainMismatch)
	}

	report, err := s.harness.Run(ctx, prof, terms, req.Entities, req.OutcomeType)
	if err != nil {
		return nil, err
	}

	if err := s.reports.Save(ctx, report); err != nil {
		return nil, fmt.Errorf("failed to persist validation report: %w", err)
	}

	s.logger.Info("validation of %s terms %s: winner=%s (%s %.4f vs %.4f, %d/%d folds) in %dms",
		req.Domain, req.TermVersion, report.Winner, report.Metric,
		report.HierarchicalAggregate, report.BaselineAggregate,
		len(report.Folds)-report.ExcludedFolds, len(report.Folds),
		time.Since(startTime).Milliseconds())

	return report, nil
}

// GetReport retrieves a persisted report by id.
func (s *ValidationService) GetReport(ctx context.Context, id core.ReportID) (*domainValidation.Report, error) {
	return s.reports.Get(ctx, id)
}

// ListReports returns recent reports for a domain, newest first.
func (s *ValidationService) ListReports(ctx context.Context, domain core.DomainID, limit int) ([]*domainValidation.Report, error) {
	if _, err := s.registry.Get(domain); err != nil {
		return nil, err
	}
	return s.reports.ListByDomain(ctx, domain, limit)
}
