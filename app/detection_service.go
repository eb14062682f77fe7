package app

import (
	"context"
	"fmt"
	"time"

	"nomen/adapters/stats/detector"
	"nomen/domain/core"
	"nomen/domain/dataset"
	"nomen/domain/interaction"
	"nomen/domain/phonetics"
	"nomen/domain/profile"
	"nomen/internal"
	"nomen/ports"
)

// DetectionService runs the offline interaction-term discovery pass and
// publishes the surviving terms as a new pinned version.
type DetectionService struct {
	registry *profile.Registry
	terms    ports.TermSetRepository
	cache    *phonetics.VectorCache
	cfg      detector.Config
	logger   *internal.Logger
}

// DetectionRequest defines the inputs for one detection run. The seed
// fixes fold assignment so a re-run over the same dataset reproduces the
// published term set exactly.
type DetectionRequest struct {
	Domain      core.DomainID       `json:"domain"`
	Entities    []dataset.Entity    `json:"entities"`
	OutcomeType dataset.OutcomeType `json:"outcome_type"`
	Seed        int64               `json:"seed"`
}

// DetectionResult contains the published term set and run metadata.
type DetectionResult struct {
	TermSet   *interaction.TermSet `json:"term_set"`
	Rows      int                  `json:"rows"`
	RuntimeMs int64                `json:"runtime_ms"`
}

// NewDetectionService creates a detection service
func NewDetectionService(
	cache *phonetics.VectorCache,
	registry *profile.Registry,
	terms ports.TermSetRepository,
	cfg detector.Config,
	logger *internal.Logger,
) *DetectionService {
	return &DetectionService{
		registry: registry,
		terms:    terms,
		cache:    cache,
		cfg:      cfg,
		logger:   logger.WithComponent("detection"),
	}
}

// RunDetection builds the observation matrix for a domain and runs the
// three detection passes over it. The resulting term set is persisted as
// a new version; it never replaces an existing one.
func (s *DetectionService) RunDetection(ctx context.Context, req DetectionRequest) (*DetectionResult, error) {
	startTime := time.Now()

	prof, err := s.registry.Get(req.Domain)
	if err != nil {
		return nil, err
	}

	matrix := dataset.BuildMatrix(prof.Domain, req.OutcomeType, req.Entities, s.cache)
	s.logger.Info("detection matrix for %s: %d usable rows from %d entities",
		req.Domain, len(matrix.Rows), len(req.Entities))

	set, err := detector.NewDetector(s.cfg).Run(ctx, matrix, req.Seed)
	if err != nil {
		return nil, err
	}

	if err := s.terms.Save(ctx, set); err != nil {
		return nil, fmt.Errorf("failed to publish term set: %w", err)
	}

	runtimeMs := time.Since(startTime).Milliseconds()
	s.logger.Info("published term set %s for %s: %d terms in %dms",
		set.Version, req.Domain, len(set.Terms), runtimeMs)

	return &DetectionResult{TermSet: set, Rows: len(matrix.Rows), RuntimeMs: runtimeMs}, nil
}

// ListVersions returns the published term-set versions for a domain,
// newest first.
func (s *DetectionService) ListVersions(ctx context.Context, domain core.DomainID) ([]core.TermSetID, error) {
	if _, err := s.registry.Get(domain); err != nil {
		return nil, err
	}
	return s.terms.ListVersions(ctx, domain)
}

// GetTermSet retrieves a published version.
func (s *DetectionService) GetTermSet(ctx context.Context, version core.TermSetID) (*interaction.TermSet, error) {
	return s.terms.Get(ctx, version)
}
