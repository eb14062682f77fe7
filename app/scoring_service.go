// Package app wires the domain packages into the four call boundaries:
// entity scoring, batch scoring, interaction detection, and validation.
// Services hold only injected configuration and ports, so every method is
// safe for concurrent use.
package app

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/semaphore"

	"nomen/domain/core"
	"nomen/domain/dataset"
	"nomen/domain/interaction"
	"nomen/domain/phonetics"
	"nomen/domain/profile"
	"nomen/domain/scoring"
	"nomen/internal"
	"nomen/ports"
)

// ScoringService handles single and batch entity scoring
type ScoringService struct {
	registry    *profile.Registry
	terms       ports.TermSetRepository
	results     ports.ResultRepository
	pipeline    *scoring.Pipeline
	maxParallel int64
	logger      *internal.Logger
}

// ScoreRequest defines the inputs for scoring one entity. TermVersion
// pins the interaction terms to apply; when empty the entity is scored
// with no interaction component rather than an implicit latest version.
type ScoreRequest struct {
	Domain           core.DomainID              `json:"domain"`
	Name             string                     `json:"name"`
	Context          string                     `json:"context,omitempty"`
	Fundamentals     scoring.FundamentalsRecord `json:"fundamentals,omitempty"`
	PatternFrequency float64                    `json:"pattern_frequency,omitempty"`
	TermVersion      core.TermSetID             `json:"term_version,omitempty"`
}

// BatchRequest scores a slice of entities under one domain and term pin.
type BatchRequest struct {
	Domain      core.DomainID    `json:"domain"`
	Entities    []dataset.Entity `json:"entities"`
	TermVersion core.TermSetID   `json:"term_version,omitempty"`
}

// BatchResult is the outcome of one batch run.
type BatchResult struct {
	RunID     core.RunID               `json:"run_id"`
	Results   []*scoring.ScoringResult `json:"results"`
	RuntimeMs int64                    `json:"runtime_ms"`
}

// NewScoringService creates a scoring service around a shared vector cache.
func NewScoringService(
	cache *phonetics.VectorCache,
	registry *profile.Registry,
	terms ports.TermSetRepository,
	results ports.ResultRepository,
	maxParallel int,
	logger *internal.Logger,
) *ScoringService {
	if maxParallel < 1 {
		maxParallel = 1
	}
	return &ScoringService{
		registry:    registry,
		terms:       terms,
		results:     results,
		pipeline:    scoring.NewPipeline(cache),
		maxParallel: int64(maxParallel),
		logger:      logger.WithComponent("scoring"),
	}
}

// ScoreEntity scores one entity and appends the result to the result
// store. An unknown domain or a missing pinned term version fails fast.
func (s *ScoringService) ScoreEntity(ctx context.Context, req ScoreRequest) (*scoring.ScoringResult, error) {
	prof, err := s.registry.Get(req.Domain)
	if err != nil {
		return nil, err
	}

	terms, err := s.resolveTerms(ctx, req.Domain, req.TermVersion)
	if err != nil {
		return nil, err
	}

	result, err := s.pipeline.Score(scoring.Request{
		Name:             req.Name,
		Context:          req.Context,
		Fundamentals:     req.Fundamentals,
		PatternFrequency: req.PatternFrequency,
	}, prof, terms)
	if err != nil {
		return nil, err
	}

	if err := s.results.Save(ctx, result); err != nil {
		return nil, fmt.Errorf("failed to persist scoring result: %w", err)
	}
	return result, nil
}

// ScoreBatch scores entities concurrently and appends all results as one
// run. Workers stop early when the context is cancelled; a partial batch
// is never persisted.
func (s *ScoringService) ScoreBatch(ctx context.Context, req BatchRequest) (*BatchResult, error) {
	startTime := time.Now()

	prof, err := s.registry.Get(req.Domain)
	if err != nil {
		return nil, err
	}
	terms, err := s.resolveTerms(ctx, req.Domain, req.TermVersion)
	if err != nil {
		return nil, err
	}

	runID := core.RunID(core.NewID())
	results := make([]*scoring.ScoringResult, len(req.Entities))
	errs := make([]error, len(req.Entities))

	sem := semaphore.NewWeighted(s.maxParallel)
	for i, e := range req.Entities {
		if err := sem.Acquire(ctx, 1); err != nil {
			return nil, err
		}
		go func(i int, e dataset.Entity) {
			defer sem.Release(1)
			results[i], errs[i] = s.pipeline.Score(scoring.Request{
				Name:             e.Name,
				Context:          e.Context,
				Fundamentals:     e.Fundamentals,
				PatternFrequency: e.PatternFrequency,
			}, prof, terms)
		}(i, e)
	}
	if err := sem.Acquire(ctx, s.maxParallel); err != nil {
		return nil, err
	}

	for i, err := range errs {
		if err != nil {
			return nil, fmt.Errorf("failed to score %q: %w", req.Entities[i].Name, err)
		}
	}

	if err := s.results.SaveBatch(ctx, results); err != nil {
		return nil, fmt.Errorf("failed to persist batch results: %w", err)
	}

	runtimeMs := time.Since(startTime).Milliseconds()
	s.logger.Info("batch run %s scored %d entities for %s in %dms",
		runID, len(results), req.Domain, runtimeMs)

	return &BatchResult{RunID: runID, Results: results, RuntimeMs: runtimeMs}, nil
}

// ListResults returns recent results for a domain, newest first.
func (s *ScoringService) ListResults(ctx context.Context, domain core.DomainID, limit int) ([]*scoring.ScoringResult, error) {
	if _, err := s.registry.Get(domain); err != nil {
		return nil, err
	}
	return s.results.ListByDomain(ctx, domain, limit)
}

// resolveTerms loads a pinned term set, or an explicit empty set when no
// version is pinned.
func (s *ScoringService) resolveTerms(ctx context.Context, domain core.DomainID, version core.TermSetID) (*interaction.TermSet, error) {
	if version == "" {
		return interaction.EmptyTermSet(domain), nil
	}
	terms, err := s.terms.Get(ctx, version)
	if err != nil {
		return nil, err
	}
	if terms.Domain != domain {
		return nil, fmt.Errorf("term set %s belongs to domain %s, not %s: %w",
			version, terms.Domain, domain, core.ErrTermSetDomainMismatch)
	}
	return terms, nil
}
