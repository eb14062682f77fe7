// Package memory provides in-memory repository implementations for tests
// and for CLI runs without a configured database.
package memory

import (
	"context"
	"sync"

	"nomen/domain/core"
	"nomen/domain/interaction"
	"nomen/domain/scoring"
	"nomen/domain/validation"
	"nomen/ports"
)

// TermSetRepository is a mutex-guarded in-memory ports.TermSetRepository.
type TermSetRepository struct {
	mu   sync.RWMutex
	sets map[core.TermSetID]*interaction.TermSet
	// order preserves publish order per domain, newest last.
	order map[core.DomainID][]core.TermSetID
}

// NewTermSetRepository creates an empty in-memory term set store
func NewTermSetRepository() *TermSetRepository {
	return &TermSetRepository{
		sets:  make(map[core.TermSetID]*interaction.TermSet),
		order: make(map[core.DomainID][]core.TermSetID),
	}
}

func (r *TermSetRepository) Save(ctx context.Context, set *interaction.TermSet) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sets[set.Version] = set
	r.order[set.Domain] = append(r.order[set.Domain], set.Version)
	return nil
}

func (r *TermSetRepository) Get(ctx context.Context, version core.TermSetID) (*interaction.TermSet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	set, ok := r.sets[version]
	if !ok {
		return nil, core.NewTermSetNotFoundError(version)
	}
	return set, nil
}

func (r *TermSetRepository) ListVersions(ctx context.Context, domain core.DomainID) ([]core.TermSetID, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	versions := r.order[domain]
	out := make([]core.TermSetID, len(versions))
	for i, v := range versions {
		out[len(versions)-1-i] = v
	}
	return out, nil
}

// ResultRepository is an append-only in-memory ports.ResultRepository.
type ResultRepository struct {
	mu      sync.RWMutex
	results map[core.DomainID][]*scoring.ScoringResult
}

// NewResultRepository creates an empty in-memory result store
func NewResultRepository() *ResultRepository {
	return &ResultRepository{results: make(map[core.DomainID][]*scoring.ScoringResult)}
}

func (r *ResultRepository) Save(ctx context.Context, result *scoring.ScoringResult) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.results[result.Domain] = append(r.results[result.Domain], result)
	return nil
}

func (r *ResultRepository) SaveBatch(ctx context.Context, results []*scoring.ScoringResult) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, res := range results {
		r.results[res.Domain] = append(r.results[res.Domain], res)
	}
	return nil
}

func (r *ResultRepository) ListByDomain(ctx context.Context, domain core.DomainID, limit int) ([]*scoring.ScoringResult, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	stored := r.results[domain]
	out := make([]*scoring.ScoringResult, 0, len(stored))
	for i := len(stored) - 1; i >= 0; i-- {
		if limit > 0 && len(out) >= limit {
			break
		}
		out = append(out, stored[i])
	}
	return out, nil
}

// ReportRepository is an append-only in-memory ports.ReportRepository.
type ReportRepository struct {
	mu      sync.RWMutex
	byID    map[core.ReportID]*validation.Report
	ordered map[core.DomainID][]*validation.Report
}

// NewReportRepository creates an empty in-memory report store
func NewReportRepository() *ReportRepository {
	return &ReportRepository{
		byID:    make(map[core.ReportID]*validation.Report),
		ordered: make(map[core.DomainID][]*validation.Report),
	}
}

func (r *ReportRepository) Save(ctx context.Context, report *validation.Report) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[report.ID] = report
	r.ordered[report.Domain] = append(r.ordered[report.Domain], report)
	return nil
}

func (r *ReportRepository) Get(ctx context.Context, id core.ReportID) (*validation.Report, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	report, ok := r.byID[id]
	if !ok {
		return nil, core.NewReportNotFoundError(id)
	}
	return report, nil
}

func (r *ReportRepository) ListByDomain(ctx context.Context, domain core.DomainID, limit int) ([]*validation.Report, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	stored := r.ordered[domain]
	out := make([]*validation.Report, 0, len(stored))
	for i := len(stored) - 1; i >= 0; i-- {
		if limit > 0 && len(out) >= limit {
			break
		}
		out = append(out, stored[i])
	}
	return out, nil
}

// Interface conformance checks.
var (
	_ ports.TermSetRepository = (*TermSetRepository)(nil)
	_ ports.ResultRepository  = (*ResultRepository)(nil)
	_ ports.ReportRepository  = (*ReportRepository)(nil)
)
