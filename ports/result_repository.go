package ports

import (
	"context"

	"nomen/domain/core"
	"nomen/domain/scoring"
)

// ResultRepository is the append-only store for scoring results. A re-run
// appends a new timestamped set; nothing is ever updated in place.
type ResultRepository interface {
	// Save appends one scoring result
	Save(ctx context.Context, result *scoring.ScoringResult) error

	// SaveBatch appends a batch of results from one run
	SaveBatch(ctx context.Context, results []*scoring.ScoringResult) error

	// ListByDomain returns results for a domain, newest first, up to limit
	ListByDomain(ctx context.Context, domain core.DomainID, limit int) ([]*scoring.ScoringResult, error)
}
