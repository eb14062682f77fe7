package postgres

import (
	"context"
	"encoding/json"

	"github.com/jmoiron/sqlx"

	"nomen/domain/core"
	"nomen/domain/scoring"
	"nomen/internal/errors"
	"nomen/ports"
)

// ResultRepositoryImpl implements ports.ResultRepository for PostgreSQL
type ResultRepositoryImpl struct {
	db *sqlx.DB
}

// NewResultRepository creates a new PostgreSQL result repository
func NewResultRepository(db *sqlx.DB) ports.ResultRepository {
	return &ResultRepositoryImpl{db: db}
}

// Save appends one scoring result
func (r *ResultRepositoryImpl) Save(ctx context.Context, result *scoring.ScoringResult) error {
	payload, err := json.Marshal(result)
	if err != nil {
		return errors.Wrap(err, "failed to marshal scoring result")
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO scoring_results (id, domain, name, term_version, low_confidence, payload, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		result.ID.String(), result.Domain.String(), result.Name,
		result.TermVersion.String(), result.LowConfidence, payload, result.CreatedAt.Time())
	if err != nil {
		return errors.Wrap(err, "failed to save scoring result")
	}
	return nil
}

// SaveBatch appends a batch of results from one run inside a transaction
func (r *ResultRepositoryImpl) SaveBatch(ctx context.Context, results []*scoring.ScoringResult) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "failed to begin batch insert")
	}
	defer tx.Rollback()

	for _, result := range results {
		payload, err := json.Marshal(result)
		if err != nil {
			return errors.Wrap(err, "failed to marshal scoring result")
		}
		_, err = tx.ExecContext(ctx, `
			INSERT INTO scoring_results (id, domain, name, term_version, low_confidence, payload, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			result.ID.String(), result.Domain.String(), result.Name,
			result.TermVersion.String(), result.LowConfidence, payload, result.CreatedAt.Time())
		if err != nil {
			return errors.Wrap(err, "failed to save scoring result")
		}
	}
	return tx.Commit()
}

// ListByDomain returns results for a domain, newest first, up to limit
func (r *ResultRepositoryImpl) ListByDomain(ctx context.Context, domain core.DomainID, limit int) ([]*scoring.ScoringResult, error) {
	if limit <= 0 {
		limit = 100
	}
	var payloads [][]byte
	err := r.db.SelectContext(ctx, &payloads, `
		SELECT payload FROM scoring_results
		WHERE domain = $1 ORDER BY created_at DESC LIMIT $2`,
		domain.String(), limit)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list scoring results")
	}

	out := make([]*scoring.ScoringResult, 0, len(payloads))
	for _, p := range payloads {
		var result scoring.ScoringResult
		if err := json.Unmarshal(p, &result); err != nil {
			return nil, errors.Wrap(err, "failed to unmarshal scoring result")
		}
		out = append(out, &result)
	}
	return out, nil
}
