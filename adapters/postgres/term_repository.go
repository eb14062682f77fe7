package postgres

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/jmoiron/sqlx"

	"nomen/domain/core"
	"nomen/domain/interaction"
	"nomen/internal/errors"
	"nomen/ports"
)

// TermSetRepositoryImpl implements ports.TermSetRepository for PostgreSQL
type TermSetRepositoryImpl struct {
	db *sqlx.DB
}

// NewTermSetRepository creates a new PostgreSQL term set repository
func NewTermSetRepository(db *sqlx.DB) ports.TermSetRepository {
	return &TermSetRepositoryImpl{db: db}
}

// Save publishes a new term set version
func (r *TermSetRepositoryImpl) Save(ctx context.Context, set *interaction.TermSet) error {
	termsJSON, err := json.Marshal(set.Terms)
	if err != nil {
		return errors.Wrap(err, "failed to marshal terms")
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO term_sets (version, domain, seed, fingerprint, terms, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		set.Version.String(), set.Domain.String(), set.Seed,
		set.Fingerprint.String(), termsJSON, set.CreatedAt.Time())
	if err != nil {
		return errors.Wrap(err, "failed to save term set")
	}
	return nil
}

// Get retrieves a term set by its pinned version
func (r *TermSetRepositoryImpl) Get(ctx context.Context, version core.TermSetID) (*interaction.TermSet, error) {
	var row struct {
		Version     string `db:"version"`
		Domain      string `db:"domain"`
		Seed        int64  `db:"seed"`
		Fingerprint string `db:"fingerprint"`
		Terms       []byte `db:"terms"`
		CreatedAt   sql.NullTime `db:"created_at"`
	}
	err := r.db.GetContext(ctx, &row, `
		SELECT version, domain, seed, fingerprint, terms, created_at
		FROM term_sets WHERE version = $1`, version.String())
	if err == sql.ErrNoRows {
		return nil, core.NewTermSetNotFoundError(version)
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to load term set")
	}

	set := &interaction.TermSet{
		Version:     core.TermSetID(row.Version),
		Domain:      core.DomainID(row.Domain),
		Seed:        row.Seed,
		Fingerprint: core.DatasetFingerprint(row.Fingerprint),
	}
	if row.CreatedAt.Valid {
		set.CreatedAt = core.NewTimestamp(row.CreatedAt.Time)
	}
	if err := json.Unmarshal(row.Terms, &set.Terms); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal terms")
	}
	return set, nil
}

// ListVersions returns the published versions for a domain, newest first
func (r *TermSetRepositoryImpl) ListVersions(ctx context.Context, domain core.DomainID) ([]core.TermSetID, error) {
	var versions []string
	err := r.db.SelectContext(ctx, &versions, `
		SELECT version FROM term_sets WHERE domain = $1 ORDER BY created_at DESC`,
		domain.String())
	if err != nil {
		return nil, errors.Wrap(err, "failed to list term set versions")
	}
	out := make([]core.TermSetID, len(versions))
	for i, v := range versions {
		out[i] = core.TermSetID(v)
	}
	return out, nil
}
