package postgres

import (
	"github.com/jmoiron/sqlx"

	"nomen/internal/errors"
)

// Migrate creates the append-only tables. Scoring results and validation
// reports have no UPDATE path by design; detection publishes new term set
// rows rather than rewriting old ones.
func Migrate(db *sqlx.DB) error {
	schema := []string{
		`CREATE TABLE IF NOT EXISTS term_sets (
			version TEXT PRIMARY KEY,
			domain TEXT NOT NULL,
			seed BIGINT NOT NULL,
			fingerprint TEXT NOT NULL,
			terms JSONB NOT NULL,
			created_at TIMESTAMPTZ NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_term_sets_domain ON term_sets (domain, created_at DESC)`,
		`CREATE TABLE IF NOT EXISTS scoring_results (
			id TEXT PRIMARY KEY,
			domain TEXT NOT NULL,
			name TEXT NOT NULL,
			term_version TEXT NOT NULL,
			low_confidence BOOLEAN NOT NULL,
			payload JSONB NOT NULL,
			created_at TIMESTAMPTZ NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_scoring_results_domain ON scoring_results (domain, created_at DESC)`,
		`CREATE TABLE IF NOT EXISTS validation_reports (
			id TEXT PRIMARY KEY,
			domain TEXT NOT NULL,
			term_version TEXT NOT NULL,
			winner TEXT NOT NULL,
			payload JSONB NOT NULL,
			created_at TIMESTAMPTZ NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_validation_reports_domain ON validation_reports (domain, created_at DESC)`,
	}

	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			return errors.Wrap(err, "schema migration failed")
		}
	}
	return nil
}
