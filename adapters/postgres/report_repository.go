package postgres

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/jmoiron/sqlx"

	"nomen/domain/core"
	"nomen/domain/validation"
	"nomen/internal/errors"
	"nomen/ports"
)

// ReportRepositoryImpl implements ports.ReportRepository for PostgreSQL
type ReportRepositoryImpl struct {
	db *sqlx.DB
}

// NewReportRepository creates a new PostgreSQL report repository
func NewReportRepository(db *sqlx.DB) ports.ReportRepository {
	return &ReportRepositoryImpl{db: db}
}

// Save appends one validation report
func (r *ReportRepositoryImpl) Save(ctx context.Context, report *validation.Report) error {
	payload, err := json.Marshal(report)
	if err != nil {
		return errors.Wrap(err, "failed to marshal validation report")
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO validation_reports (id, domain, term_version, winner, payload, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		report.ID.String(), report.Domain.String(), report.TermVersion.String(),
		string(report.Winner), payload, report.CreatedAt.Time())
	if err != nil {
		return errors.Wrap(err, "failed to save validation report")
	}
	return nil
}

// Get retrieves a report by id
func (r *ReportRepositoryImpl) Get(ctx context.Context, id core.ReportID) (*validation.Report, error) {
	var payload []byte
	err := r.db.GetContext(ctx, &payload, `
		SELECT payload FROM validation_reports WHERE id = $1`, id.String())
	if err == sql.ErrNoRows {
		return nil, core.NewReportNotFoundError(id)
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to load validation report")
	}

	var report validation.Report
	if err := json.Unmarshal(payload, &report); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal validation report")
	}
	return &report, nil
}

// ListByDomain returns reports for a domain, newest first, up to limit
func (r *ReportRepositoryImpl) ListByDomain(ctx context.Context, domain core.DomainID, limit int) ([]*validation.Report, error) {
	if limit <= 0 {
		limit = 20
	}
	var payloads [][]byte
	err := r.db.SelectContext(ctx, &payloads, `
		SELECT payload FROM validation_reports
		WHERE domain = $1 ORDER BY created_at DESC LIMIT $2`,
		domain.String(), limit)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list validation reports")
	}

	out := make([]*validation.Report, 0, len(payloads))
	for _, p := range payloads {
		var report validation.Report
		if err := json.Unmarshal(p, &report); err != nil {
			return nil, errors.Wrap(err, "failed to unmarshal validation report")
		}
		out = append(out, &report)
	}
	return out, nil
}
