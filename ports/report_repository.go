package ports

import (
	"context"

	"nomen/domain/core"
	"nomen/domain/validation"
)

// ReportRepository is the append-only store for validation reports.
type ReportRepository interface {
	// Save appends one validation report
	Save(ctx context.Context, report *validation.Report) error

	// Get retrieves a report by id
	Get(ctx context.Context, id core.ReportID) (*validation.Report, error)

	// ListByDomain returns reports for a domain, newest first, up to limit
	ListByDomain(ctx context.Context, domain core.DomainID, limit int) ([]*validation.Report, error)
}
