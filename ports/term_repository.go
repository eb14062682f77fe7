package ports

import (
	"context"

	"nomen/domain/core"
	"nomen/domain/interaction"
)

// TermSetRepository stores published interaction-term versions. Term sets
// are build artifacts: written once by detection, read by version at
// scoring time, never recomputed implicitly and never updated in place.
type TermSetRepository interface {
	// Save publishes a new term set version
	Save(ctx context.Context, set *interaction.TermSet) error

	// Get retrieves a term set by its pinned version
	Get(ctx context.Context, version core.TermSetID) (*interaction.TermSet, error)

	// ListVersions returns the published versions for a domain, newest first
	ListVersions(ctx context.Context, domain core.DomainID) ([]core.TermSetID, error)
}
