package scoring

import (
	"nomen/domain/composite"
	"nomen/domain/core"
	"nomen/domain/phonetics"
)

// ScoringResult carries every intermediate value of one entity's pass
// through Levels 1-4 plus the final outcome. Write-once: a re-run produces
// a new timestamped result, never an update in place.
type ScoringResult struct {
	ID          core.ResultID  `json:"id"`
	Domain      core.DomainID  `json:"domain"`
	Name        string         `json:"name"`
	Context     string         `json:"context,omitempty"`
	TermVersion core.TermSetID `json:"term_version"`

	Primitives  *phonetics.NamePrimitiveVector `json:"primitives"`
	Composites  *composite.CompositeScoreSet   `json:"composites"`
	DomainScore float64                        `json:"domain_score"`
	Combined    CombinedScore                  `json:"combined"`
	Outcome     Outcome                        `json:"outcome"`

	// LowConfidence aggregates every data-error fallback along the way:
	// neutral primitive vector or absent fundamentals.
	LowConfidence bool           `json:"low_confidence"`
	CreatedAt     core.Timestamp `json:"created_at"`
}
