// Package validation defines the report produced by the k-fold comparison
// of the flat baseline model against the hierarchical pipeline.
package validation

import "nomen/domain/core"

// Winner names which model a report certifies.
type Winner string

const (
	WinnerHierarchical Winner = "hierarchical"
	WinnerBaseline     Winner = "baseline"
	// WinnerInconclusive means neither model cleared the pre-declared
	// margin: a positive-but-small delta is noise, not a win.
	WinnerInconclusive Winner = "inconclusive"
)

// FoldResult is one fold's paired evaluation.
type FoldResult struct {
	Fold               int     `json:"fold"`
	BaselineMetric     float64 `json:"baseline_metric"`
	HierarchicalMetric float64 `json:"hierarchical_metric"`
	TestSize           int     `json:"test_size"`
	Excluded           bool    `json:"excluded"`
	ExcludedReason     string  `json:"excluded_reason,omitempty"`
}

// Report is the immutable, timestamped output of one validation run.
// It records the fold-assignment seed so the run can be reproduced.
type Report struct {
	ID          core.ReportID  `json:"id"`
	Domain      core.DomainID  `json:"domain"`
	TermVersion core.TermSetID `json:"term_version"`
	Metric      string         `json:"metric"` // "r_squared" or "auc"
	Seed        int64          `json:"seed"`
	Folds       []FoldResult   `json:"folds"`

	BaselineAggregate     float64 `json:"baseline_aggregate"`
	HierarchicalAggregate float64 `json:"hierarchical_aggregate"`
	Margin                float64 `json:"margin"` // pre-declared minimum improvement
	Winner                Winner  `json:"winner"`

	ExcludedFolds int            `json:"excluded_folds"`
	CreatedAt     core.Timestamp `json:"created_at"`
}

// UsableFolds returns the folds that entered the aggregate.
func (r *Report) UsableFolds() []FoldResult {
	out := make([]FoldResult, 0, len(r.Folds))
	for _, f := range r.Folds {
		if !f.Excluded {
			out = append(out, f)
		}
	}
	return out
}
