// Package detector promotes discovered nonlinear and interaction effects
// into versioned InteractionTerm sets. It is an offline batch analysis: it
// consumes a full in-memory dataset per domain and never runs during
// scoring. Fold assignment is driven by an explicit recorded seed, so two
// runs over identical input and seed publish identical term sets.
package detector

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"nomen/adapters/stats/metrics"
	"nomen/domain/core"
	"nomen/domain/dataset"
	"nomen/domain/interaction"
)

// Config holds the detection knobs. Defaults() gives the shipped values;
// callers override fields individually.
type Config struct {
	Folds          int     // cross-validation fold count
	MinRowsPerFold int     // minimum observations per fold
	MinMetricDelta float64 // minimum CV improvement to consider a candidate
	Alpha          float64 // significance level for every test

	// Threshold pass knobs.
	Percentiles       []float64 // candidate cut points
	MinGroupSize      int       // minimum observations on each side of a cut
	MinCohensD        float64   // effect floor for continuous outcomes
	MinProportionDiff float64   // effect floor for binary outcomes

	// Performance guardrails.
	MaxFeatures int
	MaxPairs    int

	// MinRows is derived: Folds * MinRowsPerFold.
	MinRows int
}

// DefaultConfig returns the shipped detection configuration
func DefaultConfig() Config {
	cfg := Config{
		Folds:             5,
		MinRowsPerFold:    10,
		MinMetricDelta:    0.01,
		Alpha:             0.05,
		Percentiles:       []float64{20, 35, 50, 65, 80},
		MinGroupSize:      8,
		MinCohensD:        0.30,
		MinProportionDiff: 0.10,
		MaxFeatures:       64,
		MaxPairs:          2016, // 64 choose 2
	}
	cfg.MinRows = cfg.Folds * cfg.MinRowsPerFold
	return cfg
}

// Detector runs the three detection passes over one domain's dataset.
type Detector struct {
	cfg Config
}

// NewDetector creates a detector with the given configuration
func NewDetector(cfg Config) *Detector {
	if cfg.MinRows == 0 {
		cfg.MinRows = cfg.Folds * cfg.MinRowsPerFold
	}
	return &Detector{cfg: cfg}
}

// Run executes the polynomial, two-way and threshold passes and publishes
// a new TermSet version. Domains with too few observations for the
// configured fold count are an explicit insufficient-data outcome, never
// a silently empty (and misleadingly clean) term set.
func (d *Detector) Run(ctx context.Context, m *dataset.Matrix, seed int64) (*interaction.TermSet, error) {
	n := len(m.Rows)
	if n < d.cfg.MinRows {
		return nil, core.NewInsufficientDataError(m.Domain, n, d.cfg.MinRows)
	}

	keys := m.FeatureKeys()
	if len(keys) > d.cfg.MaxFeatures {
		return nil, fmt.Errorf("too many features: %d exceeds cap of %d", len(keys), d.cfg.MaxFeatures)
	}
	if pairs := len(keys) * (len(keys) - 1) / 2; pairs > d.cfg.MaxPairs {
		return nil, fmt.Errorf("too many feature pairs: %d exceeds cap of %d", pairs, d.cfg.MaxPairs)
	}

	// One deterministic fold assignment shared by every pass.
	folds := metrics.AssignFolds(n, d.cfg.Folds, seed)

	// The passes are read-only over the shared matrix and write disjoint
	// collections, so pass-level concurrency is the safe kind here.
	var (
		wg        sync.WaitGroup
		polyTerms []interaction.Term
		twoTerms  []interaction.Term
		gateTerms []interaction.Term
	)
	wg.Add(3)
	go func() {
		defer wg.Done()
		polyTerms = d.polynomialPass(ctx, m, keys, folds)
	}()
	go func() {
		defer wg.Done()
		twoTerms = d.twoWayPass(ctx, m, keys, folds)
	}()
	go func() {
		defer wg.Done()
		gateTerms = d.thresholdPass(ctx, m, keys, folds)
	}()
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	terms := make([]interaction.Term, 0, len(polyTerms)+len(twoTerms)+len(gateTerms))
	terms = append(terms, polyTerms...)
	terms = append(terms, twoTerms...)
	terms = append(terms, gateTerms...)
	sort.Slice(terms, func(i, j int) bool { return terms[i].Key() < terms[j].Key() })

	return &interaction.TermSet{
		Version:     core.TermSetID(core.NewID()),
		Domain:      m.Domain,
		Seed:        seed,
		Fingerprint: m.Fingerprint(),
		Terms:       terms,
		CreatedAt:   core.Now(),
	}, nil
}
