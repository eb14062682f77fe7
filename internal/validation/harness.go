// Package validation implements the k-fold comparison of the flat linear
// baseline against the full hierarchical pipeline. Both models are scored
// on identical fold splits so the comparison isolates the hierarchy's
// contribution; the hierarchical model never gets a friendlier split.
package validation

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/semaphore"

	"nomen/adapters/stats/metrics"
	"nomen/domain/composite"
	"nomen/domain/core"
	"nomen/domain/dataset"
	"nomen/domain/interaction"
	"nomen/domain/phonetics"
	"nomen/domain/profile"
	"nomen/domain/scoring"
	domainValidation "nomen/domain/validation"
)

// Config holds the harness knobs.
type Config struct {
	Folds int
	Seed  int64
	// MinWinMargin is the pre-declared improvement a model must show over
	// the other to be declared winner. A positive delta below this margin
	// is inconclusive, not a win.
	MinWinMargin float64
	// MaxParallel bounds concurrent fold evaluations.
	MaxParallel int64
}

// DefaultConfig returns the shipped harness configuration
func DefaultConfig() Config {
	return Config{Folds: 5, Seed: 1, MinWinMargin: 0.02, MaxParallel: 4}
}

// Harness runs baseline-versus-hierarchical validation for one domain.
type Harness struct {
	cfg      Config
	cache    *phonetics.VectorCache
	pipeline *scoring.Pipeline
}

// NewHarness creates a validation harness around a shared vector cache.
func NewHarness(cfg Config, cache *phonetics.VectorCache) *Harness {
	if cfg.Folds < 2 {
		cfg.Folds = DefaultConfig().Folds
	}
	if cfg.MaxParallel < 1 {
		cfg.MaxParallel = DefaultConfig().MaxParallel
	}
	return &Harness{cfg: cfg, cache: cache, pipeline: scoring.NewPipeline(cache)}
}

// Run produces a validation report for a domain against a pinned term
// set. Entities carry observed outcomes; outcomeType selects the metric.
func (h *Harness) Run(
	ctx context.Context,
	prof *profile.DomainProfile,
	terms *interaction.TermSet,
	entities []dataset.Entity,
	outcomeType dataset.OutcomeType,
) (*domainValidation.Report, error) {
	if terms == nil {
		return nil, core.ErrUnpinnedTermSet
	}

	n := len(entities)
	if n < h.cfg.Folds*2 {
		return nil, core.NewInsufficientDataError(prof.Domain, n, h.cfg.Folds*2)
	}

	// Precompute per-entity inputs once: baseline composites and the
	// hierarchical prediction. The hierarchical model is configured, not
	// fitted, so its predictions do not depend on the training split.
	compScorer := composite.NewScorer()
	baseRows := make([][]float64, n)
	hierPred := make([]float64, n)
	outcomes := make([]float64, n)
	for i, e := range entities {
		vec := h.cache.Get(e.Name)
		baseRows[i] = compScorer.Score(vec).Vector()
		outcomes[i] = e.Outcome

		result, err := h.pipeline.Score(scoring.Request{
			Name:             e.Name,
			Context:          e.Context,
			Fundamentals:     e.Fundamentals,
			PatternFrequency: e.PatternFrequency,
		}, prof, terms)
		if err != nil {
			return nil, fmt.Errorf("hierarchical scoring failed for %q: %w", e.Name, err)
		}
		hierPred[i] = predictionValue(result, prof)
	}

	// Fold assignment happens once, deterministically, before any
	// parallel evaluation begins.
	folds := metrics.AssignFolds(n, h.cfg.Folds, h.cfg.Seed)

	foldResults := make([]domainValidation.FoldResult, h.cfg.Folds)
	sem := semaphore.NewWeighted(h.cfg.MaxParallel)
	var wg sync.WaitGroup

	for fold := 0; fold < h.cfg.Folds; fold++ {
		if err := sem.Acquire(ctx, 1); err != nil {
			return nil, err
		}
		wg.Add(1)
		go func(fold int) {
			defer wg.Done()
			defer sem.Release(1)
			foldResults[fold] = h.evaluateFold(fold, folds, baseRows, hierPred, outcomes, outcomeType)
		}(fold)
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return h.assemble(prof, terms, outcomeType, foldResults)
}

// evaluateFold fits the baseline on the training split and scores both
// models on the held-out fold with the same metric.
func (h *Harness) evaluateFold(
	fold int,
	folds []int,
	baseRows [][]float64,
	hierPred, outcomes []float64,
	outcomeType dataset.OutcomeType,
) domainValidation.FoldResult {
	var (
		trainRows       [][]float64
		trainY          []float64
		testRows        [][]float64
		testHier, testY []float64
	)
	for i, f := range folds {
		if f == fold {
			testRows = append(testRows, baseRows[i])
			testHier = append(testHier, hierPred[i])
			testY = append(testY, outcomes[i])
		} else {
			trainRows = append(trainRows, baseRows[i])
			trainY = append(trainY, outcomes[i])
		}
	}

	result := domainValidation.FoldResult{Fold: fold, TestSize: len(testY)}

	coeffs, err := metrics.FitOLS(trainRows, trainY)
	if err != nil {
		result.Excluded = true
		result.ExcludedReason = fmt.Sprintf("baseline fit failed: %v", err)
		return result
	}
	basePred := make([]float64, len(testRows))
	for i, row := range testRows {
		basePred[i] = metrics.PredictOLS(coeffs, row)
	}

	baseMetric, okBase := foldMetric(outcomeType, basePred, testY)
	hierMetric, okHier := foldMetric(outcomeType, testHier, testY)
	if !okBase || !okHier {
		result.Excluded = true
		result.ExcludedReason = "degenerate fold: no outcome variation"
		return result
	}

	result.BaselineMetric = baseMetric
	result.HierarchicalMetric = hierMetric
	return result
}

// assemble aggregates fold results, applies the win margin and records
// exclusions. Every fold degenerate is fatal for the domain's report.
func (h *Harness) assemble(
	prof *profile.DomainProfile,
	terms *interaction.TermSet,
	outcomeType dataset.OutcomeType,
	foldResults []domainValidation.FoldResult,
) (*domainValidation.Report, error) {
	report := &domainValidation.Report{
		ID:          core.ReportID(core.NewID()),
		Domain:      prof.Domain,
		TermVersion: terms.Version,
		Metric:      metricName(outcomeType),
		Seed:        h.cfg.Seed,
		Folds:       foldResults,
		Margin:      h.cfg.MinWinMargin,
		CreatedAt:   core.Now(),
	}

	var baseSum, hierSum float64
	used := 0
	for _, f := range foldResults {
		if f.Excluded {
			report.ExcludedFolds++
			continue
		}
		baseSum += f.BaselineMetric
		hierSum += f.HierarchicalMetric
		used++
	}
	if used == 0 {
		return nil, fmt.Errorf("%w: domain %s", core.ErrAllFoldsDegenerate, prof.Domain)
	}

	report.BaselineAggregate = baseSum / float64(used)
	report.HierarchicalAggregate = hierSum / float64(used)

	switch delta := report.HierarchicalAggregate - report.BaselineAggregate; {
	case delta > h.cfg.MinWinMargin:
		report.Winner = domainValidation.WinnerHierarchical
	case delta < -h.cfg.MinWinMargin:
		report.Winner = domainValidation.WinnerBaseline
	default:
		report.Winner = domainValidation.WinnerInconclusive
	}
	return report, nil
}

func foldMetric(outcomeType dataset.OutcomeType, predicted, actual []float64) (float64, bool) {
	if outcomeType == dataset.OutcomeBinary {
		return metrics.AUC(predicted, actual)
	}
	return metrics.RSquared(predicted, actual)
}

func metricName(outcomeType dataset.OutcomeType) string {
	if outcomeType == dataset.OutcomeBinary {
		return "auc"
	}
	return "r_squared"
}

// predictionValue flattens a scoring outcome into one comparable number:
// the link-space value for scalar links, the probability-weighted
// category rank for the softmax link.
func predictionValue(result *scoring.ScoringResult, prof *profile.DomainProfile) float64 {
	if result.Outcome.Link != profile.LinkSoftmax {
		return result.Outcome.Value
	}
	expected := 0.0
	for k, name := range prof.Categories {
		expected += float64(k) * result.Outcome.Distribution[name]
	}
	return expected
}
