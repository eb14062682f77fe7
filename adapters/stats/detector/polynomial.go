package detector

import (
	"context"
	"math"

	"nomen/adapters/stats/metrics"
	"nomen/domain/core"
	"nomen/domain/dataset"
	"nomen/domain/interaction"
)

// polynomialPass tests each feature for curvature: a model with the
// feature linearly against one that also carries its square. A candidate
// must both improve the cross-validated metric beyond the configured
// minimum delta and clear the significance bar on held-out folds, so
// in-sample overfitting artifacts never get promoted.
func (d *Detector) polynomialPass(ctx context.Context, m *dataset.Matrix, keys []core.FeatureKey, folds []int) []interaction.Term {
	var terms []interaction.Term

	for _, key := range keys {
		if ctx.Err() != nil {
			return terms
		}

		xs, ys, idx := m.ColumnIndexed(key)
		if len(xs) < d.cfg.MinRows {
			continue
		}

		// Rows missing this feature are filtered out; map the shared fold
		// assignment down through the original row indices so the split
		// stays aligned with the kept rows.
		baseRows := make([][]float64, len(xs))
		augRows := make([][]float64, len(xs))
		rowFolds := make([]int, len(xs))
		for i, x := range xs {
			c := center(x)
			baseRows[i] = []float64{c}
			augRows[i] = []float64{c, c * c}
			rowFolds[i] = folds[idx[i]]
		}

		comp := crossValidateDelta(baseRows, augRows, ys, rowFolds, d.cfg.Folds, m.OutcomeType)
		if comp.UsedFolds < 2 {
			continue
		}
		_, pValue := metrics.PairedOneSidedTTest(comp.Deltas)
		if comp.MeanDelta <= d.cfg.MinMetricDelta || pValue >= d.cfg.Alpha {
			continue
		}

		// Publish the incremental effect: linear adjustment over the base
		// model plus the curvature itself, fitted on the full dataset.
		baseCoef, errB := metrics.FitOLS(baseRows, ys)
		augCoef, errA := metrics.FitOLS(augRows, ys)
		if errB != nil || errA != nil {
			continue
		}

		terms = append(terms, interaction.Term{
			Kind:         interaction.KindPolynomial,
			Features:     []core.FeatureKey{key},
			Coefficients: []float64{augCoef[1] - baseCoef[1], augCoef[2]},
			Domain:       m.Domain,
			Significance: interaction.Significance{
				EffectSize:        math.Abs(augCoef[2]),
				PValue:            pValue,
				MetricImprovement: comp.MeanDelta,
			},
		})
	}
	return terms
}

// center maps a [0,100] feature onto [-1,1] around the midpoint, matching
// interaction.Term.Contribution so fitted coefficients transfer directly.
func center(x float64) float64 {
	return (x - 50.0) / 50.0
}
