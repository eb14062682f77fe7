package detector

import (
	"context"
	"math"

	"nomen/adapters/stats/metrics"
	"nomen/domain/core"
	"nomen/domain/dataset"
	"nomen/domain/interaction"
)

// twoWayPass tests every feature pair for a product interaction: an
// additive model of both features against one that also carries their
// product, under the same improvement-and-significance bar as the
// polynomial pass.
func (d *Detector) twoWayPass(ctx context.Context, m *dataset.Matrix, keys []core.FeatureKey, folds []int) []interaction.Term {
	var terms []interaction.Term

	for i := 0; i < len(keys); i++ {
		for j := i + 1; j < len(keys); j++ {
			if ctx.Err() != nil {
				return terms
			}

			k1, k2 := keys[i], keys[j]

			// Rows missing either feature drop out of this pair; the shared
			// fold assignment follows the kept rows by original index.
			var baseRows, augRows [][]float64
			var ys []float64
			var rowFolds []int
			for ri, row := range m.Rows {
				x1, ok1 := row.Features[k1]
				x2, ok2 := row.Features[k2]
				if !ok1 || !ok2 {
					continue
				}
				c1, c2 := center(x1), center(x2)
				baseRows = append(baseRows, []float64{c1, c2})
				augRows = append(augRows, []float64{c1, c2, c1 * c2})
				ys = append(ys, row.Outcome)
				rowFolds = append(rowFolds, folds[ri])
			}
			if len(ys) < d.cfg.MinRows {
				continue
			}

			comp := crossValidateDelta(baseRows, augRows, ys, rowFolds, d.cfg.Folds, m.OutcomeType)
			if comp.UsedFolds < 2 {
				continue
			}
			_, pValue := metrics.PairedOneSidedTTest(comp.Deltas)
			if comp.MeanDelta <= d.cfg.MinMetricDelta || pValue >= d.cfg.Alpha {
				continue
			}

			augCoef, err := metrics.FitOLS(augRows, ys)
			if err != nil {
				continue
			}

			terms = append(terms, interaction.Term{
				Kind:         interaction.KindTwoWay,
				Features:     []core.FeatureKey{k1, k2},
				Coefficients: []float64{augCoef[3]},
				Domain:       m.Domain,
				Significance: interaction.Significance{
					EffectSize:        math.Abs(augCoef[3]),
					PValue:            pValue,
					MetricImprovement: comp.MeanDelta,
				},
			})
		}
	}
	return terms
}
