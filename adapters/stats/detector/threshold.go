package detector

import (
	"context"
	"math"

	"github.com/montanaflynn/stats"

	"nomen/adapters/stats/metrics"
	"nomen/domain/core"
	"nomen/domain/dataset"
	"nomen/domain/interaction"
)

// thresholdPass hunts for gate effects: at each candidate percentile cut
// of a feature, the outcome distribution above the cut is compared against
// the one below it. Continuous outcomes use Welch's t-test with a Cohen's
// d floor; binary outcomes use a two-proportion z-test with a proportion
// difference floor. Both statistical significance and the practical
// effect-size floor must hold. One term per feature at most: the
// significant cut with the largest effect wins.
func (d *Detector) thresholdPass(ctx context.Context, m *dataset.Matrix, keys []core.FeatureKey, folds []int) []interaction.Term {
	var terms []interaction.Term
	_ = folds // cuts are tested on the full dataset; folds gate the other passes

	for _, key := range keys {
		if ctx.Err() != nil {
			return terms
		}

		xs, ys := m.Column(key)
		if len(xs) < d.cfg.MinRows {
			continue
		}

		best, found := d.bestCut(m.OutcomeType, xs, ys)
		if !found {
			continue
		}
		best.Domain = m.Domain
		best.Features = []core.FeatureKey{key}
		terms = append(terms, best)
	}
	return terms
}

// bestCut scans candidate percentile cut points for one feature.
func (d *Detector) bestCut(outcomeType dataset.OutcomeType, xs, ys []float64) (interaction.Term, bool) {
	var (
		best      interaction.Term
		bestSize  float64
		anyPassed bool
	)

	for _, pct := range d.cfg.Percentiles {
		cut, err := stats.Percentile(xs, pct)
		if err != nil {
			continue
		}

		var above, below []float64
		for i, x := range xs {
			if x > cut {
				above = append(above, ys[i])
			} else {
				below = append(below, ys[i])
			}
		}
		if len(above) < d.cfg.MinGroupSize || len(below) < d.cfg.MinGroupSize {
			continue
		}

		var effect, pValue, shift float64
		if outcomeType == dataset.OutcomeBinary {
			_, diff, p := metrics.TwoProportionZTest(above, below)
			effect, pValue, shift = math.Abs(diff), p, diff
		} else {
			_, cohensD, p := metrics.WelchTTest(above, below)
			meanAbove, _ := stats.Mean(above)
			meanBelow, _ := stats.Mean(below)
			effect, pValue, shift = math.Abs(cohensD), p, meanAbove-meanBelow
		}

		if pValue >= d.cfg.Alpha || effect < d.effectFloor(outcomeType) {
			continue
		}
		if !anyPassed || effect > bestSize {
			anyPassed = true
			bestSize = effect
			best = interaction.Term{
				Kind:         interaction.KindThreshold,
				Coefficients: []float64{shift},
				Threshold:    cut,
				Significance: interaction.Significance{
					EffectSize: effect,
					PValue:     pValue,
					// Gate effects have no CV model comparison; the
					// practical effect size stands in for improvement.
					MetricImprovement: effect,
				},
			}
		}
	}
	return best, anyPassed
}

func (d *Detector) effectFloor(outcomeType dataset.OutcomeType) float64 {
	if outcomeType == dataset.OutcomeBinary {
		return d.cfg.MinProportionDiff
	}
	return d.cfg.MinCohensD
}
