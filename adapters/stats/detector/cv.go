package detector

import (
	"nomen/adapters/stats/metrics"
	"nomen/domain/dataset"
)

// cvComparison holds the fold-by-fold outcome of comparing a base model
// against an augmented one on identical splits.
type cvComparison struct {
	Deltas     []float64 // augmented minus base metric, usable folds only
	MeanDelta  float64
	BaseMean   float64
	AugMean    float64
	UsedFolds  int
	TotalFolds int
}

// crossValidateDelta fits base and augmented OLS models on each train
// split and scores both on the held-out fold with the same metric.
// folds holds the fold id of each row, one-to-one with baseRows; a pass
// that filters rows must map the full-matrix assignment down to the rows
// it kept. Degenerate folds (no outcome variation, or an unfittable
// train split) are skipped in both models at once so the comparison
// stays paired.
func crossValidateDelta(
	baseRows, augRows [][]float64,
	y []float64,
	folds []int,
	k int,
	outcomeType dataset.OutcomeType,
) cvComparison {
	comp := cvComparison{TotalFolds: k}
	var baseSum, augSum float64

	for fold := 0; fold < k; fold++ {
		var (
			baseTrain, augTrain [][]float64
			yTrain              []float64
			baseTest, augTest   [][]float64
			yTest               []float64
		)
		for i, f := range folds {
			if f == fold {
				baseTest = append(baseTest, baseRows[i])
				augTest = append(augTest, augRows[i])
				yTest = append(yTest, y[i])
			} else {
				baseTrain = append(baseTrain, baseRows[i])
				augTrain = append(augTrain, augRows[i])
				yTrain = append(yTrain, y[i])
			}
		}

		baseCoef, errB := metrics.FitOLS(baseTrain, yTrain)
		augCoef, errA := metrics.FitOLS(augTrain, yTrain)
		if errB != nil || errA != nil {
			continue
		}

		basePred := make([]float64, len(baseTest))
		augPred := make([]float64, len(augTest))
		for i := range baseTest {
			basePred[i] = metrics.PredictOLS(baseCoef, baseTest[i])
			augPred[i] = metrics.PredictOLS(augCoef, augTest[i])
		}

		baseMetric, okB := fitMetric(outcomeType, basePred, yTest)
		augMetric, okA := fitMetric(outcomeType, augPred, yTest)
		if !okB || !okA {
			continue
		}

		comp.Deltas = append(comp.Deltas, augMetric-baseMetric)
		baseSum += baseMetric
		augSum += augMetric
		comp.UsedFolds++
	}

	if comp.UsedFolds > 0 {
		n := float64(comp.UsedFolds)
		comp.BaseMean = baseSum / n
		comp.AugMean = augSum / n
		var deltaSum float64
		for _, d := range comp.Deltas {
			deltaSum += d
		}
		comp.MeanDelta = deltaSum / n
	}
	return comp
}
