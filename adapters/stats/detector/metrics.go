package detector

import (
	"nomen/adapters/stats/metrics"
	"nomen/domain/dataset"
)

// fitMetric evaluates predictions against observed outcomes using the
// metric appropriate to the outcome type: R-squared for continuous,
// ROC AUC for binary. Returns false when the fold is degenerate (no
// outcome variation), which excludes it rather than producing a fake 0.
func fitMetric(outcomeType dataset.OutcomeType, predicted, actual []float64) (float64, bool) {
	switch outcomeType {
	case dataset.OutcomeBinary:
		return metrics.AUC(predicted, actual)
	default:
		return metrics.RSquared(predicted, actual)
	}
}
