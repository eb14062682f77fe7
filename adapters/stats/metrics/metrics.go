// Package metrics collects the fit metrics and significance tests shared
// by the interaction detector and the validation harness.
package metrics

import (
	"math"
	"sort"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat/distuv"
)

// RSquared is the coefficient of determination. The second return is
// false when the outcome is constant: a degenerate split carries no
// signal to explain and must be excluded, not scored as zero.
func RSquared(predicted, actual []float64) (float64, bool) {
	if len(actual) < 2 {
		return 0, false
	}
	mean, _ := stats.Mean(actual)

	var ssRes, ssTot float64
	for i, a := range actual {
		ssRes += (a - predicted[i]) * (a - predicted[i])
		ssTot += (a - mean) * (a - mean)
	}
	if ssTot == 0 {
		return 0, false
	}
	return 1 - ssRes/ssTot, true
}

// AUC computes the area under the ROC curve via the rank-sum
// (Mann-Whitney) identity with midrank handling for ties. False when the
// labels are single-class (AUC undefined).
func AUC(scores, labels []float64) (float64, bool) {
	type pair struct {
		score float64
		pos   bool
	}
	pairs := make([]pair, len(scores))
	var nPos, nNeg float64
	for i, s := range scores {
		pos := labels[i] > 0.5
		pairs[i] = pair{score: s, pos: pos}
		if pos {
			nPos++
		} else {
			nNeg++
		}
	}
	if nPos == 0 || nNeg == 0 {
		return 0, false
	}

	sort.Slice(pairs, func(i, j int) bool { return pairs[i].score < pairs[j].score })

	ranks := make([]float64, len(pairs))
	for i := 0; i < len(pairs); {
		j := i
		for j < len(pairs) && pairs[j].score == pairs[i].score {
			j++
		}
		mid := float64(i+j+1) / 2.0
		for k := i; k < j; k++ {
			ranks[k] = mid
		}
		i = j
	}

	var rankSum float64
	for i, p := range pairs {
		if p.pos {
			rankSum += ranks[i]
		}
	}
	auc := (rankSum - nPos*(nPos+1)/2) / (nPos * nNeg)
	return auc, true
}

// PairedOneSidedTTest tests whether the mean of paired deltas is greater
// than zero. Returns the t statistic and the one-sided p-value.
func PairedOneSidedTTest(deltas []float64) (tStat, pValue float64) {
	n := float64(len(deltas))
	if n < 2 {
		return 0, 1.0
	}
	mean, _ := stats.Mean(deltas)
	sd, _ := stats.StandardDeviationSample(deltas)
	if sd == 0 {
		if mean > 0 {
			return math.Inf(1), 0
		}
		return 0, 1.0
	}
	tStat = mean / (sd / math.Sqrt(n))
	dist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: n - 1}
	pValue = 1 - dist.CDF(tStat)
	return tStat, pValue
}

// WelchTTest compares two group means under unequal variances. Returns
// the t statistic, Cohen's d and the two-sided p-value.
func WelchTTest(a, b []float64) (tStat, cohensD, pValue float64) {
	n1, n2 := float64(len(a)), float64(len(b))
	if n1 < 2 || n2 < 2 {
		return 0, 0, 1.0
	}
	mean1, _ := stats.Mean(a)
	mean2, _ := stats.Mean(b)
	var1, _ := stats.SampleVariance(a)
	var2, _ := stats.SampleVariance(b)

	se := math.Sqrt(var1/n1 + var2/n2)
	if se == 0 {
		return 0, 0, 1.0
	}
	tStat = (mean1 - mean2) / se

	// Welch-Satterthwaite degrees of freedom.
	num := math.Pow(var1/n1+var2/n2, 2)
	den := math.Pow(var1/n1, 2)/(n1-1) + math.Pow(var2/n2, 2)/(n2-1)
	df := num / den
	if df < 1 {
		df = 1
	}

	dist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: df}
	pValue = 2 * (1 - dist.CDF(math.Abs(tStat)))

	pooledSD := math.Sqrt(((n1-1)*var1 + (n2-1)*var2) / (n1 + n2 - 2))
	if pooledSD > 0 {
		cohensD = (mean1 - mean2) / pooledSD
	}
	return tStat, cohensD, pValue
}

// TwoProportionZTest compares success rates in two binary groups. Returns
// the z statistic, the raw proportion difference and the two-sided
// p-value.
func TwoProportionZTest(a, b []float64) (zStat, diff, pValue float64) {
	n1, n2 := float64(len(a)), float64(len(b))
	if n1 < 2 || n2 < 2 {
		return 0, 0, 1.0
	}
	var s1, s2 float64
	for _, v := range a {
		if v > 0.5 {
			s1++
		}
	}
	for _, v := range b {
		if v > 0.5 {
			s2++
		}
	}
	p1, p2 := s1/n1, s2/n2
	diff = p1 - p2

	pooled := (s1 + s2) / (n1 + n2)
	se := math.Sqrt(pooled * (1 - pooled) * (1/n1 + 1/n2))
	if se == 0 {
		return 0, diff, 1.0
	}
	zStat = diff / se

	norm := distuv.Normal{Mu: 0, Sigma: 1}
	pValue = 2 * (1 - norm.CDF(math.Abs(zStat)))
	return zStat, diff, pValue
}
