// Package scoring implements Levels 2-4 of the pipeline: composites plus a
// domain profile become a domain score, a combined nominative score, and a
// predicted outcome. Each level is a pure function over explicit inputs.
package scoring

import (
	"math"
	"sort"

	"nomen/domain/composite"
	"nomen/domain/core"
	"nomen/domain/profile"
)

// DomainScorer applies a DomainProfile to a composite set (Level 2).
type DomainScorer struct{}

// NewDomainScorer creates a Level 2 scorer
func NewDomainScorer() *DomainScorer {
	return &DomainScorer{}
}

// Score computes the domain-contextualized score. Fixed operation order:
// weighted sum of composites, then congruence multiplier, then saturation
// penalty. patternFrequency is how over-represented this entity's dominant
// composite pattern is in the recent dataset, supplied by the caller in
// [0,1]; below the profile threshold it has no effect.
func (s *DomainScorer) Score(set *composite.CompositeScoreSet, p *profile.DomainProfile, context string, patternFrequency float64) float64 {
	// Summing in sorted key order keeps repeated scores bit-identical;
	// map iteration order would reorder the float additions.
	score := 0.0
	for _, name := range sortedWeightKeys(p.CompositeWeights) {
		if v, ok := set.Get(name); ok {
			score += p.CompositeWeights[name] * v
		}
	}

	score *= p.CongruenceFor(context)

	score *= saturationFactor(patternFrequency, p.Saturation)

	return score
}

// sortedWeightKeys returns a weight map's keys in sorted order.
func sortedWeightKeys(weights map[core.FeatureKey]float64) []core.FeatureKey {
	keys := make([]core.FeatureKey, 0, len(weights))
	for k := range weights {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

// saturationFactor is 1 at or below the threshold and decays
// exponentially in the excess frequency above it: a monotone decreasing
// discount for overused patterns.
func saturationFactor(frequency float64, s profile.Saturation) float64 {
	if frequency <= s.Threshold || s.DecayRate <= 0 {
		return 1.0
	}
	return math.Exp(-s.DecayRate * (frequency - s.Threshold))
}
