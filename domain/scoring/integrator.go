package scoring

import (
	"nomen/domain/core"
	"nomen/domain/interaction"
	"nomen/domain/profile"
)

// CombinedScore is the Level 3 output: the blended nominative score plus
// the confidence bookkeeping for any absent inputs.
type CombinedScore struct {
	Value float64 `json:"value"`
	// ReducedConfidence is set when any profiled fundamental was absent.
	ReducedConfidence bool `json:"reduced_confidence"`
	// MissingFundamentals lists the absent fields for auditability.
	MissingFundamentals []core.FeatureKey `json:"missing_fundamentals,omitempty"`

	// Intermediate pieces, carried for the scoring result audit trail.
	DomainComponent       float64 `json:"domain_component"`
	FundamentalsComponent float64 `json:"fundamentals_component"`
	InteractionComponent  float64 `json:"interaction_component"`
}

// Integrator blends the domain score with fundamentals and pinned
// interaction terms (Level 3).
type Integrator struct{}

// NewIntegrator creates a Level 3 integrator
func NewIntegrator() *Integrator {
	return &Integrator{}
}

// Combine produces the combined nominative score. Absent fundamentals
// contribute nothing and mark the result reduced-confidence; they are
// never coerced to zero measurements.
func (in *Integrator) Combine(
	domainScore float64,
	fundamentals FundamentalsRecord,
	features map[core.FeatureKey]float64,
	terms *interaction.TermSet,
	p *profile.DomainProfile,
	context string,
) CombinedScore {
	out := CombinedScore{DomainComponent: p.DomainWeight * domainScore}

	// Sorted key order keeps the sum bit-stable across calls and yields
	// the missing list already sorted.
	fundSum := 0.0
	for _, key := range sortedWeightKeys(p.FundamentalWeights) {
		v, ok := fundamentals.Get(key)
		if !ok {
			out.ReducedConfidence = true
			out.MissingFundamentals = append(out.MissingFundamentals, key)
			continue
		}
		fundSum += p.FundamentalWeights[key] * v
	}
	out.FundamentalsComponent = p.FundamentalsWeight * fundSum

	if terms != nil {
		out.InteractionComponent = terms.Contribution(features, context)
	}

	out.Value = out.DomainComponent + out.FundamentalsComponent + out.InteractionComponent
	return out
}
