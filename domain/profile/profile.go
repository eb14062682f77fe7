// Package profile holds the per-domain authored configuration consumed by
// Levels 2-4. Profiles are data, not code: domain variation lives in the
// weight maps and link metadata here, never in pipeline branching.
package profile

import (
	"fmt"

	"nomen/domain/core"
)

// LinkFunction selects the transform from combined score to outcome space.
// Fixed per domain as profile metadata so the same entity scored twice
// always yields the same outcome type.
type LinkFunction string

const (
	LinkIdentity    LinkFunction = "identity"    // continuous outcomes
	LinkLogistic    LinkFunction = "logistic"    // binary outcome probability
	LinkExponential LinkFunction = "exponential" // strictly positive rates
	LinkSoftmax     LinkFunction = "softmax"     // multi-category distribution
)

// Valid reports whether the selector names a known link.
func (l LinkFunction) Valid() bool {
	switch l {
	case LinkIdentity, LinkLogistic, LinkExponential, LinkSoftmax:
		return true
	}
	return false
}

// Saturation configures the over-representation penalty: no discount at or
// below Threshold, exponential decay in the pattern frequency above it.
type Saturation struct {
	Threshold float64 `json:"threshold"` // pattern frequency in [0,1] where the penalty starts
	DecayRate float64 `json:"decay_rate"`
}

// LinkParams scale and center the combined score before the link transform.
type LinkParams struct {
	Scale  float64 `json:"scale"`
	Offset float64 `json:"offset"` // midpoint of the combined-score range
}

// DomainProfile is the authored configuration for one domain. Read-only at
// scoring time; updates go through the profile service, never the pipeline.
type DomainProfile struct {
	Domain core.DomainID `json:"domain"`

	// CompositeWeights are signed and need not sum to 1. A composite like
	// memorability legitimately flips sign across domains.
	CompositeWeights map[core.FeatureKey]float64 `json:"composite_weights"`

	// Congruence maps a context tag (genre, category) to a multiplier.
	// Absent or unknown tags multiply by 1.0.
	Congruence map[string]float64 `json:"congruence"`

	Saturation Saturation `json:"saturation"`

	// FundamentalWeights is the domain-specific linear combination applied
	// to the caller-supplied fundamentals at Level 3.
	FundamentalWeights map[core.FeatureKey]float64 `json:"fundamental_weights"`

	// Blend weights for Level 3: combined = DomainWeight*score +
	// FundamentalsWeight*fundamentals + interaction contributions.
	DomainWeight       float64 `json:"domain_weight"`
	FundamentalsWeight float64 `json:"fundamentals_weight"`

	Link       LinkFunction `json:"link"`
	LinkParams LinkParams   `json:"link_params"`

	// Categories names the outcome classes for the softmax link.
	Categories []string `json:"categories,omitempty"`
}

// Validate checks the profile is usable for scoring.
func (p *DomainProfile) Validate() error {
	if p.Domain == "" {
		return fmt.Errorf("%w: empty domain id", core.ErrProfileInvalid)
	}
	if len(p.CompositeWeights) == 0 {
		return fmt.Errorf("%w: %s has no composite weights", core.ErrProfileInvalid, p.Domain)
	}
	if !p.Link.Valid() {
		return fmt.Errorf("%w: %q", core.ErrUnknownLink, p.Link)
	}
	if p.Link == LinkSoftmax && len(p.Categories) < 2 {
		return fmt.Errorf("%w: softmax link requires at least two categories", core.ErrProfileInvalid)
	}
	if p.Saturation.Threshold < 0 || p.Saturation.Threshold > 1 {
		return fmt.Errorf("%w: saturation threshold %.3f outside [0,1]", core.ErrProfileInvalid, p.Saturation.Threshold)
	}
	return nil
}

// CongruenceFor returns the multiplier for a context tag. Unknown or empty
// tags default to 1.0: context is a hint, never a configuration key.
func (p *DomainProfile) CongruenceFor(context string) float64 {
	if context == "" {
		return 1.0
	}
	if m, ok := p.Congruence[context]; ok {
		return m
	}
	return 1.0
}
