// Package interaction models discovered nonlinear effects as versioned,
// immutable artifacts. Detection publishes a new TermSet version; scoring
// always pins one explicit version so two runs can never silently disagree
// about which terms they applied.
package interaction

import (
	"fmt"

	"nomen/domain/core"
)

// TermKind classifies a discovered effect
type TermKind string

const (
	KindPolynomial TermKind = "polynomial" // U or inverse-U shape in one feature
	KindTwoWay     TermKind = "two_way"    // product interaction of two features
	KindThreshold  TermKind = "threshold"  // gate effect above a cut point
)

// Significance records the statistical evidence behind a term.
type Significance struct {
	EffectSize float64 `json:"effect_size"`
	PValue     float64 `json:"p_value"`
	// MetricImprovement is the cross-validated gain in the domain's fit
	// metric from adding the term.
	MetricImprovement float64 `json:"metric_improvement"`
}

// Term is one discovered effect, immutable once published.
type Term struct {
	Kind     TermKind         `json:"kind"`
	Features []core.FeatureKey `json:"features"`
	// Coefficients: polynomial -> [linear, quadratic]; two-way -> [product];
	// threshold -> [gate shift]. Fitted on the detection dataset.
	Coefficients []float64 `json:"coefficients"`
	// Threshold is the cut point for KindThreshold terms.
	Threshold float64 `json:"threshold,omitempty"`

	Domain       core.DomainID `json:"domain"`
	Context      string        `json:"context,omitempty"`
	Significance Significance  `json:"significance"`
}

// Key produces a stable identity string for ordering and deduplication.
func (t Term) Key() string {
	switch t.Kind {
	case KindPolynomial:
		return fmt.Sprintf("poly:%s", t.Features[0])
	case KindTwoWay:
		return fmt.Sprintf("twoway:%s*%s", t.Features[0], t.Features[1])
	case KindThreshold:
		return fmt.Sprintf("threshold:%s@%.4f", t.Features[0], t.Threshold)
	}
	return string(t.Kind)
}

// Contribution evaluates the term on one entity's feature map. Features
// are on the shared [0,100] scale; values are centered on the midpoint so
// contributions stay numerically comparable to the base score.
func (t Term) Contribution(features map[core.FeatureKey]float64) float64 {
	const mid = 50.0

	get := func(k core.FeatureKey) (float64, bool) {
		v, ok := features[k]
		return v, ok
	}

	switch t.Kind {
	case KindPolynomial:
		x, ok := get(t.Features[0])
		if !ok || len(t.Coefficients) < 2 {
			return 0
		}
		c := (x - mid) / mid
		return t.Coefficients[0]*c + t.Coefficients[1]*c*c
	case KindTwoWay:
		x, okx := get(t.Features[0])
		y, oky := get(t.Features[1])
		if !okx || !oky || len(t.Coefficients) < 1 {
			return 0
		}
		return t.Coefficients[0] * ((x - mid) / mid) * ((y - mid) / mid)
	case KindThreshold:
		x, ok := get(t.Features[0])
		if !ok || len(t.Coefficients) < 1 {
			return 0
		}
		if x > t.Threshold {
			return t.Coefficients[0]
		}
		return 0
	}
	return 0
}

// TermSet is one published detection output: the approved terms for a
// domain at a point in time, addressed by version.
type TermSet struct {
	Version core.TermSetID `json:"version"`
	Domain  core.DomainID  `json:"domain"`
	Seed    int64          `json:"seed"`
	// Fingerprint ties the set to the exact dataset it was detected on.
	Fingerprint core.DatasetFingerprint `json:"fingerprint"`
	Terms       []Term                  `json:"terms"`
	CreatedAt   core.Timestamp          `json:"created_at"`
}

// Contribution sums all applicable term contributions for an entity.
func (s *TermSet) Contribution(features map[core.FeatureKey]float64, context string) float64 {
	total := 0.0
	for _, t := range s.Terms {
		if t.Context != "" && t.Context != context {
			continue
		}
		total += t.Contribution(features)
	}
	return total
}

// EmptyTermSet returns a published-but-empty set: scoring with no detected
// terms is still an explicit, pinned decision.
func EmptyTermSet(domain core.DomainID) *TermSet {
	return &TermSet{
		Version:   core.TermSetID(core.NewID()),
		Domain:    domain,
		CreatedAt: core.Now(),
	}
}
