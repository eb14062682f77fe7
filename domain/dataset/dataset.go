// Package dataset defines the in-memory shapes handed across the batch
// boundary: raw entities supplied by collectors, and the numeric
// observation matrix the detector and validation harness operate on.
// Loading and persistence belong to the caller; this package owns no file
// format.
package dataset

import (
	"sort"

	"nomen/domain/composite"
	"nomen/domain/core"
	"nomen/domain/phonetics"
	"nomen/domain/scoring"
)

// OutcomeType selects the fit metric family for a domain's outcome.
type OutcomeType string

const (
	OutcomeContinuous OutcomeType = "continuous" // coefficient of determination
	OutcomeBinary     OutcomeType = "binary"     // area under the ROC curve
)

// Entity is one named record from a domain collector.
type Entity struct {
	Name         string                     `json:"name"`
	Context      string                     `json:"context,omitempty"`
	Fundamentals scoring.FundamentalsRecord `json:"fundamentals"`
	// PatternFrequency is the caller-computed over-representation of this
	// entity's dominant composite pattern in the recent dataset, in [0,1].
	PatternFrequency float64 `json:"pattern_frequency"`
	// Outcome is the observed value; only meaningful for detection and
	// validation datasets, not for pure scoring input.
	Outcome float64 `json:"outcome"`
}

// Observation is one numeric row: the feature map a detector pass sees.
type Observation struct {
	Features map[core.FeatureKey]float64 `json:"features"`
	Outcome  float64                     `json:"outcome"`
}

// Matrix is a full in-memory dataset for one domain.
type Matrix struct {
	Domain      core.DomainID `json:"domain"`
	OutcomeType OutcomeType   `json:"outcome_type"`
	Rows        []Observation `json:"rows"`
}

// FeatureKeys returns the sorted union of feature keys across rows.
// Sorted order keeps every downstream iteration deterministic.
func (m *Matrix) FeatureKeys() []core.FeatureKey {
	seen := map[core.FeatureKey]bool{}
	for _, row := range m.Rows {
		for k := range row.Features {
			seen[k] = true
		}
	}
	keys := make([]core.FeatureKey, 0, len(seen))
	for k := range seen {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

// Column extracts one feature column aligned with Outcomes; rows missing
// the feature are skipped in both slices.
func (m *Matrix) Column(key core.FeatureKey) (xs, ys []float64) {
	xs, ys, _ = m.ColumnIndexed(key)
	return xs, ys
}

// ColumnIndexed is Column plus the original row index of each kept value,
// for callers that must align a filtered column with full-matrix
// structures such as a shared fold assignment.
func (m *Matrix) ColumnIndexed(key core.FeatureKey) (xs, ys []float64, idx []int) {
	for i, row := range m.Rows {
		if v, ok := row.Features[key]; ok {
			xs = append(xs, v)
			ys = append(ys, row.Outcome)
			idx = append(idx, i)
		}
	}
	return xs, ys, idx
}

// Fingerprint hashes rows and outcomes for reproducibility audits.
func (m *Matrix) Fingerprint() core.DatasetFingerprint {
	rows := make([]map[core.FeatureKey]float64, len(m.Rows))
	outcomes := make([]float64, len(m.Rows))
	for i, r := range m.Rows {
		rows[i] = r.Features
		outcomes[i] = r.Outcome
	}
	return core.ComputeDatasetFingerprint(rows, outcomes)
}

// BuildMatrix runs Level 1 over a slice of entities and assembles the
// observation matrix the offline passes consume: composites, primitives
// and fundamentals side by side, observed outcome attached. Low-confidence
// vectors are excluded; their neutral values would only dilute detection.
func BuildMatrix(domain core.DomainID, outcomeType OutcomeType, entities []Entity, cache *phonetics.VectorCache) *Matrix {
	scorer := composite.NewScorer()
	m := &Matrix{Domain: domain, OutcomeType: outcomeType}

	for _, e := range entities {
		vec := cache.Get(e.Name)
		if vec.LowConfidence {
			continue
		}
		features := vec.Fields()
		for k, v := range scorer.Score(vec).Fields() {
			features[k] = v
		}
		for k, v := range e.Fundamentals {
			features[k] = v
		}
		m.Rows = append(m.Rows, Observation{Features: features, Outcome: e.Outcome})
	}
	return m
}
