// Package composite derives the six domain-agnostic composite scores from
// a primitive vector. The formulas are fixed linear combinations with
// positional bonuses, clipped (not renormalized) to [0,100] so small input
// perturbations stay small in the output. No domain knowledge belongs
// here: sign and weight per domain are Level 2's job.
package composite

import (
	"math"

	"nomen/domain/core"
	"nomen/domain/phonetics"
)

// CompositeScoreSet holds the six composite scores for one primitive
// vector. Immutable once built; one instance per NamePrimitiveVector.
type CompositeScoreSet struct {
	NormalizedName string `json:"normalized_name"`
	LowConfidence  bool   `json:"low_confidence"`

	Harshness        float64 `json:"harshness"`
	Smoothness       float64 `json:"smoothness"`
	Memorability     float64 `json:"memorability"`
	Power            float64 `json:"power"`
	Euphony          float64 `json:"euphony"`
	Pronounceability float64 `json:"pronounceability"`
}

// CompositeNames lists the composite feature keys in canonical order.
var CompositeNames = []core.FeatureKey{
	"harshness",
	"smoothness",
	"memorability",
	"power",
	"euphony",
	"pronounceability",
}

// Fields returns the composites keyed for the detector/validator layers.
func (s *CompositeScoreSet) Fields() map[core.FeatureKey]float64 {
	return map[core.FeatureKey]float64{
		"harshness":        s.Harshness,
		"smoothness":       s.Smoothness,
		"memorability":     s.Memorability,
		"power":            s.Power,
		"euphony":          s.Euphony,
		"pronounceability": s.Pronounceability,
	}
}

// Get returns a composite by feature key.
func (s *CompositeScoreSet) Get(name core.FeatureKey) (float64, bool) {
	switch name {
	case "harshness":
		return s.Harshness, true
	case "smoothness":
		return s.Smoothness, true
	case "memorability":
		return s.Memorability, true
	case "power":
		return s.Power, true
	case "euphony":
		return s.Euphony, true
	case "pronounceability":
		return s.Pronounceability, true
	}
	return 0, false
}

// Vector returns composites in CompositeNames order for regression input.
func (s *CompositeScoreSet) Vector() []float64 {
	return []float64{s.Harshness, s.Smoothness, s.Memorability, s.Power, s.Euphony, s.Pronounceability}
}

// Scorer computes composite sets. Pure arithmetic: it cannot fail given a
// valid primitive vector.
type Scorer struct{}

// NewScorer creates a composite scorer
func NewScorer() *Scorer {
	return &Scorer{}
}

// Score derives the composite set from one primitive vector.
func (sc *Scorer) Score(v *phonetics.NamePrimitiveVector) *CompositeScoreSet {
	return &CompositeScoreSet{
		NormalizedName: v.NormalizedName,
		LowConfidence:  v.LowConfidence,

		Harshness: clip(
			0.60*v.PlosiveRatio +
				0.35*v.FricativeRatio +
				0.30*v.SibilantRatio +
				0.20*v.HardConsonantRatio +
				0.15*(100-v.VoicingRatio) +
				0.15*v.InitialPlosive),

		Smoothness: clip(
			0.35*v.LiquidRatio +
				0.30*v.NasalRatio +
				0.20*v.GlideRatio +
				0.25*v.VoicingRatio +
				0.20*v.VowelRatio +
				0.10*v.SoftConsonantRatio +
				0.10*v.FinalVowel -
				0.30*v.ClusterComplexity -
				0.25*v.PlosiveRatio),

		Memorability: clip(
			0.35*v.RepetitionScore +
				0.25*syllableSweetSpot(v.SyllableCount) +
				0.20*v.InitialPlosive +
				0.15*(100-v.NameLength) +
				0.10*v.OpenVowelRatio +
				0.10*v.FinalVowel),

		Power: clip(
			0.40*v.PlosiveRatio +
				0.25*v.VoicingRatio +
				0.25*v.PhonologicalWeight +
				0.20*v.OpenVowelRatio +
				0.15*v.FinalPlosive +
				0.10*v.InitialPlosive +
				0.10*v.MaxClusterLength),

		Euphony: clip(
			0.40*v.PhonotacticNaturalness +
				0.25*v.LiquidRatio +
				0.15*v.NasalRatio +
				0.20*vowelBalance(v) +
				0.15*v.VowelRatio -
				0.20*v.SibilantRatio -
				0.25*v.ClusterComplexity),

		Pronounceability: clip(
			0.45*v.PhonotacticNaturalness +
				0.25*(100-v.ClusterComplexity) +
				0.15*(100-v.MaxClusterLength) +
				0.15*v.VowelRatio +
				0.10*(100-v.NameLength)),
	}
}

// syllableSweetSpot peaks at the 2-3 syllable range (scaled value 25) and
// falls off linearly either side. Short punchy names index well on recall.
func syllableSweetSpot(scaled float64) float64 {
	return clip(100 - math.Abs(scaled-25)*3)
}

// vowelBalance rewards a mix of front and back vowels over a monotone run.
func vowelBalance(v *phonetics.NamePrimitiveVector) float64 {
	return clip(100 - math.Abs(v.FrontVowelRatio-v.BackVowelRatio)*0.5)
}

func clip(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
