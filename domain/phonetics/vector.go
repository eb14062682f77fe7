package phonetics

import "nomen/domain/core"

// ExtractorVersion identifies the extraction algorithm and its static
// tables. Cached vectors are addressed by (normalized name, version);
// bumping this invalidates every cached vector at once.
const ExtractorVersion = "px-1"

// NamePrimitiveVector is the fixed-schema output of the extractor: raw
// phoneme-class measurements for one normalized name. Every field lies in
// [0,100]. Instances are immutable once built.
type NamePrimitiveVector struct {
	NormalizedName string `json:"normalized_name"`
	Version        string `json:"version"`

	// LowConfidence marks the neutral fallback produced for empty or
	// non-alphabetic input. Downstream consumers may exclude such vectors.
	LowConfidence bool `json:"low_confidence"`

	// Consonant class ratios over total consonant count, x100.
	PlosiveRatio   float64 `json:"plosive_ratio"`
	FricativeRatio float64 `json:"fricative_ratio"`
	SibilantRatio  float64 `json:"sibilant_ratio"`
	LiquidRatio    float64 `json:"liquid_ratio"`
	NasalRatio     float64 `json:"nasal_ratio"`
	GlideRatio     float64 `json:"glide_ratio"`

	// VoicingRatio is voiced consonants over total consonants, x100.
	VoicingRatio float64 `json:"voicing_ratio"`

	// Letter-level hardness buckets, x100 over consonant letters.
	HardConsonantRatio float64 `json:"hard_consonant_ratio"`
	SoftConsonantRatio float64 `json:"soft_consonant_ratio"`

	// Vowel quality ratios over vowel count, x100.
	FrontVowelRatio float64 `json:"front_vowel_ratio"`
	BackVowelRatio  float64 `json:"back_vowel_ratio"`
	OpenVowelRatio  float64 `json:"open_vowel_ratio"`
	CloseVowelRatio float64 `json:"close_vowel_ratio"`

	// VowelRatio is vowel letters over alphabetic letters, x100.
	VowelRatio float64 `json:"vowel_ratio"`

	// Structural measurements, scaled into [0,100].
	SyllableCount          float64 `json:"syllable_count"`
	NameLength             float64 `json:"name_length"`
	MaxClusterLength       float64 `json:"max_cluster_length"`
	ClusterComplexity      float64 `json:"cluster_complexity"`
	PhonotacticNaturalness float64 `json:"phonotactic_naturalness"`
	PhonologicalWeight     float64 `json:"phonological_weight"`
	RepetitionScore        float64 `json:"repetition_score"`

	// Positional flags (0 or 100). Primacy/recency positions get their own
	// fields because they disproportionately drive the composite formulas.
	InitialPlosive   float64 `json:"initial_plosive"`
	InitialFricative float64 `json:"initial_fricative"`
	InitialSibilant  float64 `json:"initial_sibilant"`
	InitialLiquid    float64 `json:"initial_liquid"`
	InitialNasal     float64 `json:"initial_nasal"`
	InitialVowel     float64 `json:"initial_vowel"`
	FinalPlosive     float64 `json:"final_plosive"`
	FinalNasal       float64 `json:"final_nasal"`
	FinalSibilant    float64 `json:"final_sibilant"`
	FinalVowel       float64 `json:"final_vowel"`
}

// FieldCount is the number of numeric measurement fields in the vector.
const FieldCount = 31

// Fields returns the measurement fields as a deterministic, sorted-key map
// for use as detector features. Flags and ratios share the [0,100] scale
// so no per-field normalization is needed downstream.
func (v *NamePrimitiveVector) Fields() map[core.FeatureKey]float64 {
	return map[core.FeatureKey]float64{
		"plosive_ratio":           v.PlosiveRatio,
		"fricative_ratio":         v.FricativeRatio,
		"sibilant_ratio":          v.SibilantRatio,
		"liquid_ratio":            v.LiquidRatio,
		"nasal_ratio":             v.NasalRatio,
		"glide_ratio":             v.GlideRatio,
		"voicing_ratio":           v.VoicingRatio,
		"hard_consonant_ratio":    v.HardConsonantRatio,
		"soft_consonant_ratio":    v.SoftConsonantRatio,
		"front_vowel_ratio":       v.FrontVowelRatio,
		"back_vowel_ratio":        v.BackVowelRatio,
		"open_vowel_ratio":        v.OpenVowelRatio,
		"close_vowel_ratio":       v.CloseVowelRatio,
		"vowel_ratio":             v.VowelRatio,
		"syllable_count":          v.SyllableCount,
		"name_length":             v.NameLength,
		"max_cluster_length":      v.MaxClusterLength,
		"cluster_complexity":      v.ClusterComplexity,
		"phonotactic_naturalness": v.PhonotacticNaturalness,
		"phonological_weight":     v.PhonologicalWeight,
		"repetition_score":        v.RepetitionScore,
		"initial_plosive":         v.InitialPlosive,
		"initial_fricative":       v.InitialFricative,
		"initial_sibilant":        v.InitialSibilant,
		"initial_liquid":          v.InitialLiquid,
		"initial_nasal":           v.InitialNasal,
		"initial_vowel":           v.InitialVowel,
		"final_plosive":           v.FinalPlosive,
		"final_nasal":             v.FinalNasal,
		"final_sibilant":          v.FinalSibilant,
		"final_vowel":             v.FinalVowel,
	}
}

// NeutralVector returns the defined low-confidence fallback: every
// measurement at its midpoint so downstream arithmetic stays well-defined.
func NeutralVector(normalized string) *NamePrimitiveVector {
	return &NamePrimitiveVector{
		NormalizedName: normalized,
		Version:        ExtractorVersion,
		LowConfidence:  true,

		PlosiveRatio:   50,
		FricativeRatio: 50,
		SibilantRatio:  50,
		LiquidRatio:    50,
		NasalRatio:     50,
		GlideRatio:     50,

		VoicingRatio: 50,

		HardConsonantRatio: 50,
		SoftConsonantRatio: 50,

		FrontVowelRatio: 50,
		BackVowelRatio:  50,
		OpenVowelRatio:  50,
		CloseVowelRatio: 50,

		VowelRatio: 50,

		SyllableCount:          50,
		NameLength:             50,
		MaxClusterLength:       50,
		ClusterComplexity:      50,
		PhonotacticNaturalness: 50,
		PhonologicalWeight:     50,
		RepetitionScore:        50,

		InitialPlosive:   50,
		InitialFricative: 50,
		InitialSibilant:  50,
		InitialLiquid:    50,
		InitialNasal:     50,
		InitialVowel:     50,
		FinalPlosive:     50,
		FinalNasal:       50,
		FinalSibilant:    50,
		FinalVowel:       50,
	}
}
