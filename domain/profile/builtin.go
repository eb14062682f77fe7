package profile

import "nomen/domain/core"

// BuiltinProfiles returns the authored configuration for the shipping
// domains. Weights come from domain maintainers, not from the pipeline;
// they encode which composite signals matter where, including the known
// sign flip of memorability between recall-driven and
// sophistication-signaling contexts.
func BuiltinProfiles() []*DomainProfile {
	return []*DomainProfile{
		{
			Domain: "hurricane",
			CompositeWeights: map[core.FeatureKey]float64{
				"harshness":    0.55,
				"power":        0.45,
				"memorability": 0.20,
				"smoothness":   -0.15,
			},
			Congruence: map[string]float64{
				"atlantic": 1.10,
				"pacific":  0.95,
			},
			Saturation: Saturation{Threshold: 0.25, DecayRate: 2.0},
			FundamentalWeights: map[core.FeatureKey]float64{
				"max_wind": 0.40,
				"category": 8.0,
				"pressure": -0.05,
			},
			DomainWeight:       0.55,
			FundamentalsWeight: 0.45,
			Link:               LinkLogistic, // casualty probability
			LinkParams:         LinkParams{Scale: 0.06, Offset: 50},
		},
		{
			Domain: "token",
			CompositeWeights: map[core.FeatureKey]float64{
				"memorability":     0.60,
				"power":            0.30,
				"pronounceability": 0.25,
				"euphony":          -0.10,
			},
			Congruence: map[string]float64{
				"meme": 1.25,
				"defi": 0.90,
			},
			Saturation: Saturation{Threshold: 0.15, DecayRate: 3.0},
			FundamentalWeights: map[core.FeatureKey]float64{
				"market_cap_log": 4.0,
				"volume_log":     2.5,
				"age_days":       -0.02,
			},
			DomainWeight:       0.50,
			FundamentalsWeight: 0.50,
			Link:               LinkExponential, // strictly positive return rate
			LinkParams:         LinkParams{Scale: 0.02, Offset: 50},
		},
		{
			Domain: "trading_card",
			CompositeWeights: map[core.FeatureKey]float64{
				"power":        0.50,
				"harshness":    0.30,
				"memorability": 0.25,
			},
			Congruence: map[string]float64{
				"creature": 1.15,
				"land":     0.80,
			},
			Saturation: Saturation{Threshold: 0.30, DecayRate: 1.5},
			FundamentalWeights: map[core.FeatureKey]float64{
				"mana_cost": 5.0,
				"rarity":    10.0,
			},
			DomainWeight:       0.45,
			FundamentalsWeight: 0.55,
			Link:               LinkIdentity, // secondary-market price index
			LinkParams:         LinkParams{Scale: 1.0, Offset: 0},
		},
		{
			Domain: "roster",
			CompositeWeights: map[core.FeatureKey]float64{
				"power":        0.45,
				"smoothness":   0.25,
				"memorability": 0.30,
			},
			Congruence: map[string]float64{
				"contact_sport": 1.10,
			},
			Saturation: Saturation{Threshold: 0.35, DecayRate: 1.0},
			FundamentalWeights: map[core.FeatureKey]float64{
				"games_played": 0.30,
				"draft_round":  -3.0,
			},
			DomainWeight:       0.40,
			FundamentalsWeight: 0.60,
			Link:               LinkIdentity, // career performance index
			LinkParams:         LinkParams{Scale: 1.0, Offset: 0},
		},
		{
			Domain: "band",
			CompositeWeights: map[core.FeatureKey]float64{
				"euphony": 0.40,
				"power":   0.25,
				// Sophistication-signaling context: easy recall reads as
				// disposable, so memorability carries a negative weight.
				"memorability": -0.20,
				"harshness":    0.15,
			},
			Congruence: map[string]float64{
				"metal": 1.30,
				"folk":  0.85,
				"pop":   1.05,
			},
			Saturation: Saturation{Threshold: 0.20, DecayRate: 2.5},
			FundamentalWeights: map[core.FeatureKey]float64{
				"years_active": 0.8,
				"label_major":  6.0,
			},
			DomainWeight:       0.60,
			FundamentalsWeight: 0.40,
			Link:               LinkSoftmax,
			LinkParams:         LinkParams{Scale: 0.05, Offset: 50},
			Categories:         []string{"obscure", "working", "charting", "legendary"},
		},
		{
			Domain: "ship",
			CompositeWeights: map[core.FeatureKey]float64{
				"power":      0.40,
				"euphony":    0.35,
				"smoothness": 0.20,
				"harshness":  -0.10,
			},
			Congruence: map[string]float64{
				"naval":    1.20,
				"merchant": 0.90,
			},
			Saturation: Saturation{Threshold: 0.30, DecayRate: 1.5},
			FundamentalWeights: map[core.FeatureKey]float64{
				"tonnage_log": 3.0,
				"crew_size":   0.05,
			},
			DomainWeight:       0.50,
			FundamentalsWeight: 0.50,
			Link:               LinkLogistic, // survival probability over service life
			LinkParams:         LinkParams{Scale: 0.05, Offset: 50},
		},
		{
			Domain: "disorder",
			CompositeWeights: map[core.FeatureKey]float64{
				"harshness":        0.35,
				"pronounceability": -0.40,
				"smoothness":       -0.20,
			},
			Congruence: map[string]float64{
				"chronic": 1.10,
			},
			Saturation: Saturation{Threshold: 0.40, DecayRate: 1.0},
			FundamentalWeights: map[core.FeatureKey]float64{
				"prevalence_log": 2.0,
				"onset_age":      -0.10,
			},
			DomainWeight:       0.55,
			FundamentalsWeight: 0.45,
			Link:               LinkIdentity, // perceived-severity index
			LinkParams:         LinkParams{Scale: 1.0, Offset: 0},
		},
	}
}
