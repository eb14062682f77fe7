// Package testkit generates deterministic synthetic datasets for exercising
// the detection and validation passes. Outcomes are constructed from the
// real computed features of pronounceable random names, so a planted effect
// is recoverable by construction instead of by luck.
package testkit

import (
	"math"
	"math/rand"
	"strings"

	"nomen/domain/composite"
	"nomen/domain/core"
	"nomen/domain/dataset"
	"nomen/domain/phonetics"
	"nomen/domain/scoring"
)

// PlantedEffect describes one structured contribution to the synthetic
// outcome, expressed on centered features so detector coefficients can be
// compared against it directly.
type PlantedEffect struct {
	// Quadratic weight on Feature; zero plants nothing.
	Quadratic float64
	Feature   core.FeatureKey

	// Two-way product weight on PairA x PairB; zero plants nothing.
	Pair  float64
	PairA core.FeatureKey
	PairB core.FeatureKey

	// Threshold shift added when GateFeature exceeds GateCut; zero
	// plants nothing.
	Shift       float64
	GateFeature core.FeatureKey
	GateCut     float64
}

// GeneratorConfig configures the synthetic dataset generator
type GeneratorConfig struct {
	EntityCount int
	Seed        int64
	// Linear weights on centered features forming the outcome base.
	Linear map[core.FeatureKey]float64
	Effect PlantedEffect
	// Noise is the standard deviation of gaussian noise added to
	// continuous outcomes.
	Noise float64
	// Binary converts the latent outcome into 0/1 through a logistic
	// draw instead of returning it directly.
	Binary bool
	// Fundamentals adds this many random covariate columns named f0..fN.
	Fundamentals int
}

// DefaultGeneratorConfig returns a dataset large enough for five folds.
func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{
		EntityCount: 400,
		Seed:        42,
		Linear:      map[core.FeatureKey]float64{"harshness": 0.5},
		Noise:       0.05,
	}
}

// Generator produces entities with outcomes tied to their names
type Generator struct {
	cfg    GeneratorConfig
	rng    *rand.Rand
	scorer *composite.Scorer
	ext    *phonetics.Extractor
}

// NewGenerator creates a seeded generator
func NewGenerator(cfg GeneratorConfig) *Generator {
	return &Generator{
		cfg:    cfg,
		rng:    rand.New(rand.NewSource(cfg.Seed)),
		scorer: composite.NewScorer(),
		ext:    phonetics.NewExtractor(),
	}
}

var (
	onsets  = []string{"b", "d", "k", "t", "g", "p", "m", "n", "l", "r", "s", "v", "z", "sh", "ch", "th", "br", "kr", "st", "fl"}
	nuclei  = []string{"a", "e", "i", "o", "u", "ia", "ea", "ai"}
	codas   = []string{"", "", "", "n", "r", "l", "s", "t", "k", "x", "nd", "st"}
	genders = []string{"", "", "alpha", "beta"}
)

// Generate builds the full entity slice. The same config always yields
// the same entities and outcomes.
func (g *Generator) Generate() []dataset.Entity {
	entities := make([]dataset.Entity, 0, g.cfg.EntityCount)
	for i := 0; i < g.cfg.EntityCount; i++ {
		name := g.randomName()
		vec := g.ext.Extract(name)
		if vec.LowConfidence {
			continue
		}

		features := vec.Fields()
		for k, v := range g.scorer.Score(vec).Fields() {
			features[k] = v
		}

		fundamentals := scoring.FundamentalsRecord{}
		for f := 0; f < g.cfg.Fundamentals; f++ {
			key := core.FeatureKey("f" + string(rune('0'+f)))
			val := g.rng.Float64() * 100
			fundamentals[key] = val
			features[key] = val
		}

		entities = append(entities, dataset.Entity{
			Name:         name,
			Context:      genders[g.rng.Intn(len(genders))],
			Fundamentals: fundamentals,
			Outcome:      g.outcome(features),
		})
	}
	return entities
}

// randomName assembles one to four syllables with a capitalized initial.
func (g *Generator) randomName() string {
	syllables := 1 + g.rng.Intn(4)
	var b strings.Builder
	for s := 0; s < syllables; s++ {
		b.WriteString(onsets[g.rng.Intn(len(onsets))])
		b.WriteString(nuclei[g.rng.Intn(len(nuclei))])
		b.WriteString(codas[g.rng.Intn(len(codas))])
	}
	name := b.String()
	return strings.ToUpper(name[:1]) + name[1:]
}

// outcome computes the latent value from centered features, applies the
// planted effect, then noise or a logistic draw.
func (g *Generator) outcome(features map[core.FeatureKey]float64) float64 {
	center := func(key core.FeatureKey) float64 {
		return (features[key] - 50) / 50
	}

	y := 0.0
	for key, w := range g.cfg.Linear {
		y += w * center(key)
	}

	e := g.cfg.Effect
	if e.Quadratic != 0 {
		c := center(e.Feature)
		y += e.Quadratic * c * c
	}
	if e.Pair != 0 {
		y += e.Pair * center(e.PairA) * center(e.PairB)
	}
	if e.Shift != 0 && features[e.GateFeature] > e.GateCut {
		y += e.Shift
	}

	if g.cfg.Binary {
		p := 1 / (1 + math.Exp(-4*y))
		if g.rng.Float64() < p {
			return 1
		}
		return 0
	}
	return y + g.rng.NormFloat64()*g.cfg.Noise
}
