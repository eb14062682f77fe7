package scoring

import (
	"nomen/domain/composite"
	"nomen/domain/core"
	"nomen/domain/interaction"
	"nomen/domain/phonetics"
	"nomen/domain/profile"
)

// Request carries one entity through the pipeline.
type Request struct {
	Name             string
	Context          string
	Fundamentals     FundamentalsRecord
	PatternFrequency float64
}

// Pipeline chains Levels 1-4 as a linear sequence of pure functions over
// immutable intermediates. Shared state is the read-mostly vector cache
// and the injected read-only configuration; entities never interact, so a
// Pipeline is safe for concurrent use.
type Pipeline struct {
	cache      *phonetics.VectorCache
	composites *composite.Scorer
	domain     *DomainScorer
	integrator *Integrator
	predictor  *Predictor
}

// NewPipeline creates a scoring pipeline around a shared vector cache.
func NewPipeline(cache *phonetics.VectorCache) *Pipeline {
	return &Pipeline{
		cache:      cache,
		composites: composite.NewScorer(),
		domain:     NewDomainScorer(),
		integrator: NewIntegrator(),
		predictor:  NewPredictor(),
	}
}

// Score runs one entity through all four levels against an explicit
// profile and pinned term set.
func (p *Pipeline) Score(req Request, prof *profile.DomainProfile, terms *interaction.TermSet) (*ScoringResult, error) {
	primitives := p.cache.Get(req.Name)
	composites := p.composites.Score(primitives)

	domainScore := p.domain.Score(composites, prof, req.Context, req.PatternFrequency)

	features := primitives.Fields()
	for k, v := range composites.Fields() {
		features[k] = v
	}
	for k, v := range req.Fundamentals {
		features[k] = v
	}

	combined := p.integrator.Combine(domainScore, req.Fundamentals, features, terms, prof, req.Context)

	outcome, err := p.predictor.Predict(combined.Value, prof)
	if err != nil {
		return nil, err
	}

	var termVersion core.TermSetID
	if terms != nil {
		termVersion = terms.Version
	}

	return &ScoringResult{
		ID:            core.ResultID(core.NewID()),
		Domain:        prof.Domain,
		Name:          req.Name,
		Context:       req.Context,
		TermVersion:   termVersion,
		Primitives:    primitives,
		Composites:    composites,
		DomainScore:   domainScore,
		Combined:      combined,
		Outcome:       outcome,
		LowConfidence: primitives.LowConfidence || combined.ReducedConfidence,
		CreatedAt:     core.Now(),
	}, nil
}
