package scoring

import (
	"fmt"
	"math"

	"nomen/domain/core"
	"nomen/domain/profile"
)

// Outcome is the Level 4 output in the domain's natural value space.
type Outcome struct {
	Link profile.LinkFunction `json:"link"`
	// Value holds the prediction for identity/logistic/exponential links.
	Value float64 `json:"value"`
	// Distribution holds per-category probabilities for the softmax link.
	Distribution map[string]float64 `json:"distribution,omitempty"`
}

// Predictor maps a combined score through the profile's link function
// (Level 4). The link is profile metadata, never a per-call choice.
type Predictor struct{}

// NewPredictor creates a Level 4 predictor
func NewPredictor() *Predictor {
	return &Predictor{}
}

// Predict transforms the combined score into outcome space.
func (pr *Predictor) Predict(combined float64, p *profile.DomainProfile) (Outcome, error) {
	z := p.LinkParams.Scale * (combined - p.LinkParams.Offset)

	switch p.Link {
	case profile.LinkIdentity:
		return Outcome{Link: p.Link, Value: combined}, nil
	case profile.LinkLogistic:
		return Outcome{Link: p.Link, Value: 1.0 / (1.0 + math.Exp(-z))}, nil
	case profile.LinkExponential:
		return Outcome{Link: p.Link, Value: math.Exp(z)}, nil
	case profile.LinkSoftmax:
		return softmaxOutcome(z, p)
	default:
		return Outcome{}, fmt.Errorf("%w: %q", core.ErrUnknownLink, p.Link)
	}
}

// softmaxOutcome spreads the scaled score across ordered categories: each
// category k gets logit z·(k-centered rank), so a higher combined score
// shifts mass toward later categories.
func softmaxOutcome(z float64, p *profile.DomainProfile) (Outcome, error) {
	n := len(p.Categories)
	if n < 2 {
		return Outcome{}, fmt.Errorf("%w: softmax link requires categories", core.ErrProfileInvalid)
	}

	center := float64(n-1) / 2.0
	logits := make([]float64, n)
	maxLogit := math.Inf(-1)
	for k := range logits {
		logits[k] = z * (float64(k) - center)
		if logits[k] > maxLogit {
			maxLogit = logits[k]
		}
	}

	sum := 0.0
	exps := make([]float64, n)
	for k, l := range logits {
		exps[k] = math.Exp(l - maxLogit)
		sum += exps[k]
	}

	dist := make(map[string]float64, n)
	for k, name := range p.Categories {
		dist[name] = exps[k] / sum
	}
	return Outcome{Link: p.Link, Distribution: dist}, nil
}
