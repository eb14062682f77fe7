package scoring

import (
	"math"
	"testing"

	"nomen/domain/composite"
	"nomen/domain/core"
	"nomen/domain/interaction"
	"nomen/domain/phonetics"
	"nomen/domain/profile"
)

func testProfile() *profile.DomainProfile {
	return &profile.DomainProfile{
		Domain: "hurricane",
		CompositeWeights: map[core.FeatureKey]float64{
			"harshness": 0.5,
			"power":     0.3,
		},
		Congruence: map[string]float64{"atlantic": 1.2},
		Saturation: profile.Saturation{Threshold: 0.3, DecayRate: 2.0},
		FundamentalWeights: map[core.FeatureKey]float64{
			"wind_speed": 0.4,
			"pressure":   -0.2,
		},
		DomainWeight:       0.6,
		FundamentalsWeight: 0.4,
		Link:               profile.LinkIdentity,
	}
}

func TestDomainScorer_OperationOrder(t *testing.T) {
	p := testProfile()
	set := &composite.CompositeScoreSet{Harshness: 80, Power: 60}
	s := NewDomainScorer()

	// Weighted sum only: 0.5*80 + 0.3*60 = 58.
	base := s.Score(set, p, "", 0)
	if math.Abs(base-58) > 1e-9 {
		t.Fatalf("base score = %f, want 58", base)
	}

	// Congruence multiplies after the sum.
	withContext := s.Score(set, p, "atlantic", 0)
	if math.Abs(withContext-58*1.2) > 1e-9 {
		t.Errorf("congruence score = %f, want %f", withContext, 58*1.2)
	}

	// Unknown context multiplies by 1.0.
	if got := s.Score(set, p, "pacific", 0); math.Abs(got-base) > 1e-9 {
		t.Errorf("unknown context score = %f, want %f", got, base)
	}
}

func TestDomainScorer_Saturation(t *testing.T) {
	p := testProfile()
	set := &composite.CompositeScoreSet{Harshness: 80, Power: 60}
	s := NewDomainScorer()

	atThreshold := s.Score(set, p, "", 0.3)
	below := s.Score(set, p, "", 0.1)
	if atThreshold != below {
		t.Error("saturation must not apply at or below the threshold")
	}

	// Above the threshold the penalty is exp(-decay * excess).
	above := s.Score(set, p, "", 0.5)
	want := below * math.Exp(-2.0*0.2)
	if math.Abs(above-want) > 1e-9 {
		t.Errorf("saturated score = %f, want %f", above, want)
	}

	// Monotone decreasing in frequency.
	higher := s.Score(set, p, "", 0.9)
	if higher >= above {
		t.Error("saturation penalty must increase with frequency")
	}
	if higher <= 0 {
		t.Error("saturation is a discount, never a sign flip")
	}
}

func TestIntegrator_MissingFundamentals(t *testing.T) {
	p := testProfile()
	in := NewIntegrator()

	full := in.Combine(58, FundamentalsRecord{"wind_speed": 100, "pressure": 50}, nil, nil, p, "")
	if full.ReducedConfidence {
		t.Error("complete fundamentals should not reduce confidence")
	}
	// 0.6*58 + 0.4*(0.4*100 - 0.2*50) = 34.8 + 12 = 46.8
	if math.Abs(full.Value-46.8) > 1e-9 {
		t.Errorf("combined = %f, want 46.8", full.Value)
	}

	partial := in.Combine(58, FundamentalsRecord{"wind_speed": 100}, nil, nil, p, "")
	if !partial.ReducedConfidence {
		t.Error("absent fundamental must reduce confidence")
	}
	if len(partial.MissingFundamentals) != 1 || partial.MissingFundamentals[0] != "pressure" {
		t.Errorf("missing list = %v, want [pressure]", partial.MissingFundamentals)
	}
	// The absent field contributes nothing; it is not a zero measurement.
	want := 0.6*58 + 0.4*(0.4*100)
	if math.Abs(partial.Value-want) > 1e-9 {
		t.Errorf("partial combined = %f, want %f", partial.Value, want)
	}
	if partial.Value == 0 {
		t.Error("missing fundamentals must never zero the score")
	}
}

func TestIntegrator_MissingFundamentalsSorted(t *testing.T) {
	p := testProfile()
	out := NewIntegrator().Combine(58, FundamentalsRecord{}, nil, nil, p, "")
	if len(out.MissingFundamentals) != 2 {
		t.Fatalf("missing list = %v, want both fields", out.MissingFundamentals)
	}
	if out.MissingFundamentals[0] != "pressure" || out.MissingFundamentals[1] != "wind_speed" {
		t.Errorf("missing list %v not sorted", out.MissingFundamentals)
	}
}

func TestIntegrator_InteractionComponent(t *testing.T) {
	p := testProfile()
	terms := &interaction.TermSet{
		Domain: p.Domain,
		Terms: []interaction.Term{{
			Kind:         interaction.KindThreshold,
			Features:     []core.FeatureKey{"harshness"},
			Coefficients: []float64{5},
			Threshold:    60,
		}},
	}
	features := map[core.FeatureKey]float64{"harshness": 80}

	out := NewIntegrator().Combine(58, FundamentalsRecord{"wind_speed": 100, "pressure": 50}, features, terms, p, "")
	if math.Abs(out.InteractionComponent-5) > 1e-9 {
		t.Errorf("interaction component = %f, want 5", out.InteractionComponent)
	}
	if math.Abs(out.Value-(46.8+5)) > 1e-9 {
		t.Errorf("combined = %f, want 51.8", out.Value)
	}
}

func TestPredictor_Links(t *testing.T) {
	pr := NewPredictor()

	p := testProfile()
	p.LinkParams = profile.LinkParams{Scale: 0.1, Offset: 50}

	// Identity passes the combined score through untouched.
	out, err := pr.Predict(42.5, p)
	if err != nil {
		t.Fatal(err)
	}
	if out.Value != 42.5 {
		t.Errorf("identity = %f, want 42.5", out.Value)
	}

	// Logistic at the offset is exactly one half.
	p.Link = profile.LinkLogistic
	out, err = pr.Predict(50, p)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(out.Value-0.5) > 1e-9 {
		t.Errorf("logistic at offset = %f, want 0.5", out.Value)
	}

	// Exponential is strictly positive even far below the offset.
	p.Link = profile.LinkExponential
	out, err = pr.Predict(-200, p)
	if err != nil {
		t.Fatal(err)
	}
	if out.Value <= 0 {
		t.Errorf("exponential = %f, want > 0", out.Value)
	}

	p.Link = "probit"
	if _, err := pr.Predict(50, p); err == nil {
		t.Error("unknown link must error")
	}
}

func TestPredictor_Softmax(t *testing.T) {
	p := testProfile()
	p.Link = profile.LinkSoftmax
	p.Categories = []string{"flop", "cult", "hit"}
	p.LinkParams = profile.LinkParams{Scale: 0.1, Offset: 50}

	out, err := NewPredictor().Predict(90, p)
	if err != nil {
		t.Fatal(err)
	}
	sum := 0.0
	for _, v := range out.Distribution {
		if v < 0 || v > 1 {
			t.Errorf("probability %f outside [0,1]", v)
		}
		sum += v
	}
	if math.Abs(sum-1) > 1e-9 {
		t.Errorf("distribution sums to %f, want 1", sum)
	}
	// A score far above the offset shifts mass toward the last category.
	if out.Distribution["hit"] <= out.Distribution["flop"] {
		t.Error("high score should favor the highest category")
	}

	// At the offset the distribution is uniform.
	out, err = NewPredictor().Predict(50, p)
	if err != nil {
		t.Fatal(err)
	}
	for name, v := range out.Distribution {
		if math.Abs(v-1.0/3.0) > 1e-9 {
			t.Errorf("at offset %s = %f, want uniform third", name, v)
		}
	}
}

func TestPipeline_BitStableAcrossRepeats(t *testing.T) {
	// Three or more weights make float addition order observable; the
	// sorted-key sums must keep repeated scores bit-identical, not just
	// close.
	p := testProfile()
	p.CompositeWeights = map[core.FeatureKey]float64{
		"harshness":        0.31,
		"power":            0.17,
		"memorability":     -0.07,
		"euphony":          0.23,
		"pronounceability": 0.11,
	}
	p.FundamentalWeights = map[core.FeatureKey]float64{
		"wind_speed": 0.41,
		"pressure":   -0.19,
		"density":    0.07,
	}

	cache := phonetics.NewVectorCache()
	pipe := NewPipeline(cache)
	terms := interaction.EmptyTermSet(p.Domain)
	req := Request{
		Name:         "Katrina",
		Context:      "atlantic",
		Fundamentals: FundamentalsRecord{"wind_speed": 85, "pressure": 40, "density": 12},
	}

	first, err := pipe.Score(req, p, terms)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 50; i++ {
		again, err := pipe.Score(req, p, terms)
		if err != nil {
			t.Fatal(err)
		}
		if again.Combined.Value != first.Combined.Value {
			t.Fatalf("run %d combined %v differs from first %v", i, again.Combined.Value, first.Combined.Value)
		}
		if again.DomainScore != first.DomainScore {
			t.Fatalf("run %d domain score %v differs from first %v", i, again.DomainScore, first.DomainScore)
		}
	}
}

func TestPipeline_Deterministic(t *testing.T) {
	cache := phonetics.NewVectorCache()
	pipe := NewPipeline(cache)
	p := testProfile()
	terms := interaction.EmptyTermSet(p.Domain)

	req := Request{
		Name:         "Katrina",
		Context:      "atlantic",
		Fundamentals: FundamentalsRecord{"wind_speed": 85, "pressure": 40},
	}
	a, err := pipe.Score(req, p, terms)
	if err != nil {
		t.Fatal(err)
	}
	b, err := pipe.Score(req, p, terms)
	if err != nil {
		t.Fatal(err)
	}
	if a.Combined.Value != b.Combined.Value || a.Outcome.Value != b.Outcome.Value {
		t.Error("same input must produce the same score")
	}
	if a.LowConfidence {
		t.Error("complete input should be full confidence")
	}
	if a.TermVersion != terms.Version {
		t.Error("result must record the pinned term version")
	}
}

func TestPipeline_LowConfidenceInput(t *testing.T) {
	cache := phonetics.NewVectorCache()
	pipe := NewPipeline(cache)
	p := testProfile()

	res, err := pipe.Score(Request{Name: "123", Fundamentals: FundamentalsRecord{"wind_speed": 85, "pressure": 40}}, p, interaction.EmptyTermSet(p.Domain))
	if err != nil {
		t.Fatal(err)
	}
	if !res.LowConfidence {
		t.Error("non-alphabetic name must flag low confidence")
	}
	if res.Combined.Value == 0 {
		t.Error("neutral vector still yields a usable nonzero score")
	}
}
