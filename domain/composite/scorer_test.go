package composite

import (
	"testing"

	"nomen/domain/phonetics"
)

func TestScore_Pure(t *testing.T) {
	e := phonetics.NewExtractor()
	v := e.Extract("Katrina")
	s := NewScorer()
	a := s.Score(v)
	b := s.Score(v)
	if *a != *b {
		t.Error("same vector must produce identical composite sets")
	}
}

func TestScore_RangeInvariant(t *testing.T) {
	e := phonetics.NewExtractor()
	s := NewScorer()
	names := []string{"Katrina", "Lull", "Xzqkrt", "Bob", "Wilhelmina", "Zsa Zsa", "Aia"}
	for _, name := range names {
		set := s.Score(e.Extract(name))
		for key, val := range set.Fields() {
			if val < 0 || val > 100 {
				t.Errorf("%q: %s = %f outside [0,100]", name, key, val)
			}
		}
	}
}

func TestScore_KatrinaHarshness(t *testing.T) {
	v := phonetics.NewExtractor().Extract("Katrina")
	set := NewScorer().Score(v)
	if set.Harshness <= 60 {
		t.Errorf("Katrina harshness = %f, want > 60 (plosive-heavy, plosive-initial)", set.Harshness)
	}
}

func TestScore_HarshVersusSmooth(t *testing.T) {
	e := phonetics.NewExtractor()
	s := NewScorer()

	harsh := s.Score(e.Extract("Kraktar"))
	smooth := s.Score(e.Extract("Liliana"))

	if harsh.Harshness <= smooth.Harshness {
		t.Errorf("Kraktar harshness (%f) should exceed Liliana (%f)",
			harsh.Harshness, smooth.Harshness)
	}
	if smooth.Smoothness <= harsh.Smoothness {
		t.Errorf("Liliana smoothness (%f) should exceed Kraktar (%f)",
			smooth.Smoothness, harsh.Smoothness)
	}
}

func TestScore_LowConfidencePropagates(t *testing.T) {
	v := phonetics.NewExtractor().Extract("123")
	set := NewScorer().Score(v)
	if !set.LowConfidence {
		t.Error("low-confidence vector must produce a low-confidence composite set")
	}
}

func TestVector_MatchesCanonicalOrder(t *testing.T) {
	v := phonetics.NewExtractor().Extract("Katrina")
	set := NewScorer().Score(v)

	vec := set.Vector()
	if len(vec) != len(CompositeNames) {
		t.Fatalf("vector length %d, want %d", len(vec), len(CompositeNames))
	}
	for i, name := range CompositeNames {
		want, ok := set.Get(name)
		if !ok {
			t.Fatalf("unknown composite %s", name)
		}
		if vec[i] != want {
			t.Errorf("vector[%d] = %f, want %s = %f", i, vec[i], name, want)
		}
	}
}
