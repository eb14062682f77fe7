package phonetics

import (
	"testing"
)

func TestNormalize(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Katrina", "katrina"},
		{"  Mary   Jane ", "mary jane"},
		{"Jean-Luc", "jean-luc"},
		{"X Æ A-12", "x æ a"},
		{"123", ""},
		{"", ""},
		{"O'Brien", "obrien"},
	}
	for _, c := range cases {
		if got := Normalize(c.in); got != c.want {
			t.Errorf("Normalize(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestExtract_Deterministic(t *testing.T) {
	e := NewExtractor()
	a := e.Extract("Katrina")
	b := e.Extract("katrina")
	if *a != *b {
		t.Error("equal normalized names must produce identical vectors")
	}
}

func TestExtract_RangeInvariant(t *testing.T) {
	e := NewExtractor()
	names := []string{
		"Katrina", "Bob", "Xzqkrt", "Aia", "Mississippi",
		"Jean-Luc Picard", "Strngth", "Y", "Zsa Zsa", "Wilhelmina",
	}
	for _, name := range names {
		v := e.Extract(name)
		for key, val := range v.Fields() {
			if val < 0 || val > 100 {
				t.Errorf("Extract(%q): %s = %f outside [0,100]", name, key, val)
			}
		}
		if len(v.Fields()) != FieldCount {
			t.Errorf("Extract(%q): %d fields, want %d", name, len(v.Fields()), FieldCount)
		}
	}
}

func TestExtract_NeutralFallback(t *testing.T) {
	e := NewExtractor()
	for _, name := range []string{"", "123", "   ", "!!!"} {
		v := e.Extract(name)
		if !v.LowConfidence {
			t.Errorf("Extract(%q) should be low confidence", name)
		}
		for key, val := range v.Fields() {
			if val != 50 {
				t.Errorf("Extract(%q): neutral %s = %f, want 50", name, key, val)
			}
		}
	}
}

func TestExtract_Katrina(t *testing.T) {
	v := NewExtractor().Extract("Katrina")
	if v.LowConfidence {
		t.Fatal("Katrina should not be low confidence")
	}
	// k, t plosive out of k, t, r, n.
	if v.PlosiveRatio != 50 {
		t.Errorf("plosive ratio = %f, want 50", v.PlosiveRatio)
	}
	if v.InitialPlosive != 100 {
		t.Errorf("initial plosive = %f, want 100", v.InitialPlosive)
	}
	if v.FinalVowel != 100 {
		t.Errorf("final vowel = %f, want 100", v.FinalVowel)
	}
	if v.SyllableCount != 30 {
		t.Errorf("syllable count = %f, want 30 (three syllables)", v.SyllableCount)
	}
}

func TestExtract_Digraphs(t *testing.T) {
	v := NewExtractor().Extract("Shane")
	// sh scans as one sibilant phoneme, so the word starts sibilant.
	if v.InitialSibilant != 100 {
		t.Errorf("sh-initial name: initial sibilant = %f, want 100", v.InitialSibilant)
	}
	if v.InitialFricative != 0 {
		t.Errorf("sh-initial name: initial fricative = %f, want 0", v.InitialFricative)
	}
}

func TestExtract_VowelOnlyName(t *testing.T) {
	v := NewExtractor().Extract("Aia")
	if v.LowConfidence {
		t.Fatal("vowel-only names are valid input")
	}
	if v.VoicingRatio != 100 {
		t.Errorf("vowel-only voicing = %f, want 100", v.VoicingRatio)
	}
	if v.VowelRatio != 100 {
		t.Errorf("vowel-only vowel ratio = %f, want 100", v.VowelRatio)
	}
}

func TestExtract_Alliteration(t *testing.T) {
	multi := NewExtractor().Extract("Zsa Zsa")
	if multi.RepetitionScore <= 0 {
		t.Error("alliterative multi-word name should have positive repetition score")
	}
}

func TestVectorCache_Deterministic(t *testing.T) {
	cache := NewVectorCache()
	a := cache.Get("Katrina")
	b := cache.Get(" KATRINA ")
	if a.NormalizedName != b.NormalizedName {
		t.Error("cache must normalize before keying")
	}
	if *a != *b {
		t.Error("cache hits must return identical vectors")
	}
}
