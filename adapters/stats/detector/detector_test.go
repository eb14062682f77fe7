package detector

import (
	"context"
	"errors"
	"strings"
	"testing"

	"nomen/domain/core"
	"nomen/domain/dataset"
	"nomen/domain/interaction"
	"nomen/domain/phonetics"
	"nomen/internal/testkit"
)

func plantedQuadraticMatrix(t *testing.T, seed int64) *dataset.Matrix {
	t.Helper()
	gen := testkit.NewGenerator(testkit.GeneratorConfig{
		EntityCount: 400,
		Seed:        seed,
		Linear:      map[core.FeatureKey]float64{"harshness": 0.2},
		Effect: testkit.PlantedEffect{
			Quadratic: 1.5,
			Feature:   "harshness",
		},
		Noise: 0.02,
	})
	cache := phonetics.NewVectorCache()
	m := dataset.BuildMatrix("hurricane", dataset.OutcomeContinuous, gen.Generate(), cache)
	if len(m.Rows) < 100 {
		t.Fatalf("generator produced only %d usable rows", len(m.Rows))
	}
	return m
}

func TestDetector_RecoversPlantedQuadratic(t *testing.T) {
	m := plantedQuadraticMatrix(t, 42)

	set, err := NewDetector(DefaultConfig()).Run(context.Background(), m, 7)
	if err != nil {
		t.Fatalf("detection failed: %v", err)
	}
	if len(set.Terms) == 0 {
		t.Fatal("expected the planted curvature to be detected")
	}

	found := false
	for _, term := range set.Terms {
		if term.Kind == interaction.KindPolynomial && term.Features[0] == "harshness" {
			found = true
			if term.Coefficients[1] <= 0 {
				t.Errorf("planted upward curvature, got quadratic coefficient %f", term.Coefficients[1])
			}
			if term.Significance.PValue >= 0.05 {
				t.Errorf("promoted term carries p=%f above alpha", term.Significance.PValue)
			}
			if term.Significance.MetricImprovement <= 0.01 {
				t.Errorf("promoted term improvement %f under the floor", term.Significance.MetricImprovement)
			}
		}
	}
	if !found {
		t.Error("no polynomial term on harshness in the published set")
	}
}

func TestDetector_Reproducible(t *testing.T) {
	m := plantedQuadraticMatrix(t, 42)
	d := NewDetector(DefaultConfig())

	a, err := d.Run(context.Background(), m, 7)
	if err != nil {
		t.Fatal(err)
	}
	b, err := d.Run(context.Background(), m, 7)
	if err != nil {
		t.Fatal(err)
	}

	if a.Fingerprint != b.Fingerprint {
		t.Error("same dataset must fingerprint identically")
	}
	if a.Seed != 7 || b.Seed != 7 {
		t.Error("published set must record the seed it ran with")
	}
	if len(a.Terms) != len(b.Terms) {
		t.Fatalf("same seed and data produced %d vs %d terms", len(a.Terms), len(b.Terms))
	}
	for i := range a.Terms {
		if a.Terms[i].Key() != b.Terms[i].Key() {
			t.Errorf("term %d differs: %s vs %s", i, a.Terms[i].Key(), b.Terms[i].Key())
		}
		if a.Terms[i].Coefficients[0] != b.Terms[i].Coefficients[0] {
			t.Errorf("term %d coefficients differ", i)
		}
	}
	if a.Version == b.Version {
		t.Error("each publication is a new version even for identical content")
	}
}

func TestDetector_TermsSortedByKey(t *testing.T) {
	m := plantedQuadraticMatrix(t, 42)
	set, err := NewDetector(DefaultConfig()).Run(context.Background(), m, 7)
	if err != nil {
		t.Fatal(err)
	}
	for i := 1; i < len(set.Terms); i++ {
		if set.Terms[i-1].Key() > set.Terms[i].Key() {
			t.Fatalf("terms not sorted at %d", i)
		}
	}
}

func TestDetector_SparseFundamentalColumn(t *testing.T) {
	// Collectors deliver fundamentals unevenly, so some rows carry a
	// covariate column that others lack. The passes filter those rows per
	// candidate and must keep the shared fold assignment aligned with the
	// rows they kept.
	cfg := testkit.DefaultGeneratorConfig()
	cfg.EntityCount = 160
	cfg.Fundamentals = 1
	entities := testkit.NewGenerator(cfg).Generate()
	for i := 0; i < len(entities); i += 5 {
		delete(entities[i].Fundamentals, "f0")
	}

	cache := phonetics.NewVectorCache()
	m := dataset.BuildMatrix("hurricane", dataset.OutcomeContinuous, entities, cache)

	full := len(m.Rows)
	xs, _ := m.Column("f0")
	if len(xs) == full {
		t.Fatal("fixture must leave the covariate column shorter than the matrix")
	}

	set, err := NewDetector(DefaultConfig()).Run(context.Background(), m, 3)
	if err != nil {
		t.Fatalf("detection over a sparse column failed: %v", err)
	}
	if set == nil {
		t.Fatal("expected a published term set")
	}
}

func TestDetector_InsufficientData(t *testing.T) {
	cache := phonetics.NewVectorCache()
	entities := []dataset.Entity{
		{Name: "Katrina", Outcome: 1},
		{Name: "Bob", Outcome: 0},
	}
	m := dataset.BuildMatrix("hurricane", dataset.OutcomeBinary, entities, cache)

	_, err := NewDetector(DefaultConfig()).Run(context.Background(), m, 1)
	if err == nil {
		t.Fatal("tiny dataset must be an explicit insufficient-data outcome")
	}
	if !core.IsInsufficientDataError(err) {
		t.Errorf("expected insufficient data error, got %v", err)
	}
}

func TestDetector_FeatureCap(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxFeatures = 5

	m := plantedQuadraticMatrix(t, 42)
	_, err := NewDetector(cfg).Run(context.Background(), m, 1)
	if err == nil || !strings.Contains(err.Error(), "too many features") {
		t.Errorf("expected feature cap error, got %v", err)
	}
}

func TestDetector_ContextCancellation(t *testing.T) {
	m := plantedQuadraticMatrix(t, 42)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewDetector(DefaultConfig()).Run(ctx, m, 1)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}
