package validation

import (
	"context"
	"errors"
	"testing"

	"nomen/domain/core"
	"nomen/domain/dataset"
	"nomen/domain/interaction"
	"nomen/domain/phonetics"
	"nomen/domain/profile"
	domainValidation "nomen/domain/validation"
	"nomen/internal/testkit"
)

func harnessProfile() *profile.DomainProfile {
	return &profile.DomainProfile{
		Domain: "hurricane",
		CompositeWeights: map[core.FeatureKey]float64{
			"harshness": 0.5,
			"power":     0.3,
		},
		DomainWeight: 1.0,
		Link:         profile.LinkIdentity,
	}
}

func syntheticEntities(n int, seed int64) []dataset.Entity {
	gen := testkit.NewGenerator(testkit.GeneratorConfig{
		EntityCount: n,
		Seed:        seed,
		Linear:      map[core.FeatureKey]float64{"harshness": 0.5},
		Noise:       0.05,
	})
	return gen.Generate()
}

func TestHarness_RequiresPinnedTerms(t *testing.T) {
	h := NewHarness(DefaultConfig(), phonetics.NewVectorCache())
	_, err := h.Run(context.Background(), harnessProfile(), nil, syntheticEntities(100, 1), dataset.OutcomeContinuous)
	if !errors.Is(err, core.ErrUnpinnedTermSet) {
		t.Errorf("nil terms must be rejected, got %v", err)
	}
}

func TestHarness_InsufficientEntities(t *testing.T) {
	h := NewHarness(DefaultConfig(), phonetics.NewVectorCache())
	entities := syntheticEntities(100, 1)[:6] // below folds*2
	_, err := h.Run(context.Background(), harnessProfile(), interaction.EmptyTermSet("hurricane"), entities, dataset.OutcomeContinuous)
	if !core.IsInsufficientDataError(err) {
		t.Errorf("expected insufficient data error, got %v", err)
	}
}

func TestHarness_ProducesCompleteReport(t *testing.T) {
	prof := harnessProfile()
	terms := interaction.EmptyTermSet(prof.Domain)
	cfg := DefaultConfig()
	cfg.Seed = 3

	h := NewHarness(cfg, phonetics.NewVectorCache())
	report, err := h.Run(context.Background(), prof, terms, syntheticEntities(200, 1), dataset.OutcomeContinuous)
	if err != nil {
		t.Fatalf("validation failed: %v", err)
	}

	if report.Domain != prof.Domain || report.TermVersion != terms.Version {
		t.Error("report must name the domain and pinned term version")
	}
	if report.Seed != 3 {
		t.Errorf("report seed = %d, want 3", report.Seed)
	}
	if report.Metric != "r_squared" {
		t.Errorf("continuous outcome metric = %s, want r_squared", report.Metric)
	}
	if len(report.Folds) != cfg.Folds {
		t.Errorf("%d fold results, want %d", len(report.Folds), cfg.Folds)
	}
	if report.Winner == "" {
		t.Error("report must declare a winner or inconclusive")
	}
	if report.Margin != cfg.MinWinMargin {
		t.Error("report must record the pre-declared margin")
	}
	for _, f := range report.Folds {
		if !f.Excluded && f.TestSize == 0 {
			t.Errorf("fold %d used with no test rows", f.Fold)
		}
	}
}

func TestHarness_Reproducible(t *testing.T) {
	prof := harnessProfile()
	terms := interaction.EmptyTermSet(prof.Domain)
	entities := syntheticEntities(200, 1)

	h := NewHarness(DefaultConfig(), phonetics.NewVectorCache())
	a, err := h.Run(context.Background(), prof, terms, entities, dataset.OutcomeContinuous)
	if err != nil {
		t.Fatal(err)
	}
	b, err := h.Run(context.Background(), prof, terms, entities, dataset.OutcomeContinuous)
	if err != nil {
		t.Fatal(err)
	}
	if a.BaselineAggregate != b.BaselineAggregate || a.HierarchicalAggregate != b.HierarchicalAggregate {
		t.Error("same seed and data must reproduce the same aggregates")
	}
	if a.Winner != b.Winner {
		t.Error("same seed and data must reproduce the same winner")
	}
}

func TestHarness_SparseFundamentals(t *testing.T) {
	prof := harnessProfile()
	prof.DomainWeight = 0.6
	prof.FundamentalsWeight = 0.4
	prof.FundamentalWeights = map[core.FeatureKey]float64{"f0": 0.5}

	gen := testkit.NewGenerator(testkit.GeneratorConfig{
		EntityCount:  120,
		Seed:         5,
		Linear:       map[core.FeatureKey]float64{"harshness": 0.5},
		Noise:        0.05,
		Fundamentals: 1,
	})
	entities := gen.Generate()
	// Some records lack the covariate entirely; the pipeline downgrades
	// their confidence instead of failing, and the harness runs through.
	for i := 0; i < len(entities); i += 4 {
		delete(entities[i].Fundamentals, "f0")
	}

	h := NewHarness(DefaultConfig(), phonetics.NewVectorCache())
	report, err := h.Run(context.Background(), prof, interaction.EmptyTermSet(prof.Domain), entities, dataset.OutcomeContinuous)
	if err != nil {
		t.Fatalf("validation over sparse fundamentals failed: %v", err)
	}
	if report.Winner == "" {
		t.Error("report must carry a verdict")
	}
}

func TestAssemble_MarginRule(t *testing.T) {
	h := NewHarness(Config{Folds: 5, Seed: 1, MinWinMargin: 0.02, MaxParallel: 1}, phonetics.NewVectorCache())
	prof := harnessProfile()
	terms := interaction.EmptyTermSet(prof.Domain)

	folds := func(base, hier float64) []domainValidation.FoldResult {
		out := make([]domainValidation.FoldResult, 5)
		for i := range out {
			out[i] = domainValidation.FoldResult{Fold: i, BaselineMetric: base, HierarchicalMetric: hier, TestSize: 10}
		}
		return out
	}

	cases := []struct {
		name string
		base float64
		hier float64
		want domainValidation.Winner
	}{
		{"clear hierarchical win", 0.50, 0.60, domainValidation.WinnerHierarchical},
		{"clear baseline win", 0.60, 0.50, domainValidation.WinnerBaseline},
		{"positive delta inside margin", 0.50, 0.51, domainValidation.WinnerInconclusive},
		{"negative delta inside margin", 0.51, 0.50, domainValidation.WinnerInconclusive},
		{"exactly at margin", 0.50, 0.52, domainValidation.WinnerInconclusive},
	}
	for _, c := range cases {
		report, err := h.assemble(prof, terms, dataset.OutcomeContinuous, folds(c.base, c.hier))
		if err != nil {
			t.Fatalf("%s: %v", c.name, err)
		}
		if report.Winner != c.want {
			t.Errorf("%s: winner = %s, want %s", c.name, report.Winner, c.want)
		}
	}
}

func TestAssemble_ExcludedFolds(t *testing.T) {
	h := NewHarness(DefaultConfig(), phonetics.NewVectorCache())
	prof := harnessProfile()
	terms := interaction.EmptyTermSet(prof.Domain)

	folds := []domainValidation.FoldResult{
		{Fold: 0, BaselineMetric: 0.5, HierarchicalMetric: 0.6, TestSize: 10},
		{Fold: 1, Excluded: true, ExcludedReason: "degenerate fold: no outcome variation"},
		{Fold: 2, BaselineMetric: 0.5, HierarchicalMetric: 0.6, TestSize: 10},
	}
	report, err := h.assemble(prof, terms, dataset.OutcomeContinuous, folds)
	if err != nil {
		t.Fatal(err)
	}
	if report.ExcludedFolds != 1 {
		t.Errorf("excluded folds = %d, want 1", report.ExcludedFolds)
	}
	if len(report.UsableFolds()) != 2 {
		t.Errorf("usable folds = %d, want 2", len(report.UsableFolds()))
	}
	// Aggregates come from usable folds only.
	if report.HierarchicalAggregate != 0.6 || report.BaselineAggregate != 0.5 {
		t.Errorf("aggregates %f/%f ignore the exclusion contract",
			report.BaselineAggregate, report.HierarchicalAggregate)
	}
}

func TestAssemble_AllFoldsDegenerate(t *testing.T) {
	h := NewHarness(DefaultConfig(), phonetics.NewVectorCache())
	folds := []domainValidation.FoldResult{
		{Fold: 0, Excluded: true},
		{Fold: 1, Excluded: true},
	}
	_, err := h.assemble(harnessProfile(), interaction.EmptyTermSet("hurricane"), dataset.OutcomeContinuous, folds)
	if !errors.Is(err, core.ErrAllFoldsDegenerate) {
		t.Errorf("expected ErrAllFoldsDegenerate, got %v", err)
	}
}

func TestHarness_DegenerateFoldsExcluded(t *testing.T) {
	// Constant outcomes make every fold degenerate for r-squared.
	entities := syntheticEntities(100, 1)
	for i := range entities {
		entities[i].Outcome = 3.0
	}

	h := NewHarness(DefaultConfig(), phonetics.NewVectorCache())
	_, err := h.Run(context.Background(), harnessProfile(), interaction.EmptyTermSet("hurricane"), entities, dataset.OutcomeContinuous)
	if !errors.Is(err, core.ErrAllFoldsDegenerate) {
		t.Errorf("constant outcome should be fatal, got %v", err)
	}
}
