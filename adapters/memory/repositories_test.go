package memory

import (
	"context"
	"errors"
	"testing"

	"nomen/domain/core"
	"nomen/domain/interaction"
	"nomen/domain/scoring"
	"nomen/domain/validation"
)

func TestTermSetRepository_Roundtrip(t *testing.T) {
	repo := NewTermSetRepository()
	ctx := context.Background()

	first := interaction.EmptyTermSet("hurricane")
	second := interaction.EmptyTermSet("hurricane")
	other := interaction.EmptyTermSet("band")
	for _, set := range []*interaction.TermSet{first, second, other} {
		if err := repo.Save(ctx, set); err != nil {
			t.Fatal(err)
		}
	}

	got, err := repo.Get(ctx, first.Version)
	if err != nil {
		t.Fatal(err)
	}
	if got.Version != first.Version {
		t.Error("wrong set returned")
	}

	versions, err := repo.ListVersions(ctx, "hurricane")
	if err != nil {
		t.Fatal(err)
	}
	if len(versions) != 2 {
		t.Fatalf("%d versions, want 2", len(versions))
	}
	if versions[0] != second.Version || versions[1] != first.Version {
		t.Error("versions must list newest first")
	}
}

func TestTermSetRepository_NotFound(t *testing.T) {
	repo := NewTermSetRepository()
	_, err := repo.Get(context.Background(), "missing")
	if !errors.Is(err, core.ErrTermSetNotFound) {
		t.Errorf("expected ErrTermSetNotFound, got %v", err)
	}
}

func TestResultRepository_NewestFirstWithLimit(t *testing.T) {
	repo := NewResultRepository()
	ctx := context.Background()

	var saved []*scoring.ScoringResult
	for i := 0; i < 5; i++ {
		r := &scoring.ScoringResult{
			ID:     core.ResultID(core.NewID()),
			Domain: "hurricane",
			Name:   "Katrina",
		}
		saved = append(saved, r)
		if err := repo.Save(ctx, r); err != nil {
			t.Fatal(err)
		}
	}

	out, err := repo.ListByDomain(ctx, "hurricane", 3)
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != 3 {
		t.Fatalf("%d results, want 3", len(out))
	}
	if out[0].ID != saved[4].ID {
		t.Error("results must list newest first")
	}

	empty, err := repo.ListByDomain(ctx, "band", 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(empty) != 0 {
		t.Error("unrelated domain must be empty")
	}
}

func TestResultRepository_SaveBatch(t *testing.T) {
	repo := NewResultRepository()
	ctx := context.Background()

	batch := []*scoring.ScoringResult{
		{ID: core.ResultID(core.NewID()), Domain: "ship", Name: "Bismarck"},
		{ID: core.ResultID(core.NewID()), Domain: "ship", Name: "Hood"},
	}
	if err := repo.SaveBatch(ctx, batch); err != nil {
		t.Fatal(err)
	}
	out, err := repo.ListByDomain(ctx, "ship", 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != 2 {
		t.Errorf("%d results, want 2", len(out))
	}
}

func TestReportRepository_Roundtrip(t *testing.T) {
	repo := NewReportRepository()
	ctx := context.Background()

	report := &validation.Report{
		ID:     core.ReportID(core.NewID()),
		Domain: "hurricane",
		Winner: validation.WinnerInconclusive,
	}
	if err := repo.Save(ctx, report); err != nil {
		t.Fatal(err)
	}

	got, err := repo.Get(ctx, report.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.ID != report.ID {
		t.Error("wrong report returned")
	}

	listed, err := repo.ListByDomain(ctx, "hurricane", 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(listed) != 1 {
		t.Errorf("%d reports, want 1", len(listed))
	}

	_, err = repo.Get(ctx, core.ReportID(core.NewID()))
	if !errors.Is(err, core.ErrReportNotFound) {
		t.Errorf("expected ErrReportNotFound, got %v", err)
	}
	if !errors.Is(err, core.ErrNotFound) {
		t.Error("report-not-found must also match the generic not-found sentinel")
	}
}
