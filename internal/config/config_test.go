package config

import "testing"

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"DATABASE_URL", "SERVER_PORT", "GIN_MODE", "DATASET_FILE", "DATASET_SHEET",
		"DETECTOR_FOLDS", "DETECTOR_MIN_DELTA", "DETECTOR_ALPHA", "DETECTOR_SEED",
		"HARNESS_FOLDS", "HARNESS_WIN_MARGIN", "HARNESS_SEED",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load with empty environment: %v", err)
	}

	if cfg.Server.Port != "8080" {
		t.Errorf("default port = %q, want 8080", cfg.Server.Port)
	}
	if cfg.Server.GinMode != "release" {
		t.Errorf("default gin mode = %q, want release", cfg.Server.GinMode)
	}
	if cfg.Database.URL != "" {
		t.Errorf("database URL should default to empty, got %q", cfg.Database.URL)
	}
	if cfg.Detector.Folds != 5 || cfg.Harness.Folds != 5 {
		t.Errorf("default folds = %d/%d, want 5/5", cfg.Detector.Folds, cfg.Harness.Folds)
	}
	if cfg.Detector.Alpha != 0.05 {
		t.Errorf("default alpha = %v, want 0.05", cfg.Detector.Alpha)
	}
	if cfg.Detector.MinMetricDelta != 0.01 {
		t.Errorf("default min delta = %v, want 0.01", cfg.Detector.MinMetricDelta)
	}
	if cfg.Harness.MinWinMargin != 0.02 {
		t.Errorf("default win margin = %v, want 0.02", cfg.Harness.MinWinMargin)
	}
}

func TestLoadOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("DETECTOR_FOLDS", "10")
	t.Setenv("HARNESS_WIN_MARGIN", "0.05")
	t.Setenv("DATASET_SHEET", "Storms")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != "9090" {
		t.Errorf("port = %q, want 9090", cfg.Server.Port)
	}
	if cfg.Detector.Folds != 10 {
		t.Errorf("detector folds = %d, want 10", cfg.Detector.Folds)
	}
	if cfg.Harness.MinWinMargin != 0.05 {
		t.Errorf("win margin = %v, want 0.05", cfg.Harness.MinWinMargin)
	}
	if cfg.Data.Sheet != "Storms" {
		t.Errorf("sheet = %q, want Storms", cfg.Data.Sheet)
	}
}

func TestLoadRejectsInvalidKnobs(t *testing.T) {
	cases := []struct {
		name  string
		key   string
		value string
	}{
		{"single detector fold", "DETECTOR_FOLDS", "1"},
		{"single harness fold", "HARNESS_FOLDS", "1"},
		{"alpha too large", "DETECTOR_ALPHA", "1.5"},
		{"alpha zero", "DETECTOR_ALPHA", "0"},
		{"negative margin", "HARNESS_WIN_MARGIN", "-0.1"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tc.key, tc.value)
			if _, err := Load(); err == nil {
				t.Errorf("Load accepted %s=%s", tc.key, tc.value)
			}
		})
	}
}

func TestUnparsableNumbersFallBack(t *testing.T) {
	clearEnv(t)
	t.Setenv("DETECTOR_FOLDS", "not-a-number")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Detector.Folds != 5 {
		t.Errorf("folds = %d, want fallback 5", cfg.Detector.Folds)
	}
}
