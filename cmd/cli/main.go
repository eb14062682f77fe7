// Command cli runs the batch boundaries against a dataset file: score a
// whole dataset, run interaction detection, or validate a published term
// set. Results print as JSON on stdout.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"nomen/adapters/excel"
	"nomen/adapters/memory"
	"nomen/adapters/postgres"
	"nomen/adapters/stats/detector"
	"nomen/app"
	"nomen/domain/core"
	"nomen/domain/phonetics"
	"nomen/domain/profile"
	"nomen/internal"
	"nomen/internal/config"
	"nomen/internal/validation"
	"nomen/ports"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Configuration error: %v", err)
	}

	var (
		mode    = flag.String("mode", "score", "score, detect, or validate")
		domain  = flag.String("domain", "", "domain id (required)")
		file    = flag.String("file", cfg.Data.ExcelFile, "dataset file (.xlsx or .csv)")
		sheet   = flag.String("sheet", cfg.Data.Sheet, "sheet name for .xlsx input")
		terms   = flag.String("terms", "", "pinned term set version")
		seed    = flag.Int64("seed", cfg.Detector.Seed, "fold-assignment seed for detect")
		workers = flag.Int("workers", 8, "parallel scoring workers")
	)
	flag.Parse()

	if *domain == "" {
		log.Fatal("-domain is required")
	}
	if *file == "" {
		log.Fatal("-file is required (or set DATASET_FILE)")
	}

	domainID, err := core.ParseDomainID(*domain)
	if err != nil {
		log.Fatalf("Invalid domain: %v", err)
	}

	entities, outcomeType, err := excel.NewDatasetReader(*file, *sheet).ReadEntities()
	if err != nil {
		log.Fatalf("Dataset error: %v", err)
	}

	logger := internal.NewDefaultLogger()
	termRepo, resultRepo, reportRepo := buildRepositories(cfg, logger)

	cache := phonetics.NewVectorCache()
	registry := profile.NewBuiltinRegistry()

	detectorCfg := detector.DefaultConfig()
	detectorCfg.Folds = cfg.Detector.Folds
	detectorCfg.MinMetricDelta = cfg.Detector.MinMetricDelta
	detectorCfg.Alpha = cfg.Detector.Alpha
	detectorCfg.MinRows = detectorCfg.Folds * detectorCfg.MinRowsPerFold

	harnessCfg := validation.Config{
		Folds:        cfg.Harness.Folds,
		Seed:         cfg.Harness.Seed,
		MinWinMargin: cfg.Harness.MinWinMargin,
		MaxParallel:  validation.DefaultConfig().MaxParallel,
	}

	ctx := context.Background()

	var out interface{}
	switch *mode {
	case "score":
		svc := app.NewScoringService(cache, registry, termRepo, resultRepo, *workers, logger)
		out, err = svc.ScoreBatch(ctx, app.BatchRequest{
			Domain:      domainID,
			Entities:    entities,
			TermVersion: core.TermSetID(*terms),
		})
	case "detect":
		svc := app.NewDetectionService(cache, registry, termRepo, detectorCfg, logger)
		out, err = svc.RunDetection(ctx, app.DetectionRequest{
			Domain:      domainID,
			Entities:    entities,
			OutcomeType: outcomeType,
			Seed:        *seed,
		})
	case "validate":
		if *terms == "" {
			log.Fatal("-terms is required for validate")
		}
		svc := app.NewValidationService(cache, registry, termRepo, reportRepo, harnessCfg, logger)
		out, err = svc.RunValidation(ctx, app.ValidationRequest{
			Domain:      domainID,
			TermVersion: core.TermSetID(*terms),
			Entities:    entities,
			OutcomeType: outcomeType,
		})
	default:
		log.Fatalf("Unknown mode: %s", *mode)
	}
	if err != nil {
		log.Fatalf("Run failed: %v", err)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		log.Fatalf("Failed to encode output: %v", err)
	}
}

// buildRepositories connects PostgreSQL when DATABASE_URL is set, falling
// back to in-memory stores for ad-hoc runs.
func buildRepositories(cfg *config.Config, logger *internal.Logger) (ports.TermSetRepository, ports.ResultRepository, ports.ReportRepository) {
	if cfg.Database.URL == "" {
		logger.Info("DATABASE_URL not set, using in-memory repositories")
		return memory.NewTermSetRepository(), memory.NewResultRepository(), memory.NewReportRepository()
	}

	db, err := sqlx.Connect("postgres", cfg.Database.URL)
	if err != nil {
		log.Fatalf("Database error: %v", err)
	}
	if err := postgres.Migrate(db); err != nil {
		log.Fatalf("Migration error: %v", err)
	}
	fmt.Fprintln(os.Stderr, "connected to PostgreSQL")
	return postgres.NewTermSetRepository(db), postgres.NewResultRepository(db), postgres.NewReportRepository(db)
}
