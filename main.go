package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"nomen/adapters/memory"
	"nomen/adapters/postgres"
	"nomen/adapters/stats/detector"
	"nomen/app"
	"nomen/domain/phonetics"
	"nomen/domain/profile"
	"nomen/internal"
	"nomen/internal/config"
	apperrors "nomen/internal/errors"
	"nomen/internal/validation"
	"nomen/ports"
	"nomen/ui"
)

// initDatabase connects to PostgreSQL and applies the schema
func initDatabase(cfg *config.Config) (*sqlx.DB, error) {
	db, err := sqlx.Connect("postgres", cfg.Database.URL)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to connect to database")
	}
	if err := db.Ping(); err != nil {
		return nil, apperrors.Wrap(err, "failed to ping database")
	}
	if err := postgres.Migrate(db); err != nil {
		return nil, apperrors.Wrap(err, "database migration failed")
	}
	return db, nil
}

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Configuration error: %v", err)
	}
	gin.SetMode(cfg.Server.GinMode)

	logger := internal.NewDefaultLogger()

	// Repositories: PostgreSQL when configured, in-memory otherwise.
	var (
		termRepo   ports.TermSetRepository
		resultRepo ports.ResultRepository
		reportRepo ports.ReportRepository
	)
	if cfg.Database.URL != "" {
		db, err := initDatabase(cfg)
		if err != nil {
			log.Fatalf("Database error: %v", err)
		}
		defer db.Close()
		termRepo = postgres.NewTermSetRepository(db)
		resultRepo = postgres.NewResultRepository(db)
		reportRepo = postgres.NewReportRepository(db)
		logger.Info("using PostgreSQL repositories")
	} else {
		termRepo = memory.NewTermSetRepository()
		resultRepo = memory.NewResultRepository()
		reportRepo = memory.NewReportRepository()
		logger.Info("DATABASE_URL not set, using in-memory repositories")
	}

	cache := phonetics.NewVectorCache()
	registry := profile.NewBuiltinRegistry()

	detectorCfg := detectorConfigFrom(cfg)
	harnessCfg := validation.Config{
		Folds:        cfg.Harness.Folds,
		Seed:         cfg.Harness.Seed,
		MinWinMargin: cfg.Harness.MinWinMargin,
		MaxParallel:  validation.DefaultConfig().MaxParallel,
	}

	scoringService := app.NewScoringService(cache, registry, termRepo, resultRepo, 8, logger)
	detectionService := app.NewDetectionService(cache, registry, termRepo, detectorCfg, logger)
	validationService := app.NewValidationService(cache, registry, termRepo, reportRepo, harnessCfg, logger)
	profileService := app.NewProfileService(registry)

	server := ui.NewServer(scoringService, detectionService, validationService, profileService, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := server.Run(ctx, cfg.Server.Port); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}

// detectorConfigFrom overlays the environment knobs on the defaults
func detectorConfigFrom(cfg *config.Config) detector.Config {
	dc := detector.DefaultConfig()
	dc.Folds = cfg.Detector.Folds
	dc.MinMetricDelta = cfg.Detector.MinMetricDelta
	dc.Alpha = cfg.Detector.Alpha
	dc.MinRows = dc.Folds * dc.MinRowsPerFold
	return dc
}
