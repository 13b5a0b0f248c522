package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"jobsense/internal/ai/gemini"
	"jobsense/internal/config"
	"jobsense/internal/database/migration"
	dbpostgres "jobsense/internal/database/postgres"
	"jobsense/internal/infrastructure/cache"
	"jobsense/internal/logger"
	"jobsense/internal/pipeline"
	"jobsense/internal/repository"
	"jobsense/internal/usecase"
)

func main() {
	configPath := flag.String("config", "", "path to config file")
	workers := flag.Int("workers", 5, "concurrent analyses")
	batchSize := flag.Int("batch", 100, "jobs fetched per batch")
	rateLimit := flag.Int("rate", 0, "max analyses per second (0 = unlimited)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	zl, err := logger.New(cfg.App.LogJSON, cfg.App.Debug)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer func() { _ = zl.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	db, err := dbpostgres.Connect(connectCtx, cfg.Database)
	cancel()
	if err != nil {
		zl.Fatal("database connect failed", zap.Error(err))
	}
	defer func() { _ = db.Close() }()

	runner, err := migration.Embedded()
	if err != nil {
		zl.Fatal("load migrations failed", zap.Error(err))
	}
	migCtx, migCancel := context.WithTimeout(ctx, 2*time.Minute)
	err = runner.Run(migCtx, db)
	migCancel()
	if err != nil {
		zl.Fatal("migration failed", zap.Error(err))
	}

	redis := cache.NewRedis(cfg.Redis, zl)
	defer func() { _ = redis.Close() }()

	aiClient, err := gemini.NewClient(ctx, gemini.Config{
		APIKey:         cfg.AI.APIKey,
		Model:          cfg.AI.Model,
		EmbeddingModel: cfg.AI.EmbeddingModel,
		Timeout:        cfg.AI.Timeout,
	}, zl)
	if err != nil {
		zl.Fatal("gemini client failed", zap.Error(err))
	}

	jobRepo := repository.NewPostgresJobRepository(db)
	analyzer := usecase.NewAnalyzeUsecase(
		jobRepo,
		repository.NewPostgresAnalysisRepository(db),
		repository.NewPostgresEmbeddingRepository(db),
		aiClient,
		aiClient,
		redis,
		nil,
		zl,
	)

	p := pipeline.NewAnalysisPipeline(jobRepo, analyzer, zl)
	summary, err := p.Run(ctx, pipeline.RunParams{
		Workers:   *workers,
		BatchSize: *batchSize,
		RateLimit: *rateLimit,
	})
	if err != nil {
		zl.Error("analysis pipeline aborted", zap.Error(err))
	}

	zl.Info("analysis pipeline summary",
		zap.Int("processed", summary.Processed),
		zap.Int("succeeded", summary.Succeeded),
		zap.Int("failed", summary.Failed),
		zap.Int("fallbacks", summary.Fallbacks),
		zap.Int("embedded", summary.Embedded),
		zap.Duration("duration", summary.Duration),
	)

	if err != nil || summary.Failed > 0 {
		os.Exit(1)
	}
}
