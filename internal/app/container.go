package app

import (
	"context"
	"time"

	"go.uber.org/zap"

	"jobsense/internal/ai/gemini"
	"jobsense/internal/config"
	"jobsense/internal/database"
	dbpostgres "jobsense/internal/database/postgres"
	"jobsense/internal/infrastructure/cache"
	"jobsense/internal/repository"
	"jobsense/internal/usecase"
	"jobsense/internal/ws"
)

const connectTimeout = 10 * time.Second

// Container wires the infrastructure and usecases once at startup.
// Everything is plain constructor injection; there is no lazy init.
type Container struct {
	Config config.Config
	Log    *zap.Logger

	DB    database.DB
	Cache *cache.Redis
	AI    *gemini.Client
	Hub   *ws.Hub

	Jobs       usecase.JobUsecase
	Analyze    usecase.AnalyzeUsecase
	Match      usecase.MatchUsecase
	Candidates usecase.CandidateUsecase
	Generation usecase.GenerationUsecase
}

func NewContainer(ctx context.Context, cfg config.Config, log *zap.Logger) (*Container, error) {
	if log == nil {
		log = zap.NewNop()
	}

	connectCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	db, err := dbpostgres.Connect(connectCtx, cfg.Database)
	if err != nil {
		return nil, err
	}

	redis := cache.NewRedis(cfg.Redis, log)

	aiClient, err := gemini.NewClient(ctx, gemini.Config{
		APIKey:         cfg.AI.APIKey,
		Model:          cfg.AI.Model,
		EmbeddingModel: cfg.AI.EmbeddingModel,
		Timeout:        cfg.AI.Timeout,
	}, log)
	if err != nil {
		_ = redis.Close()
		_ = db.Close()
		return nil, err
	}

	hub := ws.NewHub(log)
	notifier := ws.NewNotifier(hub)

	jobRepo := repository.NewPostgresJobRepository(db)
	analysisRepo := repository.NewPostgresAnalysisRepository(db)
	embeddingRepo := repository.NewPostgresEmbeddingRepository(db)
	candidateRepo := repository.NewPostgresCandidateRepository(db)
	coverLetterRepo := repository.NewPostgresCoverLetterRepository(db)

	return &Container{
		Config: cfg,
		Log:    log,
		DB:     db,
		Cache:  redis,
		AI:     aiClient,
		Hub:    hub,

		Jobs:       usecase.NewJobUsecase(jobRepo, redis),
		Analyze:    usecase.NewAnalyzeUsecase(jobRepo, analysisRepo, embeddingRepo, aiClient, aiClient, redis, notifier, log),
		Match:      usecase.NewMatchUsecase(jobRepo, analysisRepo, embeddingRepo),
		Candidates: usecase.NewCandidateUsecase(candidateRepo, embeddingRepo, aiClient, log),
		Generation: usecase.NewGenerationUsecase(jobRepo, candidateRepo, coverLetterRepo, aiClient, log),
	}, nil
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}

	var firstErr error
	if c.Cache != nil {
		if err := c.Cache.Close(); err != nil {
			firstErr = err
		}
	}
	if c.DB != nil {
		if err := c.DB.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
