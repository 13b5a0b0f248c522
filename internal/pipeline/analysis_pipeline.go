package pipeline

import (
	"context"
	"sync/atomic"
	"time"

	"jobsense/internal/repository"
	"jobsense/internal/usecase"

	"go.uber.org/zap"
)

const defaultBatchLimit = 100

// AnalysisPipeline walks every job post without a stored analysis and runs
// the analyze operation for each, a batch at a time.
type AnalysisPipeline struct {
	jobs     repository.JobRepository
	analyzer usecase.AnalyzeUsecase
	log      *zap.Logger
}

type RunParams struct {
	Workers   int
	BatchSize int
	RateLimit int
}

type Summary struct {
	Processed int
	Succeeded int
	Failed    int
	Fallbacks int
	Embedded  int
	Duration  time.Duration
}

func NewAnalysisPipeline(jobs repository.JobRepository, analyzer usecase.AnalyzeUsecase, log *zap.Logger) *AnalysisPipeline {
	if log == nil {
		log = zap.NewNop()
	}
	return &AnalysisPipeline{jobs: jobs, analyzer: analyzer, log: log}
}

func (p *AnalysisPipeline) Run(ctx context.Context, params RunParams) (Summary, error) {
	start := time.Now()
	workers := params.Workers
	if workers <= 0 {
		workers = 5
	}
	batchSize := params.BatchSize
	if batchSize <= 0 {
		batchSize = defaultBatchLimit
	}

	var summary Summary
	var fallbacks, embedded atomic.Int64

	p.log.Info("analysis pipeline started",
		zap.Int("workers", workers),
		zap.Int("batch_size", batchSize),
		zap.Int("rate_limit", params.RateLimit),
	)

	offset := 0
	for {
		if err := ctx.Err(); err != nil {
			summary.Duration = time.Since(start)
			return summary, err
		}

		batch, err := p.jobs.ListWithoutAnalysis(ctx, batchSize, offset)
		if err != nil {
			summary.Duration = time.Since(start)
			return summary, err
		}
		if len(batch) == 0 {
			break
		}

		pool := NewWorkerPool(workers, len(batch))
		if params.RateLimit > 0 {
			pool.SetRateLimit(params.RateLimit)
		}
		results := pool.Run(ctx)

		for _, j := range batch {
			j := j
			pool.Submit(func(ctx context.Context) Result {
				taskStart := time.Now()
				res, err := p.analyzer.Analyze(ctx, j.ID, false)
				if err != nil {
					p.log.Warn("job analysis failed",
						zap.String("job_id", j.ID.String()),
						zap.Error(err),
						zap.Duration("duration", time.Since(taskStart)),
					)
					return Result{JobID: j.ID, Err: err}
				}

				if res.FallbackUsed {
					fallbacks.Add(1)
				}
				if res.EmbeddingCreated {
					embedded.Add(1)
				}
				p.log.Info("job analyzed",
					zap.String("job_id", j.ID.String()),
					zap.String("experience_level", string(res.Analysis.ExperienceLevel)),
					zap.Bool("fallback", res.FallbackUsed),
					zap.Bool("embedding_created", res.EmbeddingCreated),
					zap.Duration("duration", time.Since(taskStart)),
				)
				return Result{JobID: j.ID}
			})
		}

		pool.Close()

		batchFailed := 0
		for r := range results {
			summary.Processed++
			if r.Err != nil {
				summary.Failed++
				batchFailed++
			} else {
				summary.Succeeded++
			}
		}

		// Analyzed jobs drop out of the missing-analysis predicate, so the
		// offset only advances past rows that stayed behind after failures.
		offset += batchFailed
	}

	summary.Fallbacks = int(fallbacks.Load())
	summary.Embedded = int(embedded.Load())
	summary.Duration = time.Since(start)

	p.log.Info("analysis pipeline finished",
		zap.Int("processed", summary.Processed),
		zap.Int("succeeded", summary.Succeeded),
		zap.Int("failed", summary.Failed),
		zap.Int("fallbacks", summary.Fallbacks),
		zap.Int("embedded", summary.Embedded),
		zap.Duration("duration", summary.Duration),
	)
	return summary, nil
}
