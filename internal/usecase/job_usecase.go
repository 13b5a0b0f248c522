package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"jobsense/internal/domain/job"
	"jobsense/internal/repository"

	"github.com/google/uuid"
)

type CreateJobInput struct {
	Title       string
	Company     string
	Location    string
	JobType     string
	Description string
}

type JobUsecase interface {
	CreateJob(ctx context.Context, in CreateJobInput) (job.Post, error)
	GetJob(ctx context.Context, id uuid.UUID) (job.Post, error)
	ListJobs(ctx context.Context, limit, offset int) ([]job.Post, error)
	DeleteJob(ctx context.Context, id uuid.UUID) error
}

// AnalysisCache is the slice of the redis cache the usecases consume.
type AnalysisCache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	TryLock(ctx context.Context, key string, ttl time.Duration) bool
	Unlock(ctx context.Context, key string)
}

type Job struct {
	jobs  repository.JobRepository
	cache AnalysisCache
}

func NewJobUsecase(jobs repository.JobRepository, cache AnalysisCache) *Job {
	return &Job{jobs: jobs, cache: cache}
}

func (u *Job) CreateJob(ctx context.Context, in CreateJobInput) (job.Post, error) {
	title := strings.TrimSpace(in.Title)
	company := strings.TrimSpace(in.Company)
	if title == "" || company == "" {
		return job.Post{}, ErrInvalidInput
	}

	p := job.Post{
		ID:          uuid.New(),
		Title:       title,
		Company:     company,
		Location:    strings.TrimSpace(in.Location),
		JobType:     strings.TrimSpace(in.JobType),
		Description: in.Description,
	}
	if err := u.jobs.Create(ctx, &p); err != nil {
		return job.Post{}, ErrInternal
	}
	return p, nil
}

func (u *Job) GetJob(ctx context.Context, id uuid.UUID) (job.Post, error) {
	if id == uuid.Nil {
		return job.Post{}, ErrJobNotFound
	}
	p, err := u.jobs.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrJobNotFound) {
			return job.Post{}, ErrJobNotFound
		}
		return job.Post{}, ErrInternal
	}
	return p, nil
}

func (u *Job) ListJobs(ctx context.Context, limit, offset int) ([]job.Post, error) {
	items, err := u.jobs.List(ctx, limit, offset)
	if err != nil {
		return nil, ErrInternal
	}
	return items, nil
}

// DeleteJob removes the post. The analysis and embedding rows go with it
// via FK cascade, so only the cache entry needs explicit invalidation.
func (u *Job) DeleteJob(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return ErrJobNotFound
	}
	if err := u.jobs.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrJobNotFound) {
			return ErrJobNotFound
		}
		return ErrInternal
	}
	if u.cache != nil {
		_ = u.cache.Delete(ctx, analysisCacheKey(id))
	}
	return nil
}
