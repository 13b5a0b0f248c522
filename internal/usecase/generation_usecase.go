package usecase

import (
	"context"
	"errors"
	"strings"

	"jobsense/internal/ai"
	"jobsense/internal/domain/candidate"
	"jobsense/internal/domain/generation"
	"jobsense/internal/domain/job"
	"jobsense/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type CoverLetterInput struct {
	JobID              uuid.UUID
	CandidateID        uuid.UUID
	CustomInstructions string
}

type CVSummaryInput struct {
	JobID       uuid.UUID
	CandidateID uuid.UUID
}

type GenerationUsecase interface {
	GenerateCoverLetter(ctx context.Context, in CoverLetterInput) (generation.CoverLetter, error)
	TailorCVSummary(ctx context.Context, in CVSummaryInput) (string, error)
	GetCoverLetter(ctx context.Context, id uuid.UUID) (generation.CoverLetter, error)
	ListCoverLetters(ctx context.Context, jobID uuid.UUID, limit, offset int) ([]generation.CoverLetter, error)
}

type Generation struct {
	jobs         repository.JobRepository
	candidates   repository.CandidateRepository
	coverLetters repository.CoverLetterRepository
	generator    ai.Generator
	log          *zap.Logger
}

func NewGenerationUsecase(
	jobs repository.JobRepository,
	candidates repository.CandidateRepository,
	coverLetters repository.CoverLetterRepository,
	generator ai.Generator,
	log *zap.Logger,
) *Generation {
	if log == nil {
		log = zap.NewNop()
	}
	return &Generation{
		jobs:         jobs,
		candidates:   candidates,
		coverLetters: coverLetters,
		generator:    generator,
		log:          log,
	}
}

// GenerateCoverLetter writes a letter grounded in the candidate's CV text.
// Unlike analysis there is no heuristic fallback: prose cannot be faked from
// rules, so an upstream failure surfaces as ErrUpstream.
func (u *Generation) GenerateCoverLetter(ctx context.Context, in CoverLetterInput) (generation.CoverLetter, error) {
	p, d, err := u.loadPair(ctx, in.JobID, in.CandidateID)
	if err != nil {
		return generation.CoverLetter{}, err
	}

	prompt := buildCoverLetterPrompt(p.Title, p.Company, p.Description, d.RawText, in.CustomInstructions)
	content, err := u.generator.GenerateText(ctx, prompt, coverLetterSystemPrompt)
	if err != nil {
		u.log.Warn("cover letter generation failed",
			zap.String("job_id", in.JobID.String()),
			zap.String("document_id", in.CandidateID.String()),
			zap.Error(err),
		)
		return generation.CoverLetter{}, ErrUpstream
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return generation.CoverLetter{}, ErrUpstream
	}

	cl := generation.CoverLetter{
		ID:                 uuid.New(),
		JobPostID:          p.ID,
		DocumentID:         d.ID,
		Content:            content,
		CustomizationNotes: strings.TrimSpace(in.CustomInstructions),
	}
	if err := u.coverLetters.Create(ctx, &cl); err != nil {
		return generation.CoverLetter{}, ErrInternal
	}
	return cl, nil
}

// TailorCVSummary returns a short professional summary aligned to the job.
// The result is not persisted.
func (u *Generation) TailorCVSummary(ctx context.Context, in CVSummaryInput) (string, error) {
	p, d, err := u.loadPair(ctx, in.JobID, in.CandidateID)
	if err != nil {
		return "", err
	}

	prompt := buildCVSummaryPrompt(p.Description, d.RawText)
	summary, err := u.generator.GenerateText(ctx, prompt, cvSummarySystemPrompt)
	if err != nil {
		u.log.Warn("cv summary generation failed",
			zap.String("job_id", in.JobID.String()),
			zap.String("document_id", in.CandidateID.String()),
			zap.Error(err),
		)
		return "", ErrUpstream
	}
	summary = strings.TrimSpace(summary)
	if summary == "" {
		return "", ErrUpstream
	}
	return summary, nil
}

func (u *Generation) GetCoverLetter(ctx context.Context, id uuid.UUID) (generation.CoverLetter, error) {
	if id == uuid.Nil {
		return generation.CoverLetter{}, ErrCoverLetterNotFound
	}
	cl, err := u.coverLetters.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrCoverLetterNotFound) {
			return generation.CoverLetter{}, ErrCoverLetterNotFound
		}
		return generation.CoverLetter{}, ErrInternal
	}
	return cl, nil
}

// ListCoverLetters lists letters, optionally scoped to one job.
func (u *Generation) ListCoverLetters(ctx context.Context, jobID uuid.UUID, limit, offset int) ([]generation.CoverLetter, error) {
	var (
		items []generation.CoverLetter
		err   error
	)
	if jobID == uuid.Nil {
		items, err = u.coverLetters.List(ctx, limit, offset)
	} else {
		items, err = u.coverLetters.ListByJobID(ctx, jobID, limit, offset)
	}
	if err != nil {
		return nil, ErrInternal
	}
	return items, nil
}

func (u *Generation) loadPair(ctx context.Context, jobID, candidateID uuid.UUID) (job.Post, candidate.Document, error) {
	if jobID == uuid.Nil {
		return job.Post{}, candidate.Document{}, ErrJobNotFound
	}
	if candidateID == uuid.Nil {
		return job.Post{}, candidate.Document{}, ErrCandidateNotFound
	}

	p, err := u.jobs.GetByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, repository.ErrJobNotFound) {
			return job.Post{}, candidate.Document{}, ErrJobNotFound
		}
		return job.Post{}, candidate.Document{}, ErrInternal
	}

	d, err := u.candidates.GetByID(ctx, candidateID)
	if err != nil {
		if errors.Is(err, repository.ErrCandidateNotFound) {
			return job.Post{}, candidate.Document{}, ErrCandidateNotFound
		}
		return job.Post{}, candidate.Document{}, ErrInternal
	}
	return p, d, nil
}
