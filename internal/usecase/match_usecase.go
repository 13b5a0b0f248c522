package usecase

import (
	"context"
	"errors"

	"jobsense/internal/domain/matching"
	"jobsense/internal/repository"

	"github.com/google/uuid"
)

const (
	defaultMatchLimit = 10
	maxMatchLimit     = 50
)

type MatchParams struct {
	Limit    int
	MinScore float64
}

type MatchUsecase interface {
	MatchCandidates(ctx context.Context, jobID uuid.UUID, params MatchParams) ([]matching.Match, error)
}

type Matcher struct {
	jobs       repository.JobRepository
	analyses   repository.AnalysisRepository
	embeddings repository.EmbeddingRepository
}

func NewMatchUsecase(jobs repository.JobRepository, analyses repository.AnalysisRepository, embeddings repository.EmbeddingRepository) *Matcher {
	return &Matcher{jobs: jobs, analyses: analyses, embeddings: embeddings}
}

// MatchCandidates ranks every embedded candidate document against the job's
// stored embedding and required skills. A job without an analysis or vector
// yields an empty list rather than an error.
func (u *Matcher) MatchCandidates(ctx context.Context, jobID uuid.UUID, params MatchParams) ([]matching.Match, error) {
	if params.Limit == 0 {
		params.Limit = defaultMatchLimit
	}
	if params.Limit < 1 || params.Limit > maxMatchLimit {
		return nil, ErrInvalidInput
	}
	if params.MinScore < 0 || params.MinScore > 1 {
		return nil, ErrInvalidInput
	}
	if jobID == uuid.Nil {
		return nil, ErrJobNotFound
	}

	exists, err := u.jobs.ExistsByID(ctx, jobID)
	if err != nil {
		return nil, ErrInternal
	}
	if !exists {
		return nil, ErrJobNotFound
	}

	jobEmb, err := u.embeddings.GetJobEmbedding(ctx, jobID)
	if err != nil {
		if errors.Is(err, repository.ErrEmbeddingNotFound) {
			return []matching.Match{}, nil
		}
		return nil, ErrInternal
	}

	a, err := u.analyses.GetByJobID(ctx, jobID)
	if err != nil {
		if errors.Is(err, repository.ErrAnalysisNotFound) {
			return []matching.Match{}, nil
		}
		return nil, ErrInternal
	}

	vectors, err := u.embeddings.ListCandidateVectors(ctx)
	if err != nil {
		return nil, ErrInternal
	}

	candidates := make([]matching.Candidate, 0, len(vectors))
	for _, v := range vectors {
		candidates = append(candidates, matching.Candidate{
			DocumentID: v.DocumentID,
			Vector:     v.Vector,
			Text:       v.RawText,
		})
	}

	return matching.Rank(jobEmb.Vector, a.RequiredSkills, candidates, params.MinScore, params.Limit), nil
}
