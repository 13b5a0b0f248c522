package usecase

import (
	"context"
	"errors"
	"testing"

	"jobsense/internal/domain/analysis"
	"jobsense/internal/repository"

	"github.com/google/uuid"
)

func TestMatchUsecase_MatchCandidates_InvalidParams(t *testing.T) {
	p := testJobPost()
	uc := NewMatchUsecase(newMockJobRepo(p), newMockAnalysisRepo(), newMockEmbeddingRepo())

	cases := []MatchParams{
		{Limit: 51},
		{Limit: -1},
		{Limit: 10, MinScore: -0.1},
		{Limit: 10, MinScore: 1.5},
	}
	for _, params := range cases {
		if _, err := uc.MatchCandidates(context.Background(), p.ID, params); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("params %+v: expected ErrInvalidInput, got %v", params, err)
		}
	}
}

func TestMatchUsecase_MatchCandidates_JobNotFound(t *testing.T) {
	uc := NewMatchUsecase(newMockJobRepo(), newMockAnalysisRepo(), newMockEmbeddingRepo())
	if _, err := uc.MatchCandidates(context.Background(), uuid.New(), MatchParams{}); !errors.Is(err, ErrJobNotFound) {
		t.Fatalf("expected ErrJobNotFound, got %v", err)
	}
}

func TestMatchUsecase_MatchCandidates_MissingEmbeddingYieldsEmpty(t *testing.T) {
	p := testJobPost()
	analyses := newMockAnalysisRepo()
	analyses.stored[p.ID] = analysis.JobAnalysis{JobPostID: p.ID, RequiredSkills: []string{"Python"}}

	uc := NewMatchUsecase(newMockJobRepo(p), analyses, newMockEmbeddingRepo())
	matches, err := uc.MatchCandidates(context.Background(), p.ID, MatchParams{})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(matches) != 0 {
		t.Fatalf("expected empty matches, got %d", len(matches))
	}
}

func TestMatchUsecase_MatchCandidates_MissingAnalysisYieldsEmpty(t *testing.T) {
	p := testJobPost()
	embeddings := newMockEmbeddingRepo()
	embeddings.jobVecs[p.ID] = repository.Embedding{OwnerID: p.ID, Vector: []float32{1, 0}, Dimensions: 2}

	uc := NewMatchUsecase(newMockJobRepo(p), newMockAnalysisRepo(), embeddings)
	matches, err := uc.MatchCandidates(context.Background(), p.ID, MatchParams{})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(matches) != 0 {
		t.Fatalf("expected empty matches, got %d", len(matches))
	}
}

func TestMatchUsecase_MatchCandidates_RanksAndFilters(t *testing.T) {
	p := testJobPost()
	analyses := newMockAnalysisRepo()
	analyses.stored[p.ID] = analysis.JobAnalysis{JobPostID: p.ID, RequiredSkills: []string{"Python", "Go"}}

	strong := uuid.New()
	weak := uuid.New()
	broken := uuid.New()

	embeddings := newMockEmbeddingRepo()
	embeddings.jobVecs[p.ID] = repository.Embedding{OwnerID: p.ID, Vector: []float32{1, 0}, Dimensions: 2}
	embeddings.candidates = []repository.CandidateVector{
		{DocumentID: strong, Vector: []float32{1, 0}, RawText: "Ten years of Python and Go in production."},
		{DocumentID: weak, Vector: []float32{0, 1}, RawText: "Graphic design portfolio."},
		{DocumentID: broken, Vector: []float32{1}, RawText: "Python and Go expert."},
	}

	uc := NewMatchUsecase(newMockJobRepo(p), analyses, embeddings)
	matches, err := uc.MatchCandidates(context.Background(), p.ID, MatchParams{Limit: 10, MinScore: 0.4})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(matches) != 1 {
		t.Fatalf("expected only the strong candidate, got %d matches", len(matches))
	}

	m := matches[0]
	if m.DocumentID != strong {
		t.Fatalf("wrong candidate ranked first: %s", m.DocumentID)
	}
	if m.Score < 0.99 || m.Score > 1.0 {
		t.Fatalf("identical vector with full overlap should score ~1.0, got %f", m.Score)
	}
	if len(m.MatchedSkills) != 2 {
		t.Fatalf("expected both skills matched, got %v", m.MatchedSkills)
	}

	// The weak candidate sits at 0.7*0.5 = 0.35 and must pass with no
	// threshold; the dimension-mismatched one is always skipped.
	all, err := uc.MatchCandidates(context.Background(), p.ID, MatchParams{Limit: 10, MinScore: 0})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 rankable candidates, got %d", len(all))
	}
	if all[1].DocumentID != weak {
		t.Fatalf("weak candidate should rank second")
	}
	if diff := all[1].Score - 0.35; diff < -1e-9 || diff > 1e-9 {
		t.Fatalf("expected weak score 0.35, got %f", all[1].Score)
	}
}
