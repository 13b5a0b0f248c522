package usecase

import (
	"context"
	"errors"
	"strings"

	"jobsense/internal/ai"
	"jobsense/internal/domain/candidate"
	"jobsense/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// maxEmbeddingChars caps how much document text goes to the embedding
// model. Matching still runs skill overlap against the full raw text.
const maxEmbeddingChars = 8000

type IngestInput struct {
	Name string
	Text string
}

type IngestResult struct {
	Document            candidate.Document
	EmbeddingCreated    bool
	EmbeddingDimensions int
}

type CandidateUsecase interface {
	Ingest(ctx context.Context, in IngestInput) (IngestResult, error)
	GetCandidate(ctx context.Context, id uuid.UUID) (candidate.Document, error)
	ListCandidates(ctx context.Context, limit, offset int) ([]candidate.Document, error)
}

type Candidate struct {
	candidates repository.CandidateRepository
	embeddings repository.EmbeddingRepository
	embedder   ai.Embedder
	log        *zap.Logger
}

func NewCandidateUsecase(candidates repository.CandidateRepository, embeddings repository.EmbeddingRepository, embedder ai.Embedder, log *zap.Logger) *Candidate {
	if log == nil {
		log = zap.NewNop()
	}
	return &Candidate{candidates: candidates, embeddings: embeddings, embedder: embedder, log: log}
}

// Ingest stores a parsed CV document and embeds it. An embedding failure
// keeps the document; the matcher simply skips candidates without vectors.
func (u *Candidate) Ingest(ctx context.Context, in IngestInput) (IngestResult, error) {
	text := strings.TrimSpace(in.Text)
	if text == "" {
		return IngestResult{}, ErrInvalidInput
	}

	d := candidate.Document{
		ID:      uuid.New(),
		Name:    strings.TrimSpace(in.Name),
		RawText: text,
	}
	if err := u.candidates.Create(ctx, &d); err != nil {
		return IngestResult{}, ErrInternal
	}

	res := IngestResult{Document: d}

	embedText := text
	if runes := []rune(embedText); len(runes) > maxEmbeddingChars {
		embedText = string(runes[:maxEmbeddingChars])
	}
	vec, err := u.embedder.EmbedText(ctx, embedText)
	if err != nil {
		u.log.Warn("candidate embedding failed, document stored without vector",
			zap.String("document_id", d.ID.String()), zap.Error(err))
		return res, nil
	}
	if err := u.embeddings.UpsertCandidateEmbedding(ctx, d.ID, vec, embedText); err != nil {
		u.log.Warn("candidate embedding upsert failed",
			zap.String("document_id", d.ID.String()), zap.Error(err))
		return res, nil
	}

	res.EmbeddingCreated = true
	res.EmbeddingDimensions = len(vec)
	return res, nil
}

func (u *Candidate) GetCandidate(ctx context.Context, id uuid.UUID) (candidate.Document, error) {
	if id == uuid.Nil {
		return candidate.Document{}, ErrCandidateNotFound
	}
	d, err := u.candidates.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrCandidateNotFound) {
			return candidate.Document{}, ErrCandidateNotFound
		}
		return candidate.Document{}, ErrInternal
	}
	return d, nil
}

func (u *Candidate) ListCandidates(ctx context.Context, limit, offset int) ([]candidate.Document, error) {
	items, err := u.candidates.List(ctx, limit, offset)
	if err != nil {
		return nil, ErrInternal
	}
	return items, nil
}
