package repository

import (
	"context"
	"errors"
	"time"

	"jobsense/internal/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var ErrEmbeddingNotFound = errors.New("embedding not found")

// Embedding is a stored vector for a job post or a candidate document.
type Embedding struct {
	OwnerID    uuid.UUID
	Vector     []float32
	SourceText string
	Dimensions int
	UpdatedAt  time.Time
}

// CandidateVector pairs a candidate embedding with the document text the
// matcher runs skill overlap against.
type CandidateVector struct {
	DocumentID uuid.UUID
	Vector     []float32
	RawText    string
}

type EmbeddingRepository interface {
	UpsertJobEmbedding(ctx context.Context, jobID uuid.UUID, vector []float32, sourceText string) error
	GetJobEmbedding(ctx context.Context, jobID uuid.UUID) (Embedding, error)
	UpsertCandidateEmbedding(ctx context.Context, documentID uuid.UUID, vector []float32, sourceText string) error
	GetCandidateEmbedding(ctx context.Context, documentID uuid.UUID) (Embedding, error)
	ListCandidateVectors(ctx context.Context) ([]CandidateVector, error)
}

type PostgresEmbeddingRepository struct {
	db database.DB
}

func NewPostgresEmbeddingRepository(db database.DB) *PostgresEmbeddingRepository {
	return &PostgresEmbeddingRepository{db: db}
}

func (r *PostgresEmbeddingRepository) UpsertJobEmbedding(ctx context.Context, jobID uuid.UUID, vector []float32, sourceText string) error {
	return r.upsert(ctx, "job_embeddings", "job_post_id", jobID, vector, sourceText)
}

func (r *PostgresEmbeddingRepository) GetJobEmbedding(ctx context.Context, jobID uuid.UUID) (Embedding, error) {
	return r.get(ctx, "job_embeddings", "job_post_id", jobID)
}

func (r *PostgresEmbeddingRepository) UpsertCandidateEmbedding(ctx context.Context, documentID uuid.UUID, vector []float32, sourceText string) error {
	return r.upsert(ctx, "candidate_embeddings", "document_id", documentID, vector, sourceText)
}

func (r *PostgresEmbeddingRepository) GetCandidateEmbedding(ctx context.Context, documentID uuid.UUID) (Embedding, error) {
	return r.get(ctx, "candidate_embeddings", "document_id", documentID)
}

func (r *PostgresEmbeddingRepository) ListCandidateVectors(ctx context.Context) ([]CandidateVector, error) {
	rows, err := r.db.Query(ctx,
		`SELECT ce.document_id, ce.vector, cd.raw_text
		 FROM candidate_embeddings ce
		 JOIN candidate_documents cd ON cd.id = ce.document_id
		 ORDER BY ce.document_id`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]CandidateVector, 0)
	for rows.Next() {
		var cv CandidateVector
		if err := rows.Scan(&cv.DocumentID, &cv.Vector, &cv.RawText); err != nil {
			return nil, err
		}
		out = append(out, cv)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresEmbeddingRepository) upsert(ctx context.Context, table, ownerColumn string, ownerID uuid.UUID, vector []float32, sourceText string) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO `+table+` (`+ownerColumn+`, vector, source_text, dimensions, updated_at)
		 VALUES ($1, $2, $3, $4, now())
		 ON CONFLICT (`+ownerColumn+`) DO UPDATE SET
			vector = EXCLUDED.vector,
			source_text = EXCLUDED.source_text,
			dimensions = EXCLUDED.dimensions,
			updated_at = now()`,
		ownerID, vector, sourceText, len(vector),
	)
	return err
}

func (r *PostgresEmbeddingRepository) get(ctx context.Context, table, ownerColumn string, ownerID uuid.UUID) (Embedding, error) {
	var e Embedding
	row := r.db.QueryRow(ctx,
		`SELECT `+ownerColumn+`, vector, source_text, dimensions, updated_at
		 FROM `+table+`
		 WHERE `+ownerColumn+` = $1`,
		ownerID,
	)
	if err := row.Scan(&e.OwnerID, &e.Vector, &e.SourceText, &e.Dimensions, &e.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Embedding{}, ErrEmbeddingNotFound
		}
		return Embedding{}, err
	}
	return e, nil
}
