package repository

import (
	"context"
	"errors"

	"jobsense/internal/database"
	"jobsense/internal/domain/generation"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var ErrCoverLetterNotFound = errors.New("cover letter not found")

type CoverLetterRepository interface {
	Create(ctx context.Context, cl *generation.CoverLetter) error
	GetByID(ctx context.Context, id uuid.UUID) (generation.CoverLetter, error)
	List(ctx context.Context, limit, offset int) ([]generation.CoverLetter, error)
	ListByJobID(ctx context.Context, jobID uuid.UUID, limit, offset int) ([]generation.CoverLetter, error)
}

type PostgresCoverLetterRepository struct {
	db database.DB
}

func NewPostgresCoverLetterRepository(db database.DB) *PostgresCoverLetterRepository {
	return &PostgresCoverLetterRepository{db: db}
}

func (r *PostgresCoverLetterRepository) Create(ctx context.Context, cl *generation.CoverLetter) error {
	row := r.db.QueryRow(ctx,
		`INSERT INTO cover_letters (id, job_post_id, document_id, content, customization_notes)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING created_at`,
		cl.ID, cl.JobPostID, cl.DocumentID, cl.Content, cl.CustomizationNotes,
	)
	return row.Scan(&cl.CreatedAt)
}

func (r *PostgresCoverLetterRepository) GetByID(ctx context.Context, id uuid.UUID) (generation.CoverLetter, error) {
	var cl generation.CoverLetter
	row := r.db.QueryRow(ctx,
		`SELECT id, job_post_id, document_id, content, customization_notes, created_at
		 FROM cover_letters
		 WHERE id = $1`,
		id,
	)
	if err := row.Scan(&cl.ID, &cl.JobPostID, &cl.DocumentID, &cl.Content, &cl.CustomizationNotes, &cl.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return generation.CoverLetter{}, ErrCoverLetterNotFound
		}
		return generation.CoverLetter{}, err
	}
	return cl, nil
}

func (r *PostgresCoverLetterRepository) List(ctx context.Context, limit, offset int) ([]generation.CoverLetter, error) {
	limit, offset = clampPage(limit, offset)
	rows, err := r.db.Query(ctx,
		`SELECT id, job_post_id, document_id, content, customization_notes, created_at
		 FROM cover_letters
		 ORDER BY created_at DESC
		 LIMIT $1 OFFSET $2`,
		limit, offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanCoverLetters(rows)
}

func (r *PostgresCoverLetterRepository) ListByJobID(ctx context.Context, jobID uuid.UUID, limit, offset int) ([]generation.CoverLetter, error) {
	limit, offset = clampPage(limit, offset)
	rows, err := r.db.Query(ctx,
		`SELECT id, job_post_id, document_id, content, customization_notes, created_at
		 FROM cover_letters
		 WHERE job_post_id = $1
		 ORDER BY created_at DESC
		 LIMIT $2 OFFSET $3`,
		jobID, limit, offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanCoverLetters(rows)
}

func scanCoverLetters(rows database.Rows) ([]generation.CoverLetter, error) {
	out := make([]generation.CoverLetter, 0)
	for rows.Next() {
		var cl generation.CoverLetter
		if err := rows.Scan(&cl.ID, &cl.JobPostID, &cl.DocumentID, &cl.Content, &cl.CustomizationNotes, &cl.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, cl)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
