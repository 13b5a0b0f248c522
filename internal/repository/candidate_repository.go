package repository

import (
	"context"
	"errors"

	"jobsense/internal/database"
	"jobsense/internal/domain/candidate"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var ErrCandidateNotFound = errors.New("candidate document not found")

type CandidateRepository interface {
	Create(ctx context.Context, d *candidate.Document) error
	GetByID(ctx context.Context, id uuid.UUID) (candidate.Document, error)
	List(ctx context.Context, limit, offset int) ([]candidate.Document, error)
	ExistsByID(ctx context.Context, id uuid.UUID) (bool, error)
}

type PostgresCandidateRepository struct {
	db database.DB
}

func NewPostgresCandidateRepository(db database.DB) *PostgresCandidateRepository {
	return &PostgresCandidateRepository{db: db}
}

func (r *PostgresCandidateRepository) Create(ctx context.Context, d *candidate.Document) error {
	row := r.db.QueryRow(ctx,
		`INSERT INTO candidate_documents (id, name, raw_text)
		 VALUES ($1, $2, $3)
		 RETURNING created_at`,
		d.ID, d.Name, d.RawText,
	)
	return row.Scan(&d.CreatedAt)
}

func (r *PostgresCandidateRepository) GetByID(ctx context.Context, id uuid.UUID) (candidate.Document, error) {
	var d candidate.Document
	row := r.db.QueryRow(ctx,
		`SELECT id, name, raw_text, created_at
		 FROM candidate_documents
		 WHERE id = $1`,
		id,
	)
	if err := row.Scan(&d.ID, &d.Name, &d.RawText, &d.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return candidate.Document{}, ErrCandidateNotFound
		}
		return candidate.Document{}, err
	}
	return d, nil
}

func (r *PostgresCandidateRepository) List(ctx context.Context, limit, offset int) ([]candidate.Document, error) {
	limit, offset = clampPage(limit, offset)
	rows, err := r.db.Query(ctx,
		`SELECT id, name, raw_text, created_at
		 FROM candidate_documents
		 ORDER BY created_at DESC
		 LIMIT $1 OFFSET $2`,
		limit, offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]candidate.Document, 0)
	for rows.Next() {
		var d candidate.Document
		if err := rows.Scan(&d.ID, &d.Name, &d.RawText, &d.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresCandidateRepository) ExistsByID(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	row := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM candidate_documents WHERE id = $1)`, id)
	if err := row.Scan(&exists); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, err
	}
	return exists, nil
}
