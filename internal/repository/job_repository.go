package repository

import (
	"context"
	"errors"

	"jobsense/internal/database"
	"jobsense/internal/domain/job"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var ErrJobNotFound = errors.New("job not found")

type JobRepository interface {
	Create(ctx context.Context, p *job.Post) error
	GetByID(ctx context.Context, id uuid.UUID) (job.Post, error)
	List(ctx context.Context, limit, offset int) ([]job.Post, error)
	Delete(ctx context.Context, id uuid.UUID) error
	ExistsByID(ctx context.Context, id uuid.UUID) (bool, error)
	ListWithoutAnalysis(ctx context.Context, limit, offset int) ([]job.Post, error)
}

type PostgresJobRepository struct {
	db database.DB
}

func NewPostgresJobRepository(db database.DB) *PostgresJobRepository {
	return &PostgresJobRepository{db: db}
}

func (r *PostgresJobRepository) Create(ctx context.Context, p *job.Post) error {
	row := r.db.QueryRow(ctx,
		`INSERT INTO job_posts (id, title, company, location, job_type, description)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING created_at, updated_at`,
		p.ID, p.Title, p.Company, p.Location, p.JobType, p.Description,
	)
	return row.Scan(&p.CreatedAt, &p.UpdatedAt)
}

func (r *PostgresJobRepository) GetByID(ctx context.Context, id uuid.UUID) (job.Post, error) {
	var p job.Post
	row := r.db.QueryRow(ctx,
		`SELECT id, title, company, location, job_type, description, created_at, updated_at
		 FROM job_posts
		 WHERE id = $1`,
		id,
	)
	if err := row.Scan(&p.ID, &p.Title, &p.Company, &p.Location, &p.JobType, &p.Description, &p.CreatedAt, &p.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return job.Post{}, ErrJobNotFound
		}
		return job.Post{}, err
	}
	return p, nil
}

func (r *PostgresJobRepository) List(ctx context.Context, limit, offset int) ([]job.Post, error) {
	limit, offset = clampPage(limit, offset)
	rows, err := r.db.Query(ctx,
		`SELECT id, title, company, location, job_type, description, created_at, updated_at
		 FROM job_posts
		 ORDER BY created_at DESC
		 LIMIT $1 OFFSET $2`,
		limit, offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanJobPosts(rows)
}

func (r *PostgresJobRepository) Delete(ctx context.Context, id uuid.UUID) error {
	affected, err := r.db.Exec(ctx, `DELETE FROM job_posts WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrJobNotFound
	}
	return nil
}

func (r *PostgresJobRepository) ExistsByID(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	row := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM job_posts WHERE id = $1)`, id)
	if err := row.Scan(&exists); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, err
	}
	return exists, nil
}

func (r *PostgresJobRepository) ListWithoutAnalysis(ctx context.Context, limit, offset int) ([]job.Post, error) {
	if limit <= 0 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}

	rows, err := r.db.Query(ctx,
		`SELECT jp.id, jp.title, jp.company, jp.location, jp.job_type, jp.description, jp.created_at, jp.updated_at
		 FROM job_posts jp
		 LEFT JOIN job_analyses ja ON ja.job_post_id = jp.id
		 WHERE ja.id IS NULL
		 ORDER BY jp.created_at ASC
		 LIMIT $1 OFFSET $2`,
		limit, offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanJobPosts(rows)
}

func clampPage(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 50 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

func scanJobPosts(rows database.Rows) ([]job.Post, error) {
	out := make([]job.Post, 0)
	for rows.Next() {
		var p job.Post
		if err := rows.Scan(&p.ID, &p.Title, &p.Company, &p.Location, &p.JobType, &p.Description, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
