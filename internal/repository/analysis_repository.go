package repository

import (
	"context"
	"errors"

	"jobsense/internal/database"
	"jobsense/internal/domain/analysis"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var ErrAnalysisNotFound = errors.New("analysis not found")

type AnalysisRepository interface {
	Upsert(ctx context.Context, a *analysis.JobAnalysis) error
	GetByJobID(ctx context.Context, jobID uuid.UUID) (analysis.JobAnalysis, error)
	ExistsByJobID(ctx context.Context, jobID uuid.UUID) (bool, error)
}

type PostgresAnalysisRepository struct {
	db database.DB
}

func NewPostgresAnalysisRepository(db database.DB) *PostgresAnalysisRepository {
	return &PostgresAnalysisRepository{db: db}
}

// Upsert writes one analysis per job post. A re-analysis overwrites the
// existing row in place and keeps its original id.
func (r *PostgresAnalysisRepository) Upsert(ctx context.Context, a *analysis.JobAnalysis) error {
	row := r.db.QueryRow(ctx,
		`INSERT INTO job_analyses (
			id, job_post_id, required_skills, preferred_skills, key_technologies, soft_skills,
			experience_level, min_years, max_years, education_requirements, certifications,
			responsibilities, benefits, salary_range, employment_type, remote_policy,
			industry, company_size, analyzed_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
		ON CONFLICT (job_post_id) DO UPDATE SET
			required_skills = EXCLUDED.required_skills,
			preferred_skills = EXCLUDED.preferred_skills,
			key_technologies = EXCLUDED.key_technologies,
			soft_skills = EXCLUDED.soft_skills,
			experience_level = EXCLUDED.experience_level,
			min_years = EXCLUDED.min_years,
			max_years = EXCLUDED.max_years,
			education_requirements = EXCLUDED.education_requirements,
			certifications = EXCLUDED.certifications,
			responsibilities = EXCLUDED.responsibilities,
			benefits = EXCLUDED.benefits,
			salary_range = EXCLUDED.salary_range,
			employment_type = EXCLUDED.employment_type,
			remote_policy = EXCLUDED.remote_policy,
			industry = EXCLUDED.industry,
			company_size = EXCLUDED.company_size,
			analyzed_at = EXCLUDED.analyzed_at,
			updated_at = now()
		RETURNING id, created_at, updated_at`,
		a.ID, a.JobPostID, a.RequiredSkills, a.PreferredSkills, a.KeyTechnologies, a.SoftSkills,
		a.ExperienceLevel, a.MinYears, a.MaxYears, a.EducationRequirements, a.Certifications,
		a.Responsibilities, a.Benefits, a.SalaryRange, a.EmploymentType, a.RemotePolicy,
		a.Industry, a.CompanySize, a.AnalyzedAt,
	)
	return row.Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)
}

func (r *PostgresAnalysisRepository) GetByJobID(ctx context.Context, jobID uuid.UUID) (analysis.JobAnalysis, error) {
	var a analysis.JobAnalysis
	row := r.db.QueryRow(ctx,
		`SELECT id, job_post_id, required_skills, preferred_skills, key_technologies, soft_skills,
			experience_level, min_years, max_years, education_requirements, certifications,
			responsibilities, benefits, salary_range, employment_type, remote_policy,
			industry, company_size, analyzed_at, created_at, updated_at
		 FROM job_analyses
		 WHERE job_post_id = $1`,
		jobID,
	)
	err := row.Scan(
		&a.ID, &a.JobPostID, &a.RequiredSkills, &a.PreferredSkills, &a.KeyTechnologies, &a.SoftSkills,
		&a.ExperienceLevel, &a.MinYears, &a.MaxYears, &a.EducationRequirements, &a.Certifications,
		&a.Responsibilities, &a.Benefits, &a.SalaryRange, &a.EmploymentType, &a.RemotePolicy,
		&a.Industry, &a.CompanySize, &a.AnalyzedAt, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return analysis.JobAnalysis{}, ErrAnalysisNotFound
		}
		return analysis.JobAnalysis{}, err
	}
	return a, nil
}

func (r *PostgresAnalysisRepository) ExistsByJobID(ctx context.Context, jobID uuid.UUID) (bool, error) {
	var exists bool
	row := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM job_analyses WHERE job_post_id = $1)`, jobID)
	if err := row.Scan(&exists); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, err
	}
	return exists, nil
}
