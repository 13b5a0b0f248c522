package dto

import (
	"time"

	"github.com/google/uuid"

	"jobsense/internal/domain/analysis"
)

type SalaryRangeResponse struct {
	Min      *float64 `json:"min,omitempty"`
	Max      *float64 `json:"max,omitempty"`
	Currency string   `json:"currency,omitempty"`
	Period   string   `json:"period,omitempty"`
}

type AnalysisResponse struct {
	ID        uuid.UUID `json:"id"`
	JobPostID uuid.UUID `json:"job_post_id"`

	RequiredSkills  []string `json:"required_skills"`
	PreferredSkills []string `json:"preferred_skills"`
	KeyTechnologies []string `json:"key_technologies"`
	SoftSkills      []string `json:"soft_skills"`

	ExperienceLevel    string `json:"experience_level"`
	MinYearsExperience *int   `json:"min_years_experience,omitempty"`
	MaxYearsExperience *int   `json:"max_years_experience,omitempty"`

	EducationRequirements []string `json:"education_requirements"`
	Certifications        []string `json:"certifications"`
	Responsibilities      []string `json:"responsibilities"`
	Benefits              []string `json:"benefits"`

	SalaryRange    *SalaryRangeResponse `json:"salary_range,omitempty"`
	EmploymentType string               `json:"employment_type"`
	RemotePolicy   string               `json:"remote_policy,omitempty"`
	Industry       string               `json:"industry,omitempty"`
	CompanySize    string               `json:"company_size,omitempty"`

	AnalyzedAt time.Time `json:"analyzed_at"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// AnalyzeResponse reports the analysis together with how it was obtained,
// so clients can tell a cache hit from a fresh extraction and see whether
// the heuristic fallback had to step in.
type AnalyzeResponse struct {
	Analysis            AnalysisResponse `json:"analysis"`
	Cached              bool             `json:"cached"`
	FallbackUsed        bool             `json:"fallback_used"`
	EmbeddingCreated    bool             `json:"embedding_created"`
	EmbeddingDimensions int              `json:"embedding_dimensions,omitempty"`
}

func NewAnalysisResponse(a analysis.JobAnalysis) AnalysisResponse {
	resp := AnalysisResponse{
		ID:                    a.ID,
		JobPostID:             a.JobPostID,
		RequiredSkills:        a.RequiredSkills,
		PreferredSkills:       a.PreferredSkills,
		KeyTechnologies:       a.KeyTechnologies,
		SoftSkills:            a.SoftSkills,
		ExperienceLevel:       string(a.ExperienceLevel),
		MinYearsExperience:    a.MinYears,
		MaxYearsExperience:    a.MaxYears,
		EducationRequirements: a.EducationRequirements,
		Certifications:        a.Certifications,
		Responsibilities:      a.Responsibilities,
		Benefits:              a.Benefits,
		EmploymentType:        string(a.EmploymentType),
		RemotePolicy:          string(a.RemotePolicy),
		Industry:              a.Industry,
		CompanySize:           a.CompanySize,
		AnalyzedAt:            a.AnalyzedAt,
		CreatedAt:             a.CreatedAt,
		UpdatedAt:             a.UpdatedAt,
	}
	if a.SalaryRange != nil {
		resp.SalaryRange = &SalaryRangeResponse{
			Min:      a.SalaryRange.Min,
			Max:      a.SalaryRange.Max,
			Currency: a.SalaryRange.Currency,
			Period:   a.SalaryRange.Period,
		}
	}
	return resp
}
