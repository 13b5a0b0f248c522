package dto

import (
	"time"

	"github.com/google/uuid"

	"jobsense/internal/domain/job"
)

type JobResponse struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Company     string    `json:"company"`
	Location    string    `json:"location,omitempty"`
	JobType     string    `json:"job_type,omitempty"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func NewJobResponse(p job.Post) JobResponse {
	return JobResponse{
		ID:          p.ID,
		Title:       p.Title,
		Company:     p.Company,
		Location:    p.Location,
		JobType:     p.JobType,
		Description: p.Description,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func NewJobResponses(posts []job.Post) []JobResponse {
	out := make([]JobResponse, 0, len(posts))
	for _, p := range posts {
		out = append(out, NewJobResponse(p))
	}
	return out
}
