package dto

import (
	"time"

	"github.com/google/uuid"

	"jobsense/internal/domain/generation"
)

type CoverLetterResponse struct {
	ID                 uuid.UUID `json:"id"`
	JobPostID          uuid.UUID `json:"job_post_id"`
	DocumentID         uuid.UUID `json:"document_id"`
	Content            string    `json:"content"`
	CustomizationNotes string    `json:"customization_notes,omitempty"`
	CreatedAt          time.Time `json:"created_at"`
}

type CVSummaryResponse struct {
	JobPostID  uuid.UUID `json:"job_post_id"`
	DocumentID uuid.UUID `json:"document_id"`
	Summary    string    `json:"summary"`
}

func NewCoverLetterResponse(l generation.CoverLetter) CoverLetterResponse {
	return CoverLetterResponse{
		ID:                 l.ID,
		JobPostID:          l.JobPostID,
		DocumentID:         l.DocumentID,
		Content:            l.Content,
		CustomizationNotes: l.CustomizationNotes,
		CreatedAt:          l.CreatedAt,
	}
}

func NewCoverLetterResponses(letters []generation.CoverLetter) []CoverLetterResponse {
	out := make([]CoverLetterResponse, 0, len(letters))
	for _, l := range letters {
		out = append(out, NewCoverLetterResponse(l))
	}
	return out
}
