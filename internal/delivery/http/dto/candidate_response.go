package dto

import (
	"time"

	"github.com/google/uuid"

	"jobsense/internal/domain/candidate"
)

type CandidateResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	RawText   string    `json:"raw_text"`
	CreatedAt time.Time `json:"created_at"`
}

// CandidateSummaryResponse omits the document body; list endpoints return
// it so responses stay small when CVs run long.
type CandidateSummaryResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	TextChars int       `json:"text_chars"`
	CreatedAt time.Time `json:"created_at"`
}

type IngestCandidateResponse struct {
	Candidate           CandidateResponse `json:"candidate"`
	EmbeddingCreated    bool              `json:"embedding_created"`
	EmbeddingDimensions int               `json:"embedding_dimensions,omitempty"`
}

func NewCandidateResponse(d candidate.Document) CandidateResponse {
	return CandidateResponse{
		ID:        d.ID,
		Name:      d.Name,
		RawText:   d.RawText,
		CreatedAt: d.CreatedAt,
	}
}

func NewCandidateSummaryResponses(docs []candidate.Document) []CandidateSummaryResponse {
	out := make([]CandidateSummaryResponse, 0, len(docs))
	for _, d := range docs {
		out = append(out, CandidateSummaryResponse{
			ID:        d.ID,
			Name:      d.Name,
			TextChars: len([]rune(d.RawText)),
			CreatedAt: d.CreatedAt,
		})
	}
	return out
}
