package dto

import (
	"github.com/google/uuid"

	"jobsense/internal/domain/matching"
)

type MatchResponse struct {
	DocumentID    uuid.UUID `json:"document_id"`
	Score         float64   `json:"score"`
	SemanticScore float64   `json:"semantic_score"`
	OverlapScore  float64   `json:"overlap_score"`
	MatchedSkills []string  `json:"matched_skills"`
	MissingSkills []string  `json:"missing_skills"`
}

func NewMatchResponses(matches []matching.Match) []MatchResponse {
	out := make([]MatchResponse, 0, len(matches))
	for _, m := range matches {
		out = append(out, MatchResponse{
			DocumentID:    m.DocumentID,
			Score:         m.Score,
			SemanticScore: m.SemanticScore,
			OverlapScore:  m.OverlapScore,
			MatchedSkills: m.MatchedSkills,
			MissingSkills: m.MissingSkills,
		})
	}
	return out
}
