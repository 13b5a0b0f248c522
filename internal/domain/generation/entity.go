package generation

import (
	"time"

	"github.com/google/uuid"
)

// CoverLetter is a generated letter tying a candidate document to a job post.
type CoverLetter struct {
	ID                 uuid.UUID
	JobPostID          uuid.UUID
	DocumentID         uuid.UUID
	Content            string
	CustomizationNotes string
	CreatedAt          time.Time
}
