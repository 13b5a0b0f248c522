package job

import (
	"time"

	"github.com/google/uuid"
)

type Post struct {
	ID          uuid.UUID
	Title       string
	Company     string
	Location    string
	JobType     string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
