package candidate

import (
	"time"

	"github.com/google/uuid"
)

type Document struct {
	ID        uuid.UUID
	Name      string
	RawText   string
	CreatedAt time.Time
}
