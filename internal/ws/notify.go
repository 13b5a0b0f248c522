package ws

import (
	"encoding/json"
	"time"

	"jobsense/internal/domain/analysis"

	"github.com/google/uuid"
)

type JobAnalyzedEvent struct {
	Type            string `json:"type"`
	JobID           string `json:"job_id"`
	ExperienceLevel string `json:"experience_level"`
	Fallback        bool   `json:"fallback"`
	Timestamp       string `json:"timestamp"`
}

// Notifier adapts the hub to the analysis pipeline's notification hook.
type Notifier struct {
	hub *Hub
}

func NewNotifier(hub *Hub) *Notifier {
	return &Notifier{hub: hub}
}

func (n *Notifier) JobAnalyzed(jobID uuid.UUID, level analysis.ExperienceLevel, fallback bool) {
	if n == nil || n.hub == nil {
		return
	}

	evt := JobAnalyzedEvent{
		Type:            "job_analyzed",
		JobID:           jobID.String(),
		ExperienceLevel: string(level),
		Fallback:        fallback,
		Timestamp:       time.Now().UTC().Format(time.RFC3339),
	}
	b, err := json.Marshal(evt)
	if err != nil {
		return
	}
	n.hub.Broadcast(b)
}
