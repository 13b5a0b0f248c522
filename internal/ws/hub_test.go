package ws

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"jobsense/internal/domain/analysis"

	"github.com/google/uuid"
)

func waitForClients(t *testing.T, h *Hub, want int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if h.ClientCount() == want {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("expected %d clients, got %d", want, h.ClientCount())
}

func TestHub_BroadcastReachesRegisteredClients(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	h := NewHub(nil)
	go h.Run(ctx)

	client := NewClient(h, nil)
	h.Register(client)
	waitForClients(t, h, 1)

	h.Broadcast([]byte("hello"))

	select {
	case msg := <-client.send:
		if string(msg) != "hello" {
			t.Fatalf("unexpected message: %s", msg)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("broadcast never reached client")
	}

	h.Unregister(client)
	waitForClients(t, h, 0)
}

func TestNotifier_JobAnalyzedEventShape(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	h := NewHub(nil)
	go h.Run(ctx)

	client := NewClient(h, nil)
	h.Register(client)
	waitForClients(t, h, 1)

	jobID := uuid.New()
	NewNotifier(h).JobAnalyzed(jobID, analysis.ExperienceSenior, true)

	select {
	case msg := <-client.send:
		var evt JobAnalyzedEvent
		if err := json.Unmarshal(msg, &evt); err != nil {
			t.Fatalf("event not valid JSON: %v", err)
		}
		if evt.Type != "job_analyzed" {
			t.Fatalf("unexpected type %q", evt.Type)
		}
		if evt.JobID != jobID.String() || evt.ExperienceLevel != "senior" || !evt.Fallback {
			t.Fatalf("unexpected event: %+v", evt)
		}
		if _, err := time.Parse(time.RFC3339, evt.Timestamp); err != nil {
			t.Fatalf("timestamp not RFC3339: %q", evt.Timestamp)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("event never broadcast")
	}
}

func TestNotifier_NilHubIsSafe(t *testing.T) {
	NewNotifier(nil).JobAnalyzed(uuid.New(), analysis.ExperienceMid, false)
}
