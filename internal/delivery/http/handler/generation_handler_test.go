package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"jobsense/internal/delivery/http/middleware"
	"jobsense/internal/domain/generation"
	"jobsense/internal/usecase"
)

type stubGenerationUsecase struct {
	letter    generation.CoverLetter
	letterErr error
	summary   string
}

func (s stubGenerationUsecase) GenerateCoverLetter(_ context.Context, in usecase.CoverLetterInput) (generation.CoverLetter, error) {
	if s.letterErr != nil {
		return generation.CoverLetter{}, s.letterErr
	}
	l := s.letter
	l.JobPostID = in.JobID
	l.DocumentID = in.CandidateID
	return l, nil
}

func (s stubGenerationUsecase) TailorCVSummary(_ context.Context, _ usecase.CVSummaryInput) (string, error) {
	return s.summary, nil
}

func (s stubGenerationUsecase) GetCoverLetter(_ context.Context, _ uuid.UUID) (generation.CoverLetter, error) {
	return s.letter, nil
}

func (s stubGenerationUsecase) ListCoverLetters(_ context.Context, _ uuid.UUID, _, _ int) ([]generation.CoverLetter, error) {
	return []generation.CoverLetter{s.letter}, nil
}

func newGenerationTestApp(uc usecase.GenerationUsecase) *fiber.App {
	app := fiber.New()
	app.Use(middleware.NewErrorMiddleware(nil).Middleware())
	NewGenerationHandler(uc).RegisterRoutes(app.Group("/api/v1/generation"))
	return app
}

func TestGenerationHandler_GenerateCoverLetter(t *testing.T) {
	uc := stubGenerationUsecase{
		letter: generation.CoverLetter{
			ID:        uuid.New(),
			Content:   "Dear Hiring Manager,",
			CreatedAt: time.Now().UTC(),
		},
	}
	app := newGenerationTestApp(uc)

	jobID := uuid.New()
	candID := uuid.New()
	body, _ := json.Marshal(map[string]string{
		"job_id":       jobID.String(),
		"candidate_id": candID.String(),
	})
	req := httptest.NewRequest("POST", "/api/v1/generation/cover-letter", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request error: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != fiber.StatusCreated {
		t.Fatalf("expected HTTP 201, got %d", resp.StatusCode)
	}

	var sr semanticResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}

	var data struct {
		JobPostID  uuid.UUID `json:"job_post_id"`
		DocumentID uuid.UUID `json:"document_id"`
		Content    string    `json:"content"`
	}
	if err := json.Unmarshal(sr.Data, &data); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	if data.JobPostID != jobID || data.DocumentID != candID {
		t.Fatalf("ids not carried through: job=%s doc=%s", data.JobPostID, data.DocumentID)
	}
	if data.Content == "" {
		t.Fatalf("expected non-empty content")
	}
}

func TestGenerationHandler_UpstreamFailureReturns502(t *testing.T) {
	uc := stubGenerationUsecase{letterErr: usecase.ErrUpstream}
	app := newGenerationTestApp(uc)

	body, _ := json.Marshal(map[string]string{
		"job_id":       uuid.NewString(),
		"candidate_id": uuid.NewString(),
	})
	req := httptest.NewRequest("POST", "/api/v1/generation/cover-letter", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request error: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != fiber.StatusBadGateway {
		t.Fatalf("expected HTTP 502, got %d", resp.StatusCode)
	}

	var sr semanticResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	if sr.Message != "Generation upstream failed" {
		t.Fatalf("unexpected message: %q", sr.Message)
	}
}

func TestGenerationHandler_MissingCandidateReturns404(t *testing.T) {
	uc := stubGenerationUsecase{letterErr: usecase.ErrCandidateNotFound}
	app := newGenerationTestApp(uc)

	body, _ := json.Marshal(map[string]string{
		"job_id":       uuid.NewString(),
		"candidate_id": uuid.NewString(),
	})
	req := httptest.NewRequest("POST", "/api/v1/generation/cover-letter", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request error: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != fiber.StatusNotFound {
		t.Fatalf("expected HTTP 404, got %d", resp.StatusCode)
	}
}
