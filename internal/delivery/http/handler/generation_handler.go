package handler

import (
	"errors"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"jobsense/internal/delivery/http/dto"
	"jobsense/internal/delivery/http/middleware"
	"jobsense/internal/pkg/response"
	"jobsense/internal/usecase"
)

type GenerationHandler struct {
	uc usecase.GenerationUsecase
}

type coverLetterRequest struct {
	JobID              uuid.UUID `json:"job_id"`
	CandidateID        uuid.UUID `json:"candidate_id"`
	CustomInstructions string    `json:"custom_instructions"`
}

type cvSummaryRequest struct {
	JobID       uuid.UUID `json:"job_id"`
	CandidateID uuid.UUID `json:"candidate_id"`
}

func NewGenerationHandler(uc usecase.GenerationUsecase) *GenerationHandler {
	return &GenerationHandler{uc: uc}
}

func (h *GenerationHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Post("/cover-letter", h.GenerateCoverLetter)
	r.Post("/cv-summary", h.TailorCVSummary)
	r.Get("/cover-letters", h.ListCoverLetters)
	r.Get("/cover-letters/:id", h.GetCoverLetter)
}

func (h *GenerationHandler) GenerateCoverLetter(c fiber.Ctx) error {
	var req coverLetterRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	letter, err := h.uc.GenerateCoverLetter(c.Context(), usecase.CoverLetterInput{
		JobID:              req.JobID,
		CandidateID:        req.CandidateID,
		CustomInstructions: req.CustomInstructions,
	})
	if err != nil {
		return mapGenerationUsecaseError(err)
	}

	return response.Success(c, fiber.StatusCreated, "cover letter generated", dto.NewCoverLetterResponse(letter))
}

func (h *GenerationHandler) TailorCVSummary(c fiber.Ctx) error {
	var req cvSummaryRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	summary, err := h.uc.TailorCVSummary(c.Context(), usecase.CVSummaryInput{
		JobID:       req.JobID,
		CandidateID: req.CandidateID,
	})
	if err != nil {
		return mapGenerationUsecaseError(err)
	}

	out := dto.CVSummaryResponse{
		JobPostID:  req.JobID,
		DocumentID: req.CandidateID,
		Summary:    summary,
	}
	return response.Success(c, fiber.StatusOK, "success", out)
}

func (h *GenerationHandler) ListCoverLetters(c fiber.Ctx) error {
	limit, err := parseQueryIntStrict(c, "limit", 20)
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	offset, err := parseQueryIntStrict(c, "offset", 0)
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	jobID := uuid.Nil
	if s := c.Query("job_id"); s != "" {
		jobID, err = uuid.Parse(s)
		if err != nil {
			return middleware.NewAppError(fiber.StatusBadRequest, "Invalid job_id", nil, err)
		}
	}

	letters, err := h.uc.ListCoverLetters(c.Context(), jobID, limit, offset)
	if err != nil {
		return mapGenerationUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, "success", dto.NewCoverLetterResponses(letters))
}

func (h *GenerationHandler) GetCoverLetter(c fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	letter, err := h.uc.GetCoverLetter(c.Context(), id)
	if err != nil {
		return mapGenerationUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, "success", dto.NewCoverLetterResponse(letter))
}

func mapGenerationUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	case errors.Is(err, usecase.ErrJobNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Job not found", nil, err)
	case errors.Is(err, usecase.ErrCandidateNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Candidate not found", nil, err)
	case errors.Is(err, usecase.ErrCoverLetterNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Cover letter not found", nil, err)
	case errors.Is(err, usecase.ErrUpstream):
		return middleware.NewAppError(fiber.StatusBadGateway, "Generation upstream failed", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
