package handler

import (
	"errors"

	"github.com/gofiber/fiber/v3"

	"jobsense/internal/delivery/http/dto"
	"jobsense/internal/delivery/http/middleware"
	"jobsense/internal/pkg/response"
	"jobsense/internal/usecase"
)

type CandidateHandler struct {
	uc usecase.CandidateUsecase
}

type ingestCandidateRequest struct {
	Name string `json:"name"`
	Text string `json:"text"`
}

func NewCandidateHandler(uc usecase.CandidateUsecase) *CandidateHandler {
	return &CandidateHandler{uc: uc}
}

func (h *CandidateHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Post("/", h.Ingest)
	r.Get("/", h.List)
	r.Get("/:id", h.Get)
}

func (h *CandidateHandler) Ingest(c fiber.Ctx) error {
	var req ingestCandidateRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	res, err := h.uc.Ingest(c.Context(), usecase.IngestInput{Name: req.Name, Text: req.Text})
	if err != nil {
		return mapCandidateUsecaseError(err)
	}

	out := dto.IngestCandidateResponse{
		Candidate:           dto.NewCandidateResponse(res.Document),
		EmbeddingCreated:    res.EmbeddingCreated,
		EmbeddingDimensions: res.EmbeddingDimensions,
	}
	return response.Success(c, fiber.StatusCreated, "candidate ingested", out)
}

func (h *CandidateHandler) List(c fiber.Ctx) error {
	limit, err := parseQueryIntStrict(c, "limit", 20)
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	offset, err := parseQueryIntStrict(c, "offset", 0)
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	docs, err := h.uc.ListCandidates(c.Context(), limit, offset)
	if err != nil {
		return mapCandidateUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, "success", dto.NewCandidateSummaryResponses(docs))
}

func (h *CandidateHandler) Get(c fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	d, err := h.uc.GetCandidate(c.Context(), id)
	if err != nil {
		return mapCandidateUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, "success", dto.NewCandidateResponse(d))
}

func mapCandidateUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	case errors.Is(err, usecase.ErrCandidateNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Candidate not found", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
