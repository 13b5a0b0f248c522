package handler

import (
	"errors"

	"github.com/gofiber/fiber/v3"

	"jobsense/internal/delivery/http/dto"
	"jobsense/internal/delivery/http/middleware"
	"jobsense/internal/pkg/response"
	"jobsense/internal/usecase"
)

type AnalysisHandler struct {
	uc usecase.AnalyzeUsecase
}

func NewAnalysisHandler(uc usecase.AnalyzeUsecase) *AnalysisHandler {
	return &AnalysisHandler{uc: uc}
}

// RegisterRoutes mounts the analysis endpoints on the jobs group.
func (h *AnalysisHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Post("/:id/analyze", h.Analyze)
	r.Get("/:id/analysis", h.GetAnalysis)
}

func (h *AnalysisHandler) Analyze(c fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	force, err := parseQueryBoolStrict(c, "force")
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	res, err := h.uc.Analyze(c.Context(), id, force)
	if err != nil {
		return mapAnalyzeUsecaseError(err)
	}

	out := dto.AnalyzeResponse{
		Analysis:            dto.NewAnalysisResponse(res.Analysis),
		Cached:              res.Cached,
		FallbackUsed:        res.FallbackUsed,
		EmbeddingCreated:    res.EmbeddingCreated,
		EmbeddingDimensions: res.EmbeddingDimensions,
	}
	return response.Success(c, fiber.StatusOK, "success", out)
}

func (h *AnalysisHandler) GetAnalysis(c fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	a, err := h.uc.GetAnalysis(c.Context(), id)
	if err != nil {
		return mapAnalyzeUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, "success", dto.NewAnalysisResponse(a))
}

func mapAnalyzeUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	case errors.Is(err, usecase.ErrJobNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Job not found", nil, err)
	case errors.Is(err, usecase.ErrAnalysisNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Analysis not found", nil, err)
	case errors.Is(err, usecase.ErrAnalysisInProgress):
		return middleware.NewAppError(fiber.StatusConflict, "Analysis already in progress", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
