package routes

import (
	"github.com/gofiber/fiber/v3"

	"jobsense/internal/delivery/http/handler"
	"jobsense/internal/ws"
)

type Registry struct {
	jobs       *handler.JobsHandler
	analysis   *handler.AnalysisHandler
	match      *handler.MatchHandler
	candidates *handler.CandidateHandler
	generation *handler.GenerationHandler
	health     *handler.HealthHandler
	events     *ws.Handler
}

func NewRegistry(
	jobs *handler.JobsHandler,
	analysis *handler.AnalysisHandler,
	match *handler.MatchHandler,
	candidates *handler.CandidateHandler,
	generation *handler.GenerationHandler,
	health *handler.HealthHandler,
	events *ws.Handler,
) *Registry {
	return &Registry{
		jobs:       jobs,
		analysis:   analysis,
		match:      match,
		candidates: candidates,
		generation: generation,
		health:     health,
		events:     events,
	}
}

func (r *Registry) Register(app *fiber.App) {
	if app == nil {
		return
	}

	r.health.RegisterRoutes(app)

	if r.events != nil {
		app.Get("/ws/events", r.events.HandleEvents)
	}

	api := app.Group("/api").Group("/v1")

	jobs := api.Group("/jobs")
	r.jobs.RegisterRoutes(jobs)
	r.analysis.RegisterRoutes(jobs)
	r.match.RegisterRoutes(jobs)

	r.candidates.RegisterRoutes(api.Group("/candidates"))
	r.generation.RegisterRoutes(api.Group("/generation"))
}
