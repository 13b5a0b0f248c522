package handler

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v3"

	"jobsense/internal/pkg/response"
)

const healthProbeTimeout = 2 * time.Second

type pinger interface {
	Ping(ctx context.Context) error
}

type clientCounter interface {
	ClientCount() int
}

type HealthHandler struct {
	db    pinger
	cache pinger
	hub   clientCounter
}

func NewHealthHandler(db, cache pinger, hub clientCounter) *HealthHandler {
	return &HealthHandler{db: db, cache: cache, hub: hub}
}

func (h *HealthHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/health", h.Health)
}

// Health reports per-component state. The database is the hard dependency;
// a cache outage only degrades the service, so it never fails the probe.
func (h *HealthHandler) Health(c fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), healthProbeTimeout)
	defer cancel()

	status := "ok"
	httpStatus := fiber.StatusOK

	dbState := "up"
	if h.db == nil || h.db.Ping(ctx) != nil {
		dbState = "down"
		status = "down"
		httpStatus = fiber.StatusServiceUnavailable
	}

	cacheState := "up"
	if h.cache == nil || h.cache.Ping(ctx) != nil {
		cacheState = "down"
		if status == "ok" {
			status = "degraded"
		}
	}

	wsClients := 0
	if h.hub != nil {
		wsClients = h.hub.ClientCount()
	}

	data := map[string]any{
		"status": status,
		"components": map[string]string{
			"database": dbState,
			"cache":    cacheState,
		},
		"ws_clients": wsClients,
	}
	return response.Success(c, httpStatus, status, data)
}
