package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"jobsense/internal/config"
	"jobsense/internal/database/migration"
	"jobsense/internal/delivery/http/handler"
	"jobsense/internal/delivery/http/middleware"
	"jobsense/internal/delivery/http/routes"
	"jobsense/internal/ws"
)

type App struct {
	Fiber     *fiber.App
	Container *Container
}

// New assembles the fiber app from an already wired container.
func New(c *Container) *App {
	f := fiber.New(fiber.Config{
		AppName: c.Config.App.Name,
	})

	f.Use(middleware.NewAccessLogMiddleware(c.Log).Middleware())
	f.Use(middleware.NewErrorMiddleware(c.Log).Middleware())

	registry := routes.NewRegistry(
		handler.NewJobsHandler(c.Jobs),
		handler.NewAnalysisHandler(c.Analyze),
		handler.NewMatchHandler(c.Match),
		handler.NewCandidateHandler(c.Candidates),
		handler.NewGenerationHandler(c.Generation),
		handler.NewHealthHandler(c.DB, c.Cache, c.Hub),
		ws.NewHandler(c.Hub, c.Log),
	)
	registry.Register(f)

	return &App{Fiber: f, Container: c}
}

// Bootstrap builds the container, applies pending migrations, starts the
// websocket hub, and returns the app with a cleanup that reverses it all.
func Bootstrap(ctx context.Context, cfg config.Config, log *zap.Logger) (*App, func() error, error) {
	c, err := NewContainer(ctx, cfg, log)
	if err != nil {
		return nil, nil, err
	}

	runner, err := migration.Embedded()
	if err != nil {
		_ = c.Close()
		return nil, nil, err
	}
	if err := runner.Run(ctx, c.DB); err != nil {
		_ = c.Close()
		return nil, nil, err
	}

	hubCtx, stopHub := context.WithCancel(context.Background())
	go c.Hub.Run(hubCtx)

	app := New(c)

	cleanup := func() error {
		stopHub()
		return c.Close()
	}
	return app, cleanup, nil
}

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", fmt.Errorf("empty HTTP port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}
