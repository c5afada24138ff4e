package handler

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v3"

	"skill-radar/internal/config"
	"skill-radar/internal/delivery/http/middleware"
	"skill-radar/internal/pkg/response"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	app    config.AppConfig
	db     Pinger
	authMw *middleware.AuthMiddleware
}

// NewHealthHandler accepts a nil db when the process runs without a database.
func NewHealthHandler(app config.AppConfig, db Pinger, authMw *middleware.AuthMiddleware) *HealthHandler {
	return &HealthHandler{app: app, db: db, authMw: authMw}
}

func (h *HealthHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/", h.authMw.OptionalUser(), h.Root)
	r.Get("/health", h.Health)
}

func (h *HealthHandler) Root(c fiber.Ctx) error {
	_, authenticated := middleware.CurrentUser(c)
	return response.Success(c, fiber.StatusOK, response.MessageOK, fiber.Map{
		"message":       "Welcome to " + h.app.AppName,
		"version":       h.app.Version,
		"environment":   h.app.Environment,
		"authenticated": authenticated,
	})
}

func (h *HealthHandler) Health(c fiber.Ctx) error {
	if h.db != nil {
		ctx, cancel := context.WithTimeout(c.Context(), 2*time.Second)
		defer cancel()
		if err := h.db.Ping(ctx); err != nil {
			return response.Error(c, fiber.StatusServiceUnavailable, "database unreachable", fiber.Map{"status": "unhealthy"})
		}
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, fiber.Map{"status": "healthy"})
}
