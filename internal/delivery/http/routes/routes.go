package routes

import (
	"github.com/gofiber/fiber/v3"

	"skill-radar/internal/delivery/http/handler"
	"skill-radar/internal/delivery/http/middleware"
)

type Registry struct {
	Health *handler.HealthHandler
	Auth   *handler.AuthHandler
	Users  *handler.UserHandler
	Skills *handler.SkillHandler
	AuthMw *middleware.AuthMiddleware
}

func (r *Registry) Register(app *fiber.App) {
	if app == nil {
		return
	}

	r.registerHealth(app)
	r.registerAPI(app)
}

func (r *Registry) registerHealth(app *fiber.App) {
	r.Health.RegisterRoutes(app)
}

func (r *Registry) registerAPI(app *fiber.App) {
	api := app.Group("/api")
	RegisterV1(api.Group("/v1"), r)
}
