package v1

import (
	"github.com/gofiber/fiber/v3"

	"skill-radar/internal/delivery/http/handler"
	"skill-radar/internal/delivery/http/middleware"
)

type Handlers struct {
	Auth   *handler.AuthHandler
	Users  *handler.UserHandler
	Skills *handler.SkillHandler
	AuthMw *middleware.AuthMiddleware
}

func Register(r fiber.Router, h Handlers) {
	if r == nil {
		return
	}

	RegisterUsers(r.Group("/users"), h.Users, h.Auth)
	RegisterSkills(r.Group("/skills", h.AuthMw.RequireUser()), h.Skills)
}
