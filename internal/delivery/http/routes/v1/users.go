package v1

import (
	"github.com/gofiber/fiber/v3"

	"skill-radar/internal/delivery/http/handler"
)

// RegisterUsers mounts the session routes (/login, /logout, /me) ahead of the
// id-addressed user routes so they are not captured by /:id.
func RegisterUsers(r fiber.Router, userHandler *handler.UserHandler, authHandler *handler.AuthHandler) {
	if r == nil {
		return
	}

	if authHandler != nil {
		authHandler.RegisterRoutes(r)
	}
	if userHandler != nil {
		userHandler.RegisterRoutes(r)
	}
}
