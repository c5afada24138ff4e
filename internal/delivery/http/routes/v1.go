package routes

import (
	"github.com/gofiber/fiber/v3"

	v1 "skill-radar/internal/delivery/http/routes/v1"
)

func RegisterV1(r fiber.Router, reg *Registry) {
	if r == nil || reg == nil {
		return
	}

	v1.Register(r, v1.Handlers{
		Auth:   reg.Auth,
		Users:  reg.Users,
		Skills: reg.Skills,
		AuthMw: reg.AuthMw,
	})
}
