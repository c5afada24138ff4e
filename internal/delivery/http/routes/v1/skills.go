package v1

import (
	"github.com/gofiber/fiber/v3"

	"skill-radar/internal/delivery/http/handler"
)

func RegisterSkills(r fiber.Router, skillHandler *handler.SkillHandler) {
	if r == nil || skillHandler == nil {
		return
	}

	skillHandler.RegisterRoutes(r)
}
