package handler

import (
	"github.com/gofiber/fiber/v3"

	"skill-radar/internal/delivery/http/dto"
	"skill-radar/internal/domain/skill"
	"skill-radar/internal/pkg/response"
	"skill-radar/internal/pkg/validation"
	"skill-radar/internal/usecase"
)

type SkillHandler struct {
	access usecase.AccessUsecase
}

type createSkillRequest struct {
	Name        string   `json:"name"`
	Category    string   `json:"category"`
	Description *string  `json:"description"`
	Level       *float64 `json:"level"`
	UserID      *int64   `json:"user_id"`
}

func NewSkillHandler(access usecase.AccessUsecase) *SkillHandler {
	return &SkillHandler{access: access}
}

// RegisterRoutes expects r to already require an authenticated user.
func (h *SkillHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Post("/", h.Create)
	r.Get("/", h.ListMine)
	r.Get("/user/:userId", h.ListForUser)
	r.Get("/:id", h.Get)
	r.Put("/:id", h.Update)
	r.Delete("/:id", h.Delete)
}

func (h *SkillHandler) Create(c fiber.Ctx) error {
	me, err := requester(c)
	if err != nil {
		return err
	}

	var req createSkillRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}
	v := validation.New()
	v.Required("level", req.Level != nil)
	v.Required("user_id", req.UserID != nil)
	if err := v.Err(); err != nil {
		return mapUsecaseError(err)
	}

	sk, err := h.access.CreateSkill(c.Context(), me, skill.NewSkill{
		Name:        req.Name,
		Category:    req.Category,
		Description: req.Description,
		Level:       *req.Level,
		UserID:      *req.UserID,
	})
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, response.MessageCreated, dto.NewSkillResponse(sk))
}

func (h *SkillHandler) ListMine(c fiber.Ctx) error {
	me, err := requester(c)
	if err != nil {
		return err
	}
	skip, limit, err := pageParams(c)
	if err != nil {
		return err
	}

	skills, err := h.access.ListMySkills(c.Context(), me, c.Query("category"), skip, limit)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewSkillListResponse(skills))
}

func (h *SkillHandler) ListForUser(c fiber.Ctx) error {
	me, err := requester(c)
	if err != nil {
		return err
	}
	userID, err := paramID(c, "userId")
	if err != nil {
		return err
	}

	skills, err := h.access.ListSkillsForUser(c.Context(), me, userID)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewSkillListResponse(skills))
}

func (h *SkillHandler) Get(c fiber.Ctx) error {
	me, err := requester(c)
	if err != nil {
		return err
	}
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	sk, err := h.access.GetSkill(c.Context(), me, id)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewSkillResponse(sk))
}

func (h *SkillHandler) Update(c fiber.Ctx) error {
	me, err := requester(c)
	if err != nil {
		return err
	}
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var p skill.Patch
	if err := bindBody(c, &p); err != nil {
		return err
	}

	sk, err := h.access.UpdateSkill(c.Context(), me, id, p)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewSkillResponse(sk))
}

func (h *SkillHandler) Delete(c fiber.Ctx) error {
	me, err := requester(c)
	if err != nil {
		return err
	}
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	if err := h.access.DeleteSkill(c.Context(), me, id); err != nil {
		return mapUsecaseError(err)
	}
	return response.NoContent(c)
}
