package handler

import (
	"net/url"

	"github.com/gofiber/fiber/v3"

	"skill-radar/internal/delivery/http/dto"
	"skill-radar/internal/delivery/http/middleware"
	"skill-radar/internal/domain/user"
	"skill-radar/internal/pkg/response"
	"skill-radar/internal/usecase"
)

// UserHandler serves the user directory. Plain read, update and delete by id
// carry no ownership check; only the profile route compares the caller with
// the target.
type UserHandler struct {
	users  usecase.UserUsecase
	access usecase.AccessUsecase
	authMw *middleware.AuthMiddleware
}

type createUserRequest struct {
	Name      string  `json:"name"`
	Position  string  `json:"position"`
	Email     string  `json:"email"`
	Password  string  `json:"password"`
	AvatarURL *string `json:"avatar_url"`
}

func NewUserHandler(users usecase.UserUsecase, access usecase.AccessUsecase, authMw *middleware.AuthMiddleware) *UserHandler {
	return &UserHandler{users: users, access: access, authMw: authMw}
}

// RegisterRoutes mounts the id-addressed routes. Static paths must be
// registered on r before this call.
func (h *UserHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Post("/", h.Create)
	r.Get("/", h.List)
	r.Get("/email/:email", h.GetByEmail)
	r.Get("/:id/profile", h.authMw.RequireUser(), h.Profile)
	r.Get("/:id", h.Get)
	r.Put("/:id", h.Update)
	r.Delete("/:id", h.Delete)
}

func (h *UserHandler) Create(c fiber.Ctx) error {
	var req createUserRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	u, err := h.users.Create(c.Context(), user.NewUser{
		Name:      req.Name,
		Position:  req.Position,
		Email:     req.Email,
		Password:  req.Password,
		AvatarURL: req.AvatarURL,
	})
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, response.MessageCreated, dto.NewUserResponse(u))
}

func (h *UserHandler) List(c fiber.Ctx) error {
	skip, limit, err := pageParams(c)
	if err != nil {
		return err
	}
	users, err := h.users.List(c.Context(), skip, limit)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewUserListResponse(users))
}

func (h *UserHandler) Get(c fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	u, err := h.users.Get(c.Context(), id)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewUserResponse(u))
}

func (h *UserHandler) GetByEmail(c fiber.Ctx) error {
	email, err := url.PathUnescape(c.Params("email"))
	if err != nil {
		return invalid("email", "invalid path encoding", err)
	}
	u, err := h.users.GetByEmail(c.Context(), email)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewUserResponse(u))
}

func (h *UserHandler) Profile(c fiber.Ctx) error {
	me, err := requester(c)
	if err != nil {
		return err
	}
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	p, err := h.access.GetProfile(c.Context(), me, id)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewProfileResponse(p))
}

func (h *UserHandler) Update(c fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var p user.Patch
	if err := bindBody(c, &p); err != nil {
		return err
	}
	u, err := h.users.Update(c.Context(), id, p)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewUserResponse(u))
}

func (h *UserHandler) Delete(c fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	if err := h.users.Delete(c.Context(), id); err != nil {
		return mapUsecaseError(err)
	}
	return response.NoContent(c)
}
