package handler

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	"skill-radar/internal/delivery/http/dto"
	"skill-radar/internal/delivery/http/middleware"
	"skill-radar/internal/pkg/response"
	"skill-radar/internal/pkg/validation"
	"skill-radar/internal/usecase"
)

type AuthHandler struct {
	auth   usecase.AuthUsecase
	authMw *middleware.AuthMiddleware
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func NewAuthHandler(auth usecase.AuthUsecase, authMw *middleware.AuthMiddleware) *AuthHandler {
	return &AuthHandler{auth: auth, authMw: authMw}
}

func (h *AuthHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Post("/login", h.Login)
	r.Post("/logout", h.authMw.RequireUser(), h.Logout)
	r.Get("/me", h.authMw.RequireUser(), h.Me)
}

func (h *AuthHandler) Login(c fiber.Ctx) error {
	var req loginRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}
	v := validation.New()
	v.Length("email", req.Email, 1, 0)
	v.Length("password", req.Password, 1, 0)
	if err := v.Err(); err != nil {
		return mapUsecaseError(err)
	}

	u, err := h.auth.Login(c.Context(), middleware.Scope(c), req.Email, req.Password)
	if err != nil {
		return mapUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, "Login successful", dto.LoginResponse{
		User:        dto.NewUserResponse(u),
		RedirectURL: fmt.Sprintf("/profile/%d", u.ID),
	})
}

func (h *AuthHandler) Logout(c fiber.Ctx) error {
	if err := h.auth.Logout(c.Context(), middleware.Scope(c)); err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "Logout successful", nil)
}

func (h *AuthHandler) Me(c fiber.Ctx) error {
	me, err := requester(c)
	if err != nil {
		return err
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewUserResponse(me))
}
