package middleware

import (
	"errors"

	"github.com/gofiber/fiber/v3"

	"skill-radar/internal/domain/user"
	"skill-radar/internal/usecase"
	ucauth "skill-radar/internal/usecase/auth"
)

const CtxUserKey = "current_user"

type AuthMiddleware struct {
	auth usecase.AuthUsecase
}

func NewAuthMiddleware(auth usecase.AuthUsecase) *AuthMiddleware {
	return &AuthMiddleware{auth: auth}
}

// RequireUser rejects the request with 401 unless the session resolves to an
// existing user.
func (m *AuthMiddleware) RequireUser() fiber.Handler {
	return func(c fiber.Ctx) error {
		u, err := m.auth.RequireUser(c.Context(), Scope(c))
		if err != nil {
			if errors.Is(err, ucauth.ErrUnauthenticated) {
				return NewAppError(fiber.StatusUnauthorized, "Not authenticated", nil, err)
			}
			return NewAppError(fiber.StatusInternalServerError, "", nil, err)
		}
		c.Locals(CtxUserKey, u)
		return c.Next()
	}
}

// OptionalUser attaches the caller when there is one and never rejects.
func (m *AuthMiddleware) OptionalUser() fiber.Handler {
	return func(c fiber.Ctx) error {
		if u, ok := m.auth.OptionalUser(c.Context(), Scope(c)); ok {
			c.Locals(CtxUserKey, u)
		}
		return c.Next()
	}
}

func CurrentUser(c fiber.Ctx) (user.User, bool) {
	u, ok := c.Locals(CtxUserKey).(user.User)
	return u, ok
}
