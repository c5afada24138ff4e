package handler

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v3"

	"skill-radar/internal/delivery/http/middleware"
	"skill-radar/internal/domain/skill"
	"skill-radar/internal/domain/user"
	"skill-radar/internal/pkg/validation"
	ucaccess "skill-radar/internal/usecase/access"
	ucauth "skill-radar/internal/usecase/auth"
	ucuser "skill-radar/internal/usecase/user"
)

const (
	defaultSkip  = 0
	defaultLimit = 100
)

// mapUsecaseError translates service errors into the HTTP error taxonomy.
// Anything unrecognised becomes a 500 with a generic message.
func mapUsecaseError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, validation.ErrInvalid):
		return middleware.NewAppError(fiber.StatusUnprocessableEntity, "Validation failed", validation.Fields(err), err)
	case errors.Is(err, ucauth.ErrUnauthenticated):
		return middleware.NewAppError(fiber.StatusUnauthorized, "Not authenticated", nil, err)
	case errors.Is(err, ucuser.ErrInvalidCredentials):
		return middleware.NewAppError(fiber.StatusUnauthorized, "Invalid email or password", nil, err)
	case errors.Is(err, ucaccess.ErrForbidden):
		return middleware.NewAppError(fiber.StatusForbidden, "Not enough permissions", nil, err)
	case errors.Is(err, user.ErrNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "User not found", nil, err)
	case errors.Is(err, skill.ErrOwnerNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "User not found", nil, err)
	case errors.Is(err, skill.ErrNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Skill not found", nil, err)
	case errors.Is(err, user.ErrEmailTaken):
		return middleware.NewAppError(fiber.StatusBadRequest, "Email already registered", nil, err)
	case errors.Is(err, skill.ErrDuplicateName):
		return middleware.NewAppError(fiber.StatusConflict, "Skill with this name already exists", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, "", nil, err)
	}
}

func invalid(field, message string, cause error) error {
	return middleware.NewAppError(fiber.StatusUnprocessableEntity, "Validation failed",
		validation.Errors{{Field: field, Message: message}}, cause)
}

func bindBody(c fiber.Ctx, out any) error {
	if err := c.Bind().Body(out); err != nil {
		return invalid("body", "invalid request payload", err)
	}
	return nil
}

func paramID(c fiber.Ctx, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Params(name), 10, 64)
	if err != nil {
		return 0, invalid(name, "must be an integer", err)
	}
	return id, nil
}

func queryInt(c fiber.Ctx, name string, def int) (int, error) {
	raw := c.Query(name)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, invalid(name, "must be an integer", err)
	}
	if n < 0 {
		return 0, invalid(name, "must not be negative", nil)
	}
	return n, nil
}

func pageParams(c fiber.Ctx) (skip, limit int, err error) {
	if skip, err = queryInt(c, "skip", defaultSkip); err != nil {
		return 0, 0, err
	}
	if limit, err = queryInt(c, "limit", defaultLimit); err != nil {
		return 0, 0, err
	}
	return skip, limit, nil
}

func requester(c fiber.Ctx) (user.User, error) {
	u, ok := middleware.CurrentUser(c)
	if !ok {
		return user.User{}, middleware.NewAppError(fiber.StatusUnauthorized, "Not authenticated", nil, nil)
	}
	return u, nil
}
