package dto

import (
	"time"

	"skill-radar/internal/domain/user"
)

// UserResponse never carries the credential.
type UserResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Position  string    `json:"position"`
	Email     string    `json:"email"`
	AvatarURL *string   `json:"avatar_url"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type ProfileResponse struct {
	UserResponse
	Skills []SkillResponse `json:"skills"`
}

type LoginResponse struct {
	User        UserResponse `json:"user"`
	RedirectURL string       `json:"redirect_url"`
}

func NewUserResponse(u user.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Position:  u.Position,
		Email:     u.Email,
		AvatarURL: u.AvatarURL,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func NewUserListResponse(users []user.User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, NewUserResponse(u))
	}
	return out
}

func NewProfileResponse(p user.Profile) ProfileResponse {
	return ProfileResponse{
		UserResponse: NewUserResponse(p.User),
		Skills:       NewSkillListResponse(p.Skills),
	}
}
