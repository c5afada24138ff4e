// Package usecase declares what the HTTP layer needs from the application
// services.
package usecase

import (
	"context"

	"skill-radar/internal/domain/skill"
	"skill-radar/internal/domain/user"
	"skill-radar/internal/session"
	ucaccess "skill-radar/internal/usecase/access"
	ucauth "skill-radar/internal/usecase/auth"
	ucskill "skill-radar/internal/usecase/skill"
	ucuser "skill-radar/internal/usecase/user"
)

type UserUsecase interface {
	Create(ctx context.Context, in user.NewUser) (user.User, error)
	Get(ctx context.Context, id int64) (user.User, error)
	GetByEmail(ctx context.Context, email string) (user.User, error)
	List(ctx context.Context, skip, limit int) ([]user.User, error)
	Update(ctx context.Context, id int64, p user.Patch) (user.User, error)
	Delete(ctx context.Context, id int64) error
}

type AuthUsecase interface {
	RequireUser(ctx context.Context, sc *session.Scope) (user.User, error)
	OptionalUser(ctx context.Context, sc *session.Scope) (user.User, bool)
	Login(ctx context.Context, sc *session.Scope, email, password string) (user.User, error)
	Logout(ctx context.Context, sc *session.Scope) error
}

// AccessUsecase is every operation whose outcome depends on who is asking.
type AccessUsecase interface {
	CreateSkill(ctx context.Context, requester user.User, in skill.NewSkill) (skill.Skill, error)
	GetSkill(ctx context.Context, requester user.User, id int64) (skill.Skill, error)
	UpdateSkill(ctx context.Context, requester user.User, id int64, p skill.Patch) (skill.Skill, error)
	DeleteSkill(ctx context.Context, requester user.User, id int64) error
	ListSkillsForUser(ctx context.Context, requester user.User, userID int64) ([]skill.Skill, error)
	ListMySkills(ctx context.Context, requester user.User, category string, skip, limit int) ([]skill.Skill, error)
	GetProfile(ctx context.Context, requester user.User, id int64) (user.Profile, error)
}

var (
	_ UserUsecase   = (*ucuser.Service)(nil)
	_ AuthUsecase   = (*ucauth.Gate)(nil)
	_ AccessUsecase = (*ucaccess.Service)(nil)

	_ ucaccess.SkillLedger   = (*ucskill.Service)(nil)
	_ ucaccess.ProfileSource = (*ucuser.Service)(nil)
	_ ucauth.UserLookup      = (*ucuser.Service)(nil)
)
