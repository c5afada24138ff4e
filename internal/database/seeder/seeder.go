package seeder

import (
	"context"

	"github.com/sirupsen/logrus"

	"skill-radar/internal/domain/skill"
	"skill-radar/internal/domain/user"
)

type UserDirectory interface {
	Create(ctx context.Context, in user.NewUser) (user.User, error)
	GetByEmail(ctx context.Context, email string) (user.User, error)
}

type SkillLedger interface {
	Create(ctx context.Context, in skill.NewSkill) (skill.Skill, error)
	ExistsForUser(ctx context.Context, userID int64, name string) (bool, error)
}

// Deps are the services seeders write through, so seeded rows pass the same
// validation and password handling as API traffic.
type Deps struct {
	Users  UserDirectory
	Skills SkillLedger
	Logger logrus.FieldLogger
}

type Seeder interface {
	Name() string
	Run(ctx context.Context, deps Deps) error
}
