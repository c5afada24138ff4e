package skill

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"skill-radar/internal/domain/skill"
	"skill-radar/internal/pkg/validation"
	"skill-radar/internal/repository"
)

// Service is the skill ledger. It does not know who is calling; ownership is
// enforced by the access layer.
type Service struct {
	store       repository.Store
	uniqueNames bool
	logger      logrus.FieldLogger
}

func NewService(store repository.Store, uniqueNames bool, logger logrus.FieldLogger) *Service {
	return &Service{store: store, uniqueNames: uniqueNames, logger: logger}
}

func (s *Service) Create(ctx context.Context, in skill.NewSkill) (skill.Skill, error) {
	if err := in.Validate(); err != nil {
		return skill.Skill{}, err
	}

	dup, err := s.store.Skills().ExistsForUser(ctx, in.UserID, in.Name)
	if err != nil {
		return skill.Skill{}, fmt.Errorf("check skill name: %w", err)
	}
	if dup {
		if s.uniqueNames {
			return skill.Skill{}, skill.ErrDuplicateName
		}
		s.logger.WithFields(logrus.Fields{"user_id": in.UserID, "name": in.Name}).
			Info("user already has a skill with this name")
	}

	return s.store.Skills().Create(ctx, in)
}

func (s *Service) Get(ctx context.Context, id int64) (skill.Skill, error) {
	return s.store.Skills().GetByID(ctx, id)
}

func (s *Service) ListByUser(ctx context.Context, userID int64) ([]skill.Skill, error) {
	return s.store.Skills().ListByUser(ctx, userID)
}

func (s *Service) ListByUserOrderedByLevel(ctx context.Context, userID int64) ([]skill.Skill, error) {
	return s.store.Skills().ListByUserOrderedByLevel(ctx, userID)
}

func (s *Service) ListByCategory(ctx context.Context, category string, skip, limit int) ([]skill.Skill, error) {
	if err := validatePage(skip, limit); err != nil {
		return nil, err
	}
	return s.store.Skills().ListByCategory(ctx, category, skip, limit)
}

func (s *Service) List(ctx context.Context, skip, limit int) ([]skill.Skill, error) {
	if err := validatePage(skip, limit); err != nil {
		return nil, err
	}
	return s.store.Skills().List(ctx, skip, limit)
}

func (s *Service) Update(ctx context.Context, id int64, p skill.Patch) (skill.Skill, error) {
	if err := p.Validate(); err != nil {
		return skill.Skill{}, err
	}
	return s.store.Skills().Update(ctx, id, func(sk *skill.Skill) error {
		p.ApplyTo(sk)
		return nil
	})
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.store.Skills().Delete(ctx, id)
}

func (s *Service) DeleteAllForUser(ctx context.Context, userID int64) (int64, error) {
	return s.store.Skills().DeleteByUser(ctx, userID)
}

func (s *Service) ExistsForUser(ctx context.Context, userID int64, name string) (bool, error) {
	return s.store.Skills().ExistsForUser(ctx, userID, name)
}

func validatePage(skip, limit int) error {
	v := validation.New()
	v.NonNegative("skip", skip)
	v.NonNegative("limit", limit)
	return v.Err()
}
