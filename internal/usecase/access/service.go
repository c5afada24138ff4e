// Package access decides whether the caller may act on a resource. Every
// check that needs a resource first loads it, so a missing resource reports
// not found before any ownership decision is made.
package access

import (
	"context"
	"errors"

	"skill-radar/internal/domain/skill"
	"skill-radar/internal/domain/user"
	"skill-radar/internal/pkg/validation"
)

var ErrForbidden = errors.New("forbidden")

type SkillLedger interface {
	Create(ctx context.Context, in skill.NewSkill) (skill.Skill, error)
	Get(ctx context.Context, id int64) (skill.Skill, error)
	ListByUser(ctx context.Context, userID int64) ([]skill.Skill, error)
	ListByCategory(ctx context.Context, category string, skip, limit int) ([]skill.Skill, error)
	Update(ctx context.Context, id int64, p skill.Patch) (skill.Skill, error)
	Delete(ctx context.Context, id int64) error
}

type ProfileSource interface {
	Profile(ctx context.Context, id int64) (user.Profile, error)
}

type Service struct {
	skills SkillLedger
	users  ProfileSource
}

func NewService(skills SkillLedger, users ProfileSource) *Service {
	return &Service{skills: skills, users: users}
}

func (s *Service) CreateSkill(ctx context.Context, requester user.User, in skill.NewSkill) (skill.Skill, error) {
	if err := in.Validate(); err != nil {
		return skill.Skill{}, err
	}
	if in.UserID != requester.ID {
		return skill.Skill{}, ErrForbidden
	}
	return s.skills.Create(ctx, in)
}

func (s *Service) GetSkill(ctx context.Context, requester user.User, id int64) (skill.Skill, error) {
	return s.ownedSkill(ctx, requester, id)
}

func (s *Service) UpdateSkill(ctx context.Context, requester user.User, id int64, p skill.Patch) (skill.Skill, error) {
	if err := p.Validate(); err != nil {
		return skill.Skill{}, err
	}
	if _, err := s.ownedSkill(ctx, requester, id); err != nil {
		return skill.Skill{}, err
	}
	return s.skills.Update(ctx, id, p)
}

func (s *Service) DeleteSkill(ctx context.Context, requester user.User, id int64) error {
	if _, err := s.ownedSkill(ctx, requester, id); err != nil {
		return err
	}
	return s.skills.Delete(ctx, id)
}

func (s *Service) ListSkillsForUser(ctx context.Context, requester user.User, userID int64) ([]skill.Skill, error) {
	if userID != requester.ID {
		return nil, ErrForbidden
	}
	return s.skills.ListByUser(ctx, userID)
}

// ListMySkills returns the caller's skills. With a category the page is cut
// from every user's skills in that category and then narrowed to the caller,
// so a page can hold fewer than limit entries even when more exist.
func (s *Service) ListMySkills(ctx context.Context, requester user.User, category string, skip, limit int) ([]skill.Skill, error) {
	v := validation.New()
	v.NonNegative("skip", skip)
	v.NonNegative("limit", limit)
	if err := v.Err(); err != nil {
		return nil, err
	}

	if category != "" {
		page, err := s.skills.ListByCategory(ctx, category, skip, limit)
		if err != nil {
			return nil, err
		}
		out := make([]skill.Skill, 0, len(page))
		for _, sk := range page {
			if sk.UserID == requester.ID {
				out = append(out, sk)
			}
		}
		return out, nil
	}

	all, err := s.skills.ListByUser(ctx, requester.ID)
	if err != nil {
		return nil, err
	}
	if skip >= len(all) {
		return []skill.Skill{}, nil
	}
	end := len(all)
	if limit < end-skip {
		end = skip + limit
	}
	return all[skip:end], nil
}

func (s *Service) GetProfile(ctx context.Context, requester user.User, id int64) (user.Profile, error) {
	if id != requester.ID {
		return user.Profile{}, ErrForbidden
	}
	return s.users.Profile(ctx, id)
}

func (s *Service) ownedSkill(ctx context.Context, requester user.User, id int64) (skill.Skill, error) {
	sk, err := s.skills.Get(ctx, id)
	if err != nil {
		return skill.Skill{}, err
	}
	if sk.UserID != requester.ID {
		return skill.Skill{}, ErrForbidden
	}
	return sk, nil
}
