package memory

import (
	"context"

	"skill-radar/internal/domain/skill"
)

type skillRepo struct {
	s *Store
}

func (r *skillRepo) Create(_ context.Context, n skill.NewSkill) (skill.Skill, error) {
	var out skill.Skill
	err := r.s.write(func(d *data) error {
		if _, ok := d.users[n.UserID]; !ok {
			return skill.ErrOwnerNotFound
		}
		d.nextSkillID++
		now := r.s.timestamp()
		out = skill.Skill{
			ID:          d.nextSkillID,
			Name:        n.Name,
			Category:    n.Category,
			Description: n.Description,
			Level:       n.Level,
			UserID:      n.UserID,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		d.skills[out.ID] = out
		return nil
	})
	return out, err
}

func (r *skillRepo) GetByID(_ context.Context, id int64) (skill.Skill, error) {
	var (
		out skill.Skill
		ok  bool
	)
	r.s.read(func(d *data) { out, ok = d.skills[id] })
	if !ok {
		return skill.Skill{}, skill.ErrNotFound
	}
	return out, nil
}

func (r *skillRepo) ListByUser(_ context.Context, userID int64) ([]skill.Skill, error) {
	var out []skill.Skill
	r.s.read(func(d *data) {
		out = sortedSkills(d, func(sk skill.Skill) bool { return sk.UserID == userID })
	})
	return out, nil
}

func (r *skillRepo) ListByUserOrderedByLevel(ctx context.Context, userID int64) ([]skill.Skill, error) {
	out, err := r.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	skill.SortByLevelDesc(out)
	return out, nil
}

func (r *skillRepo) ListByCategory(_ context.Context, category string, skip, limit int) ([]skill.Skill, error) {
	var out []skill.Skill
	r.s.read(func(d *data) {
		out = page(sortedSkills(d, func(sk skill.Skill) bool { return sk.Category == category }), skip, limit)
	})
	return out, nil
}

func (r *skillRepo) List(_ context.Context, skip, limit int) ([]skill.Skill, error) {
	var out []skill.Skill
	r.s.read(func(d *data) { out = page(sortedSkills(d, nil), skip, limit) })
	return out, nil
}

func (r *skillRepo) Update(_ context.Context, id int64, mutate func(*skill.Skill) error) (skill.Skill, error) {
	var out skill.Skill
	err := r.s.write(func(d *data) error {
		sk, ok := d.skills[id]
		if !ok {
			return skill.ErrNotFound
		}
		if err := mutate(&sk); err != nil {
			return err
		}
		sk.ID = id
		sk.UpdatedAt = r.s.timestamp()
		d.skills[id] = sk
		out = sk
		return nil
	})
	return out, err
}

func (r *skillRepo) Delete(_ context.Context, id int64) error {
	return r.s.write(func(d *data) error {
		if _, ok := d.skills[id]; !ok {
			return skill.ErrNotFound
		}
		delete(d.skills, id)
		return nil
	})
}

func (r *skillRepo) DeleteByUser(_ context.Context, userID int64) (int64, error) {
	var n int64
	err := r.s.write(func(d *data) error {
		for id, sk := range d.skills {
			if sk.UserID == userID {
				delete(d.skills, id)
				n++
			}
		}
		return nil
	})
	return n, err
}

func (r *skillRepo) ExistsForUser(_ context.Context, userID int64, name string) (bool, error) {
	var found bool
	r.s.read(func(d *data) {
		for _, sk := range d.skills {
			if sk.UserID == userID && sk.Name == name {
				found = true
				return
			}
		}
	})
	return found, nil
}
