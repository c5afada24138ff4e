package postgres

import (
	"context"
	"fmt"

	"skill-radar/internal/database"
	dbpostgres "skill-radar/internal/database/postgres"
	"skill-radar/internal/domain/skill"
)

const skillColumns = `id, name, category, description, level, user_id, created_at, updated_at`

type SkillRepository struct {
	store *Store
}

func (r *SkillRepository) Create(ctx context.Context, n skill.NewSkill) (skill.Skill, error) {
	row := r.store.q.QueryRow(ctx,
		`INSERT INTO skills (name, category, description, level, user_id)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING `+skillColumns,
		n.Name, n.Category, n.Description, n.Level, n.UserID,
	)
	s, err := scanSkill(row)
	if err != nil {
		if dbpostgres.IsForeignKeyViolation(err) {
			return skill.Skill{}, skill.ErrOwnerNotFound
		}
		return skill.Skill{}, fmt.Errorf("insert skill: %w", err)
	}
	return s, nil
}

func (r *SkillRepository) GetByID(ctx context.Context, id int64) (skill.Skill, error) {
	row := r.store.q.QueryRow(ctx, `SELECT `+skillColumns+` FROM skills WHERE id = $1`, id)
	return scanSkill(row)
}

func (r *SkillRepository) ListByUser(ctx context.Context, userID int64) ([]skill.Skill, error) {
	return r.list(ctx, `SELECT `+skillColumns+` FROM skills WHERE user_id = $1 ORDER BY id ASC`, userID)
}

func (r *SkillRepository) ListByUserOrderedByLevel(ctx context.Context, userID int64) ([]skill.Skill, error) {
	return r.list(ctx, `SELECT `+skillColumns+` FROM skills WHERE user_id = $1 ORDER BY level DESC, id ASC`, userID)
}

func (r *SkillRepository) ListByCategory(ctx context.Context, category string, skip, limit int) ([]skill.Skill, error) {
	return r.list(ctx,
		`SELECT `+skillColumns+` FROM skills WHERE category = $1 ORDER BY id ASC LIMIT $2 OFFSET $3`,
		category, limit, skip,
	)
}

func (r *SkillRepository) List(ctx context.Context, skip, limit int) ([]skill.Skill, error) {
	return r.list(ctx, `SELECT `+skillColumns+` FROM skills ORDER BY id ASC LIMIT $1 OFFSET $2`, limit, skip)
}

func (r *SkillRepository) Update(ctx context.Context, id int64, mutate func(*skill.Skill) error) (skill.Skill, error) {
	var out skill.Skill
	err := r.store.withinTx(ctx, func(txs *Store) error {
		row := txs.q.QueryRow(ctx, `SELECT `+skillColumns+` FROM skills WHERE id = $1 FOR UPDATE`, id)
		s, err := scanSkill(row)
		if err != nil {
			return err
		}
		if err := mutate(&s); err != nil {
			return err
		}

		row = txs.q.QueryRow(ctx,
			`UPDATE skills
			 SET name = $1, category = $2, description = $3, level = $4, updated_at = now()
			 WHERE id = $5
			 RETURNING `+skillColumns,
			s.Name, s.Category, s.Description, s.Level, id,
		)
		out, err = scanSkill(row)
		if err != nil {
			return fmt.Errorf("update skill: %w", err)
		}
		return nil
	})
	if err != nil {
		return skill.Skill{}, err
	}
	return out, nil
}

func (r *SkillRepository) Delete(ctx context.Context, id int64) error {
	n, err := r.store.q.Exec(ctx, `DELETE FROM skills WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete skill: %w", err)
	}
	if n == 0 {
		return skill.ErrNotFound
	}
	return nil
}

func (r *SkillRepository) DeleteByUser(ctx context.Context, userID int64) (int64, error) {
	var n int64
	err := r.store.withinTx(ctx, func(txs *Store) error {
		var err error
		n, err = txs.q.Exec(ctx, `DELETE FROM skills WHERE user_id = $1`, userID)
		if err != nil {
			return fmt.Errorf("delete skills for user: %w", err)
		}
		return nil
	})
	return n, err
}

func (r *SkillRepository) ExistsForUser(ctx context.Context, userID int64, name string) (bool, error) {
	var exists bool
	row := r.store.q.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM skills WHERE user_id = $1 AND name = $2)`, userID, name)
	if err := row.Scan(&exists); err != nil {
		return false, fmt.Errorf("check skill name: %w", err)
	}
	return exists, nil
}

func (r *SkillRepository) list(ctx context.Context, query string, args ...any) ([]skill.Skill, error) {
	rows, err := r.store.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list skills: %w", err)
	}
	return collectSkills(rows)
}

func collectSkills(rows database.Rows) ([]skill.Skill, error) {
	defer rows.Close()

	out := make([]skill.Skill, 0)
	for rows.Next() {
		s, err := scanSkill(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func scanSkill(row rowScanner) (skill.Skill, error) {
	var s skill.Skill
	if err := row.Scan(&s.ID, &s.Name, &s.Category, &s.Description, &s.Level, &s.UserID, &s.CreatedAt, &s.UpdatedAt); err != nil {
		if dbpostgres.IsNoRows(err) {
			return skill.Skill{}, skill.ErrNotFound
		}
		return skill.Skill{}, err
	}
	return s, nil
}
