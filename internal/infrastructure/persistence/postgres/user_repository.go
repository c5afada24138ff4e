package postgres

import (
	"context"
	"fmt"

	dbpostgres "skill-radar/internal/database/postgres"
	"skill-radar/internal/domain/user"
)

const userColumns = `id, name, position, email, password, avatar_url, created_at, updated_at`

type UserRepository struct {
	store *Store
}

func (r *UserRepository) Create(ctx context.Context, n user.NewUser) (user.User, error) {
	row := r.store.q.QueryRow(ctx,
		`INSERT INTO users (name, position, email, password, avatar_url)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING `+userColumns,
		n.Name, n.Position, n.Email, n.Password, n.AvatarURL,
	)
	u, err := scanUser(row)
	if err != nil {
		if dbpostgres.IsUniqueViolation(err) {
			return user.User{}, user.ErrEmailTaken
		}
		return user.User{}, fmt.Errorf("insert user: %w", err)
	}
	return u, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (user.User, error) {
	row := r.store.q.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	return scanUser(row)
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (user.User, error) {
	row := r.store.q.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
	return scanUser(row)
}

func (r *UserRepository) List(ctx context.Context, skip, limit int) ([]user.User, error) {
	rows, err := r.store.q.Query(ctx,
		`SELECT `+userColumns+` FROM users ORDER BY id ASC LIMIT $1 OFFSET $2`,
		limit, skip,
	)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	out := make([]user.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *UserRepository) Update(ctx context.Context, id int64, mutate func(*user.User) error) (user.User, error) {
	var out user.User
	err := r.store.withinTx(ctx, func(txs *Store) error {
		row := txs.q.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1 FOR UPDATE`, id)
		u, err := scanUser(row)
		if err != nil {
			return err
		}
		if err := mutate(&u); err != nil {
			return err
		}

		row = txs.q.QueryRow(ctx,
			`UPDATE users
			 SET name = $1, position = $2, email = $3, avatar_url = $4, updated_at = now()
			 WHERE id = $5
			 RETURNING `+userColumns,
			u.Name, u.Position, u.Email, u.AvatarURL, id,
		)
		out, err = scanUser(row)
		if err != nil {
			if dbpostgres.IsUniqueViolation(err) {
				return user.ErrEmailTaken
			}
			return fmt.Errorf("update user: %w", err)
		}
		return nil
	})
	if err != nil {
		return user.User{}, err
	}
	return out, nil
}

func (r *UserRepository) Delete(ctx context.Context, id int64) error {
	n, err := r.store.q.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		if dbpostgres.IsForeignKeyViolation(err) {
			return fmt.Errorf("delete user %d: skills still reference it: %w", id, err)
		}
		return fmt.Errorf("delete user: %w", err)
	}
	if n == 0 {
		return user.ErrNotFound
	}
	return nil
}

func (r *UserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	row := r.store.q.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`, email)
	if err := row.Scan(&exists); err != nil {
		return false, fmt.Errorf("check email: %w", err)
	}
	return exists, nil
}

func scanUser(row rowScanner) (user.User, error) {
	var u user.User
	if err := row.Scan(&u.ID, &u.Name, &u.Position, &u.Email, &u.Password, &u.AvatarURL, &u.CreatedAt, &u.UpdatedAt); err != nil {
		if dbpostgres.IsNoRows(err) {
			return user.User{}, user.ErrNotFound
		}
		return user.User{}, err
	}
	return u, nil
}
