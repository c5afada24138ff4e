package memory

import (
	"context"
	"errors"
	"fmt"

	"skill-radar/internal/domain/user"
)

var errUserHasSkills = errors.New("user still owns skills")

type userRepo struct {
	s *Store
}

func (r *userRepo) Create(_ context.Context, n user.NewUser) (user.User, error) {
	var out user.User
	err := r.s.write(func(d *data) error {
		if emailInUse(d, n.Email, 0) {
			return user.ErrEmailTaken
		}
		d.nextUserID++
		now := r.s.timestamp()
		out = user.User{
			ID:        d.nextUserID,
			Name:      n.Name,
			Position:  n.Position,
			Email:     n.Email,
			Password:  n.Password,
			AvatarURL: n.AvatarURL,
			CreatedAt: now,
			UpdatedAt: now,
		}
		d.users[out.ID] = out
		return nil
	})
	return out, err
}

func (r *userRepo) GetByID(_ context.Context, id int64) (user.User, error) {
	var (
		out user.User
		ok  bool
	)
	r.s.read(func(d *data) { out, ok = d.users[id] })
	if !ok {
		return user.User{}, user.ErrNotFound
	}
	return out, nil
}

func (r *userRepo) GetByEmail(_ context.Context, email string) (user.User, error) {
	var (
		out user.User
		ok  bool
	)
	r.s.read(func(d *data) {
		for _, u := range d.users {
			if u.Email == email {
				out, ok = u, true
				return
			}
		}
	})
	if !ok {
		return user.User{}, user.ErrNotFound
	}
	return out, nil
}

func (r *userRepo) List(_ context.Context, skip, limit int) ([]user.User, error) {
	var out []user.User
	r.s.read(func(d *data) { out = page(sortedUsers(d), skip, limit) })
	return out, nil
}

func (r *userRepo) Update(_ context.Context, id int64, mutate func(*user.User) error) (user.User, error) {
	var out user.User
	err := r.s.write(func(d *data) error {
		u, ok := d.users[id]
		if !ok {
			return user.ErrNotFound
		}
		if err := mutate(&u); err != nil {
			return err
		}
		if emailInUse(d, u.Email, id) {
			return user.ErrEmailTaken
		}
		u.ID = id
		u.UpdatedAt = r.s.timestamp()
		d.users[id] = u
		out = u
		return nil
	})
	return out, err
}

func (r *userRepo) Delete(_ context.Context, id int64) error {
	return r.s.write(func(d *data) error {
		if _, ok := d.users[id]; !ok {
			return user.ErrNotFound
		}
		for _, sk := range d.skills {
			if sk.UserID == id {
				return fmt.Errorf("delete user %d: %w", id, errUserHasSkills)
			}
		}
		delete(d.users, id)
		return nil
	})
}

func (r *userRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	var found bool
	r.s.read(func(d *data) { found = emailInUse(d, email, 0) })
	return found, nil
}

func emailInUse(d *data, email string, except int64) bool {
	for id, u := range d.users {
		if id != except && u.Email == email {
			return true
		}
	}
	return false
}
