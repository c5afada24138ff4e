// Package memory is an in-process persistence driver with the same
// constraints as the PostgreSQL schema: unique emails, skills that must
// reference an existing user, and users that cannot be deleted while they
// still own skills.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"skill-radar/internal/domain/skill"
	"skill-radar/internal/domain/user"
	"skill-radar/internal/repository"
)

var _ repository.Store = (*Store)(nil)

type data struct {
	users       map[int64]user.User
	skills      map[int64]skill.Skill
	nextUserID  int64
	nextSkillID int64
}

func (d *data) clone() *data {
	c := &data{
		users:       make(map[int64]user.User, len(d.users)),
		skills:      make(map[int64]skill.Skill, len(d.skills)),
		nextUserID:  d.nextUserID,
		nextSkillID: d.nextSkillID,
	}
	for k, v := range d.users {
		c.users[k] = v
	}
	for k, v := range d.skills {
		c.skills[k] = v
	}
	return c
}

type Store struct {
	mu  *sync.RWMutex
	d   *data
	tx  bool
	now func() time.Time
}

type Option func(*Store)

// WithClock overrides the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

func NewStore(opts ...Option) *Store {
	s := &Store{
		mu: &sync.RWMutex{},
		d: &data{
			users:  map[int64]user.User{},
			skills: map[int64]skill.Skill{},
		},
		now: time.Now,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

func (s *Store) Users() user.Repository   { return &userRepo{s: s} }
func (s *Store) Skills() skill.Repository { return &skillRepo{s: s} }

// WithinTx runs fn against a private copy of the data under the write lock
// and publishes the copy only when fn succeeds.
func (s *Store) WithinTx(_ context.Context, fn func(tx repository.Store) error) error {
	if s.tx {
		return fn(s)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	work := s.d.clone()
	if err := fn(&Store{mu: s.mu, d: work, tx: true, now: s.now}); err != nil {
		return err
	}
	*s.d = *work
	return nil
}

func (s *Store) read(fn func(d *data)) {
	if !s.tx {
		s.mu.RLock()
		defer s.mu.RUnlock()
	}
	fn(s.d)
}

func (s *Store) write(fn func(d *data) error) error {
	if !s.tx {
		s.mu.Lock()
		defer s.mu.Unlock()
	}
	return fn(s.d)
}

func (s *Store) timestamp() time.Time {
	return s.now().UTC()
}

func page[T any](items []T, skip, limit int) []T {
	if skip < 0 {
		skip = 0
	}
	if skip >= len(items) || limit <= 0 {
		return []T{}
	}
	end := skip + limit
	if end > len(items) {
		end = len(items)
	}
	return items[skip:end]
}

func sortedUsers(d *data) []user.User {
	out := make([]user.User, 0, len(d.users))
	for _, u := range d.users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func sortedSkills(d *data, keep func(skill.Skill) bool) []skill.Skill {
	out := make([]skill.Skill, 0)
	for _, sk := range d.skills {
		if keep == nil || keep(sk) {
			out = append(out, sk)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
