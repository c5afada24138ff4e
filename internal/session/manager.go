package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"skill-radar/internal/pkg/jwt"
)

type Manager struct {
	store    Store
	signer   jwt.Service
	lifetime time.Duration
	logger   logrus.FieldLogger

	now func() time.Time
}

type ManagerOption func(*Manager)

func WithLifetime(d time.Duration) ManagerOption {
	return func(m *Manager) {
		if d > 0 {
			m.lifetime = d
		}
	}
}

func WithClock(now func() time.Time) ManagerOption {
	return func(m *Manager) { m.now = now }
}

func NewManager(store Store, signer jwt.Service, logger logrus.FieldLogger, opts ...ManagerOption) *Manager {
	m := &Manager{
		store:    store,
		signer:   signer,
		lifetime: DefaultLifetime,
		logger:   logger,
		now:      time.Now,
	}
	for _, o := range opts {
		o(m)
	}
	return m
}

func (m *Manager) Lifetime() time.Duration { return m.lifetime }

// Resolve turns the cookie value presented by a client into a Scope. Tokens
// that fail verification yield an empty scope.
func (m *Manager) Resolve(token string) *Scope {
	if token == "" {
		return &Scope{}
	}
	c, err := m.signer.Parse(token)
	if err != nil {
		return &Scope{}
	}
	sc := &Scope{ID: c.SessionID, Token: token}
	if c.ExpiresAt != nil {
		sc.ExpiresAt = c.ExpiresAt.Time
	}
	return sc
}

// Login binds a fresh session to sc. Any session sc previously referenced is
// destroyed.
func (m *Manager) Login(ctx context.Context, sc *Scope, userID int64, email string) (Session, error) {
	if sc == nil {
		return Session{}, errors.New("session: nil scope")
	}
	if sc.ID != "" {
		if err := m.store.Delete(ctx, sc.ID); err != nil {
			return Session{}, fmt.Errorf("drop previous session: %w", err)
		}
	}

	// Token timestamps have whole-second precision; the record must not
	// outlive its token.
	now := m.now().UTC().Truncate(time.Second)
	s := Session{
		ID:        uuid.NewString(),
		UserID:    userID,
		Email:     email,
		CreatedAt: now,
		ExpiresAt: now.Add(m.lifetime),
	}
	token, err := m.signer.Sign(s.ID, s.CreatedAt, s.ExpiresAt)
	if err != nil {
		return Session{}, fmt.Errorf("sign session: %w", err)
	}
	if err := m.store.Save(ctx, s); err != nil {
		return Session{}, fmt.Errorf("save session: %w", err)
	}

	sc.ID = s.ID
	sc.Token = token
	sc.ExpiresAt = s.ExpiresAt
	sc.changed = true
	return s, nil
}

// Logout clears every piece of session data bound to sc.
func (m *Manager) Logout(ctx context.Context, sc *Scope) error {
	if sc == nil {
		return nil
	}
	if sc.ID != "" {
		if err := m.store.Delete(ctx, sc.ID); err != nil {
			return fmt.Errorf("delete session: %w", err)
		}
	}
	*sc = Scope{changed: true}
	return nil
}

// Current returns the live session bound to sc. It never fails: store errors
// are logged and treated as no session.
func (m *Manager) Current(ctx context.Context, sc *Scope) (Session, bool) {
	if sc == nil || sc.ID == "" {
		return Session{}, false
	}
	s, err := m.store.Get(ctx, sc.ID)
	if err != nil {
		if !errors.Is(err, ErrNotFound) && m.logger != nil {
			m.logger.WithError(err).Warn("session lookup failed")
		}
		return Session{}, false
	}
	if !s.ValidAt(m.now()) {
		return Session{}, false
	}
	return s, true
}

func (m *Manager) CurrentUserID(ctx context.Context, sc *Scope) (int64, bool) {
	s, ok := m.Current(ctx, sc)
	if !ok {
		return 0, false
	}
	return s.UserID, true
}

func (m *Manager) IsAuthenticated(ctx context.Context, sc *Scope) bool {
	_, ok := m.Current(ctx, sc)
	return ok
}
