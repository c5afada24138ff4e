package auth

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"skill-radar/internal/domain/user"
	"skill-radar/internal/session"
)

var ErrUnauthenticated = errors.New("not authenticated")

type UserLookup interface {
	Get(ctx context.Context, id int64) (user.User, error)
	Authenticate(ctx context.Context, email, password string) (user.User, error)
}

// Gate resolves the caller behind a session scope.
type Gate struct {
	sessions *session.Manager
	users    UserLookup
	logger   logrus.FieldLogger
}

func NewGate(sessions *session.Manager, users UserLookup, logger logrus.FieldLogger) *Gate {
	return &Gate{sessions: sessions, users: users, logger: logger}
}

// RequireUser returns the authenticated caller. A session whose user no
// longer exists is reported as ErrUnauthenticated, not as a missing user.
func (g *Gate) RequireUser(ctx context.Context, sc *session.Scope) (user.User, error) {
	id, ok := g.sessions.CurrentUserID(ctx, sc)
	if !ok {
		return user.User{}, ErrUnauthenticated
	}
	u, err := g.users.Get(ctx, id)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			g.logger.WithField("user_id", id).Debug("session refers to a deleted user")
			return user.User{}, ErrUnauthenticated
		}
		return user.User{}, err
	}
	return u, nil
}

func (g *Gate) OptionalUser(ctx context.Context, sc *session.Scope) (user.User, bool) {
	u, err := g.RequireUser(ctx, sc)
	if err != nil {
		if !errors.Is(err, ErrUnauthenticated) {
			g.logger.WithError(err).Warn("resolve optional user")
		}
		return user.User{}, false
	}
	return u, true
}

// Login checks the credentials and binds a new session to sc. On failure sc
// is left untouched.
func (g *Gate) Login(ctx context.Context, sc *session.Scope, email, password string) (user.User, error) {
	u, err := g.users.Authenticate(ctx, email, password)
	if err != nil {
		return user.User{}, err
	}
	if _, err := g.sessions.Login(ctx, sc, u.ID, u.Email); err != nil {
		return user.User{}, err
	}
	g.logger.WithField("user_id", u.ID).Info("user logged in")
	return u, nil
}

func (g *Gate) Logout(ctx context.Context, sc *session.Scope) error {
	return g.sessions.Logout(ctx, sc)
}
