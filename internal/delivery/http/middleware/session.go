package middleware

import (
	"time"

	"github.com/gofiber/fiber/v3"

	"skill-radar/internal/config"
	"skill-radar/internal/session"
)

const CtxSessionKey = "session_scope"

// SessionMiddleware resolves the session cookie into a *session.Scope for the
// handlers and writes the cookie back when a handler logged in or out.
type SessionMiddleware struct {
	sessions *session.Manager
	cfg      config.SessionConfig
	now      func() time.Time
}

func NewSessionMiddleware(sessions *session.Manager, cfg config.SessionConfig) *SessionMiddleware {
	return &SessionMiddleware{sessions: sessions, cfg: cfg, now: time.Now}
}

func (m *SessionMiddleware) Middleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		sc := m.sessions.Resolve(c.Cookies(m.cfg.CookieName))
		c.Locals(CtxSessionKey, sc)

		err := c.Next()

		if sc.Changed() {
			if sc.Token == "" {
				m.clearCookie(c)
			} else {
				m.issueCookie(c, sc)
			}
		}
		return err
	}
}

func (m *SessionMiddleware) issueCookie(c fiber.Ctx, sc *session.Scope) {
	maxAge := int((sc.ExpiresAt.Sub(m.now()) + time.Second - 1) / time.Second)
	if maxAge <= 0 {
		m.clearCookie(c)
		return
	}
	c.Cookie(&fiber.Cookie{
		Name:     m.cfg.CookieName,
		Value:    sc.Token,
		Path:     "/",
		MaxAge:   maxAge,
		Expires:  sc.ExpiresAt,
		Secure:   m.cfg.Secure,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

func (m *SessionMiddleware) clearCookie(c fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     m.cfg.CookieName,
		Value:    "",
		Path:     "/",
		Expires:  m.now().Add(-time.Hour),
		Secure:   m.cfg.Secure,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

// Scope returns the session scope of the request. Outside the session
// middleware it is an empty scope.
func Scope(c fiber.Ctx) *session.Scope {
	if sc, ok := c.Locals(CtxSessionKey).(*session.Scope); ok && sc != nil {
		return sc
	}
	return &session.Scope{}
}
