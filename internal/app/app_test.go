package app

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skill-radar/internal/config"
)

type envelope struct {
	Status  int             `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type client struct {
	t       *testing.T
	app     *App
	cookies []*http.Cookie
}

func testConfig() config.Config {
	return config.Config{
		App: config.AppConfig{
			AppName:     "skill-radar",
			Version:     "test",
			Environment: "test",
			HTTPPort:    "0",
		},
		Database: config.DatabaseConfig{Driver: config.DriverMemory},
		Session: config.SessionConfig{
			Secret:     "test-secret",
			CookieName: "session",
			MaxAge:     24 * time.Hour,
			Store:      config.SessionStoreMemory,
		},
		CORS: config.CORSConfig{AllowOrigins: []string{"http://localhost:5173"}},
		Log:  config.LogConfig{Level: "debug", Format: "text"},
	}
}

func newTestApp(t *testing.T) *App {
	t.Helper()
	logger, _ := test.NewNullLogger()
	a, cleanup, err := Bootstrap(context.Background(), testConfig(), logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = cleanup() })
	return a
}

func (a *App) client(t *testing.T) *client {
	return &client{t: t, app: a}
}

// do sends a request carrying the client's cookies and remembers any cookie
// the server sets or clears.
func (c *client) do(method, path string, body any) (*http.Response, envelope) {
	c.t.Helper()

	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(c.t, err)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, ck := range c.cookies {
		req.AddCookie(ck)
	}

	resp, err := c.app.Fiber.Test(req)
	require.NoError(c.t, err)
	defer resp.Body.Close()

	for _, ck := range resp.Cookies() {
		c.setCookie(ck)
	}

	var env envelope
	raw, err := io.ReadAll(resp.Body)
	require.NoError(c.t, err)
	if len(raw) > 0 {
		require.NoError(c.t, json.Unmarshal(raw, &env), string(raw))
	}
	return resp, env
}

func (c *client) setCookie(ck *http.Cookie) {
	kept := c.cookies[:0]
	for _, old := range c.cookies {
		if old.Name != ck.Name {
			kept = append(kept, old)
		}
	}
	c.cookies = kept
	if ck.Value != "" {
		c.cookies = append(c.cookies, &http.Cookie{Name: ck.Name, Value: ck.Value})
	}
}

func decode[T any](t *testing.T, env envelope) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(env.Data, &out))
	return out
}

type userBody struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	Position  string  `json:"position"`
	Email     string  `json:"email"`
	AvatarURL *string `json:"avatar_url"`
	CreatedAt string  `json:"created_at"`
	UpdatedAt string  `json:"updated_at"`
}

type skillBody struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Category    string  `json:"category"`
	Description *string `json:"description"`
	Level       float64 `json:"level"`
	UserID      int64   `json:"user_id"`
}

func register(t *testing.T, c *client, email string) userBody {
	t.Helper()
	resp, env := c.do(http.MethodPost, "/api/v1/users", map[string]any{
		"name": "User " + email, "position": "Engineer", "email": email, "password": "secret1",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, env.Message)
	return decode[userBody](t, env)
}

func login(t *testing.T, c *client, email string) {
	t.Helper()
	resp, env := c.do(http.MethodPost, "/api/v1/users/login", map[string]any{"email": email, "password": "secret1"})
	require.Equal(t, http.StatusOK, resp.StatusCode, env.Message)
}

func addSkill(t *testing.T, c *client, owner int64, name, category string, level float64) skillBody {
	t.Helper()
	resp, env := c.do(http.MethodPost, "/api/v1/skills", map[string]any{
		"name": name, "category": category, "level": level, "user_id": owner,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, env.Message)
	return decode[skillBody](t, env)
}

func TestUsers_CreateRoundTrip(t *testing.T) {
	a := newTestApp(t)
	c := a.client(t)

	avatar := "https://cdn.example/ada.png"
	resp, env := c.do(http.MethodPost, "/api/v1/users", map[string]any{
		"name": "Ada", "position": "Analyst", "email": "ada@x.io", "password": "engine1", "avatar_url": avatar,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.NotContains(t, string(env.Data), "engine1")
	created := decode[userBody](t, env)
	assert.NotZero(t, created.ID)
	assert.NotEmpty(t, created.CreatedAt)

	resp, env = c.do(http.MethodGet, fmt.Sprintf("/api/v1/users/%d", created.ID), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	got := decode[userBody](t, env)
	assert.Equal(t, created, got)
	assert.Equal(t, "Ada", got.Name)
	assert.Equal(t, "Analyst", got.Position)
	assert.Equal(t, "ada@x.io", got.Email)
	require.NotNil(t, got.AvatarURL)
	assert.Equal(t, avatar, *got.AvatarURL)

	resp, env = c.do(http.MethodGet, "/api/v1/users/email/ada@x.io", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, created.ID, decode[userBody](t, env).ID)

	resp, _ = c.do(http.MethodGet, "/api/v1/users/email/nobody@x.io", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = c.do(http.MethodGet, "/api/v1/users/999", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = c.do(http.MethodGet, "/api/v1/users/abc", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
}

func TestUsers_GetByEmailDecodesPath(t *testing.T) {
	a := newTestApp(t)
	c := a.client(t)
	u := register(t, c, "ann+dev@x.io")

	for _, path := range []string{
		"/api/v1/users/email/ann%2Bdev%40x.io",
		"/api/v1/users/email/ann+dev@x.io",
	} {
		resp, env := c.do(http.MethodGet, path, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode, path)
		assert.Equal(t, u.ID, decode[userBody](t, env).ID, path)
	}

	resp, _ := c.do(http.MethodGet, "/api/v1/users/email/nobody%40x.io", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestUsers_DuplicateEmailAndValidation(t *testing.T) {
	a := newTestApp(t)
	c := a.client(t)
	register(t, c, "dup@x.io")

	resp, env := c.do(http.MethodPost, "/api/v1/users", map[string]any{
		"name": "Other", "position": "QA", "email": "dup@x.io", "password": "secret1",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Email already registered", env.Message)

	resp, env = c.do(http.MethodPost, "/api/v1/users", map[string]any{
		"name": "", "position": "QA", "email": "new@x.io", "password": "123",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Contains(t, string(env.Data), "password")
	assert.Contains(t, string(env.Data), "name")
}

func TestUsers_ListPagination(t *testing.T) {
	a := newTestApp(t)
	c := a.client(t)
	for i := 0; i < 3; i++ {
		register(t, c, fmt.Sprintf("u%d@x.io", i))
	}

	resp, env := c.do(http.MethodGet, "/api/v1/users?skip=1&limit=1", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	list := decode[[]userBody](t, env)
	require.Len(t, list, 1)
	assert.Equal(t, "u1@x.io", list[0].Email)

	resp, _ = c.do(http.MethodGet, "/api/v1/users?skip=-1", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
}

func TestUsers_UpdateAndDeleteNeedNoSession(t *testing.T) {
	a := newTestApp(t)
	owner := a.client(t)
	u := register(t, owner, "owner@x.io")
	login(t, owner, "owner@x.io")
	addSkill(t, owner, u.ID, "Go", "Backend", 5)
	addSkill(t, owner, u.ID, "SQL", "Data", 6)

	stranger := a.client(t)
	resp, env := stranger.do(http.MethodPut, fmt.Sprintf("/api/v1/users/%d", u.ID), map[string]any{"position": "CTO"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	updated := decode[userBody](t, env)
	assert.Equal(t, "CTO", updated.Position)
	assert.Equal(t, u.Name, updated.Name)

	resp, _ = stranger.do(http.MethodPut, "/api/v1/users/999", map[string]any{"position": "CTO"})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = stranger.do(http.MethodDelete, fmt.Sprintf("/api/v1/users/%d", u.ID), nil)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	left, err := a.Container.Store.Skills().ListByUser(context.Background(), u.ID)
	require.NoError(t, err)
	assert.Empty(t, left)

	resp, _ = stranger.do(http.MethodDelete, fmt.Sprintf("/api/v1/users/%d", u.ID), nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	// The owner's session now points at a deleted user.
	resp, _ = owner.do(http.MethodGet, "/api/v1/users/me", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuth_WrongPasswordCreatesNoSession(t *testing.T) {
	a := newTestApp(t)
	c := a.client(t)
	register(t, c, "a@x.io")

	resp, _ := c.do(http.MethodPost, "/api/v1/users/login", map[string]any{"email": "a@x.io", "password": "wrong!"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Empty(t, resp.Header.Values("Set-Cookie"))

	resp, _ = c.do(http.MethodGet, "/api/v1/users/me", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, _ = c.do(http.MethodPost, "/api/v1/users/login", map[string]any{"email": "nobody@x.io", "password": "secret1"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuth_LoginMeLogout(t *testing.T) {
	a := newTestApp(t)
	c := a.client(t)
	u := register(t, c, "a@x.io")

	resp, env := c.do(http.MethodPost, "/api/v1/users/login", map[string]any{"email": "a@x.io", "password": "secret1"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Login successful", env.Message)
	body := decode[struct {
		User        userBody `json:"user"`
		RedirectURL string   `json:"redirect_url"`
	}](t, env)
	assert.Equal(t, u.ID, body.User.ID)
	assert.Equal(t, fmt.Sprintf("/profile/%d", u.ID), body.RedirectURL)

	setCookie := resp.Header.Get("Set-Cookie")
	assert.Contains(t, setCookie, "session=")
	assert.Contains(t, strings.ToLower(setCookie), "httponly")
	assert.Regexp(t, `(?i)max-age=(86400|86399)\b`, setCookie)
	stolen := append([]*http.Cookie(nil), c.cookies...)

	resp, env = c.do(http.MethodGet, "/api/v1/users/me", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "a@x.io", decode[userBody](t, env).Email)

	resp, env = c.do(http.MethodGet, "/", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(env.Data), `"authenticated":true`)

	resp, env = c.do(http.MethodPost, "/api/v1/users/logout", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Logout successful", env.Message)
	assert.Empty(t, c.cookies)

	resp, _ = c.do(http.MethodGet, "/api/v1/users/me", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	replay := a.client(t)
	replay.cookies = stolen
	resp, _ = replay.do(http.MethodGet, "/api/v1/users/me", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, _ = c.do(http.MethodPost, "/api/v1/users/logout", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestSkills_RequireSession(t *testing.T) {
	a := newTestApp(t)
	c := a.client(t)

	resp, _ := c.do(http.MethodGet, "/api/v1/skills", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	c.cookies = []*http.Cookie{{Name: "session", Value: "forged"}}
	resp, _ = c.do(http.MethodGet, "/api/v1/skills/1", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestSkills_OwnershipRules(t *testing.T) {
	a := newTestApp(t)
	alice, bob := a.client(t), a.client(t)
	register(t, alice, "alice@x.io")
	ub := register(t, bob, "bob@x.io")
	login(t, alice, "alice@x.io")
	login(t, bob, "bob@x.io")

	bobs := addSkill(t, bob, ub.ID, "Rust", "Backend", 6)

	resp, _ := alice.do(http.MethodPost, "/api/v1/skills", map[string]any{
		"name": "Go", "category": "Backend", "level": 4, "user_id": ub.ID,
	})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	bobPath := fmt.Sprintf("/api/v1/skills/%d", bobs.ID)
	missing := fmt.Sprintf("/api/v1/skills/%d", bobs.ID+1000)

	resp, _ = alice.do(http.MethodGet, bobPath, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp, _ = alice.do(http.MethodGet, missing, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = alice.do(http.MethodPut, bobPath, map[string]any{"level": 1})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp, _ = alice.do(http.MethodPut, missing, map[string]any{"level": 1})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = alice.do(http.MethodDelete, bobPath, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp, _ = alice.do(http.MethodDelete, missing, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = alice.do(http.MethodGet, fmt.Sprintf("/api/v1/skills/user/%d", ub.ID), nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp, _ = alice.do(http.MethodGet, fmt.Sprintf("/api/v1/users/%d/profile", ub.ID), nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, _ = bob.do(http.MethodGet, bobPath, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp, env := bob.do(http.MethodGet, fmt.Sprintf("/api/v1/skills/user/%d", ub.ID), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, decode[[]skillBody](t, env), 1)

	resp, _ = bob.do(http.MethodDelete, bobPath, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp, _ = bob.do(http.MethodGet, bobPath, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestSkills_LevelBoundsAndPartialUpdate(t *testing.T) {
	a := newTestApp(t)
	c := a.client(t)
	u := register(t, c, "a@x.io")
	login(t, c, "a@x.io")

	for _, level := range []float64{0.99, 10.01} {
		resp, _ := c.do(http.MethodPost, "/api/v1/skills", map[string]any{
			"name": "Go", "category": "Backend", "level": level, "user_id": u.ID,
		})
		assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode, "level %v", level)
	}
	resp, _ := c.do(http.MethodPost, "/api/v1/skills", map[string]any{"name": "Go", "category": "Backend", "user_id": u.ID})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	desc := "concurrency"
	resp, env := c.do(http.MethodPost, "/api/v1/skills", map[string]any{
		"name": "Go", "category": "Backend", "description": desc, "level": 10.0, "user_id": u.ID,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decode[skillBody](t, env)

	resp, env = c.do(http.MethodPut, fmt.Sprintf("/api/v1/skills/%d", created.ID), map[string]any{"name": "Golang"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	updated := decode[skillBody](t, env)
	assert.Equal(t, "Golang", updated.Name)
	assert.Equal(t, created.Category, updated.Category)
	assert.Equal(t, created.Description, updated.Description)
	assert.Equal(t, created.Level, updated.Level)

	resp, _ = c.do(http.MethodPut, fmt.Sprintf("/api/v1/skills/%d", created.ID), map[string]any{"level": nil})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
}

func TestSkills_ListMineAndProfile(t *testing.T) {
	a := newTestApp(t)
	alice, bob := a.client(t), a.client(t)
	ua := register(t, alice, "alice@x.io")
	ub := register(t, bob, "bob@x.io")
	login(t, alice, "alice@x.io")
	login(t, bob, "bob@x.io")

	addSkill(t, bob, ub.ID, "K8s", "Ops", 5)
	addSkill(t, alice, ua.ID, "Ansible", "Ops", 3)
	addSkill(t, alice, ua.ID, "Go", "Backend", 8)

	resp, env := alice.do(http.MethodGet, "/api/v1/skills", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, decode[[]skillBody](t, env), 2)

	resp, env = alice.do(http.MethodGet, "/api/v1/skills?category=Ops&limit=1", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, decode[[]skillBody](t, env))

	resp, env = alice.do(http.MethodGet, "/api/v1/skills?category=Ops", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	ops := decode[[]skillBody](t, env)
	require.Len(t, ops, 1)
	assert.Equal(t, "Ansible", ops[0].Name)

	resp, env = alice.do(http.MethodGet, fmt.Sprintf("/api/v1/users/%d/profile", ua.ID), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	profile := decode[struct {
		userBody
		Skills []skillBody `json:"skills"`
	}](t, env)
	assert.Equal(t, ua.ID, profile.ID)
	require.Len(t, profile.Skills, 2)
	assert.Equal(t, "Go", profile.Skills[0].Name)
}

func TestHealthRootAndMetrics(t *testing.T) {
	a := newTestApp(t)
	c := a.client(t)

	resp, env := c.do(http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(env.Data), "healthy")

	resp, env = c.do(http.MethodGet, "/", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(env.Data), `"authenticated":false`)
	assert.Contains(t, string(env.Data), `"version":"test"`)

	resp, _ = c.do(http.MethodGet, "/nope", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	mresp, err := a.Fiber.Test(req)
	require.NoError(t, err)
	defer mresp.Body.Close()
	raw, err := io.ReadAll(mresp.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, mresp.StatusCode)
	assert.Contains(t, string(raw), "skill_radar_api_http_requests_total")
}

func TestListenAddr(t *testing.T) {
	addr, err := ListenAddr("8000")
	require.NoError(t, err)
	assert.Equal(t, ":8000", addr)

	addr, err = ListenAddr(":9000")
	require.NoError(t, err)
	assert.Equal(t, ":9000", addr)

	_, err = ListenAddr(" ")
	assert.Error(t, err)
}

func TestBootstrap_CORSWithoutCredentialOrigins(t *testing.T) {
	logger, _ := test.NewNullLogger()
	for _, origins := range [][]string{{}, {"*"}} {
		cfg := testConfig()
		cfg.CORS.AllowOrigins = origins

		var (
			a       *App
			cleanup func() error
			err     error
		)
		require.NotPanics(t, func() {
			a, cleanup, err = Bootstrap(context.Background(), cfg, logger)
		})
		require.NoError(t, err)
		t.Cleanup(func() { _ = cleanup() })

		resp, _ := a.client(t).do(http.MethodGet, "/health", nil)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	}
}
