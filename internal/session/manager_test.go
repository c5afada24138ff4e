package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skill-radar/internal/pkg/jwt"
)

type clock struct{ t time.Time }

func (c *clock) now() time.Time { return c.t }

func newManager(t *testing.T, c *clock) (*Manager, *MemoryStore) {
	t.Helper()
	logger, _ := test.NewNullLogger()
	store := NewMemoryStore(c.now)
	signer := jwt.NewHMACService("k", "test").WithClock(c.now)
	return NewManager(store, signer, logger, WithClock(c.now)), store
}

func TestManager_ExpiresExactlyAfterLifetime(t *testing.T) {
	start := time.Date(2024, 3, 10, 8, 0, 0, 0, time.UTC)
	c := &clock{t: start}
	m, _ := newManager(t, c)
	ctx := context.Background()

	sc := &Scope{}
	s, err := m.Login(ctx, sc, 7, "a@x.io")
	require.NoError(t, err)
	assert.Equal(t, start.Add(24*time.Hour), s.ExpiresAt)

	c.t = start.Add(24*time.Hour - time.Nanosecond)
	id, ok := m.CurrentUserID(ctx, sc)
	require.True(t, ok)
	assert.Equal(t, int64(7), id)

	c.t = start.Add(24 * time.Hour)
	_, ok = m.CurrentUserID(ctx, sc)
	assert.False(t, ok)

	c.t = start.Add(25 * time.Hour)
	assert.False(t, m.IsAuthenticated(ctx, sc))
}

func TestManager_TokenLivesAsLongAsRecord(t *testing.T) {
	start := time.Date(2024, 3, 10, 8, 0, 0, 700_000_000, time.UTC)
	c := &clock{t: start}
	m, _ := newManager(t, c)
	ctx := context.Background()

	sc := &Scope{}
	s, err := m.Login(ctx, sc, 7, "a@x.io")
	require.NoError(t, err)
	assert.Equal(t, start.Truncate(time.Second), s.CreatedAt)
	assert.Equal(t, s.CreatedAt.Add(24*time.Hour), s.ExpiresAt)

	c.t = s.ExpiresAt.Add(-300 * time.Millisecond)
	resolved := m.Resolve(sc.Token)
	assert.Equal(t, s.ID, resolved.ID)
	id, ok := m.CurrentUserID(ctx, resolved)
	require.True(t, ok)
	assert.Equal(t, int64(7), id)

	c.t = s.ExpiresAt
	assert.Empty(t, m.Resolve(sc.Token).ID)
	assert.False(t, m.IsAuthenticated(ctx, sc))
}

func TestManager_LoginReplacesPreviousSession(t *testing.T) {
	c := &clock{t: time.Date(2024, 3, 10, 8, 0, 0, 0, time.UTC)}
	m, store := newManager(t, c)
	ctx := context.Background()

	sc := &Scope{}
	first, err := m.Login(ctx, sc, 1, "a@x.io")
	require.NoError(t, err)

	second, err := m.Login(ctx, sc, 2, "b@x.io")
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)
	assert.Equal(t, 1, store.Len())

	_, err = store.Get(ctx, first.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	id, ok := m.CurrentUserID(ctx, sc)
	require.True(t, ok)
	assert.Equal(t, int64(2), id)
}

func TestManager_ResolveRoundTripAndLogout(t *testing.T) {
	c := &clock{t: time.Date(2024, 3, 10, 8, 0, 0, 0, time.UTC)}
	m, _ := newManager(t, c)
	ctx := context.Background()

	sc := &Scope{}
	_, err := m.Login(ctx, sc, 3, "c@x.io")
	require.NoError(t, err)
	assert.True(t, sc.Changed())

	resolved := m.Resolve(sc.Token)
	assert.Equal(t, sc.ID, resolved.ID)
	assert.False(t, resolved.Changed())
	assert.True(t, m.IsAuthenticated(ctx, resolved))

	require.NoError(t, m.Logout(ctx, resolved))
	assert.True(t, resolved.Changed())
	assert.Empty(t, resolved.Token)
	assert.False(t, m.IsAuthenticated(ctx, m.Resolve(sc.Token)))
}

func TestManager_ResolveRejectsGarbage(t *testing.T) {
	c := &clock{t: time.Now()}
	m, _ := newManager(t, c)

	assert.Empty(t, m.Resolve("").ID)
	assert.Empty(t, m.Resolve("garbage").ID)
	assert.False(t, m.IsAuthenticated(context.Background(), m.Resolve("garbage")))
}

type failingStore struct{}

func (failingStore) Get(context.Context, string) (Session, error) {
	return Session{}, errors.New("down")
}
func (failingStore) Save(context.Context, Session) error { return nil }
func (failingStore) Delete(context.Context, string) error { return nil }

func TestManager_StoreFailureIsNoSession(t *testing.T) {
	logger, hook := test.NewNullLogger()
	m := NewManager(failingStore{}, jwt.NewHMACService("k", ""), logger)

	_, ok := m.CurrentUserID(context.Background(), &Scope{ID: "x"})
	assert.False(t, ok)
	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, "session lookup failed", hook.LastEntry().Message)
}

func TestMemoryStore_DropsExpired(t *testing.T) {
	c := &clock{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	store := NewMemoryStore(c.now)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, Session{ID: "a", ExpiresAt: c.t.Add(time.Minute)}))
	_, err := store.Get(ctx, "a")
	require.NoError(t, err)

	c.t = c.t.Add(time.Minute)
	_, err = store.Get(ctx, "a")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, 0, store.Len())
}
