package postgres

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skill-radar/internal/database"
	"skill-radar/internal/domain/skill"
	"skill-radar/internal/domain/user"
	"skill-radar/internal/repository"
)

type fakeRow struct {
	err error
}

func (r fakeRow) Scan(_ ...any) error { return r.err }

type fakeTx struct {
	db         *fakeDB
	committed  bool
	rolledBack bool
}

func (t *fakeTx) Exec(ctx context.Context, q string, args ...any) (int64, error) {
	return t.db.Exec(ctx, q, args...)
}
func (t *fakeTx) Query(ctx context.Context, q string, args ...any) (database.Rows, error) {
	return t.db.Query(ctx, q, args...)
}
func (t *fakeTx) QueryRow(ctx context.Context, q string, args ...any) database.Row {
	return t.db.QueryRow(ctx, q, args...)
}
func (t *fakeTx) Commit(context.Context) error   { t.committed = true; return nil }
func (t *fakeTx) Rollback(context.Context) error { t.rolledBack = true; return nil }

type fakeDB struct {
	rowErr   error
	execRows int64
	execErr  error
	queries  []string
	txs      []*fakeTx
}

func (d *fakeDB) Ping(context.Context) error { return nil }
func (d *fakeDB) Close() error               { return nil }
func (d *fakeDB) SQLDB() *sql.DB             { return nil }
func (d *fakeDB) Exec(_ context.Context, q string, _ ...any) (int64, error) {
	d.queries = append(d.queries, q)
	return d.execRows, d.execErr
}
func (d *fakeDB) Query(_ context.Context, q string, _ ...any) (database.Rows, error) {
	d.queries = append(d.queries, q)
	return nil, errors.New("not scripted")
}
func (d *fakeDB) QueryRow(_ context.Context, q string, _ ...any) database.Row {
	d.queries = append(d.queries, q)
	return fakeRow{err: d.rowErr}
}
func (d *fakeDB) Begin(context.Context) (database.Tx, error) {
	tx := &fakeTx{db: d}
	d.txs = append(d.txs, tx)
	return tx, nil
}

func TestUserRepository_CreateDuplicateEmail(t *testing.T) {
	db := &fakeDB{rowErr: &pgconn.PgError{Code: "23505"}}
	_, err := NewStore(db).Users().Create(context.Background(), user.NewUser{Email: "a@example.com"})
	assert.ErrorIs(t, err, user.ErrEmailTaken)
}

func TestUserRepository_GetByIDNotFound(t *testing.T) {
	db := &fakeDB{rowErr: pgx.ErrNoRows}
	_, err := NewStore(db).Users().GetByID(context.Background(), 7)
	assert.ErrorIs(t, err, user.ErrNotFound)
}

func TestUserRepository_DeleteMissing(t *testing.T) {
	db := &fakeDB{execRows: 0}
	err := NewStore(db).Users().Delete(context.Background(), 7)
	assert.ErrorIs(t, err, user.ErrNotFound)
}

func TestSkillRepository_CreateUnknownOwner(t *testing.T) {
	db := &fakeDB{rowErr: &pgconn.PgError{Code: "23503"}}
	_, err := NewStore(db).Skills().Create(context.Background(), skill.NewSkill{UserID: 99})
	assert.ErrorIs(t, err, skill.ErrOwnerNotFound)
}

func TestSkillRepository_UpdateMissingRollsBack(t *testing.T) {
	db := &fakeDB{rowErr: pgx.ErrNoRows}
	called := false
	_, err := NewStore(db).Skills().Update(context.Background(), 3, func(*skill.Skill) error {
		called = true
		return nil
	})
	assert.ErrorIs(t, err, skill.ErrNotFound)
	assert.False(t, called)
	require.Len(t, db.txs, 1)
	assert.True(t, db.txs[0].rolledBack)
	assert.False(t, db.txs[0].committed)
	assert.Contains(t, db.queries[0], "FOR UPDATE")
}

func TestStore_WithinTxCommitsAndNests(t *testing.T) {
	db := &fakeDB{execRows: 2}
	s := NewStore(db)

	var deleted int64
	err := s.WithinTx(context.Background(), func(tx repository.Store) error {
		var err error
		deleted, err = tx.Skills().DeleteByUser(context.Background(), 1)
		return err
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2), deleted)
	require.Len(t, db.txs, 1, "nested DeleteByUser must join the outer transaction")
	assert.True(t, db.txs[0].committed)
}

func TestStore_WithinTxRollsBackOnError(t *testing.T) {
	db := &fakeDB{}
	boom := errors.New("boom")

	err := NewStore(db).WithinTx(context.Background(), func(repository.Store) error { return boom })
	assert.ErrorIs(t, err, boom)
	require.Len(t, db.txs, 1)
	assert.True(t, db.txs[0].rolledBack)
}
