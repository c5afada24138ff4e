package postgres

import (
	"context"
	"fmt"

	"skill-radar/internal/database"
	"skill-radar/internal/domain/skill"
	"skill-radar/internal/domain/user"
	"skill-radar/internal/repository"
)

var _ repository.Store = (*Store)(nil)

type Store struct {
	db database.DB
	q  database.Querier
	tx bool
}

func NewStore(db database.DB) *Store {
	return &Store{db: db, q: db}
}

func (s *Store) Users() user.Repository {
	return &UserRepository{store: s}
}

func (s *Store) Skills() skill.Repository {
	return &SkillRepository{store: s}
}

func (s *Store) WithinTx(ctx context.Context, fn func(tx repository.Store) error) error {
	return s.withinTx(ctx, func(txs *Store) error { return fn(txs) })
}

func (s *Store) withinTx(ctx context.Context, fn func(txs *Store) error) (err error) {
	if s.tx {
		return fn(s)
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback(ctx)
			panic(p)
		}
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	if err = fn(&Store{db: s.db, q: tx, tx: true}); err != nil {
		return err
	}
	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}
