package migration

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/pressly/goose/v3"
	"github.com/sirupsen/logrus"
)

//go:embed sql/*.sql
var migrations embed.FS

const migrationsDir = "sql"

// Runner applies the embedded schema migrations with goose.
type Runner struct {
	Logger logrus.FieldLogger
}

func (r Runner) Up(ctx context.Context, db *sql.DB) error {
	if err := r.prepare(db); err != nil {
		return err
	}
	r.log().Info("applying migrations")
	if err := goose.UpContext(ctx, db, migrationsDir); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}
	r.log().Info("migrations applied")
	return nil
}

func (r Runner) Status(ctx context.Context, db *sql.DB) error {
	if err := r.prepare(db); err != nil {
		return err
	}
	if err := goose.StatusContext(ctx, db, migrationsDir); err != nil {
		return fmt.Errorf("migration status: %w", err)
	}
	return nil
}

// Down rolls back one migration, or down to target when target > 0.
func (r Runner) Down(ctx context.Context, db *sql.DB, target int64) error {
	if err := r.prepare(db); err != nil {
		return err
	}
	var err error
	if target > 0 {
		r.log().WithField("target", target).Info("rolling back migrations")
		err = goose.DownToContext(ctx, db, migrationsDir, target)
	} else {
		r.log().Info("rolling back last migration")
		err = goose.DownContext(ctx, db, migrationsDir)
	}
	if err != nil {
		return fmt.Errorf("roll back migrations: %w", err)
	}
	return nil
}

func (r Runner) prepare(db *sql.DB) error {
	if db == nil {
		return errors.New("nil db")
	}
	goose.SetBaseFS(migrations)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("configure goose: %w", err)
	}
	return nil
}

func (r Runner) log() logrus.FieldLogger {
	if r.Logger == nil {
		return logrus.StandardLogger()
	}
	return r.Logger
}
