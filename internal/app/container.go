package app

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/sirupsen/logrus"

	"skill-radar/internal/config"
	"skill-radar/internal/database"
	"skill-radar/internal/database/migration"
	dbpostgres "skill-radar/internal/database/postgres"
	"skill-radar/internal/infrastructure/cache"
	"skill-radar/internal/infrastructure/persistence/memory"
	"skill-radar/internal/infrastructure/persistence/postgres"
	"skill-radar/internal/pkg/jwt"
	"skill-radar/internal/pkg/password"
	"skill-radar/internal/repository"
	"skill-radar/internal/session"
	ucaccess "skill-radar/internal/usecase/access"
	ucauth "skill-radar/internal/usecase/auth"
	ucskill "skill-radar/internal/usecase/skill"
	ucuser "skill-radar/internal/usecase/user"
)

type Container struct {
	Config config.Config
	Logger logrus.FieldLogger

	// DB is nil when the memory driver is selected.
	DB    database.DB
	Store repository.Store
	Redis *cache.Redis

	Sessions *session.Manager
	Users    *ucuser.Service
	Skills   *ucskill.Service
	Auth     *ucauth.Gate
	Access   *ucaccess.Service

	Metrics *prometheus.Registry
}

func NewContainer(ctx context.Context, cfg config.Config, logger logrus.FieldLogger) (*Container, error) {
	c := &Container{Config: cfg, Logger: logger}

	if err := c.openStore(ctx); err != nil {
		return nil, err
	}
	if err := c.openSessions(ctx); err != nil {
		_ = c.Close()
		return nil, err
	}

	c.Users = ucuser.NewService(c.Store, password.New(cfg.Auth.HashPasswords), logger.WithField("component", "users"))
	c.Skills = ucskill.NewService(c.Store, cfg.Skills.UniqueNames, logger.WithField("component", "skills"))
	c.Auth = ucauth.NewGate(c.Sessions, c.Users, logger.WithField("component", "auth"))
	c.Access = ucaccess.NewService(c.Skills, c.Users)

	c.Metrics = prometheus.NewRegistry()
	c.Metrics.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return c, nil
}

func (c *Container) openStore(ctx context.Context) error {
	switch c.Config.Database.Driver {
	case config.DriverMemory:
		c.Logger.Warn("using in-memory storage, data is lost on exit")
		c.Store = memory.NewStore()
		return nil
	case config.DriverPostgres:
		connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()

		db, err := dbpostgres.Connect(connectCtx, c.Config.Database, c.Logger)
		if err != nil {
			return err
		}
		c.DB = db

		if c.Config.Database.AutoMigrate {
			runner := migration.Runner{Logger: c.Logger.WithField("component", "migrate")}
			if err := runner.Up(ctx, db.SQLDB()); err != nil {
				_ = db.Close()
				return fmt.Errorf("auto migrate: %w", err)
			}
		}

		c.Store = postgres.NewStore(db)
		return nil
	default:
		return fmt.Errorf("unsupported database driver %q", c.Config.Database.Driver)
	}
}

func (c *Container) openSessions(ctx context.Context) error {
	cfg := c.Config.Session

	var store session.Store
	switch cfg.Store {
	case config.SessionStoreRedis:
		c.Redis = cache.NewRedis(ctx, c.Config.Redis, c.Logger.WithField("component", "redis"))
		if c.Redis.Available() {
			store = session.NewRedisStore(c.Redis, nil)
			break
		}
		c.Logger.Warn("redis unreachable, keeping sessions in memory")
		store = session.NewMemoryStore(nil)
	default:
		store = session.NewMemoryStore(nil)
	}

	signer := jwt.NewHMACService(cfg.Secret, c.Config.App.AppName)
	c.Sessions = session.NewManager(store, signer, c.Logger.WithField("component", "session"),
		session.WithLifetime(cfg.MaxAge))
	return nil
}

// Pinger returns the database health probe, or nil without a database.
func (c *Container) Pinger() interface{ Ping(context.Context) error } {
	if c.DB == nil {
		return nil
	}
	return c.DB
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	var firstErr error
	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			firstErr = err
		}
	}
	if c.DB != nil {
		if err := c.DB.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
