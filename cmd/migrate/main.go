package main

import (
	"context"
	"flag"
	"time"

	"skill-radar/internal/config"
	"skill-radar/internal/database/migration"
	dbpostgres "skill-radar/internal/database/postgres"
	"skill-radar/internal/pkg/logger"
)

func main() {
	command := flag.String("command", "up", "up | status | down")
	target := flag.Int64("target", 0, "version to roll back to (down only, 0 = one step)")
	timeout := flag.Duration("timeout", 2*time.Minute, "overall timeout")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		logger.Fallback().WithError(err).Fatal("failed to load config")
	}
	log := logger.New(cfg.Log, "migrate")

	if cfg.Database.Driver != config.DriverPostgres {
		log.WithField("driver", cfg.Database.Driver).Fatal("migrations need DB_DRIVER=postgres")
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	db, err := dbpostgres.Connect(ctx, cfg.Database, log)
	if err != nil {
		log.WithError(err).Fatal("failed to connect")
	}
	defer func() {
		_ = db.Close()
	}()

	r := migration.Runner{Logger: log}
	switch *command {
	case "up":
		err = r.Up(ctx, db.SQLDB())
	case "status":
		err = r.Status(ctx, db.SQLDB())
	case "down":
		err = r.Down(ctx, db.SQLDB(), *target)
	default:
		log.WithField("command", *command).Fatal("unknown command")
	}
	if err != nil {
		log.WithError(err).Fatal("migration failed")
	}
}
