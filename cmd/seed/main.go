package main

import (
	"context"
	"time"

	"skill-radar/internal/app"
	"skill-radar/internal/config"
	"skill-radar/internal/database/seeder"
	"skill-radar/internal/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Fallback().WithError(err).Fatal("failed to load config")
	}
	log := logger.New(cfg.Log, "seed")

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	c, err := app.NewContainer(ctx, cfg, log)
	if err != nil {
		log.WithError(err).Fatal("failed to init container")
	}
	defer func() {
		_ = c.Close()
	}()

	r := seeder.Runner{Seeders: seeder.Defaults()}
	if err := r.Run(ctx, seeder.Deps{Users: c.Users, Skills: c.Skills, Logger: log}); err != nil {
		log.WithError(err).Fatal("seeding failed")
	}
	log.Info("seeding completed")
}
