package seeder

import (
	"context"
	"fmt"
)

type Runner struct {
	Seeders []Seeder
}

func (r Runner) Run(ctx context.Context, deps Deps) error {
	if deps.Users == nil || deps.Skills == nil {
		return fmt.Errorf("seeder: missing services")
	}
	for _, s := range r.Seeders {
		if s == nil {
			continue
		}
		if err := s.Run(ctx, deps); err != nil {
			return fmt.Errorf("seed %s: %w", s.Name(), err)
		}
	}
	return nil
}
