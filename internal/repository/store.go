package repository

import (
	"context"

	"skill-radar/internal/domain/skill"
	"skill-radar/internal/domain/user"
)

// Store hands out the entity repositories and scopes them to transactions.
type Store interface {
	Users() user.Repository
	Skills() skill.Repository

	// WithinTx runs fn against repositories bound to a single transaction.
	// A non-nil error from fn rolls the transaction back. Nested calls join
	// the outer transaction.
	WithinTx(ctx context.Context, fn func(tx Store) error) error
}
