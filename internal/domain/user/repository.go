package user

import (
	"context"
	"errors"
)

var (
	ErrNotFound   = errors.New("user not found")
	ErrEmailTaken = errors.New("email already registered")
)

// Repository persists users. Update runs mutate against the current row
// inside the store's transaction; Delete removes only the user row and
// fails if skills still reference it.
type Repository interface {
	Create(ctx context.Context, n NewUser) (User, error)
	GetByID(ctx context.Context, id int64) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
	List(ctx context.Context, skip, limit int) ([]User, error)
	Update(ctx context.Context, id int64, mutate func(*User) error) (User, error)
	Delete(ctx context.Context, id int64) error
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}
