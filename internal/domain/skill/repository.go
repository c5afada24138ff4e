package skill

import (
	"context"
	"errors"
)

var (
	ErrNotFound      = errors.New("skill not found")
	ErrOwnerNotFound = errors.New("skill owner not found")
	ErrDuplicateName = errors.New("skill name already exists for user")
)

type Repository interface {
	Create(ctx context.Context, n NewSkill) (Skill, error)
	GetByID(ctx context.Context, id int64) (Skill, error)
	ListByUser(ctx context.Context, userID int64) ([]Skill, error)
	ListByUserOrderedByLevel(ctx context.Context, userID int64) ([]Skill, error)
	ListByCategory(ctx context.Context, category string, skip, limit int) ([]Skill, error)
	List(ctx context.Context, skip, limit int) ([]Skill, error)
	Update(ctx context.Context, id int64, mutate func(*Skill) error) (Skill, error)
	Delete(ctx context.Context, id int64) error
	DeleteByUser(ctx context.Context, userID int64) (int64, error)
	ExistsForUser(ctx context.Context, userID int64, name string) (bool, error)
}
