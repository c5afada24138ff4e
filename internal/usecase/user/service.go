package user

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"skill-radar/internal/domain/user"
	"skill-radar/internal/pkg/password"
	"skill-radar/internal/pkg/validation"
	"skill-radar/internal/repository"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

// Service is the user directory.
type Service struct {
	store  repository.Store
	hasher password.Hasher
	logger logrus.FieldLogger
}

func NewService(store repository.Store, hasher password.Hasher, logger logrus.FieldLogger) *Service {
	if hasher == nil {
		hasher = password.Plain{}
	}
	return &Service{store: store, hasher: hasher, logger: logger}
}

// Create registers a user. The email check and the insert are separate
// statements; the unique index on email catches a concurrent registration.
func (s *Service) Create(ctx context.Context, in user.NewUser) (user.User, error) {
	if err := in.Validate(); err != nil {
		return user.User{}, err
	}

	taken, err := s.store.Users().ExistsByEmail(ctx, in.Email)
	if err != nil {
		return user.User{}, fmt.Errorf("check email: %w", err)
	}
	if taken {
		return user.User{}, user.ErrEmailTaken
	}

	stored, err := s.hasher.Hash(in.Password)
	if err != nil {
		return user.User{}, fmt.Errorf("hash password: %w", err)
	}
	in.Password = stored

	u, err := s.store.Users().Create(ctx, in)
	if err != nil {
		return user.User{}, err
	}
	s.logger.WithField("user_id", u.ID).Info("user created")
	return u, nil
}

func (s *Service) Get(ctx context.Context, id int64) (user.User, error) {
	return s.store.Users().GetByID(ctx, id)
}

func (s *Service) GetByEmail(ctx context.Context, email string) (user.User, error) {
	return s.store.Users().GetByEmail(ctx, email)
}

func (s *Service) List(ctx context.Context, skip, limit int) ([]user.User, error) {
	if err := validatePage(skip, limit); err != nil {
		return nil, err
	}
	return s.store.Users().List(ctx, skip, limit)
}

// Profile returns the user with all owned skills, highest level first.
func (s *Service) Profile(ctx context.Context, id int64) (user.Profile, error) {
	u, err := s.store.Users().GetByID(ctx, id)
	if err != nil {
		return user.Profile{}, err
	}
	skills, err := s.store.Skills().ListByUserOrderedByLevel(ctx, id)
	if err != nil {
		return user.Profile{}, fmt.Errorf("list skills: %w", err)
	}
	return user.Profile{User: u, Skills: skills}, nil
}

func (s *Service) Update(ctx context.Context, id int64, p user.Patch) (user.User, error) {
	if err := p.Validate(); err != nil {
		return user.User{}, err
	}
	return s.store.Users().Update(ctx, id, func(u *user.User) error {
		p.ApplyTo(u)
		return nil
	})
}

// Delete removes the user and every skill they own in one transaction.
func (s *Service) Delete(ctx context.Context, id int64) error {
	var removed int64
	err := s.store.WithinTx(ctx, func(tx repository.Store) error {
		if _, err := tx.Users().GetByID(ctx, id); err != nil {
			return err
		}
		n, err := tx.Skills().DeleteByUser(ctx, id)
		if err != nil {
			return fmt.Errorf("delete skills: %w", err)
		}
		removed = n
		return tx.Users().Delete(ctx, id)
	})
	if err != nil {
		return err
	}
	s.logger.WithFields(logrus.Fields{"user_id": id, "skills_removed": removed}).Info("user deleted")
	return nil
}

// Authenticate fails closed: an unknown email and a wrong password are
// indistinguishable to the caller.
func (s *Service) Authenticate(ctx context.Context, email, plain string) (user.User, error) {
	u, err := s.store.Users().GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return user.User{}, ErrInvalidCredentials
		}
		return user.User{}, err
	}
	if err := s.hasher.Compare(u.Password, plain); err != nil {
		if errors.Is(err, password.ErrMismatch) {
			return user.User{}, ErrInvalidCredentials
		}
		return user.User{}, err
	}
	return u, nil
}

func (s *Service) Exists(ctx context.Context, email string) (bool, error) {
	return s.store.Users().ExistsByEmail(ctx, email)
}

func validatePage(skip, limit int) error {
	v := validation.New()
	v.NonNegative("skip", skip)
	v.NonNegative("limit", limit)
	return v.Err()
}
