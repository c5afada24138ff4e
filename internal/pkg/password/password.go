// Package password compares login credentials against stored ones.
package password

import (
	"crypto/subtle"
	"errors"

	"golang.org/x/crypto/bcrypt"
)

var ErrMismatch = errors.New("password mismatch")

type Hasher interface {
	// Hash returns the value to persist for a new credential.
	Hash(plain string) (string, error)
	// Compare returns ErrMismatch when plain does not match stored.
	Compare(stored, plain string) error
}

// Plain stores credentials as given and compares them by exact match.
type Plain struct{}

func (Plain) Hash(plain string) (string, error) { return plain, nil }

func (Plain) Compare(stored, plain string) error {
	if subtle.ConstantTimeCompare([]byte(stored), []byte(plain)) != 1 {
		return ErrMismatch
	}
	return nil
}

type Bcrypt struct {
	Cost int
}

func (b Bcrypt) Hash(plain string) (string, error) {
	cost := b.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	h, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", err
	}
	return string(h), nil
}

func (Bcrypt) Compare(stored, plain string) error {
	err := bcrypt.CompareHashAndPassword([]byte(stored), []byte(plain))
	if err == nil {
		return nil
	}
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) || errors.Is(err, bcrypt.ErrHashTooShort) {
		return ErrMismatch
	}
	return err
}

// New picks the bcrypt strategy when hashing is enabled, plaintext otherwise.
func New(hash bool) Hasher {
	if hash {
		return Bcrypt{}
	}
	return Plain{}
}
