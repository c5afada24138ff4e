// Package patch models partial updates: each field records whether the
// client supplied it, so absent fields can be left untouched.
package patch

import (
	"bytes"
	"encoding/json"
)

// Field is a presence-aware optional value. The zero Field is absent.
type Field[T any] struct {
	value T
	set   bool
	null  bool
}

// Set returns a present Field holding v.
func Set[T any](v T) Field[T] {
	return Field[T]{value: v, set: true}
}

// Null returns a present Field that explicitly clears the target.
func Null[T any]() Field[T] {
	return Field[T]{set: true, null: true}
}

func (f Field[T]) IsSet() bool  { return f.set }
func (f Field[T]) IsNull() bool { return f.set && f.null }

// Get returns the value and whether a non-null value was supplied.
func (f Field[T]) Get() (T, bool) {
	return f.value, f.set && !f.null
}

func (f *Field[T]) UnmarshalJSON(b []byte) error {
	f.set = true
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		var zero T
		f.value = zero
		f.null = true
		return nil
	}
	f.null = false
	return json.Unmarshal(b, &f.value)
}

func (f Field[T]) MarshalJSON() ([]byte, error) {
	if !f.set || f.null {
		return []byte("null"), nil
	}
	return json.Marshal(f.value)
}

// Apply writes a supplied value into dst. Absent and null fields are ignored;
// callers reject null for non-nullable targets during validation.
func Apply[T any](dst *T, f Field[T]) bool {
	v, ok := f.Get()
	if !ok {
		return false
	}
	*dst = v
	return true
}

// ApplyNullable writes into a nullable target: a null field clears it.
func ApplyNullable[T any](dst **T, f Field[T]) bool {
	if !f.IsSet() {
		return false
	}
	if f.null {
		*dst = nil
		return true
	}
	v := f.value
	*dst = &v
	return true
}
