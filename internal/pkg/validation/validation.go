package validation

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"unicode/utf8"
)

// ErrInvalid matches every Errors value through errors.Is.
var ErrInvalid = errors.New("validation failed")

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type Errors []FieldError

func (e Errors) Error() string {
	parts := make([]string, 0, len(e))
	for _, fe := range e {
		parts = append(parts, fe.Field+": "+fe.Message)
	}
	return ErrInvalid.Error() + ": " + strings.Join(parts, "; ")
}

func (e Errors) Is(target error) bool {
	return target == ErrInvalid
}

// Validator accumulates field errors; Err returns nil when none were recorded.
type Validator struct {
	errs Errors
}

func New() *Validator {
	return &Validator{}
}

func (v *Validator) Add(field, message string) {
	v.errs = append(v.errs, FieldError{Field: field, Message: message})
}

func (v *Validator) Length(field, value string, min, max int) {
	n := utf8.RuneCountInString(value)
	switch {
	case n < min && min == 1:
		v.Add(field, "must not be empty")
	case n < min:
		v.Add(field, fmt.Sprintf("must be at least %d characters", min))
	case max > 0 && n > max:
		v.Add(field, fmt.Sprintf("must be at most %d characters", max))
	}
}

func (v *Validator) Range(field string, value, min, max float64) {
	if math.IsNaN(value) || value < min || value > max {
		v.Add(field, fmt.Sprintf("must be between %g and %g", min, max))
	}
}

func (v *Validator) Required(field string, present bool) {
	if !present {
		v.Add(field, "is required")
	}
}

func (v *Validator) NonNegative(field string, value int) {
	if value < 0 {
		v.Add(field, "must not be negative")
	}
}

func (v *Validator) Err() error {
	if len(v.errs) == 0 {
		return nil
	}
	return v.errs
}

// Fields extracts the field errors from err, if it carries any.
func Fields(err error) Errors {
	var errs Errors
	if errors.As(err, &errs) {
		return errs
	}
	return nil
}
