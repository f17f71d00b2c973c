package engine

import (
	"errors"
	"fmt"

	"github.com/tartampluch/go-saju/internal/config"
)

var (
	// ErrInvalidInput marks a BirthInput rejected before any computation.
	ErrInvalidInput = errors.New(config.ErrInvalidInput)

	// ErrConversion marks a date the calendar converter cannot resolve.
	// Conversion is deterministic, so callers must not retry.
	ErrConversion = errors.New(config.ErrConversion)

	// ErrInvariant marks converter output outside the stem/branch domain.
	ErrInvariant = errors.New(config.ErrInvariant)
)

// ValidationError names the offending input field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s %s", config.ErrInvalidInput, e.Field, e.Reason)
}

// Unwrap lets errors.Is(err, ErrInvalidInput) match.
func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}

func invalid(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}
