package betcalc

import (
	"errors"
	"fmt"

	"github.com/Fouxth/Bookielocal/models"
)

var (
	// ErrInvalidFormat: the bet number is not purely numeric.
	ErrInvalidFormat = errors.New("bet number must contain digits only")
	// ErrInvalidLength: the bet number's length does not match its category.
	ErrInvalidLength = errors.New("bet number length does not match category")

	ErrUnknownCategory = errors.New("unknown category")
	ErrInvalidAmount   = errors.New("unit price must be positive and quantity at least 1")
)

// InputError is a validation failure on a raw bet number. It wraps ErrInvalidFormat or
// ErrInvalidLength.
type InputError struct {
	Raw      string
	Category models.Category
	Err      error
}

func (e *InputError) Error() string {
	if errors.Is(e.Err, ErrInvalidLength) {
		return fmt.Sprintf("%s: %q needs %d digits for %s", e.Err, e.Raw, e.Category.DigitLength(), e.Category)
	}
	return fmt.Sprintf("%s: %q", e.Err, e.Raw)
}

func (e *InputError) Unwrap() error { return e.Err }

// ConfigError means the Settings handed to the core are incomplete, e.g. a category has no
// payout rate. It is an upstream misconfiguration, never a user error.
type ConfigError struct {
	Category models.Category
	Field    string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("settings: missing %s for category %s", e.Field, e.Category)
}

// IsValidation reports whether err is a user-facing input problem.
func IsValidation(err error) bool {
	return errors.Is(err, ErrInvalidFormat) ||
		errors.Is(err, ErrInvalidLength) ||
		errors.Is(err, ErrUnknownCategory) ||
		errors.Is(err, ErrInvalidAmount)
}
