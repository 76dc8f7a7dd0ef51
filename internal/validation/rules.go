package validation

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"
)

const (
	// DefaultMaxLength is the maximum length for required string fields
	// unless a field specifies its own.
	DefaultMaxLength = 255

	// MaxPriceCents is the upper bound for price fields ($100,000).
	MaxPriceCents = 10000000

	// PasswordMinLength and PasswordMaxLength bound password fields.
	PasswordMinLength = 8
	PasswordMaxLength = 128
)

var (
	emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	phoneRegex = regexp.MustCompile(`^\+?[0-9][0-9\s\-()]{6,19}$`)
)

// now is captured at validation time so date rules can be tested against a
// fixed clock.
var now = time.Now

// RequiredString validates a required text field. The value is trimmed
// before checking; whitespace-only input is rejected.
func RequiredString(field, value string, maxLength int) error {
	if maxLength <= 0 {
		maxLength = DefaultMaxLength
	}

	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return fmt.Errorf("%s is required", field)
	}

	if len(trimmed) > maxLength {
		return fmt.Errorf("%s must be less than %d characters", field, maxLength)
	}

	return nil
}

// OptionalString validates an optional text field; empty input is allowed.
func OptionalString(field, value string, maxLength int) error {
	if maxLength <= 0 {
		maxLength = DefaultMaxLength
	}

	if strings.TrimSpace(value) == "" {
		return nil
	}

	if len(strings.TrimSpace(value)) > maxLength {
		return fmt.Errorf("%s must be less than %d characters", field, maxLength)
	}

	return nil
}

// Email validates a required email field, distinguishing a missing value
// from a malformed one.
func Email(field, value string) error {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return fmt.Errorf("%s is required", field)
	}

	if len(trimmed) > DefaultMaxLength {
		return fmt.Errorf("%s must be less than %d characters", field, DefaultMaxLength)
	}

	if !emailRegex.MatchString(trimmed) {
		return errors.New("please enter a valid email address")
	}

	return nil
}

// Phone validates an optional phone number field.
func Phone(field, value string) error {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil
	}

	if !phoneRegex.MatchString(trimmed) {
		return errors.New("please enter a valid phone number")
	}

	return nil
}

// Password validates password strength. Each missing character class gets
// its own message so users know exactly what to fix.
func Password(value string) error {
	if len(value) < PasswordMinLength {
		return fmt.Errorf("password must be at least %d characters", PasswordMinLength)
	}

	if len(value) > PasswordMaxLength {
		return fmt.Errorf("password must be less than %d characters", PasswordMaxLength)
	}

	var hasUpper, hasLower, hasDigit bool
	for _, r := range value {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}

	if !hasUpper {
		return errors.New("password must contain at least one uppercase letter")
	}
	if !hasLower {
		return errors.New("password must contain at least one lowercase letter")
	}
	if !hasDigit {
		return errors.New("password must contain at least one digit")
	}

	return nil
}

// PriceCents validates a price entered as a whole number of cents.
// Decimal input is rejected with its own message, as are negative and
// oversized amounts.
func PriceCents(field, value string) (int, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return 0, fmt.Errorf("%s is required", field)
	}

	cents, err := strconv.Atoi(trimmed)
	if err != nil {
		return 0, fmt.Errorf("%s must be a whole number of cents", field)
	}

	if cents < 0 {
		return 0, fmt.Errorf("%s cannot be negative", field)
	}

	if cents > MaxPriceCents {
		return 0, fmt.Errorf("%s cannot exceed $100,000", field)
	}

	return cents, nil
}

// RequiredDate validates that a date is set.
func RequiredDate(field string, value time.Time) error {
	if value.IsZero() {
		return fmt.Errorf("%s is required", field)
	}
	return nil
}

// FutureDate validates that a required date lies strictly in the future.
func FutureDate(field string, value time.Time) error {
	if err := RequiredDate(field, value); err != nil {
		return err
	}

	if !value.After(now()) {
		return fmt.Errorf("%s must be in the future", field)
	}

	return nil
}

// PastDate validates that a required date lies strictly in the past.
func PastDate(field string, value time.Time) error {
	if err := RequiredDate(field, value); err != nil {
		return err
	}

	if !value.Before(now()) {
		return fmt.Errorf("%s must be in the past", field)
	}

	return nil
}

// OptionalFutureDate validates a future-only date that may be omitted.
func OptionalFutureDate(field string, value time.Time) error {
	if value.IsZero() {
		return nil
	}
	return FutureDate(field, value)
}
