package domain

import (
	"errors"
	"strings"
)

// ErrBlankString is returned when a NonEmptyString is built from blank input.
var ErrBlankString = errors.New("value must not be empty or whitespace")

// NonEmptyString wraps text that is guaranteed not to be blank.
// The zero value is not a valid NonEmptyString; use NewNonEmptyString.
type NonEmptyString struct {
	value string
}

func NewNonEmptyString(raw string) (NonEmptyString, error) {
	if strings.TrimSpace(raw) == "" {
		return NonEmptyString{}, ErrBlankString
	}
	return NonEmptyString{value: raw}, nil
}

// MustNonEmptyString is NewNonEmptyString for literals known to be valid.
func MustNonEmptyString(raw string) NonEmptyString {
	s, err := NewNonEmptyString(raw)
	if err != nil {
		panic(err)
	}
	return s
}

func (s NonEmptyString) Value() string {
	return s.value
}

func (s NonEmptyString) String() string {
	return s.value
}

// IsZero reports whether s was never initialised through NewNonEmptyString.
func (s NonEmptyString) IsZero() bool {
	return s.value == ""
}

func (s NonEmptyString) Equal(other NonEmptyString) bool {
	return s.value == other.value
}

// EqualFold compares case-insensitively without trimming or normalising.
func (s NonEmptyString) EqualFold(other NonEmptyString) bool {
	return strings.EqualFold(s.value, other.value)
}
