package domain

import (
	"errors"
	"fmt"
)

// ErrNilArgument marks a required argument that was not supplied.
// It signals a programming error, not invalid user input.
var ErrNilArgument = errors.New("required argument is nil")

// SurveyDomainError is raised for every business-rule violation on a survey.
type SurveyDomainError struct {
	Message string
}

func NewSurveyDomainError(format string, args ...any) *SurveyDomainError {
	return &SurveyDomainError{Message: fmt.Sprintf(format, args...)}
}

func (e *SurveyDomainError) Error() string {
	return e.Message
}

// IsSurveyDomainError reports whether err (or anything it wraps) is a SurveyDomainError.
func IsSurveyDomainError(err error) bool {
	var domainErr *SurveyDomainError
	return errors.As(err, &domainErr)
}

func nilArgument(name string) error {
	return fmt.Errorf("%w: %s", ErrNilArgument, name)
}
