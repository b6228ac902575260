package application

import (
	"context"
	"errors"

	"github.com/MarcelMichau/fake-survey-generator-sub000/internal/survey/domain"
)

var (
	// ErrNotFound is returned by repositories when the requested record does not exist.
	ErrNotFound = errors.New("not found")
	// ErrUserNotRegistered is returned when the caller has no registered user record.
	ErrUserNotRegistered = errors.New("user is not registered")
	// ErrUserAlreadyRegistered is returned when registering an existing external user.
	ErrUserAlreadyRegistered = errors.New("user is already registered")
)

// SurveyRepository persists survey aggregates.
type SurveyRepository interface {
	Create(ctx context.Context, survey *domain.Survey) error
	FindByID(ctx context.Context, id string) (*domain.Survey, error)
	FindByOwner(ctx context.Context, ownerID string, paging Paging) ([]*domain.Survey, error)
	FindRecent(ctx context.Context, paging Paging) ([]*domain.Survey, error)
}

// UserRepository persists survey owners.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	FindByExternalID(ctx context.Context, externalUserID string) (*domain.User, error)
}

// EventDispatcher delivers drained domain events to interested handlers.
type EventDispatcher interface {
	Dispatch(ctx context.Context, events []domain.DomainEvent) error
}

// Paging controls pagination.
type Paging struct {
	Page  int
	Limit int
}

// SurveyCommandService describes survey write use-cases.
type SurveyCommandService interface {
	Create(ctx context.Context, cmd CreateSurveyCommand) (*domain.Survey, error)
}

// SurveyQueryService describes survey read use-cases.
type SurveyQueryService interface {
	Detail(ctx context.Context, id string) (*domain.Survey, error)
	ListByOwner(ctx context.Context, externalUserID string, paging Paging) ([]*domain.Survey, error)
	ListRecent(ctx context.Context, paging Paging) ([]*domain.Survey, error)
}

// UserService describes user registration use-cases.
type UserService interface {
	Register(ctx context.Context, cmd RegisterUserCommand) (*domain.User, error)
	Me(ctx context.Context, externalUserID string) (*domain.User, error)
	IsRegistered(ctx context.Context, externalUserID string) (bool, error)
}

// CreateSurveyCommand carries raw caller input for a new survey.
type CreateSurveyCommand struct {
	ExternalUserID      string
	Topic               string
	NumberOfRespondents int
	RespondentType      string
	OneSided            bool
	Options             []SurveyOptionCommand
}

// SurveyOptionCommand is one requested option.
type SurveyOptionCommand struct {
	OptionText             string
	PreferredNumberOfVotes int
}

// RegisterUserCommand carries identity claims for a new user.
type RegisterUserCommand struct {
	ExternalUserID string
	DisplayName    string
	EmailAddress   string
}
