package application

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/MarcelMichau/fake-survey-generator-sub000/internal/survey/domain"
)

type userService struct {
	repo UserRepository
}

func NewUserService(repo UserRepository) UserService {
	return &userService{repo: repo}
}

func (s *userService) Register(ctx context.Context, cmd RegisterUserCommand) (*domain.User, error) {
	externalID, err := requiredText("External user id", strings.TrimSpace(cmd.ExternalUserID))
	if err != nil {
		return nil, err
	}
	displayName, err := requiredText("Display name", strings.TrimSpace(cmd.DisplayName))
	if err != nil {
		return nil, err
	}
	email, err := requiredText("Email address", strings.TrimSpace(cmd.EmailAddress))
	if err != nil {
		return nil, err
	}

	registered, err := s.IsRegistered(ctx, externalID.Value())
	if err != nil {
		return nil, err
	}
	if registered {
		return nil, ErrUserAlreadyRegistered
	}

	user, err := domain.NewUser(displayName, email, externalID)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) Me(ctx context.Context, externalUserID string) (*domain.User, error) {
	user, err := s.repo.FindByExternalID(ctx, strings.TrimSpace(externalUserID))
	if errors.Is(err, ErrNotFound) {
		return nil, ErrUserNotRegistered
	}
	return user, err
}

func (s *userService) IsRegistered(ctx context.Context, externalUserID string) (bool, error) {
	_, err := s.repo.FindByExternalID(ctx, strings.TrimSpace(externalUserID))
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("find user: %w", err)
	}
	return true, nil
}
