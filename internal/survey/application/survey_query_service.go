package application

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/MarcelMichau/fake-survey-generator-sub000/internal/survey/domain"
)

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
	// maxPage keeps (page-1)*limit far from int overflow.
	maxPage = 10000
)

// surveyQueryService implements SurveyQueryService.
type surveyQueryService struct {
	surveys SurveyRepository
	users   UserRepository
}

// NewSurveyQueryService creates a new SurveyQueryService.
func NewSurveyQueryService(surveys SurveyRepository, users UserRepository) SurveyQueryService {
	return &surveyQueryService{surveys: surveys, users: users}
}

func (s *surveyQueryService) Detail(ctx context.Context, id string) (*domain.Survey, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, ErrNotFound
	}
	return s.surveys.FindByID(ctx, id)
}

func (s *surveyQueryService) ListByOwner(ctx context.Context, externalUserID string, paging Paging) ([]*domain.Survey, error) {
	owner, err := s.users.FindByExternalID(ctx, strings.TrimSpace(externalUserID))
	if errors.Is(err, ErrNotFound) {
		return nil, ErrUserNotRegistered
	}
	if err != nil {
		return nil, fmt.Errorf("find owner: %w", err)
	}
	return s.surveys.FindByOwner(ctx, owner.ID, NormalizePaging(paging))
}

func (s *surveyQueryService) ListRecent(ctx context.Context, paging Paging) ([]*domain.Survey, error) {
	return s.surveys.FindRecent(ctx, NormalizePaging(paging))
}

// NormalizePaging applies the default limit and clamps page and limit to
// their supported ranges. The list queries use exactly this result.
func NormalizePaging(paging Paging) Paging {
	if paging.Page < 1 {
		paging.Page = 1
	}
	if paging.Page > maxPage {
		paging.Page = maxPage
	}
	if paging.Limit <= 0 {
		paging.Limit = defaultPageLimit
	}
	if paging.Limit > maxPageLimit {
		paging.Limit = maxPageLimit
	}
	return paging
}
