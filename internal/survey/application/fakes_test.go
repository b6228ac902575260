package application

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/MarcelMichau/fake-survey-generator-sub000/internal/survey/domain"
)

type memorySurveyRepository struct {
	surveys  []*domain.Survey
	paging   Paging
	ownerID  string
	createFn func(*domain.Survey) error
}

func (r *memorySurveyRepository) Create(_ context.Context, survey *domain.Survey) error {
	if r.createFn != nil {
		if err := r.createFn(survey); err != nil {
			return err
		}
	}
	survey.AssignID(fmt.Sprintf("survey-%d", len(r.surveys)+1))
	r.surveys = append(r.surveys, survey)
	return nil
}

func (r *memorySurveyRepository) FindByID(_ context.Context, id string) (*domain.Survey, error) {
	for _, survey := range r.surveys {
		if survey.ID() == id {
			return survey, nil
		}
	}
	return nil, ErrNotFound
}

func (r *memorySurveyRepository) FindByOwner(_ context.Context, ownerID string, paging Paging) ([]*domain.Survey, error) {
	r.ownerID = ownerID
	r.paging = paging
	var result []*domain.Survey
	for _, survey := range r.surveys {
		if survey.OwnerID() == ownerID {
			result = append(result, survey)
		}
	}
	return result, nil
}

func (r *memorySurveyRepository) FindRecent(_ context.Context, paging Paging) ([]*domain.Survey, error) {
	r.paging = paging
	return r.surveys, nil
}

type memoryUserRepository struct {
	users   map[string]*domain.User
	findErr error
}

func newMemoryUserRepository(users ...*domain.User) *memoryUserRepository {
	repo := &memoryUserRepository{users: make(map[string]*domain.User)}
	for _, user := range users {
		repo.users[user.ExternalUserID.Value()] = user
	}
	return repo
}

func (r *memoryUserRepository) Create(_ context.Context, user *domain.User) error {
	if _, ok := r.users[user.ExternalUserID.Value()]; ok {
		return ErrUserAlreadyRegistered
	}
	user.ID = fmt.Sprintf("user-%d", len(r.users)+1)
	r.users[user.ExternalUserID.Value()] = user
	return nil
}

func (r *memoryUserRepository) FindByExternalID(_ context.Context, externalUserID string) (*domain.User, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	user, ok := r.users[externalUserID]
	if !ok {
		return nil, ErrNotFound
	}
	return user, nil
}

type recordingDispatcher struct {
	mu       sync.Mutex
	batches  [][]domain.DomainEvent
	err      error
	received chan struct{}
}

func (d *recordingDispatcher) Dispatch(_ context.Context, events []domain.DomainEvent) error {
	d.mu.Lock()
	d.batches = append(d.batches, events)
	d.mu.Unlock()
	if d.received != nil {
		d.received <- struct{}{}
	}
	return d.err
}

var errBoom = errors.New("boom")

// sequenceRand returns fixed values wrapped into [0, n).
type sequenceRand struct {
	values []int
}

func (r *sequenceRand) Intn(n int) int {
	if len(r.values) == 0 {
		return 0
	}
	v := r.values[0]
	r.values = r.values[1:]
	return v % n
}

func testUser(externalID string) *domain.User {
	user, err := domain.NewUser(
		domain.MustNonEmptyString("Test User"),
		domain.MustNonEmptyString("test@example.com"),
		domain.MustNonEmptyString(externalID),
	)
	if err != nil {
		panic(err)
	}
	user.ID = "owner-" + externalID
	return user
}
