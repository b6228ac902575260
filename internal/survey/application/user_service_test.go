package application

import (
	"context"
	"errors"
	"testing"

	"github.com/MarcelMichau/fake-survey-generator-sub000/internal/survey/domain"
)

func TestUserServiceRegister(t *testing.T) {
	repo := newMemoryUserRepository()
	svc := NewUserService(repo)

	user, err := svc.Register(context.Background(), RegisterUserCommand{
		ExternalUserID: " ext-9 ",
		DisplayName:    "Nine",
		EmailAddress:   "nine@example.com",
	})
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if user.ID == "" || user.ExternalUserID.Value() != "ext-9" {
		t.Fatalf("unexpected user: %+v", user)
	}

	_, err = svc.Register(context.Background(), RegisterUserCommand{
		ExternalUserID: "ext-9",
		DisplayName:    "Nine again",
		EmailAddress:   "nine@example.com",
	})
	if !errors.Is(err, ErrUserAlreadyRegistered) {
		t.Fatalf("error = %v, want ErrUserAlreadyRegistered", err)
	}
}

func TestUserServiceRegisterValidatesInput(t *testing.T) {
	svc := NewUserService(newMemoryUserRepository())

	_, err := svc.Register(context.Background(), RegisterUserCommand{ExternalUserID: "ext", DisplayName: "Name"})
	if !domain.IsSurveyDomainError(err) {
		t.Fatalf("error = %v, want SurveyDomainError", err)
	}
}

func TestUserServiceMeAndIsRegistered(t *testing.T) {
	svc := NewUserService(newMemoryUserRepository(testUser("ext-1")))

	user, err := svc.Me(context.Background(), "ext-1")
	if err != nil || user.ID != "owner-ext-1" {
		t.Fatalf("Me = %+v, %v", user, err)
	}
	if _, err := svc.Me(context.Background(), "ext-2"); !errors.Is(err, ErrUserNotRegistered) {
		t.Fatalf("error = %v, want ErrUserNotRegistered", err)
	}

	registered, err := svc.IsRegistered(context.Background(), "ext-1")
	if err != nil || !registered {
		t.Fatalf("IsRegistered(ext-1) = %v, %v", registered, err)
	}
	registered, err = svc.IsRegistered(context.Background(), "ext-2")
	if err != nil || registered {
		t.Fatalf("IsRegistered(ext-2) = %v, %v", registered, err)
	}
}

func TestUserServiceIsRegisteredPropagatesErrors(t *testing.T) {
	repo := newMemoryUserRepository()
	repo.findErr = errBoom
	svc := NewUserService(repo)

	if _, err := svc.IsRegistered(context.Background(), "ext-1"); !errors.Is(err, errBoom) {
		t.Fatalf("error = %v, want errBoom", err)
	}
}
