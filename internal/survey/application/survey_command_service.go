package application

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/MarcelMichau/fake-survey-generator-sub000/internal/survey/domain"
)

// SurveyCommandConfig lists the collaborators of the survey command service.
type SurveyCommandConfig struct {
	Surveys    SurveyRepository
	Users      UserRepository
	Dispatcher EventDispatcher
	Logger     *log.Logger
	// NewRand builds a random source per request. Defaults to domain.NewSeededRand.
	NewRand func() (domain.Rand, error)
	// Now defaults to time.Now.
	Now func() time.Time
}

type surveyCommandService struct {
	surveys    SurveyRepository
	users      UserRepository
	dispatcher EventDispatcher
	logger     *log.Logger
	newRand    func() (domain.Rand, error)
	now        func() time.Time
}

func NewSurveyCommandService(cfg SurveyCommandConfig) SurveyCommandService {
	svc := &surveyCommandService{
		surveys:    cfg.Surveys,
		users:      cfg.Users,
		dispatcher: cfg.Dispatcher,
		logger:     cfg.Logger,
		newRand:    cfg.NewRand,
		now:        cfg.Now,
	}
	if svc.newRand == nil {
		svc.newRand = domain.NewSeededRand
	}
	if svc.now == nil {
		svc.now = time.Now
	}
	return svc
}

func (s *surveyCommandService) Create(ctx context.Context, cmd CreateSurveyCommand) (*domain.Survey, error) {
	externalID := strings.TrimSpace(cmd.ExternalUserID)
	if externalID == "" {
		return nil, ErrUserNotRegistered
	}
	owner, err := s.users.FindByExternalID(ctx, externalID)
	if errors.Is(err, ErrNotFound) {
		return nil, ErrUserNotRegistered
	}
	if err != nil {
		return nil, fmt.Errorf("find owner: %w", err)
	}

	survey, err := buildSurveyFromCommand(owner, cmd)
	if err != nil {
		return nil, err
	}

	rng, err := s.newRand()
	if err != nil {
		return nil, err
	}
	if cmd.OneSided {
		err = survey.CalculateOneSidedOutcome(rng)
	} else {
		err = survey.CalculateOutcome(rng)
	}
	if err != nil {
		return nil, err
	}

	survey.Stamp(externalID, s.now().UTC())
	if err := s.surveys.Create(ctx, survey); err != nil {
		return nil, fmt.Errorf("save survey: %w", err)
	}

	s.dispatchEvents(ctx, survey)
	return survey, nil
}

// dispatchEvents runs after the survey is stored. Failures are logged only:
// the survey is already committed.
func (s *surveyCommandService) dispatchEvents(ctx context.Context, survey *domain.Survey) {
	events := survey.DomainEvents()
	survey.ClearDomainEvents()
	if s.dispatcher == nil || len(events) == 0 {
		return
	}
	if err := s.dispatcher.Dispatch(ctx, events); err != nil && s.logger != nil {
		s.logger.Printf("survey %s: event dispatch failed: %v", survey.ID(), err)
	}
}

func buildSurveyFromCommand(owner *domain.User, cmd CreateSurveyCommand) (*domain.Survey, error) {
	topic, err := requiredText("Topic", cmd.Topic)
	if err != nil {
		return nil, err
	}
	respondentType, err := requiredText("Respondent type", cmd.RespondentType)
	if err != nil {
		return nil, err
	}

	options := make([]domain.SurveyOption, 0, len(cmd.Options))
	for _, input := range cmd.Options {
		text, err := requiredText("Option text", input.OptionText)
		if err != nil {
			return nil, err
		}
		options = append(options, domain.NewSurveyOption(text, input.PreferredNumberOfVotes))
	}

	survey, err := domain.NewSurvey(owner, topic, cmd.NumberOfRespondents, respondentType)
	if err != nil {
		return nil, err
	}
	if err := survey.AddSurveyOptions(options); err != nil {
		return nil, err
	}
	return survey, nil
}

// requiredText turns blank caller input into a SurveyDomainError naming the field.
func requiredText(field, raw string) (domain.NonEmptyString, error) {
	value, err := domain.NewNonEmptyString(raw)
	if errors.Is(err, domain.ErrBlankString) {
		return domain.NonEmptyString{}, domain.NewSurveyDomainError("%s must not be empty.", field)
	}
	return value, err
}
