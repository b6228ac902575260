package public

import (
	"time"

	"github.com/MarcelMichau/fake-survey-generator-sub000/internal/survey/domain"
)

type createSurveyRequest struct {
	Topic               string                `json:"topic"`
	NumberOfRespondents int                   `json:"numberOfRespondents"`
	RespondentType      string                `json:"respondentType"`
	OneSided            bool                  `json:"oneSided"`
	Options             []surveyOptionRequest `json:"options"`
}

type surveyOptionRequest struct {
	OptionText             string `json:"optionText"`
	PreferredNumberOfVotes int    `json:"preferredNumberOfVotes"`
}

type registerUserRequest struct {
	DisplayName  string `json:"displayName"`
	EmailAddress string `json:"emailAddress"`
}

type surveyResponse struct {
	ID                  string                 `json:"id"`
	OwnerID             string                 `json:"ownerId"`
	Topic               string                 `json:"topic"`
	RespondentType      string                 `json:"respondentType"`
	NumberOfRespondents int                    `json:"numberOfRespondents"`
	IsRigged            bool                   `json:"isRigged"`
	Options             []surveyOptionResponse `json:"options"`
	CreatedBy           string                 `json:"createdBy,omitempty"`
	CreatedOn           *time.Time             `json:"createdOn,omitempty"`
	ModifiedBy          string                 `json:"modifiedBy,omitempty"`
	ModifiedOn          *time.Time             `json:"modifiedOn,omitempty"`
}

type surveyOptionResponse struct {
	OptionText             string `json:"optionText"`
	NumberOfVotes          int    `json:"numberOfVotes"`
	PreferredNumberOfVotes int    `json:"preferredNumberOfVotes"`
}

type surveyListResponse struct {
	Items []surveyResponse `json:"items"`
	Page  int              `json:"page"`
	Limit int              `json:"limit"`
}

type userResponse struct {
	ID             string    `json:"id"`
	DisplayName    string    `json:"displayName"`
	EmailAddress   string    `json:"emailAddress"`
	ExternalUserID string    `json:"externalUserId"`
	CreatedAt      time.Time `json:"createdAt"`
}

func buildSurveyResponse(survey *domain.Survey) surveyResponse {
	options := survey.Options()
	items := make([]surveyOptionResponse, 0, len(options))
	for _, option := range options {
		items = append(items, surveyOptionResponse{
			OptionText:             option.OptionText().Value(),
			NumberOfVotes:          option.NumberOfVotes(),
			PreferredNumberOfVotes: option.PreferredNumberOfVotes(),
		})
	}

	audit := survey.Audit()
	return surveyResponse{
		ID:                  survey.ID(),
		OwnerID:             survey.OwnerID(),
		Topic:               survey.Topic().Value(),
		RespondentType:      survey.RespondentType().Value(),
		NumberOfRespondents: survey.NumberOfRespondents(),
		IsRigged:            survey.IsRigged(),
		Options:             items,
		CreatedBy:           audit.CreatedBy,
		CreatedOn:           timePtr(audit.CreatedOn),
		ModifiedBy:          audit.ModifiedBy,
		ModifiedOn:          timePtr(audit.ModifiedOn),
	}
}

func buildSurveyListResponse(surveys []*domain.Survey, page, limit int) surveyListResponse {
	items := make([]surveyResponse, 0, len(surveys))
	for _, survey := range surveys {
		items = append(items, buildSurveyResponse(survey))
	}
	return surveyListResponse{Items: items, Page: page, Limit: limit}
}

func buildUserResponse(user *domain.User) userResponse {
	return userResponse{
		ID:             user.ID,
		DisplayName:    user.DisplayName.Value(),
		EmailAddress:   user.EmailAddress.Value(),
		ExternalUserID: user.ExternalUserID.Value(),
		CreatedAt:      user.CreatedAt,
	}
}

func timePtr(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}
