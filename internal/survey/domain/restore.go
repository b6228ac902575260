package domain

// SurveySnapshot is the persisted state of a survey and its options.
type SurveySnapshot struct {
	ID                  string
	Owner               *User
	Topic               string
	NumberOfRespondents int
	RespondentType      string
	Options             []SurveyOptionSnapshot
	Audit               AuditInfo
}

// SurveyOptionSnapshot is the persisted state of a single option.
type SurveyOptionSnapshot struct {
	OptionText             string
	PreferredNumberOfVotes int
	NumberOfVotes          int
}

// RestoreSurvey rebuilds a survey loaded from storage. Stored state already
// satisfied the invariants when it was saved, so nothing is re-validated and
// no domain events are raised.
func RestoreSurvey(snapshot SurveySnapshot) *Survey {
	options := make([]*SurveyOption, 0, len(snapshot.Options))
	for _, option := range snapshot.Options {
		options = append(options, &SurveyOption{
			optionText:             NonEmptyString{value: option.OptionText},
			preferredNumberOfVotes: option.PreferredNumberOfVotes,
			numberOfVotes:          option.NumberOfVotes,
		})
	}
	return &Survey{
		id:                  snapshot.ID,
		owner:               snapshot.Owner,
		topic:               NonEmptyString{value: snapshot.Topic},
		numberOfRespondents: snapshot.NumberOfRespondents,
		respondentType:      NonEmptyString{value: snapshot.RespondentType},
		options:             options,
		audit:               snapshot.Audit,
	}
}
