package domain

import (
	"sort"
	"time"
)

// SurveyOption is one selectable answer of a survey.
type SurveyOption struct {
	optionText             NonEmptyString
	preferredNumberOfVotes int
	numberOfVotes          int
}

// NewSurveyOption builds a detached option for Survey.AddSurveyOptions.
// A preferred count of 0 means the option takes part in random allocation.
func NewSurveyOption(optionText NonEmptyString, preferredNumberOfVotes int) SurveyOption {
	return SurveyOption{optionText: optionText, preferredNumberOfVotes: preferredNumberOfVotes}
}

func (o SurveyOption) OptionText() NonEmptyString  { return o.optionText }
func (o SurveyOption) PreferredNumberOfVotes() int { return o.preferredNumberOfVotes }
func (o SurveyOption) NumberOfVotes() int          { return o.numberOfVotes }

// AuditInfo is stamped by the application layer, never by the domain.
type AuditInfo struct {
	CreatedBy  string
	CreatedOn  time.Time
	ModifiedBy string
	ModifiedOn time.Time
}

// Survey is the aggregate root owning an ordered list of options.
type Survey struct {
	AggregateRoot

	id                  string
	owner               *User
	topic               NonEmptyString
	numberOfRespondents int
	respondentType      NonEmptyString
	options             []*SurveyOption
	audit               AuditInfo
}

func NewSurvey(owner *User, topic NonEmptyString, numberOfRespondents int, respondentType NonEmptyString) (*Survey, error) {
	if owner == nil {
		return nil, nilArgument("owner")
	}
	if topic.IsZero() {
		return nil, nilArgument("topic")
	}
	if respondentType.IsZero() {
		return nil, nilArgument("respondentType")
	}
	if numberOfRespondents <= 0 {
		return nil, NewSurveyDomainError("Number of respondents must be greater than zero, got: %d", numberOfRespondents)
	}

	survey := &Survey{
		owner:               owner,
		topic:               topic,
		numberOfRespondents: numberOfRespondents,
		respondentType:      respondentType,
		options:             make([]*SurveyOption, 0),
	}
	survey.AddDomainEvent(NewSurveyCreatedDomainEvent(survey))
	return survey, nil
}

func (s *Survey) ID() string                     { return s.id }
func (s *Survey) Owner() *User                   { return s.owner }
func (s *Survey) Topic() NonEmptyString          { return s.topic }
func (s *Survey) NumberOfRespondents() int       { return s.numberOfRespondents }
func (s *Survey) RespondentType() NonEmptyString { return s.respondentType }
func (s *Survey) Audit() AuditInfo               { return s.audit }

// AssignID is called by persistence once the survey has been stored.
func (s *Survey) AssignID(id string) {
	s.id = id
}

func (s *Survey) OwnerID() string {
	if s.owner == nil {
		return ""
	}
	return s.owner.ID
}

// Options returns a snapshot of the options in insertion order.
func (s *Survey) Options() []SurveyOption {
	result := make([]SurveyOption, 0, len(s.options))
	for _, option := range s.options {
		result = append(result, *option)
	}
	return result
}

// IsRigged reports whether any option carries a preferred vote count.
func (s *Survey) IsRigged() bool {
	for _, option := range s.options {
		if option.preferredNumberOfVotes > 0 {
			return true
		}
	}
	return false
}

// TotalVotes sums the computed votes of every option.
func (s *Survey) TotalVotes() int {
	total := 0
	for _, option := range s.options {
		total += option.numberOfVotes
	}
	return total
}

// Stamp records who touched the survey and when. CreatedBy/On are only set once.
func (s *Survey) Stamp(actor string, at time.Time) {
	if s.audit.CreatedOn.IsZero() {
		s.audit.CreatedBy = actor
		s.audit.CreatedOn = at
	}
	s.audit.ModifiedBy = actor
	s.audit.ModifiedOn = at
}

func (s *Survey) AddSurveyOption(optionText NonEmptyString, preferredNumberOfVotes int) error {
	if optionText.IsZero() {
		return nilArgument("optionText")
	}

	// headroom is never negative: the running total is kept <= numberOfRespondents.
	headroom := s.numberOfRespondents - s.preferredTotal()
	if preferredNumberOfVotes < 0 || preferredNumberOfVotes > s.numberOfRespondents || preferredNumberOfVotes > headroom {
		return NewSurveyDomainError("Preferred number of votes: %d is higher than the number of respondents: %d", preferredNumberOfVotes, s.numberOfRespondents)
	}

	for _, existing := range s.options {
		if existing.optionText.EqualFold(optionText) {
			return NewSurveyDomainError("Duplicate survey option.")
		}
	}

	s.options = append(s.options, &SurveyOption{
		optionText:             optionText,
		preferredNumberOfVotes: preferredNumberOfVotes,
	})
	return nil
}

// AddSurveyOptions adds each option in order. It is not atomic: options
// added before a failing element stay on the survey.
func (s *Survey) AddSurveyOptions(options []SurveyOption) error {
	if options == nil {
		return nilArgument("options")
	}
	for _, option := range options {
		if err := s.AddSurveyOption(option.optionText, option.preferredNumberOfVotes); err != nil {
			return err
		}
	}
	return nil
}

// CalculateOutcome gives preferred options exactly their preferred count and
// splits the remaining votes randomly across the free options.
func (s *Survey) CalculateOutcome(rng Rand) error {
	if rng == nil {
		return nilArgument("rng")
	}
	if len(s.options) == 0 {
		return errNoOptions()
	}

	free := make([]*SurveyOption, 0, len(s.options))
	for _, option := range s.options {
		option.numberOfVotes = option.preferredNumberOfVotes
		if option.preferredNumberOfVotes == 0 {
			free = append(free, option)
		}
	}
	if len(free) == 0 {
		return nil
	}

	remaining := s.numberOfRespondents - s.preferredTotal()
	for i, votes := range splitVotes(rng, remaining, len(free)) {
		free[i].numberOfVotes = votes
	}
	return nil
}

// CalculateOneSidedOutcome gives every vote to a single randomly chosen option.
func (s *Survey) CalculateOneSidedOutcome(rng Rand) error {
	if rng == nil {
		return nilArgument("rng")
	}
	if len(s.options) == 0 {
		return errNoOptions()
	}

	winner := rng.Intn(len(s.options))
	for i, option := range s.options {
		option.numberOfVotes = 0
		if i == winner {
			option.numberOfVotes = s.numberOfRespondents
		}
	}
	return nil
}

func (s *Survey) preferredTotal() int {
	total := 0
	for _, option := range s.options {
		total += option.preferredNumberOfVotes
	}
	return total
}

func errNoOptions() error {
	return NewSurveyDomainError("Survey has no options to calculate an outcome for.")
}

// splitVotes divides total into parts non-negative counts summing to total.
// When there are enough votes every part gets at least one; the rest is cut
// at sorted random points and the last part takes the final remainder.
func splitVotes(rng Rand, total, parts int) []int {
	result := make([]int, parts)
	if parts == 1 {
		result[0] = total
		return result
	}

	floor := 0
	if total >= parts {
		floor = 1
	}
	pool := total - floor*parts

	cuts := make([]int, parts-1)
	for i := range cuts {
		cuts[i] = rng.Intn(pool + 1)
	}
	sort.Ints(cuts)

	previous := 0
	for i, cut := range cuts {
		result[i] = floor + cut - previous
		previous = cut
	}
	result[parts-1] = floor + pool - previous
	return result
}
