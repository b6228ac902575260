package domain

import (
	"time"

	"github.com/google/uuid"
)

// DomainEvent is a record of something that happened to an aggregate.
type DomainEvent interface {
	EventID() string
	EventName() string
	OccurredAt() time.Time
}

// AggregateRoot collects domain events until an external dispatcher drains them.
type AggregateRoot struct {
	domainEvents []DomainEvent
}

func (a *AggregateRoot) AddDomainEvent(event DomainEvent) {
	a.domainEvents = append(a.domainEvents, event)
}

// DomainEvents returns a copy of the pending events.
func (a *AggregateRoot) DomainEvents() []DomainEvent {
	return append([]DomainEvent(nil), a.domainEvents...)
}

func (a *AggregateRoot) ClearDomainEvents() {
	a.domainEvents = nil
}

const SurveyCreatedEventName = "survey.created"

// SurveyCreatedDomainEvent is raised when a new survey is constructed.
type SurveyCreatedDomainEvent struct {
	id         string
	occurredAt time.Time
	Survey     *Survey
}

func NewSurveyCreatedDomainEvent(survey *Survey) SurveyCreatedDomainEvent {
	return SurveyCreatedDomainEvent{
		id:         uuid.NewString(),
		occurredAt: time.Now().UTC(),
		Survey:     survey,
	}
}

func (e SurveyCreatedDomainEvent) EventID() string       { return e.id }
func (e SurveyCreatedDomainEvent) EventName() string     { return SurveyCreatedEventName }
func (e SurveyCreatedDomainEvent) OccurredAt() time.Time { return e.occurredAt }
