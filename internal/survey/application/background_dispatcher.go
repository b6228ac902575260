package application

import (
	"context"
	"log"
	"sync"

	"github.com/MarcelMichau/fake-survey-generator-sub000/internal/survey/domain"
)

// BackgroundDispatcher hands events to next on its own goroutine so slow
// notification channels never hold up the request that raised them.
type BackgroundDispatcher struct {
	next     EventDispatcher
	logger   *log.Logger
	inFlight sync.WaitGroup
}

func NewBackgroundDispatcher(next EventDispatcher, logger *log.Logger) *BackgroundDispatcher {
	return &BackgroundDispatcher{next: next, logger: logger}
}

func (d *BackgroundDispatcher) Dispatch(_ context.Context, events []domain.DomainEvent) error {
	if len(events) == 0 {
		return nil
	}
	pending := append([]domain.DomainEvent(nil), events...)
	d.inFlight.Add(1)
	go func() {
		defer d.inFlight.Done()
		// The request context is cancelled once the response is written.
		if err := d.next.Dispatch(context.Background(), pending); err != nil && d.logger != nil {
			d.logger.Printf("background event dispatch failed: %v", err)
		}
	}()
	return nil
}

// Wait blocks until every dispatch started so far has finished or ctx is done.
// Call it after the HTTP server has stopped accepting requests.
func (d *BackgroundDispatcher) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		d.inFlight.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
