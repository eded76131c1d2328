package infrastructure

import (
	"lottosim/domain/events"

	log "github.com/sirupsen/logrus"
)

// LogEventPublisher writes domain events to the structured log. The
// simulator has no message broker; purchase activity is still observable
// through the log stream.
type LogEventPublisher struct{}

// NewLogEventPublisher creates a new logging event publisher
func NewLogEventPublisher() *LogEventPublisher {
	return &LogEventPublisher{}
}

// Publish logs the event with its type and payload
func (p *LogEventPublisher) Publish(event events.Event) error {
	log.WithFields(log.Fields{
		"event": event.Type(),
		"data":  event,
	}).Debug("domain event published")
	return nil
}
