package events

import "lottosim/domain/entities"

// EventType represents different types of events in the system
type EventType string

const (
	EventTypeTicketsPurchased EventType = "tickets_purchased"
	EventTypeDataCleared      EventType = "data_cleared"
)

// Event is the base interface for all events
type Event interface {
	Type() EventType
}

// TicketsPurchasedEvent is emitted after a purchase has been persisted and
// merged into the visible collection.
type TicketsPurchasedEvent struct {
	Game       entities.Game
	Count      int
	TotalSpent int64
	TotalWon   int64
}

func (e TicketsPurchasedEvent) Type() EventType {
	return EventTypeTicketsPurchased
}

// DataClearedEvent is emitted when the entire ticket collection is wiped.
type DataClearedEvent struct{}

func (e DataClearedEvent) Type() EventType {
	return EventTypeDataCleared
}
