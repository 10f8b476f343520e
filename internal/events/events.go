// Package events provides domain event definitions for decoupled,
// event-driven communication between modules.
// Infrastructure (Bus, Handler) is in platform/events.
package events

import (
	"kundekort_backend/platform/events"
	"kundekort_backend/platform/logger"
)

// Re-export platform types for convenience
type (
	Event       = events.Event
	Bus         = events.Bus
	Handler     = events.Handler
	HandlerFunc = events.HandlerFunc
	BaseEvent   = events.BaseEvent
	InMemoryBus = events.InMemoryBus
)

// Re-export platform functions
var NewBaseEvent = events.NewBaseEvent

// NewInMemoryBus creates a new in-memory event bus.
func NewInMemoryBus(log *logger.Logger) *InMemoryBus {
	return events.NewInMemoryBus(log)
}

// =============================================================================
// Cards Domain Events
// =============================================================================

// CardsRebuilt is published after a full customer-card rebuild has been
// persisted. Subscribers receive the run statistics, not the cards
// themselves; they read whatever detail they need through the repository.
type CardsRebuilt struct {
	BaseEvent
	Profiles     int     `json:"profiles"`
	Cards        int     `json:"cards"`
	TotalRevenue float64 `json:"totalRevenue"`
}

func (e CardsRebuilt) EventName() string { return "cards.rebuilt" }
