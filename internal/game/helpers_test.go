package game

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/cardtable/blackjack/internal/deck"
)

func mustCards(s string) []deck.Card {
	return deck.MustParseCards(s)
}

func testLogger() *log.Logger {
	return log.New(io.Discard)
}

// eventRecorder captures the emitted event sequence for assertions
type eventRecorder struct {
	events []GameEvent
}

func (r *eventRecorder) OnEvent(event GameEvent) {
	r.events = append(r.events, event)
}

func (r *eventRecorder) types() []EventType {
	types := make([]EventType, len(r.events))
	for i, event := range r.events {
		types[i] = event.EventType()
	}
	return types
}

func (r *eventRecorder) count(et EventType) int {
	n := 0
	for _, event := range r.events {
		if event.EventType() == et {
			n++
		}
	}
	return n
}

func (r *eventRecorder) first(et EventType) (GameEvent, bool) {
	for _, event := range r.events {
		if event.EventType() == et {
			return event, true
		}
	}
	return nil, false
}
