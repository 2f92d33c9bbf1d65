package game

import (
	"time"

	"github.com/cardtable/blackjack/internal/deck"
)

// EventType represents a game event type with type safety
type EventType string

// EventType constants for the engine's event stream. Ordering of events
// within a round is significant; events carry no sequence numbers because
// delivery order is emission order.
const (
	EventTypeCardDealt         EventType = "card_dealt"
	EventTypeHandUpdated       EventType = "hand_updated"
	EventTypePlayerBusted      EventType = "player_busted"
	EventTypeHandSplit         EventType = "hand_split"
	EventTypeDoubleDown        EventType = "double_down"
	EventTypeDealerTurn        EventType = "dealer_turn"
	EventTypeBetPlaced         EventType = "bet_placed"
	EventTypeInsuranceOffered  EventType = "insurance_offered"
	EventTypeInsuranceAccepted EventType = "insurance_accepted"
	EventTypePlayerWins        EventType = "player_wins"
	EventTypeDealerWins        EventType = "dealer_wins"
	EventTypePush              EventType = "push"
	EventTypeBlackjack         EventType = "blackjack"
	EventTypeStateChanged      EventType = "state_changed"
	EventTypeRoundEnded        EventType = "round_ended"
)

// String returns the string representation of the event type
func (et EventType) String() string {
	return string(et)
}

// GameEvent represents any event emitted by the TurnManager
type GameEvent interface {
	EventType() EventType
	Timestamp() time.Time
}

// CardDealtEvent is published whenever a visible card lands in a hand
type CardDealtEvent struct {
	Seat      *Seat
	HandIndex int
	Card      deck.Card
	timestamp time.Time
}

func (e CardDealtEvent) EventType() EventType { return EventTypeCardDealt }
func (e CardDealtEvent) Timestamp() time.Time { return e.timestamp }

// NewCardDealtEvent creates a new card dealt event
func NewCardDealtEvent(seat *Seat, handIndex int, card deck.Card) CardDealtEvent {
	return CardDealtEvent{Seat: seat, HandIndex: handIndex, Card: card, timestamp: time.Now()}
}

// HandUpdatedEvent is published after a hand's contents change
type HandUpdatedEvent struct {
	Seat      *Seat
	HandIndex int
	Value     int
	timestamp time.Time
}

func (e HandUpdatedEvent) EventType() EventType { return EventTypeHandUpdated }
func (e HandUpdatedEvent) Timestamp() time.Time { return e.timestamp }

// NewHandUpdatedEvent creates a new hand updated event
func NewHandUpdatedEvent(seat *Seat, handIndex int) HandUpdatedEvent {
	return HandUpdatedEvent{Seat: seat, HandIndex: handIndex, Value: seat.Hand(handIndex).Value(), timestamp: time.Now()}
}

// PlayerBustedEvent is published when a hand goes over 21
type PlayerBustedEvent struct {
	Seat      *Seat
	HandIndex int
	timestamp time.Time
}

func (e PlayerBustedEvent) EventType() EventType { return EventTypePlayerBusted }
func (e PlayerBustedEvent) Timestamp() time.Time { return e.timestamp }

// NewPlayerBustedEvent creates a new player busted event
func NewPlayerBustedEvent(seat *Seat, handIndex int) PlayerBustedEvent {
	return PlayerBustedEvent{Seat: seat, HandIndex: handIndex, timestamp: time.Now()}
}

// HandSplitEvent is published when a pair is split into two hands
type HandSplitEvent struct {
	Seat         *Seat
	HandIndex    int
	NewHandIndex int
	timestamp    time.Time
}

func (e HandSplitEvent) EventType() EventType { return EventTypeHandSplit }
func (e HandSplitEvent) Timestamp() time.Time { return e.timestamp }

// NewHandSplitEvent creates a new hand split event
func NewHandSplitEvent(seat *Seat, handIndex, newHandIndex int) HandSplitEvent {
	return HandSplitEvent{Seat: seat, HandIndex: handIndex, NewHandIndex: newHandIndex, timestamp: time.Now()}
}

// DoubleDownEvent is published when a double down succeeds
type DoubleDownEvent struct {
	Seat      *Seat
	HandIndex int
	Bet       int
	timestamp time.Time
}

func (e DoubleDownEvent) EventType() EventType { return EventTypeDoubleDown }
func (e DoubleDownEvent) Timestamp() time.Time { return e.timestamp }

// NewDoubleDownEvent creates a new double down event
func NewDoubleDownEvent(seat *Seat, handIndex, bet int) DoubleDownEvent {
	return DoubleDownEvent{Seat: seat, HandIndex: handIndex, Bet: bet, timestamp: time.Now()}
}

// DealerTurnEvent is published when the dealer's turn begins, carrying the
// revealed hole card
type DealerTurnEvent struct {
	HoleCard  deck.Card
	timestamp time.Time
}

func (e DealerTurnEvent) EventType() EventType { return EventTypeDealerTurn }
func (e DealerTurnEvent) Timestamp() time.Time { return e.timestamp }

// NewDealerTurnEvent creates a new dealer turn event
func NewDealerTurnEvent(holeCard deck.Card) DealerTurnEvent {
	return DealerTurnEvent{HoleCard: holeCard, timestamp: time.Now()}
}

// BetPlacedEvent is published when a seat's opening bet is taken
type BetPlacedEvent struct {
	Seat      *Seat
	Amount    int
	HandIndex int
	timestamp time.Time
}

func (e BetPlacedEvent) EventType() EventType { return EventTypeBetPlaced }
func (e BetPlacedEvent) Timestamp() time.Time { return e.timestamp }

// NewBetPlacedEvent creates a new bet placed event
func NewBetPlacedEvent(seat *Seat, amount, handIndex int) BetPlacedEvent {
	return BetPlacedEvent{Seat: seat, Amount: amount, HandIndex: handIndex, timestamp: time.Now()}
}

// InsuranceOfferedEvent is published when the dealer shows an Ace
type InsuranceOfferedEvent struct {
	Upcard    deck.Card
	timestamp time.Time
}

func (e InsuranceOfferedEvent) EventType() EventType { return EventTypeInsuranceOffered }
func (e InsuranceOfferedEvent) Timestamp() time.Time { return e.timestamp }

// NewInsuranceOfferedEvent creates a new insurance offered event
func NewInsuranceOfferedEvent(upcard deck.Card) InsuranceOfferedEvent {
	return InsuranceOfferedEvent{Upcard: upcard, timestamp: time.Now()}
}

// InsuranceAcceptedEvent is published when a seat takes the insurance bet
type InsuranceAcceptedEvent struct {
	Seat      *Seat
	Amount    int
	timestamp time.Time
}

func (e InsuranceAcceptedEvent) EventType() EventType { return EventTypeInsuranceAccepted }
func (e InsuranceAcceptedEvent) Timestamp() time.Time { return e.timestamp }

// NewInsuranceAcceptedEvent creates a new insurance accepted event
func NewInsuranceAcceptedEvent(seat *Seat, amount int) InsuranceAcceptedEvent {
	return InsuranceAcceptedEvent{Seat: seat, Amount: amount, timestamp: time.Now()}
}

// HandOutcomeEvent is published once per hand during settlement. The same
// struct backs the four outcome event types.
type HandOutcomeEvent struct {
	kind      EventType
	Seat      *Seat
	HandIndex int
	timestamp time.Time
}

func (e HandOutcomeEvent) EventType() EventType { return e.kind }
func (e HandOutcomeEvent) Timestamp() time.Time { return e.timestamp }

// NewPlayerWinsEvent creates a 1:1 win outcome event
func NewPlayerWinsEvent(seat *Seat, handIndex int) HandOutcomeEvent {
	return HandOutcomeEvent{kind: EventTypePlayerWins, Seat: seat, HandIndex: handIndex, timestamp: time.Now()}
}

// NewDealerWinsEvent creates a loss outcome event
func NewDealerWinsEvent(seat *Seat, handIndex int) HandOutcomeEvent {
	return HandOutcomeEvent{kind: EventTypeDealerWins, Seat: seat, HandIndex: handIndex, timestamp: time.Now()}
}

// NewPushEvent creates a push outcome event
func NewPushEvent(seat *Seat, handIndex int) HandOutcomeEvent {
	return HandOutcomeEvent{kind: EventTypePush, Seat: seat, HandIndex: handIndex, timestamp: time.Now()}
}

// NewBlackjackEvent creates a 3:2 natural blackjack outcome event
func NewBlackjackEvent(seat *Seat, handIndex int) HandOutcomeEvent {
	return HandOutcomeEvent{kind: EventTypeBlackjack, Seat: seat, HandIndex: handIndex, timestamp: time.Now()}
}

// StateChangedEvent is published on every state machine transition
type StateChangedEvent struct {
	OldState  GameState
	NewState  GameState
	timestamp time.Time
}

func (e StateChangedEvent) EventType() EventType { return EventTypeStateChanged }
func (e StateChangedEvent) Timestamp() time.Time { return e.timestamp }

// NewStateChangedEvent creates a new state changed event
func NewStateChangedEvent(oldState, newState GameState) StateChangedEvent {
	return StateChangedEvent{OldState: oldState, NewState: newState, timestamp: time.Now()}
}

// RoundEndedEvent is the terminal event of a round
type RoundEndedEvent struct {
	RoundID   string
	timestamp time.Time
}

func (e RoundEndedEvent) EventType() EventType { return EventTypeRoundEnded }
func (e RoundEndedEvent) Timestamp() time.Time { return e.timestamp }

// NewRoundEndedEvent creates a new round ended event
func NewRoundEndedEvent(roundID string) RoundEndedEvent {
	return RoundEndedEvent{RoundID: roundID, timestamp: time.Now()}
}

// EventSubscriber can subscribe to game events
type EventSubscriber interface {
	OnEvent(event GameEvent)
}

// EventBus manages event publishing and subscription
type EventBus interface {
	Subscribe(subscriber EventSubscriber)
	Unsubscribe(subscriber EventSubscriber)
	Publish(event GameEvent)
}

// SimpleEventBus is a basic in-memory event bus implementation. Delivery is
// synchronous: subscribers must not block the engine.
type SimpleEventBus struct {
	subscribers []EventSubscriber
}

// NewEventBus creates a new event bus
func NewEventBus() EventBus {
	return &SimpleEventBus{subscribers: make([]EventSubscriber, 0)}
}

// Subscribe adds a subscriber to receive events
func (bus *SimpleEventBus) Subscribe(subscriber EventSubscriber) {
	bus.subscribers = append(bus.subscribers, subscriber)
}

// Unsubscribe removes a subscriber from receiving events
func (bus *SimpleEventBus) Unsubscribe(subscriber EventSubscriber) {
	for i, sub := range bus.subscribers {
		if sub == subscriber {
			bus.subscribers = append(bus.subscribers[:i], bus.subscribers[i+1:]...)
			break
		}
	}
}

// Publish sends an event to all subscribers in subscription order
func (bus *SimpleEventBus) Publish(event GameEvent) {
	for _, subscriber := range bus.subscribers {
		subscriber.OnEvent(event)
	}
}
