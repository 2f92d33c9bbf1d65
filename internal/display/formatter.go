package display

import (
	"fmt"
	"io"

	"github.com/cardtable/blackjack/internal/deck"
	"github.com/cardtable/blackjack/internal/game"
)

// EventFormatter renders the engine's event stream as human-readable lines.
// Subscribe it to the event bus; every event becomes at most one line on
// the writer. Internal bookkeeping events are skipped.
type EventFormatter struct {
	out io.Writer
}

// NewEventFormatter creates a formatter writing to the given writer
func NewEventFormatter(out io.Writer) *EventFormatter {
	return &EventFormatter{out: out}
}

// Card renders a single card with suit coloring
func Card(c deck.Card) string {
	if c.IsRed() {
		return RedCardStyle.Render(c.String())
	}
	return BlackCardStyle.Render(c.String())
}

// Cards renders a card list separated by spaces
func Cards(cards []deck.Card) string {
	out := ""
	for i, c := range cards {
		if i > 0 {
			out += " "
		}
		out += Card(c)
	}
	return out
}

func handLabel(seat *game.Seat, handIndex int) string {
	if seat.HandCount() > 1 {
		return fmt.Sprintf("%s (hand %d)", seat.Name, handIndex+1)
	}
	return seat.Name
}

// OnEvent implements game.EventSubscriber
func (f *EventFormatter) OnEvent(event game.GameEvent) {
	switch e := event.(type) {
	case game.BetPlacedEvent:
		f.printf("%s bets %d\n", SeatStyle.Render(e.Seat.Name), e.Amount)
	case game.CardDealtEvent:
		hand := e.Seat.Hand(e.HandIndex)
		f.printf("%s draws %s  (%s, %d)\n",
			SeatStyle.Render(handLabel(e.Seat, e.HandIndex)), Card(e.Card), Cards(hand.Cards), hand.Value())
	case game.PlayerBustedEvent:
		f.printf("%s %s\n", SeatStyle.Render(handLabel(e.Seat, e.HandIndex)), LossStyle.Render("busts!"))
	case game.HandSplitEvent:
		f.printf("%s splits into hands %d and %d\n", SeatStyle.Render(e.Seat.Name), e.HandIndex+1, e.NewHandIndex+1)
	case game.DoubleDownEvent:
		f.printf("%s doubles down to %d\n", SeatStyle.Render(handLabel(e.Seat, e.HandIndex)), e.Bet)
	case game.DealerTurnEvent:
		f.printf("%s reveals %s\n", DealerStyle.Render("Dealer"), Card(e.HoleCard))
	case game.InsuranceOfferedEvent:
		f.printf("%s shows %s. %s\n", DealerStyle.Render("Dealer"), Card(e.Upcard), InfoStyle.Render("Insurance open."))
	case game.InsuranceAcceptedEvent:
		f.printf("%s insures for %d\n", SeatStyle.Render(e.Seat.Name), e.Amount)
	case game.HandOutcomeEvent:
		f.outcome(e)
	case game.RoundEndedEvent:
		f.printf("%s\n", InfoStyle.Render("Round over."))
	}
}

func (f *EventFormatter) outcome(e game.HandOutcomeEvent) {
	label := SeatStyle.Render(handLabel(e.Seat, e.HandIndex))
	switch e.EventType() {
	case game.EventTypePlayerWins:
		f.printf("%s %s\n", label, WinStyle.Render("wins"))
	case game.EventTypeBlackjack:
		f.printf("%s %s\n", label, WinStyle.Render("has blackjack! Pays 3:2"))
	case game.EventTypeDealerWins:
		f.printf("%s %s\n", label, LossStyle.Render("loses"))
	case game.EventTypePush:
		f.printf("%s %s\n", label, PushStyle.Render("pushes"))
	}
}

func (f *EventFormatter) printf(format string, args ...any) {
	fmt.Fprintf(f.out, format, args...)
}
