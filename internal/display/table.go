package display

import (
	"fmt"
	"strings"

	"github.com/cardtable/blackjack/internal/game"
)

// RenderTable renders a snapshot of the whole table: the dealer on top,
// then every seat with its hands, bets and balance.
func RenderTable(tm *game.TurnManager) string {
	var b strings.Builder

	b.WriteString(HeaderStyle.Render(" BLACKJACK "))
	b.WriteString("\n\n")

	b.WriteString(renderDealer(tm))
	b.WriteString("\n")

	for _, seat := range tm.AISeats() {
		b.WriteString(renderSeat(seat))
	}
	b.WriteString(renderSeat(tm.HumanSeat()))

	return b.String()
}

func renderDealer(tm *game.TurnManager) string {
	dealer := tm.DealerSeat()
	hand := dealer.Hand(0)

	if len(hand.Cards) == 0 {
		return DealerStyle.Render("Dealer") + "  (no cards)\n"
	}

	line := DealerStyle.Render("Dealer") + "  " + Cards(hand.Cards)
	if _, hidden := dealer.HoleCard(); hidden {
		line += " " + InfoStyle.Render("[??]")
	} else {
		line += fmt.Sprintf("  (%d)", hand.Value())
	}
	return line + "\n"
}

func renderSeat(seat *game.Seat) string {
	var b strings.Builder

	b.WriteString(SeatStyle.Render(seat.Name))
	b.WriteString(fmt.Sprintf("  balance %d", seat.Balance))
	if seat.CurrentBet > 0 {
		b.WriteString(fmt.Sprintf("  bet %d", seat.CurrentBet))
	}
	if seat.Insured {
		b.WriteString(InfoStyle.Render("  insured"))
	}
	b.WriteString("\n")

	for i, hand := range seat.Hands() {
		if len(hand.Cards) == 0 {
			continue
		}
		prefix := "  "
		if seat.HandCount() > 1 {
			prefix = fmt.Sprintf("  hand %d: ", i+1)
		}
		b.WriteString(prefix + Cards(hand.Cards) + fmt.Sprintf("  (%d)", hand.Value()))
		switch {
		case hand.IsBusted():
			b.WriteString(" " + LossStyle.Render("BUST"))
		case hand.IsBlackjack():
			b.WriteString(" " + WinStyle.Render("BLACKJACK"))
		case hand.IsSoft():
			b.WriteString(InfoStyle.Render(" soft"))
		}
		b.WriteString("\n")
	}

	return b.String()
}
