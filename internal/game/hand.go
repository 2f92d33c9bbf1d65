package game

import (
	"strings"

	"github.com/cardtable/blackjack/internal/deck"
)

// Hand is one set of cards played as a unit, with its own bet and flags.
// A seat starts a round with a single hand and gains more only by splitting.
type Hand struct {
	Cards   []deck.Card
	Bet     int
	Doubled bool
	Insured bool
}

// NewHand creates an empty hand with no bet
func NewHand() *Hand {
	return &Hand{Cards: make([]deck.Card, 0, 8)}
}

// AddCard appends a card to the hand
func (h *Hand) AddCard(card deck.Card) {
	h.Cards = append(h.Cards, card)
}

// Value computes the blackjack value of the hand. Aces start at 11 and
// are downgraded to 1 one at a time while the total exceeds 21, so the
// reported value is minimal over the available soft conversions and is
// independent of card order.
func (h *Hand) Value() int {
	total := 0
	softAces := 0
	for _, card := range h.Cards {
		total += card.BlackjackValue()
		if card.IsAce() {
			softAces++
		}
	}
	for total > 21 && softAces > 0 {
		total -= 10
		softAces--
	}
	return total
}

// IsSoft returns true if the hand counts at least one Ace as 11
func (h *Hand) IsSoft() bool {
	total := 0
	softAces := 0
	for _, card := range h.Cards {
		total += card.BlackjackValue()
		if card.IsAce() {
			softAces++
		}
	}
	for total > 21 && softAces > 0 {
		total -= 10
		softAces--
	}
	return softAces > 0
}

// IsBlackjack returns true for a two-card 21
func (h *Hand) IsBlackjack() bool {
	return len(h.Cards) == 2 && h.Value() == 21
}

// IsBusted returns true if the hand value exceeds 21
func (h *Hand) IsBusted() bool {
	return h.Value() > 21
}

// CanSplit returns true if the hand is exactly two cards of equal rank.
// Funds and the per-seat hand cap are checked at the seat level.
func (h *Hand) CanSplit() bool {
	return len(h.Cards) == 2 && h.Cards[0].Rank == h.Cards[1].Rank
}

// String returns the hand's cards joined by spaces, e.g. "T♥ 7♦"
func (h *Hand) String() string {
	parts := make([]string, len(h.Cards))
	for i, card := range h.Cards {
		parts[i] = card.String()
	}
	return strings.Join(parts, " ")
}
