package game

import (
	"github.com/cardtable/blackjack/internal/deck"
)

// MaxHandsPerSeat is the fixed cap on concurrent hands a seat can hold
// through splitting.
const MaxHandsPerSeat = 4

// SeatKind distinguishes the human player, autonomous AI seats and the dealer
type SeatKind int

const (
	Human SeatKind = iota
	AI
	Dealer
)

// String returns the string representation of the seat kind
func (k SeatKind) String() string {
	switch k {
	case Human:
		return "Human"
	case AI:
		return "AI"
	case Dealer:
		return "Dealer"
	default:
		return "Unknown"
	}
}

// Seat is a participant at the table: the human, an AI seat, or the dealer.
// Seats persist across rounds; hands are rebuilt every round.
type Seat struct {
	Name         string
	Kind         SeatKind
	Balance      int
	CurrentBet   int
	Insured      bool
	InsuranceBet int
	Strategy     Strategy // nil for the human seat

	hands    []*Hand
	holeCard *deck.Card // dealer only, hidden until reveal
}

// NewSeat creates a seat with a single empty hand
func NewSeat(name string, kind SeatKind, balance int) *Seat {
	return &Seat{
		Name:    name,
		Kind:    kind,
		Balance: balance,
		hands:   []*Hand{NewHand()},
	}
}

// NewAISeat creates an AI seat driven by the given strategy
func NewAISeat(name string, balance int, strategy Strategy) *Seat {
	seat := NewSeat(name, AI, balance)
	seat.Strategy = strategy
	return seat
}

// Hand returns the hand at the given index. An out-of-range index is a
// programming error and panics.
func (s *Seat) Hand(index int) *Hand {
	if index < 0 || index >= len(s.hands) {
		panic("game: hand index out of range")
	}
	return s.hands[index]
}

// Hands returns the seat's ordered hand list
func (s *Seat) Hands() []*Hand {
	return s.hands
}

// HandCount returns the number of hands the seat currently holds
func (s *Seat) HandCount() int {
	return len(s.hands)
}

// ResetHands clears the seat back to a single empty hand and drops any
// insurance and hole card state. The balance carries over between rounds.
func (s *Seat) ResetHands() {
	s.hands = []*Hand{NewHand()}
	s.CurrentBet = 0
	s.Insured = false
	s.InsuranceBet = 0
	s.holeCard = nil
}

// CanDoubleDown reports whether the hand at index may be doubled: exactly
// two cards and enough balance to match the existing bet.
func (s *Seat) CanDoubleDown(index int) bool {
	hand := s.Hand(index)
	return len(hand.Cards) == 2 && s.Balance >= hand.Bet
}

// CanSplit reports whether the hand at index may be split: a two-card pair,
// enough balance to match the bet, and the seat below the hand cap.
func (s *Seat) CanSplit(index int) bool {
	hand := s.Hand(index)
	return hand.CanSplit() && s.Balance >= hand.Bet && len(s.hands) < MaxHandsPerSeat
}

// SplitHand moves the second card of the hand at index into a new hand
// appended to the seat's hand list, carrying the same bet. It returns the
// new hand's index. The caller deals the replacement cards and must have
// already moved the money through the BankManager.
func (s *Seat) SplitHand(index int) (int, bool) {
	hand := s.Hand(index)
	if !hand.CanSplit() || len(s.hands) >= MaxHandsPerSeat {
		return 0, false
	}

	split := NewHand()
	split.Bet = hand.Bet
	split.AddCard(hand.Cards[1])
	hand.Cards = hand.Cards[:1]

	s.hands = append(s.hands, split)
	return len(s.hands) - 1, true
}

// SetHoleCard stores the dealer's hidden card. It is kept out of the
// visible hand until RevealHoleCard.
func (s *Seat) SetHoleCard(card deck.Card) {
	c := card
	s.holeCard = &c
}

// HoleCard returns the hidden hole card, if one is held
func (s *Seat) HoleCard() (deck.Card, bool) {
	if s.holeCard == nil {
		return deck.Card{}, false
	}
	return *s.holeCard, true
}

// RevealHoleCard moves the hidden hole card into the dealer's visible hand
// and returns it. Revealing twice is a programming error and panics.
func (s *Seat) RevealHoleCard() deck.Card {
	if s.holeCard == nil {
		panic("game: no hole card to reveal")
	}
	card := *s.holeCard
	s.holeCard = nil
	s.hands[0].AddCard(card)
	return card
}

// AllHandsBusted returns true if every hand the seat holds is busted.
// A seat with no cards dealt is not considered busted.
func (s *Seat) AllHandsBusted() bool {
	for _, hand := range s.hands {
		if len(hand.Cards) == 0 || !hand.IsBusted() {
			return false
		}
	}
	return true
}
