package deck

import (
	rand "math/rand/v2"
)

// Shoe is an ordered sequence of cards built from one or more standard
// 52-card decks. Drawing removes cards from the front. Drawing from an
// empty shoe is a programming error and panics; a correctly sized shoe
// can never run out within a single round.
type Shoe struct {
	cards []Card
	decks int
	rng   *rand.Rand
}

// NewShoe creates a shuffled shoe built from numDecks standard decks.
// The RNG is injected so that callers control determinism.
func NewShoe(rng *rand.Rand, numDecks int) *Shoe {
	if numDecks < 1 {
		numDecks = 1
	}
	s := &Shoe{
		cards: make([]Card, 0, numDecks*52),
		decks: numDecks,
		rng:   rng,
	}
	s.fill()
	s.Shuffle()
	return s
}

// NewStacked creates an unshuffled shoe containing exactly the given cards
// in order. Used by tests that need a deterministic deal.
func NewStacked(cards ...Card) *Shoe {
	stacked := make([]Card, len(cards))
	copy(stacked, cards)
	return &Shoe{cards: stacked, decks: 0}
}

func (s *Shoe) fill() {
	s.cards = s.cards[:0]
	for d := 0; d < s.decks; d++ {
		for suit := Spades; suit <= Clubs; suit++ {
			for rank := Two; rank <= Ace; rank++ {
				s.cards = append(s.cards, NewCard(suit, rank))
			}
		}
	}
}

// Shuffle randomizes the order of the remaining cards
func (s *Shoe) Shuffle() {
	if s.rng == nil {
		return
	}
	s.rng.Shuffle(len(s.cards), func(i, j int) {
		s.cards[i], s.cards[j] = s.cards[j], s.cards[i]
	})
}

// Reset restores the shoe to its full size and reshuffles. Stacked shoes
// keep their remaining cards untouched so tests stay deterministic.
func (s *Shoe) Reset() {
	if s.decks == 0 {
		return
	}
	s.fill()
	s.Shuffle()
}

// MustDraw removes and returns the front card. It panics if the shoe is
// empty; the engine sizes shoes so this cannot happen in normal play.
func (s *Shoe) MustDraw() Card {
	if len(s.cards) == 0 {
		panic("deck: draw from empty shoe")
	}
	card := s.cards[0]
	s.cards = s.cards[1:]
	return card
}

// CardsRemaining returns the number of cards left in the shoe
func (s *Shoe) CardsRemaining() int {
	return len(s.cards)
}

// IsEmpty returns true if the shoe has no cards left
func (s *Shoe) IsEmpty() bool {
	return len(s.cards) == 0
}
