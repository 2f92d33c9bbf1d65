package game

import (
	"testing"

	"github.com/cardtable/blackjack/internal/deck"
)

func seatWithHand(t *testing.T, balance, bet int, cards string) *Seat {
	t.Helper()
	seat := NewSeat("Player", Human, balance)
	hand := seat.Hand(0)
	hand.Bet = bet
	seat.CurrentBet = bet
	for _, card := range deck.MustParseCards(cards) {
		hand.AddCard(card)
	}
	return seat
}

func TestNewSeatStartsWithOneEmptyHand(t *testing.T) {
	seat := NewSeat("Player", Human, 500)
	if seat.HandCount() != 1 {
		t.Fatalf("expected 1 hand, got %d", seat.HandCount())
	}
	if len(seat.Hand(0).Cards) != 0 {
		t.Error("starting hand should be empty")
	}
}

func TestCanDoubleDown(t *testing.T) {
	tests := []struct {
		name     string
		balance  int
		bet      int
		cards    string
		expected bool
	}{
		{"two cards with funds", 100, 50, "5s6d", true},
		{"two cards exact funds", 50, 50, "5s6d", true},
		{"insufficient funds", 49, 50, "5s6d", false},
		{"three cards", 100, 50, "2s3d4c", false},
		{"one card", 100, 50, "5s", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seat := seatWithHand(t, tt.balance, tt.bet, tt.cards)
			if got := seat.CanDoubleDown(0); got != tt.expected {
				t.Errorf("CanDoubleDown = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestCanSplitChecksFundsAndCap(t *testing.T) {
	seat := seatWithHand(t, 100, 50, "8s8d")
	if !seat.CanSplit(0) {
		t.Fatal("pair with funds should be splittable")
	}

	seat.Balance = 49
	if seat.CanSplit(0) {
		t.Error("split requires balance >= bet")
	}

	seat.Balance = 1000
	for seat.HandCount() < MaxHandsPerSeat {
		if _, ok := seat.SplitHand(0); !ok {
			break
		}
		// Re-pair the first hand so it stays splittable
		seat.Hand(0).Cards = deck.MustParseCards("8s8d")
	}
	if seat.HandCount() != MaxHandsPerSeat {
		t.Fatalf("expected %d hands, got %d", MaxHandsPerSeat, seat.HandCount())
	}
	if seat.CanSplit(0) {
		t.Error("split past the hand cap must be rejected")
	}
}

func TestSplitHandMovesSecondCard(t *testing.T) {
	seat := seatWithHand(t, 100, 50, "8s8d")
	newIndex, ok := seat.SplitHand(0)
	if !ok {
		t.Fatal("split should succeed")
	}
	if newIndex != 1 {
		t.Errorf("expected new hand index 1, got %d", newIndex)
	}
	if seat.HandCount() != 2 {
		t.Fatalf("expected 2 hands, got %d", seat.HandCount())
	}

	first, second := seat.Hand(0), seat.Hand(1)
	if len(first.Cards) != 1 || first.Cards[0] != deck.NewCard(deck.Spades, deck.Eight) {
		t.Errorf("first hand should keep the first card, got %v", first.Cards)
	}
	if len(second.Cards) != 1 || second.Cards[0] != deck.NewCard(deck.Diamonds, deck.Eight) {
		t.Errorf("second hand should take the second card, got %v", second.Cards)
	}
	if second.Bet != first.Bet {
		t.Errorf("split hand should carry the same bet, got %d vs %d", second.Bet, first.Bet)
	}
}

func TestSplitNonPairFails(t *testing.T) {
	seat := seatWithHand(t, 100, 50, "8sKd")
	if _, ok := seat.SplitHand(0); ok {
		t.Error("non-pair should not split")
	}
}

func TestResetHandsPreservesBalance(t *testing.T) {
	seat := seatWithHand(t, 100, 50, "8s8d")
	seat.Insured = true
	seat.InsuranceBet = 25
	seat.SplitHand(0)

	seat.ResetHands()

	if seat.Balance != 100 {
		t.Errorf("balance should carry over, got %d", seat.Balance)
	}
	if seat.HandCount() != 1 || len(seat.Hand(0).Cards) != 0 {
		t.Error("reset should leave a single empty hand")
	}
	if seat.Insured || seat.InsuranceBet != 0 || seat.CurrentBet != 0 {
		t.Error("reset should clear bet and insurance state")
	}
}

func TestHoleCard(t *testing.T) {
	dealer := NewSeat("Dealer", Dealer, 0)
	if _, ok := dealer.HoleCard(); ok {
		t.Error("no hole card before one is set")
	}

	hole := deck.NewCard(deck.Hearts, deck.King)
	dealer.SetHoleCard(hole)
	dealer.Hand(0).AddCard(deck.NewCard(deck.Spades, deck.Six))

	if got, ok := dealer.HoleCard(); !ok || got != hole {
		t.Errorf("expected hidden hole card %s", hole)
	}
	if len(dealer.Hand(0).Cards) != 1 {
		t.Error("hole card must stay out of the visible hand")
	}

	revealed := dealer.RevealHoleCard()
	if revealed != hole {
		t.Errorf("expected revealed card %s, got %s", hole, revealed)
	}
	if len(dealer.Hand(0).Cards) != 2 {
		t.Error("revealed hole card should join the visible hand")
	}
	if _, ok := dealer.HoleCard(); ok {
		t.Error("hole card should be cleared after reveal")
	}
}

func TestRevealWithoutHoleCardPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic revealing without a hole card")
		}
	}()
	NewSeat("Dealer", Dealer, 0).RevealHoleCard()
}

func TestHandIndexOutOfRangePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic on out-of-range hand index")
		}
	}()
	NewSeat("Player", Human, 100).Hand(1)
}

func TestAllHandsBusted(t *testing.T) {
	seat := seatWithHand(t, 100, 10, "KsQd5h")
	if !seat.AllHandsBusted() {
		t.Error("single busted hand should report busted")
	}

	seat = seatWithHand(t, 100, 10, "KsQd")
	if seat.AllHandsBusted() {
		t.Error("standing hand is not busted")
	}

	empty := NewSeat("Player", Human, 100)
	if empty.AllHandsBusted() {
		t.Error("undealt hand is not busted")
	}
}
