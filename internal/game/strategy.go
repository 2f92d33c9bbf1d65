package game

import (
	rand "math/rand/v2"

	"github.com/cardtable/blackjack/internal/deck"
)

// Strategy is a fixed decision policy for a non-human seat. Strategies are
// stateless: any randomness comes from the RNG passed in, so the same seed
// replays the same decisions.
type Strategy interface {
	Name() string

	// ShouldDraw reports whether to take another card at the given hand value
	ShouldDraw(handValue int) bool

	// ShouldSplitHand reports whether to split the given two-card pair
	ShouldSplitHand(hand *Hand) bool

	// ShouldPlayDoubleDown reports whether to double down on the given
	// two-card hand
	ShouldPlayDoubleDown(hand *Hand) bool

	// ShouldTakeInsurance reports whether to take the insurance side bet
	// when the dealer shows an Ace
	ShouldTakeInsurance(rng *rand.Rand) bool

	// BetAmount sizes the seat's opening bet within the policy's window,
	// scaled to the seat's balance
	BetAmount(rng *rand.Rand, balance int) int
}

// betWithin picks a uniform bet inside [minPct, maxPct] percent of balance,
// clamped to at least 1 unit and never above the balance itself.
func betWithin(rng *rand.Rand, balance, minPct, maxPct int) int {
	if balance <= 0 {
		return 0
	}
	lo := balance * minPct / 100
	hi := balance * maxPct / 100
	if lo < 1 {
		lo = 1
	}
	if hi < lo {
		hi = lo
	}
	bet := lo + rng.IntN(hi-lo+1)
	if bet > balance {
		bet = balance
	}
	return bet
}

// DealerStrategy is the fixed house policy: hit below 17, never split,
// double or insure.
type DealerStrategy struct{}

func (DealerStrategy) Name() string                        { return "dealer" }
func (DealerStrategy) ShouldDraw(handValue int) bool       { return handValue < 17 }
func (DealerStrategy) ShouldSplitHand(*Hand) bool          { return false }
func (DealerStrategy) ShouldPlayDoubleDown(*Hand) bool     { return false }
func (DealerStrategy) ShouldTakeInsurance(*rand.Rand) bool { return false }
func (DealerStrategy) BetAmount(*rand.Rand, int) int       { return 0 }

// AggressiveStrategy chases strong totals: it draws up to 17, doubles any
// 9 to 11, splits everything except tens and faces, and takes insurance on
// a coin flip. Bets run 10-25% of balance.
type AggressiveStrategy struct{}

func (AggressiveStrategy) Name() string                  { return "aggressive" }
func (AggressiveStrategy) ShouldDraw(handValue int) bool { return handValue < 18 }

func (AggressiveStrategy) ShouldSplitHand(hand *Hand) bool {
	if !hand.CanSplit() {
		return false
	}
	// Keep made 20s; split everything else
	return hand.Cards[0].Rank < deck.Ten || hand.Cards[0].IsAce()
}

func (AggressiveStrategy) ShouldPlayDoubleDown(hand *Hand) bool {
	v := hand.Value()
	return v >= 9 && v <= 11
}

func (AggressiveStrategy) ShouldTakeInsurance(rng *rand.Rand) bool {
	return rng.IntN(2) == 0
}

func (AggressiveStrategy) BetAmount(rng *rand.Rand, balance int) int {
	return betWithin(rng, balance, 10, 25)
}

// ConservativeStrategy protects its balance: it stands early, doubles only
// a hard 11, splits only Aces, and always hedges with insurance. Bets run
// 2-8% of balance.
type ConservativeStrategy struct{}

func (ConservativeStrategy) Name() string                  { return "conservative" }
func (ConservativeStrategy) ShouldDraw(handValue int) bool { return handValue < 14 }

func (ConservativeStrategy) ShouldSplitHand(hand *Hand) bool {
	return hand.CanSplit() && hand.Cards[0].IsAce()
}

func (ConservativeStrategy) ShouldPlayDoubleDown(hand *Hand) bool {
	return hand.Value() == 11 && !hand.IsSoft()
}

func (ConservativeStrategy) ShouldTakeInsurance(*rand.Rand) bool { return true }

func (ConservativeStrategy) BetAmount(rng *rand.Rand, balance int) int {
	return betWithin(rng, balance, 2, 8)
}

// BalancedStrategy plays close to basic strategy without reading the
// dealer's card: draw below 16, double 10 and 11, split Aces and Eights,
// never insure. Bets run 5-15% of balance.
type BalancedStrategy struct{}

func (BalancedStrategy) Name() string                  { return "balanced" }
func (BalancedStrategy) ShouldDraw(handValue int) bool { return handValue < 16 }

func (BalancedStrategy) ShouldSplitHand(hand *Hand) bool {
	if !hand.CanSplit() {
		return false
	}
	return hand.Cards[0].IsAce() || hand.Cards[0].Rank == deck.Eight
}

func (BalancedStrategy) ShouldPlayDoubleDown(hand *Hand) bool {
	v := hand.Value()
	return (v == 10 || v == 11) && !hand.IsSoft()
}

func (BalancedStrategy) ShouldTakeInsurance(*rand.Rand) bool { return false }

func (BalancedStrategy) BetAmount(rng *rand.Rand, balance int) int {
	return betWithin(rng, balance, 5, 15)
}

// StrategyByName returns the AI strategy for a config-facing name
func StrategyByName(name string) (Strategy, bool) {
	switch name {
	case "aggressive":
		return AggressiveStrategy{}, true
	case "conservative":
		return ConservativeStrategy{}, true
	case "balanced":
		return BalancedStrategy{}, true
	default:
		return nil, false
	}
}
