package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cardtable/blackjack/internal/deck"
	"github.com/cardtable/blackjack/internal/randutil"
)

// newTable builds an engine over a stacked shoe. Deal order is: two cards
// to the human, two to each AI seat, then the dealer's hole card followed
// by the dealer's upcard; later cards feed hits and dealer draws.
func newTable(ais []*Seat, stacked string) (*TurnManager, *Seat, *eventRecorder) {
	human := NewSeat("You", Human, 1000)
	tm := NewTurnManager(randutil.New(1), testLogger(), human, ais,
		WithShoe(deck.NewStacked(deck.MustParseCards(stacked)...)))

	recorder := &eventRecorder{}
	tm.EventBus().Subscribe(recorder)
	return tm, human, recorder
}

func TestStartRoundRejectsBadBets(t *testing.T) {
	tm, human, _ := newTable(nil, "Th7hTd6sKh")

	assert.False(t, tm.StartRound(0))
	assert.False(t, tm.StartRound(-10))
	assert.False(t, tm.StartRound(1001))
	assert.Equal(t, WaitingForPlayers, tm.State())
	assert.Equal(t, 1000, human.Balance)
}

func TestStartRoundDealsAndEntersPlayerTurn(t *testing.T) {
	tm, human, recorder := newTable(nil, "Th7hTd6sKh")

	require.True(t, tm.StartRound(50))

	assert.Equal(t, PlayerTurn, tm.State())
	assert.Equal(t, 0, tm.CurrentHandIndex())
	assert.NotEmpty(t, tm.RoundID())
	assert.Equal(t, 950, human.Balance)
	assert.Equal(t, 17, human.Hand(0).Value())

	// Dealer shows one card; the hole card stays hidden
	upcard, ok := tm.DealerUpcard()
	require.True(t, ok)
	assert.Equal(t, deck.NewCard(deck.Spades, deck.Six), upcard)
	assert.Len(t, tm.DealerSeat().Hand(0).Cards, 1)
	hole, ok := tm.DealerSeat().HoleCard()
	require.True(t, ok)
	assert.Equal(t, deck.NewCard(deck.Diamonds, deck.Ten), hole)

	// Two human card events, one dealer upcard event
	assert.Equal(t, 3, recorder.count(EventTypeCardDealt))
	assert.Equal(t, 1, recorder.count(EventTypeBetPlaced))
}

func TestStartRoundRejectedWhileRoundInProgress(t *testing.T) {
	tm, _, _ := newTable(nil, "Th7hTd6sKh")
	require.True(t, tm.StartRound(50))
	assert.False(t, tm.StartRound(50))
}

func TestStandThenDealerBustPaysWin(t *testing.T) {
	// Human 17 vs dealer 6 up, T in the hole; dealer draws K and busts
	tm, human, recorder := newTable(nil, "Th7hTd6sKh")
	require.True(t, tm.StartRound(50))

	tm.PlayerStand()

	assert.Equal(t, RoundOver, tm.State())
	assert.Equal(t, 1050, human.Balance, "bet returned plus 1:1 win")
	assert.True(t, tm.DealerSeat().Hand(0).IsBusted())

	event, ok := recorder.first(EventTypePlayerWins)
	require.True(t, ok, "expected a PlayerWins event")
	outcome := event.(HandOutcomeEvent)
	assert.Same(t, human, outcome.Seat)
	assert.Equal(t, 0, outcome.HandIndex)
	assert.Equal(t, 1, recorder.count(EventTypeRoundEnded))
}

func TestNaturalBlackjackShortCircuitsRound(t *testing.T) {
	// Human dealt a natural against a non-Ace upcard and no dealer natural
	tm, human, recorder := newTable(nil, "AsKd5d9s")
	require.True(t, tm.StartRound(50))

	assert.Equal(t, RoundOver, tm.State())
	assert.Equal(t, 1075, human.Balance, "3:2 on 50 plus stake")
	assert.Equal(t, 1, recorder.count(EventTypeBlackjack))

	// The round never reached PlayerTurn
	for _, event := range recorder.events {
		if sc, ok := event.(StateChangedEvent); ok {
			assert.NotEqual(t, PlayerTurn, sc.NewState)
		}
	}
}

func TestDealerTenUpNaturalResolvesImmediately(t *testing.T) {
	// Dealer Ah in the hole under a K upcard: natural, resolved at deal
	tm, human, _ := newTable(nil, "Th7hAhKs")
	require.True(t, tm.StartRound(50))

	assert.Equal(t, RoundOver, tm.State())
	assert.Equal(t, 950, human.Balance, "17 loses to the natural")
}

func TestBothNaturalsPush(t *testing.T) {
	tm, human, recorder := newTable(nil, "AsKdAhKs")
	require.True(t, tm.StartRound(100))

	assert.Equal(t, RoundOver, tm.State())
	assert.Equal(t, 1000, human.Balance)
	assert.Equal(t, 1, recorder.count(EventTypePush))
}

func TestInsurancePaysOnDealerNatural(t *testing.T) {
	// Ace up with K in the hole: no peek, insurance offered, natural
	// discovered at reveal
	tm, human, recorder := newTable(nil, "Th7hKhAs")
	require.True(t, tm.StartRound(100))

	assert.Equal(t, PlayerTurn, tm.State(), "ace up must not short-circuit")
	assert.Equal(t, 1, recorder.count(EventTypeInsuranceOffered))
	assert.True(t, tm.InsuranceOffered())

	require.True(t, tm.TakeInsurance())
	assert.Equal(t, 850, human.Balance, "100 bet plus 50 insurance staked")

	event, ok := recorder.first(EventTypeInsuranceAccepted)
	require.True(t, ok)
	assert.Equal(t, 50, event.(InsuranceAcceptedEvent).Amount)

	tm.PlayerStand()

	assert.Equal(t, RoundOver, tm.State())
	// Main hand loses 100, insurance returns 150: net square with the start
	assert.Equal(t, 1000, human.Balance)
	assert.False(t, human.Insured)
}

func TestInsuranceForfeitedWhenDealerMissesNatural(t *testing.T) {
	// Ace up over a 7 hole card: insurance loses, dealer plays out 18
	tm, human, _ := newTable(nil, "ThTh7hAs")
	require.True(t, tm.StartRound(100))
	require.True(t, tm.TakeInsurance())

	tm.PlayerStand()

	assert.Equal(t, RoundOver, tm.State())
	// 20 beats 18: bet wins 100, insurance stake of 50 forfeited
	assert.Equal(t, 1050, human.Balance)
	assert.False(t, human.Insured)
}

func TestTakeInsuranceGuards(t *testing.T) {
	// No Ace showing
	tm, _, _ := newTable(nil, "Th7hTd6sKh")
	require.True(t, tm.StartRound(50))
	assert.False(t, tm.TakeInsurance())

	// Ace showing but taken twice
	tm2, _, _ := newTable(nil, "ThTh7hAs")
	require.True(t, tm2.StartRound(100))
	require.True(t, tm2.TakeInsurance())
	assert.False(t, tm2.TakeInsurance())
}

func TestDeclineInsuranceClosesOffer(t *testing.T) {
	tm, human, _ := newTable(nil, "ThTh7hAs")
	require.True(t, tm.StartRound(100))

	tm.DeclineInsurance()

	assert.False(t, tm.InsuranceOffered())
	assert.False(t, tm.TakeInsurance())
	assert.Equal(t, 900, human.Balance, "declining changes nothing but the offer flag")
}

func TestHitToBustAdvancesRound(t *testing.T) {
	// Human 17 hits into a 9 and busts; dealer stands pat on 16 because
	// every seat is already busted
	tm, human, recorder := newTable(nil, "Th7hTd6s9d")
	require.True(t, tm.StartRound(50))

	tm.PlayerHit()

	assert.Equal(t, RoundOver, tm.State())
	assert.Equal(t, 950, human.Balance)
	assert.Equal(t, 1, recorder.count(EventTypePlayerBusted))
	assert.Len(t, tm.DealerSeat().Hand(0).Cards, 2, "dealer must not draw when all seats busted")
}

func TestHitOnTwentyOneIsIgnored(t *testing.T) {
	// Human dealt 20, hits to 21, then further hits are no-ops until stand
	tm, human, _ := newTable(nil, "Th8hTd6s3dKh")
	require.True(t, tm.StartRound(50))

	tm.PlayerHit() // 21, hand finished, no AI seats -> dealer plays
	assert.Equal(t, RoundOver, tm.State())

	tm.PlayerHit() // illegal now, ignored
	assert.Equal(t, RoundOver, tm.State())
	assert.Len(t, human.Hand(0).Cards, 3)
}

func TestDoubleDown(t *testing.T) {
	// Human 11 doubles, draws a T for 21; dealer holds 19
	tm, human, recorder := newTable(nil, "5s6dTd9sTh")
	require.True(t, tm.StartRound(100))

	require.True(t, tm.DoubleDown())

	assert.Equal(t, RoundOver, tm.State())
	// 200 at stake, 21 beats 19: balance 1000 - 100 - 100 + 400
	assert.Equal(t, 1200, human.Balance)
	assert.True(t, human.Hand(0).Doubled)
	assert.Len(t, human.Hand(0).Cards, 3, "double down draws exactly one card")

	event, ok := recorder.first(EventTypeDoubleDown)
	require.True(t, ok)
	assert.Equal(t, 200, event.(DoubleDownEvent).Bet)
}

func TestDoubleDownGuards(t *testing.T) {
	// Insufficient balance: bet 600 leaves only 400 behind
	tm, human, _ := newTable(nil, "5s6dTd9sTh")
	require.True(t, tm.StartRound(600))
	assert.False(t, tm.DoubleDown())
	assert.Equal(t, 400, human.Balance, "failed double must not debit")

	// Three cards: no longer eligible
	tm2, _, _ := newTable(nil, "2s3dTd9s4hKh5d")
	require.True(t, tm2.StartRound(50))
	tm2.PlayerHit()
	assert.False(t, tm2.DoubleDown())
}

func TestSplitHand(t *testing.T) {
	// Pair of eights splits; each hand gets one fresh card, play stays on
	// the first hand
	tm, human, recorder := newTable(nil, "8s8d9c7s3h2dKhQdTs5h")
	require.True(t, tm.StartRound(50))

	require.True(t, tm.SplitHand())

	assert.Equal(t, PlayerTurn, tm.State())
	assert.Equal(t, 0, tm.CurrentHandIndex(), "split does not advance the hand")
	require.Equal(t, 2, human.HandCount())
	assert.Equal(t, 900, human.Balance, "second stake debited")
	assert.Equal(t, 100, human.CurrentBet)

	// Original pair is spread across the two hands, one new card each
	first, second := human.Hand(0), human.Hand(1)
	assert.Equal(t, mustCards("8s3h"), first.Cards)
	assert.Equal(t, mustCards("8d2d"), second.Cards)
	assert.Equal(t, 50, second.Bet)

	event, ok := recorder.first(EventTypeHandSplit)
	require.True(t, ok)
	split := event.(HandSplitEvent)
	assert.Equal(t, 0, split.HandIndex)
	assert.Equal(t, 1, split.NewHandIndex)

	// Both hands then play in order: stand twice to reach the dealer
	tm.PlayerStand()
	assert.Equal(t, PlayerTurn, tm.State())
	assert.Equal(t, 1, tm.CurrentHandIndex())
	tm.PlayerStand()
	assert.Equal(t, RoundOver, tm.State())
}

func TestSplitGuards(t *testing.T) {
	// Not a pair
	tm, _, _ := newTable(nil, "8sKd9c7s")
	require.True(t, tm.StartRound(50))
	assert.False(t, tm.SplitHand())

	// Pair but insufficient funds
	tm2, human, _ := newTable(nil, "8s8d9c7s")
	require.True(t, tm2.StartRound(600))
	assert.False(t, tm2.SplitHand())
	assert.Equal(t, 400, human.Balance)
}

func TestAiSeatPlaysItsTurn(t *testing.T) {
	// Balanced AI on 12 draws once to 21 and pushes the dealer's 21
	ai := NewAISeat("Bot", 500, BalancedStrategy{})
	tm, _, _ := newTable([]*Seat{ai}, "KhQh"+"Th2h"+"9c7s"+"9d5h")
	require.True(t, tm.StartRound(50))

	startBalance := ai.Balance + ai.CurrentBet
	tm.PlayerStand()

	assert.Equal(t, RoundOver, tm.State())
	assert.Len(t, ai.Hand(0).Cards, 3)
	assert.Equal(t, 21, ai.Hand(0).Value())
	assert.Equal(t, startBalance, ai.Balance, "push returns the AI stake")
}

func TestAiSeatBetWithinBalance(t *testing.T) {
	ai := NewAISeat("Bot", 500, AggressiveStrategy{})
	tm, _, recorder := newTable([]*Seat{ai}, "KhQhTh9h9c7s5h")
	require.True(t, tm.StartRound(50))

	assert.Equal(t, 2, recorder.count(EventTypeBetPlaced))
	assert.GreaterOrEqual(t, ai.Balance, 0)
	assert.Greater(t, ai.CurrentBet, 0)
	assert.LessOrEqual(t, ai.CurrentBet, 500)
}

func TestAiSplitTerminatesUnderHandCap(t *testing.T) {
	// Aggressive AI dealt a pair of twos with an endless supply of twos:
	// splitting must stop at the hand cap
	ai := NewAISeat("Bot", 10000, AggressiveStrategy{})
	stacked := "KhQh" + "2s2d" + "9c9s" + "2h2c2s2d2h2c2s2d" + "ThThThThThThThTh5h"
	tm, _, _ := newTable([]*Seat{ai}, stacked)
	require.True(t, tm.StartRound(50))

	tm.PlayerStand()

	assert.Equal(t, RoundOver, tm.State())
	assert.LessOrEqual(t, ai.HandCount(), MaxHandsPerSeat)
	for _, hand := range ai.Hands() {
		assert.NotEmpty(t, hand.Cards)
		assert.Zero(t, hand.Bet, "every hand settled")
	}
}

func TestCommandsIgnoredOutsidePlayerTurn(t *testing.T) {
	tm, human, _ := newTable(nil, "Th7hTd6sKh")

	tm.PlayerHit()
	tm.PlayerStand()
	assert.False(t, tm.DoubleDown())
	assert.False(t, tm.SplitHand())
	assert.False(t, tm.TakeInsurance())

	assert.Equal(t, WaitingForPlayers, tm.State())
	assert.Equal(t, 1000, human.Balance)
	assert.Empty(t, human.Hand(0).Cards)
}

func TestStateChangeEventsFireInOrder(t *testing.T) {
	tm, _, recorder := newTable(nil, "Th7hTd6sKh")
	require.True(t, tm.StartRound(50))
	tm.PlayerStand()

	var states []GameState
	for _, event := range recorder.events {
		if sc, ok := event.(StateChangedEvent); ok {
			states = append(states, sc.NewState)
		}
	}
	assert.Equal(t, []GameState{PlayerTurn, AiTurn, DealerTurn, RoundOver}, states)
}

func TestRoundsReuseSeatsAndBalances(t *testing.T) {
	tm, human, _ := newTable(nil, "Th7hTd6sKh"+"AsKd5d9s")
	require.True(t, tm.StartRound(50))
	tm.PlayerStand()
	require.Equal(t, RoundOver, tm.State())
	require.Equal(t, 1050, human.Balance)
	firstRound := tm.RoundID()

	// Next round starts from the same seats with the carried balance
	require.True(t, tm.StartRound(50))
	assert.Equal(t, RoundOver, tm.State(), "natural resolves immediately")
	assert.Equal(t, 1125, human.Balance)
	assert.NotEqual(t, firstRound, tm.RoundID())
}
