package game

import (
	rand "math/rand/v2"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/cardtable/blackjack/internal/deck"
)

// TurnManager is the round state machine. It owns the shoe and the seats
// for the duration of a round, pulls cards, consults AI strategies,
// delegates all money movement to the BankManager and publishes every
// observable change on the event bus.
//
// The engine is single-threaded: commands must be serialized by the caller
// and every transition runs to completion before returning.
type TurnManager struct {
	rng    *rand.Rand
	logger *log.Logger

	shoe   *deck.Shoe
	human  *Seat
	ais    []*Seat
	dealer *Seat

	bank    *BankManager
	results *ResultCalculator
	bus     EventBus

	dealerPolicy DealerStrategy

	state       GameState
	currentHand int
	roundID     string
	decks       int

	insuranceOffered bool
	insuranceTaken   bool
	insurancePaid    bool
}

// Option configures a TurnManager
type Option func(*TurnManager)

// WithShoe replaces the engine's shoe, primarily for deterministic tests
// with stacked decks
func WithShoe(shoe *deck.Shoe) Option {
	return func(tm *TurnManager) {
		tm.shoe = shoe
	}
}

// WithDecks sets the number of 52-card decks in the shoe
func WithDecks(n int) Option {
	return func(tm *TurnManager) {
		tm.shoe = nil
		tm.decks = n
	}
}

// NewTurnManager creates a round engine for the given human seat and AI
// seats. The dealer seat is created internally.
func NewTurnManager(rng *rand.Rand, logger *log.Logger, human *Seat, ais []*Seat, opts ...Option) *TurnManager {
	bus := NewEventBus()
	bank := NewBankManager()

	tm := &TurnManager{
		rng:     rng,
		logger:  logger,
		human:   human,
		ais:     ais,
		dealer:  NewSeat("Dealer", Dealer, 0),
		bank:    bank,
		results: NewResultCalculator(bank, bus),
		bus:     bus,
		state:   WaitingForPlayers,
		decks:   defaultDecks,
	}

	for _, opt := range opts {
		opt(tm)
	}
	if tm.shoe == nil {
		tm.shoe = deck.NewShoe(rng, tm.decks)
	}
	return tm
}

const defaultDecks = 4

// EventBus returns the bus external observers subscribe to
func (tm *TurnManager) EventBus() EventBus {
	return tm.bus
}

// State returns the current state of the round state machine
func (tm *TurnManager) State() GameState {
	return tm.state
}

// CurrentHandIndex returns the index of the human hand currently in play
func (tm *TurnManager) CurrentHandIndex() int {
	return tm.currentHand
}

// RoundID returns the identifier of the round in progress
func (tm *TurnManager) RoundID() string {
	return tm.roundID
}

// HumanSeat returns the human seat
func (tm *TurnManager) HumanSeat() *Seat {
	return tm.human
}

// AISeats returns the AI seats in turn order
func (tm *TurnManager) AISeats() []*Seat {
	return tm.ais
}

// DealerSeat returns the dealer seat
func (tm *TurnManager) DealerSeat() *Seat {
	return tm.dealer
}

// DealerUpcard returns the dealer's visible card, once dealt
func (tm *TurnManager) DealerUpcard() (deck.Card, bool) {
	hand := tm.dealer.Hand(0)
	if len(hand.Cards) == 0 {
		return deck.Card{}, false
	}
	return hand.Cards[0], true
}

// InsuranceOffered reports whether the insurance offer is open
func (tm *TurnManager) InsuranceOffered() bool {
	return tm.insuranceOffered
}

func (tm *TurnManager) setState(next GameState) {
	old := tm.state
	tm.state = next
	tm.logger.Debug("State changed", "from", old, "to", next, "roundID", tm.roundID)
	tm.bus.Publish(NewStateChangedEvent(old, next))
}

// StartRound begins a new round with the given human bet. It returns false
// without touching any state when the bet is out of range or a round is
// already in progress.
func (tm *TurnManager) StartRound(bet int) bool {
	if tm.state != WaitingForPlayers && tm.state != RoundOver {
		return false
	}
	if bet <= 0 || bet > tm.human.Balance {
		tm.logger.Debug("Rejected round start", "bet", bet, "balance", tm.human.Balance)
		return false
	}

	tm.roundID = uuid.NewString()
	tm.currentHand = 0
	tm.insuranceOffered = false
	tm.insuranceTaken = false
	tm.insurancePaid = false

	tm.shoe.Reset()
	tm.human.ResetHands()
	tm.dealer.ResetHands()
	for _, ai := range tm.ais {
		ai.ResetHands()
	}

	tm.logger.Debug("Starting round", "roundID", tm.roundID, "bet", bet)

	tm.bank.PlaceBet(tm.human, bet)
	tm.bus.Publish(NewBetPlacedEvent(tm.human, bet, 0))

	for _, ai := range tm.ais {
		amount := ai.Strategy.BetAmount(tm.rng, ai.Balance)
		tm.bank.PlaceBet(ai, amount)
		tm.bus.Publish(NewBetPlacedEvent(ai, amount, 0))
	}

	// Human cards are dealt one at a time with per-card events; AI seats
	// are dealt silently.
	tm.dealCard(tm.human, 0)
	tm.dealCard(tm.human, 0)
	for _, ai := range tm.ais {
		ai.Hand(0).AddCard(tm.shoe.MustDraw())
		ai.Hand(0).AddCard(tm.shoe.MustDraw())
	}

	// The dealer's first draw is the hidden hole card; the second is the
	// only visible dealer card until reveal.
	tm.dealer.SetHoleCard(tm.shoe.MustDraw())
	upcard := tm.shoe.MustDraw()
	tm.dealer.Hand(0).AddCard(upcard)
	tm.bus.Publish(NewCardDealtEvent(tm.dealer, 0, upcard))

	hole, _ := tm.dealer.HoleCard()
	dealerNatural := isNaturalPair(upcard, hole)
	humanNatural := tm.human.Hand(0).IsBlackjack()

	// With an Ace up the hole card stays unseen so insurance can be
	// offered; a dealer natural is then discovered at reveal. A ten-up
	// natural, or a player natural, resolves the round immediately.
	if humanNatural || (dealerNatural && !upcard.IsAce()) {
		tm.revealHoleCard()
		tm.endRound()
		return true
	}

	if upcard.IsAce() {
		tm.insuranceOffered = true
		tm.bus.Publish(NewInsuranceOfferedEvent(upcard))
	}

	tm.setState(PlayerTurn)
	return true
}

func isNaturalPair(a, b deck.Card) bool {
	return a.BlackjackValue()+b.BlackjackValue() == 21
}

// dealCard draws one card into the given hand and publishes the per-card
// events
func (tm *TurnManager) dealCard(seat *Seat, handIndex int) deck.Card {
	card := tm.shoe.MustDraw()
	seat.Hand(handIndex).AddCard(card)
	tm.bus.Publish(NewCardDealtEvent(seat, handIndex, card))
	tm.bus.Publish(NewHandUpdatedEvent(seat, handIndex))
	return card
}

func (tm *TurnManager) revealHoleCard() {
	card := tm.dealer.RevealHoleCard()
	tm.bus.Publish(NewDealerTurnEvent(card))
	tm.bus.Publish(NewCardDealtEvent(tm.dealer, 0, card))
}

// PlayerHit draws one card into the human's current hand. Hitting a busted
// or already-21 hand is an ignored no-op.
func (tm *TurnManager) PlayerHit() {
	if tm.state != PlayerTurn {
		return
	}
	hand := tm.human.Hand(tm.currentHand)
	if hand.Value() >= 21 {
		return
	}

	tm.dealCard(tm.human, tm.currentHand)
	if hand.IsBusted() {
		tm.bus.Publish(NewPlayerBustedEvent(tm.human, tm.currentHand))
	}
	if hand.Value() >= 21 {
		tm.advanceHand()
	}
}

// PlayerStand finishes the human's current hand
func (tm *TurnManager) PlayerStand() {
	if tm.state != PlayerTurn {
		return
	}
	tm.advanceHand()
}

// DoubleDown doubles the current hand's bet, draws exactly one card and
// finishes the hand regardless of the resulting value
func (tm *TurnManager) DoubleDown() bool {
	if tm.state != PlayerTurn {
		return false
	}
	if !tm.human.CanDoubleDown(tm.currentHand) {
		return false
	}
	if !tm.bank.HandleDoubleDown(tm.human, tm.currentHand) {
		return false
	}

	hand := tm.human.Hand(tm.currentHand)
	tm.bus.Publish(NewDoubleDownEvent(tm.human, tm.currentHand, hand.Bet))
	tm.dealCard(tm.human, tm.currentHand)
	if hand.IsBusted() {
		tm.bus.Publish(NewPlayerBustedEvent(tm.human, tm.currentHand))
	}
	tm.advanceHand()
	return true
}

// SplitHand splits the human's current pair into two hands and deals one
// fresh card to each. Play continues on the first of the two hands.
func (tm *TurnManager) SplitHand() bool {
	if tm.state != PlayerTurn {
		return false
	}
	if !tm.human.CanSplit(tm.currentHand) {
		return false
	}
	if !tm.bank.HandleSplit(tm.human, tm.currentHand) {
		return false
	}

	newIndex, ok := tm.human.SplitHand(tm.currentHand)
	if !ok {
		// CanSplit was checked above; reaching here means the seat and
		// bank disagree about splittability.
		panic("game: split failed after bank debit")
	}

	tm.bus.Publish(NewHandSplitEvent(tm.human, tm.currentHand, newIndex))
	tm.dealCard(tm.human, tm.currentHand)
	tm.dealCard(tm.human, newIndex)
	return true
}

// TakeInsurance places the human's insurance side bet. Legal only while
// the dealer shows an Ace and the human has not already taken it.
func (tm *TurnManager) TakeInsurance() bool {
	if tm.state != PlayerTurn || !tm.insuranceOffered || tm.insuranceTaken {
		return false
	}
	if !tm.bank.PlaceInsurance(tm.human) {
		return false
	}
	tm.insuranceTaken = true
	tm.bus.Publish(NewInsuranceAcceptedEvent(tm.human, tm.human.InsuranceBet))
	return true
}

// DeclineInsurance closes the insurance offer without any state change
// beyond the offer flag
func (tm *TurnManager) DeclineInsurance() {
	tm.insuranceOffered = false
}

// advanceHand moves play to the human's next split hand, or on to the AI
// seats when the current hand was the last
func (tm *TurnManager) advanceHand() {
	if tm.currentHand >= tm.human.HandCount()-1 {
		tm.runAiTurn()
		return
	}
	tm.currentHand++
}

// runAiTurn resolves every AI seat autonomously, then the dealer, then the
// round. No external command is accepted until RoundOver.
func (tm *TurnManager) runAiTurn() {
	tm.setState(AiTurn)

	upcard, _ := tm.DealerUpcard()
	for _, seat := range tm.ais {
		tm.playAiSeat(seat, upcard.IsAce())
	}

	tm.runDealerTurn()
}

// playAiSeat plays every hand of one AI seat to completion. Split hands
// are appended to the seat's hand list and visited by the outer loop.
func (tm *TurnManager) playAiSeat(seat *Seat, dealerShowsAce bool) {
	insuranceConsidered := false

	for hi := 0; hi < seat.HandCount(); hi++ {
		hand := seat.Hand(hi)

		for hand.Value() < 21 {
			if len(hand.Cards) == 2 && seat.Strategy.ShouldSplitHand(hand) && seat.CanSplit(hi) {
				if tm.bank.HandleSplit(seat, hi) {
					newIndex, _ := seat.SplitHand(hi)
					tm.bus.Publish(NewHandSplitEvent(seat, hi, newIndex))
					hand.AddCard(tm.shoe.MustDraw())
					seat.Hand(newIndex).AddCard(tm.shoe.MustDraw())
					continue
				}
			}

			if len(hand.Cards) == 2 && seat.Strategy.ShouldPlayDoubleDown(hand) && seat.CanDoubleDown(hi) {
				if tm.bank.HandleDoubleDown(seat, hi) {
					tm.bus.Publish(NewDoubleDownEvent(seat, hi, hand.Bet))
					hand.AddCard(tm.shoe.MustDraw())
					if hand.IsBusted() {
						tm.bus.Publish(NewPlayerBustedEvent(seat, hi))
					}
					break
				}
			}

			// Insurance is decided at most once, on the first hand, and
			// never stops the hand from drawing in the same iteration.
			if hi == 0 && dealerShowsAce && !insuranceConsidered {
				insuranceConsidered = true
				if seat.Strategy.ShouldTakeInsurance(tm.rng) && tm.bank.PlaceInsurance(seat) {
					tm.bus.Publish(NewInsuranceAcceptedEvent(seat, seat.InsuranceBet))
				}
			}

			if !seat.Strategy.ShouldDraw(hand.Value()) {
				break
			}
			hand.AddCard(tm.shoe.MustDraw())
			if hand.IsBusted() {
				tm.bus.Publish(NewPlayerBustedEvent(seat, hi))
				break
			}
		}
	}
}

// runDealerTurn reveals the hole card and draws out the dealer's hand
func (tm *TurnManager) runDealerTurn() {
	tm.setState(DealerTurn)
	tm.revealHoleCard()

	// If every seat already busted the dealer wins outright and takes no
	// risk of busting back.
	if !tm.everySeatBusted() {
		hand := tm.dealer.Hand(0)
		for tm.dealerPolicy.ShouldDraw(hand.Value()) {
			tm.dealCard(tm.dealer, 0)
			if hand.IsBusted() {
				break
			}
		}
	}

	tm.endRound()
}

func (tm *TurnManager) everySeatBusted() bool {
	if !tm.human.AllHandsBusted() {
		return false
	}
	for _, ai := range tm.ais {
		if !ai.AllHandsBusted() {
			return false
		}
	}
	return true
}

// endRound resolves insurance exactly once, settles every hand and emits
// the terminal events
func (tm *TurnManager) endRound() {
	if tm.dealer.Hand(0).IsBlackjack() {
		tm.results.ProcessInsuranceOutcomes(tm.human, tm.ais, tm.insurancePaid)
		tm.insurancePaid = true
	} else {
		tm.results.ClearInsurance(tm.human, tm.ais)
	}

	tm.results.CalculateResults(tm.human, tm.ais, tm.dealer)

	tm.insuranceOffered = false
	tm.setState(RoundOver)
	tm.bus.Publish(NewRoundEndedEvent(tm.roundID))
	tm.logger.Debug("Round ended", "roundID", tm.roundID, "balance", tm.human.Balance)
}
